package pager

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginateEmptyList(t *testing.T) {
	page, total := Paginate([]int{}, 0, 20)
	assert.Empty(t, page)
	assert.Equal(t, 1, total)
}

func TestPaginateClampsPage(t *testing.T) {
	items := make([]int, 45)
	for i := range items {
		items[i] = i
	}

	tests := []struct {
		name     string
		page     int
		wantLen  int
		wantHead int
	}{
		{"отрицательная страница даёт первую", -3, 20, 0},
		{"первая страница", 0, 20, 0},
		{"вторая страница", 1, 20, 20},
		{"последняя страница неполная", 2, 5, 40},
		{"за пределами — последняя", 99, 5, 40},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, total := Paginate(items, tt.page, 20)
			assert.Equal(t, 3, total)
			require.Len(t, got, tt.wantLen)
			assert.Equal(t, tt.wantHead, got[0])
		})
	}
}

// Проход по всем страницам восстанавливает исходный список
// ровно по одному разу и в исходном порядке.
func TestPaginateReconstructsList(t *testing.T) {
	for _, n := range []int{1, 19, 20, 21, 45, 100} {
		items := make([]int, n)
		for i := range items {
			items[i] = i
		}

		var got []int
		_, total := Paginate(items, 0, 20)
		for p := 0; p < total; p++ {
			slice, tp := Paginate(items, p, 20)
			assert.Equal(t, total, tp)
			assert.LessOrEqual(t, len(slice), 20)
			got = append(got, slice...)
		}
		assert.Equal(t, items, got, "n=%d", n)
	}
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0, Clamp(-1, 3))
	assert.Equal(t, 1, Clamp(1, 3))
	assert.Equal(t, 2, Clamp(7, 3))
}
