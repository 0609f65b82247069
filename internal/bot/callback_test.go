package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Кодек payload обязан пережить пробелы, двоеточия и не-ASCII
// в названиях кухонь и категорий.
func TestCallbackRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		action string
		args   []string
	}{
		{"без аргументов", actMenu, nil},
		{"страница", actAreas, []string{"2"}},
		{"обычное название", actArea, []string{"Italian", "0"}},
		{"пробел в названии", actCategory, []string{"Side Dish", "1"}},
		{"двоеточие в названии", actArea, []string{"Weird: Cuisine", "3"}},
		{"не-ASCII", actArea, []string{"Крёльская кухня", "0"}},
		{"процент и плюс", actCategory, []string{"50% off + more", "0"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := encodeCallback(tt.action, tt.args...)

			action, args, ok := decodeCallback(data)
			require.True(t, ok)
			assert.Equal(t, tt.action, action)
			if len(tt.args) == 0 {
				assert.Empty(t, args)
			} else {
				assert.Equal(t, tt.args, args)
			}
		})
	}
}

// Разделитель не встречается внутри закодированных аргументов.
func TestEncodeEscapesSeparator(t *testing.T) {
	data := encodeCallback(actArea, "a:b:c", "0")
	action, args, ok := decodeCallback(data)
	require.True(t, ok)
	assert.Equal(t, actArea, action)
	require.Len(t, args, 2)
	assert.Equal(t, "a:b:c", args[0])
}

func TestDecodeRejectsBrokenEscape(t *testing.T) {
	_, _, ok := decodeCallback("area:%zz:0")
	assert.False(t, ok)
}
