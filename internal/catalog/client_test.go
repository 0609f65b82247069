package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient("1")
	c.baseURL = srv.URL
	return c
}

func TestLookupByIDDecodesSparseSlots(t *testing.T) {
	// слоты 1, 2 и 5 заняты, остальные пустые или null —
	// реальный ответ каталога выглядит именно так
	body := `{"meals":[{
		"idMeal":"52772",
		"strMeal":"Teriyaki Chicken Casserole",
		"strCategory":"Chicken",
		"strArea":"Japanese",
		"strInstructions":"Preheat oven to 350.",
		"strMealThumb":"https://example.test/thumb.jpg",
		"strIngredient1":"soy sauce","strMeasure1":"3/4 cup",
		"strIngredient2":"water","strMeasure2":"1/2 cup",
		"strIngredient3":"","strMeasure3":"",
		"strIngredient5":"brown sugar","strMeasure5":null,
		"strIngredient20":null,"strMeasure20":null
	}]}`
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/1/lookup.php", r.URL.Path)
		assert.Equal(t, "52772", r.URL.Query().Get("i"))
		w.Write([]byte(body))
	})

	d, err := c.LookupByID(context.Background(), "52772")
	require.NoError(t, err)
	require.NotNil(t, d)

	assert.Equal(t, "52772", d.ID)
	assert.Equal(t, "Teriyaki Chicken Casserole", d.Name)
	assert.Equal(t, "Chicken", d.Category)
	assert.Equal(t, "Japanese", d.Area)
	assert.Equal(t, "https://example.test/thumb.jpg", d.ThumbnailURL)
	require.Len(t, d.Ingredients, 3)
	assert.Equal(t, "soy sauce", d.Ingredients[0].Name)
	assert.Equal(t, "3/4 cup", d.Ingredients[0].Measure)
	assert.Equal(t, "brown sugar", d.Ingredients[2].Name)
	assert.Equal(t, "", d.Ingredients[2].Measure)
}

// "meals": null — нормальный ответ "не найдено", а не сбой.
func TestNotFoundIsNotAnError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"meals":null}`))
	})

	d, err := c.LookupByID(context.Background(), "0")
	require.NoError(t, err)
	assert.Nil(t, d)

	meals, err := c.FilterByIngredient(context.Background(), "unicorn")
	require.NoError(t, err)
	assert.Empty(t, meals)
}

func TestSearchByName(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/1/search.php", r.URL.Path)
		assert.Equal(t, "Arrabiata", r.URL.Query().Get("s"))
		w.Write([]byte(`{"meals":[
			{"idMeal":"52771","strMeal":"Spicy Arrabiata Penne"},
			{"idMeal":"52772","strMeal":"Arrabiata Classic"}
		]}`))
	})

	got, err := c.SearchByName(context.Background(), "Arrabiata")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Spicy Arrabiata Penne", got[0].Name)
}

func TestListAreasAndCategories(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/1/list.php", r.URL.Path)
		if r.URL.Query().Get("a") == "list" {
			w.Write([]byte(`{"meals":[{"strArea":"American"},{"strArea":"Japanese"}]}`))
			return
		}
		w.Write([]byte(`{"meals":[{"strCategory":"Beef"},{"strCategory":"Dessert"}]}`))
	})

	areas, err := c.ListAreas(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"American", "Japanese"}, areas)

	cats, err := c.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Beef", "Dessert"}, cats)
}

func TestUpstreamStatusFailure(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	})

	_, err := c.Random(context.Background())
	var cerr *Error
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, FailureUpstreamStatus, cerr.Kind)
	assert.Equal(t, http.StatusBadGateway, cerr.Status)
}

func TestDecodeFailure(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"meals": [{]`))
	})

	_, err := c.Random(context.Background())
	var cerr *Error
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, FailureDecode, cerr.Kind)
}

func TestTimeoutFailure(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	})
	c.httpClient.Timeout = 50 * time.Millisecond

	_, err := c.Random(context.Background())
	var cerr *Error
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, FailureTimeout, cerr.Kind)
}

func TestNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	c := NewClient("1")
	c.baseURL = srv.URL
	srv.Close() // соединение будет отвергнуто

	_, err := c.Random(context.Background())
	var cerr *Error
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, FailureNetwork, cerr.Kind)
}
