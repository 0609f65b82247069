// Package catalog предоставляет клиент для каталога рецептов TheMealDB.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pinghoyk/recipebot/pkg/models"
)

const defaultBaseURL = "https://www.themealdb.com/api/json/v1"

const (
	connectTimeout = 6 * time.Second
	totalTimeout   = 12 * time.Second
)

// ingredientSlots — сколько пар (продукт, мера) бывает в карточке.
const ingredientSlots = 20

// Client — клиент каталога. Один GET на операцию, без ретраев.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient создаёт клиент каталога. apiKey "1" — публичный тариф.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: totalTimeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{Timeout: connectTimeout}).DialContext,
			},
		},
	}
}

// --- схемы ответов каталога ---

// detailDTO — карточка рецепта как её отдаёт API.
// Слоты strIngredient1..20 / strMeasure1..20 складываются в slots
// и распаковываются одним местом — ingredients().
type detailDTO struct {
	ID           string `json:"idMeal"`
	Name         string `json:"strMeal"`
	Category     string `json:"strCategory"`
	Area         string `json:"strArea"`
	Instructions string `json:"strInstructions"`
	Thumb        string `json:"strMealThumb"`

	slots map[string]string
}

func (d *detailDTO) UnmarshalJSON(data []byte) error {
	type alias detailDTO
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}

	raw := map[string]*string{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	a.slots = make(map[string]string)
	for k, v := range raw {
		if v == nil {
			continue
		}
		if strings.HasPrefix(k, "strIngredient") || strings.HasPrefix(k, "strMeasure") {
			a.slots[k] = *v
		}
	}

	*d = detailDTO(a)
	return nil
}

// ingredients распаковывает разрежённые слоты: слот без названия пропускается.
func (d *detailDTO) ingredients() []models.Ingredient {
	var out []models.Ingredient
	for i := 1; i <= ingredientSlots; i++ {
		name := strings.TrimSpace(d.slots[fmt.Sprintf("strIngredient%d", i)])
		if name == "" {
			continue
		}
		out = append(out, models.Ingredient{
			Name:    name,
			Measure: strings.TrimSpace(d.slots[fmt.Sprintf("strMeasure%d", i)]),
		})
	}
	return out
}

func (d *detailDTO) toModel() models.MealDetail {
	return models.MealDetail{
		Meal:         models.Meal{ID: d.ID, Name: d.Name},
		Category:     d.Category,
		Area:         d.Area,
		Instructions: d.Instructions,
		ThumbnailURL: d.Thumb,
		Ingredients:  d.ingredients(),
	}
}

type detailsResponse struct {
	Meals []detailDTO `json:"meals"`
}

type summaryDTO struct {
	ID   string `json:"idMeal"`
	Name string `json:"strMeal"`
}

type summariesResponse struct {
	Meals []summaryDTO `json:"meals"`
}

type areasResponse struct {
	Meals []struct {
		Area string `json:"strArea"`
	} `json:"meals"`
}

type categoriesResponse struct {
	Meals []struct {
		Category string `json:"strCategory"`
	} `json:"meals"`
}

// --- операции каталога ---

// Random возвращает случайный рецепт, nil если каталог ничего не дал.
func (c *Client) Random(ctx context.Context) (*models.MealDetail, error) {
	return c.oneDetail(ctx, "random", "random.php", nil)
}

// SearchByName ищет рецепты по названию.
func (c *Client) SearchByName(ctx context.Context, q string) ([]models.MealDetail, error) {
	var resp detailsResponse
	if err := c.get(ctx, "search_by_name", "search.php", url.Values{"s": {q}}, &resp); err != nil {
		return nil, err
	}
	out := make([]models.MealDetail, 0, len(resp.Meals))
	for i := range resp.Meals {
		out = append(out, resp.Meals[i].toModel())
	}
	return out, nil
}

// LookupByID возвращает карточку по id, nil если такого рецепта нет.
func (c *Client) LookupByID(ctx context.Context, id string) (*models.MealDetail, error) {
	return c.oneDetail(ctx, "lookup_by_id", "lookup.php", url.Values{"i": {id}})
}

// FilterByIngredient возвращает краткие записи рецептов с этим продуктом.
func (c *Client) FilterByIngredient(ctx context.Context, token string) ([]models.Meal, error) {
	return c.summaries(ctx, "filter_by_ingredient", url.Values{"i": {token}})
}

// FilterByArea возвращает краткие записи рецептов кухни area.
func (c *Client) FilterByArea(ctx context.Context, area string) ([]models.Meal, error) {
	return c.summaries(ctx, "filter_by_area", url.Values{"a": {area}})
}

// FilterByCategory возвращает краткие записи рецептов категории category.
func (c *Client) FilterByCategory(ctx context.Context, category string) ([]models.Meal, error) {
	return c.summaries(ctx, "filter_by_category", url.Values{"c": {category}})
}

// ListAreas возвращает список кухонь.
func (c *Client) ListAreas(ctx context.Context) ([]string, error) {
	var resp areasResponse
	if err := c.get(ctx, "list_areas", "list.php", url.Values{"a": {"list"}}, &resp); err != nil {
		return nil, err
	}
	out := make([]string, 0, len(resp.Meals))
	for _, m := range resp.Meals {
		if m.Area != "" {
			out = append(out, m.Area)
		}
	}
	return out, nil
}

// ListCategories возвращает список категорий.
func (c *Client) ListCategories(ctx context.Context) ([]string, error) {
	var resp categoriesResponse
	if err := c.get(ctx, "list_categories", "list.php", url.Values{"c": {"list"}}, &resp); err != nil {
		return nil, err
	}
	out := make([]string, 0, len(resp.Meals))
	for _, m := range resp.Meals {
		if m.Category != "" {
			out = append(out, m.Category)
		}
	}
	return out, nil
}

func (c *Client) oneDetail(ctx context.Context, op, endpoint string, query url.Values) (*models.MealDetail, error) {
	var resp detailsResponse
	if err := c.get(ctx, op, endpoint, query, &resp); err != nil {
		return nil, err
	}
	if len(resp.Meals) == 0 {
		return nil, nil
	}
	d := resp.Meals[0].toModel()
	return &d, nil
}

func (c *Client) summaries(ctx context.Context, op string, query url.Values) ([]models.Meal, error) {
	var resp summariesResponse
	if err := c.get(ctx, op, "filter.php", query, &resp); err != nil {
		return nil, err
	}
	out := make([]models.Meal, 0, len(resp.Meals))
	for _, m := range resp.Meals {
		out = append(out, models.Meal{ID: m.ID, Name: m.Name})
	}
	return out, nil
}

// get выполняет GET и раскладывает сбои по таксономии из errors.go.
// API отвечает {"meals": null} на "не найдено" — это не сбой,
// json спокойно декодирует null в пустой срез.
func (c *Client) get(ctx context.Context, op, endpoint string, query url.Values, v any) error {
	u := fmt.Sprintf("%s/%s/%s", c.baseURL, c.apiKey, endpoint)
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("ошибка создания запроса %s: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return classifyTransport(op, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return classifyTransport(op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{Kind: FailureUpstreamStatus, Op: op, Status: resp.StatusCode}
	}

	if err := json.Unmarshal(body, v); err != nil {
		return &Error{Kind: FailureDecode, Op: op, Err: err}
	}
	return nil
}
