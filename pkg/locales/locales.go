package locales

import (
	_ "embed"
	"encoding/json"
	"log"
)

//go:embed locales.json
var localesJSON []byte

// Locales содержит все текстовые строки из locales.json
type Locales struct {
	Menu     Menu     `json:"menu"`
	Help     Help     `json:"help"`
	Prompts  Prompts  `json:"prompts"`
	Results  Results  `json:"results"`
	Lists    Lists    `json:"lists"`
	Detail   Detail   `json:"detail"`
	Settings Settings `json:"settings"`
	Clear    Clear    `json:"clear"`
	Errors   Errors   `json:"errors"`
	Buttons  Buttons  `json:"buttons"`
}

type Menu struct {
	Text string `json:"text"`
}

type Help struct {
	Text string `json:"text"`
}

type Prompts struct {
	Name               string `json:"name"`
	Ingredients        string `json:"ingredients"`
	IngredientsExample string `json:"ingredients_example"`
	Cancelled          string `json:"cancelled"`
}

type Results struct {
	ByNameTitle       string `json:"by_name_title"`
	ByIngredientTitle string `json:"by_ingredient_title"`
	Nothing           string `json:"nothing"`
	NoMatches         string `json:"no_matches"`
}

type Lists struct {
	AreasTitle      string `json:"areas_title"`
	CategoriesTitle string `json:"categories_title"`
	MealsInArea     string `json:"meals_in_area"`
	MealsInCategory string `json:"meals_in_category"`
	HistoryTitle    string `json:"history_title"`
	HistoryEmpty    string `json:"history_empty"`
	FavoritesTitle  string `json:"favorites_title"`
	FavoritesEmpty  string `json:"favorites_empty"`
	PageOf          string `json:"page_of"`
}

type Detail struct {
	IngredientsTitle string `json:"ingredients_title"`
	AddFavorite      string `json:"add_favorite"`
	RemoveFavorite   string `json:"remove_favorite"`
}

type Settings struct {
	Prompt     string `json:"prompt"`
	Saved      string `json:"saved"`
	BadInt     string `json:"bad_int"`
	OutOfRange string `json:"out_of_range"`
}

type Clear struct {
	HistoryQuestion   string `json:"history_question"`
	FavoritesQuestion string `json:"favorites_question"`
	HistoryDone       string `json:"history_done"`
	FavoritesDone     string `json:"favorites_done"`
	Kept              string `json:"kept"`
}

type Errors struct {
	Catalog  string `json:"catalog"`
	Fallback string `json:"fallback"`
	UseMenu  string `json:"use_menu"`
}

type Buttons struct {
	Ingredients string `json:"ingredients"`
	Name        string `json:"name"`
	Area        string `json:"area"`
	Category    string `json:"category"`
	Random      string `json:"random"`
	History     string `json:"history"`
	Favorites   string `json:"favorites"`
	Settings    string `json:"settings"`
	Help        string `json:"help"`
	Back        string `json:"back"`
	Menu        string `json:"menu"`
	Clear       string `json:"clear"`
	Prev        string `json:"prev"`
	Next        string `json:"next"`
	Yes         string `json:"yes"`
	No          string `json:"no"`
}

var L *Locales

func init() {
	L = &Locales{}
	if err := json.Unmarshal(localesJSON, L); err != nil {
		log.Fatalf("Не удалось распарсить locales.json: %v", err)
	}
}

// Get возвращает указатель на локали
func Get() *Locales {
	return L
}
