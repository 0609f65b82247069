package models

import "time"

// Session представляет текущее состояние диалога с пользователем.
// Живёт только в памяти процесса — после рестарта все пользователи в Idle.
type Session struct {
	UserID    int64
	Mode      string // один из Mode*-констант
	ClearKind string // что подтверждаем при ModeConfirmingClear: ClearHistory/ClearFavorites
}

// Константы режимов для конечного автомата (FSM)
const (
	ModeIdle               = "idle"
	ModeAwaitingName       = "awaiting_name"
	ModeAwaitingIngredient = "awaiting_ingredients"
	ModeAwaitingMaxResults = "awaiting_max_results"
	ModeConfirmingClear    = "confirming_clear"
)

// Виды очистки для ModeConfirmingClear
const (
	ClearHistory   = "history"
	ClearFavorites = "favorites"
)

// Meal — краткая запись каталога: только id и название.
type Meal struct {
	ID   string
	Name string
}

// Ingredient — пара (продукт, мера) из карточки рецепта.
// Мера может отсутствовать.
type Ingredient struct {
	Name    string
	Measure string
}

// MealDetail — полная карточка рецепта.
// Снимок на момент запроса, нигде не кешируется.
type MealDetail struct {
	Meal
	Category     string
	Area         string
	Instructions string
	ThumbnailURL string // пустая строка = нет картинки
	Ingredients  []Ingredient
}

// Favorite — закладка пользователя.
type Favorite struct {
	UserID  int64
	MealID  string
	Name    string
	SavedAt time.Time
}

// HistoryEntry — просмотренный рецепт.
type HistoryEntry struct {
	UserID   int64
	MealID   string
	Name     string
	ViewedAt time.Time
}

// Границы настройки "сколько результатов показывать"
const (
	MinMaxResults     = 1
	MaxMaxResults     = 10
	DefaultMaxResults = 5
)

// ClampMaxResults приводит значение к допустимому диапазону [1, 10].
// Применяется на каждом чтении — даже если в хранилище записан мусор.
func ClampMaxResults(n int) int {
	if n < MinMaxResults {
		return MinMaxResults
	}
	if n > MaxMaxResults {
		return MaxMaxResults
	}
	return n
}
