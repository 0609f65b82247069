package bot

import (
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/pinghoyk/recipebot/pkg/locales"
	"github.com/pinghoyk/recipebot/pkg/models"
)

// Telegram режет сообщения на 4096 символах; оставляем запас на подпись.
const maxTextLen = 4000

// screen — готовый к отправке экран: текст, клавиатура, опциональное фото.
type screen struct {
	text     string
	keyboard *tgbotapi.InlineKeyboardMarkup
	photoURL string // если задано, перед текстом уходит фото с подписью
}

// Виды просмотра списков рецептов по ключу
const (
	browseArea     = "area"
	browseCategory = "category"
)

func btn(label, action string, args ...string) tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardButtonData(label, encodeCallback(action, args...))
}

func menuButtonRow() []tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardRow(btn(locales.Get().Buttons.Menu, actMenu))
}

// keyboard собирает разметку из рядов и добавляет ряд "в меню".
// Её несут все экраны, кроме корневого меню.
func keyboard(rows ...[]tgbotapi.InlineKeyboardButton) *tgbotapi.InlineKeyboardMarkup {
	rows = append(rows, menuButtonRow())
	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &kb
}

// renderMenu — корневой экран.
func renderMenu() screen {
	l := locales.Get()
	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			btn(l.Buttons.Ingredients, actAskFind),
			btn(l.Buttons.Name, actAskName),
		),
		tgbotapi.NewInlineKeyboardRow(
			btn(l.Buttons.Area, actAreas, "0"),
			btn(l.Buttons.Category, actCategories, "0"),
		),
		tgbotapi.NewInlineKeyboardRow(
			btn(l.Buttons.Random, actRandom),
			btn(l.Buttons.History, actHistory),
		),
		tgbotapi.NewInlineKeyboardRow(
			btn(l.Buttons.Favorites, actFavorites),
			btn(l.Buttons.Settings, actAskSettings),
		),
		tgbotapi.NewInlineKeyboardRow(
			btn(l.Buttons.Help, actHelp),
		),
	)
	return screen{text: l.Menu.Text, keyboard: &kb}
}

func renderHelp() screen {
	return screen{text: locales.Get().Help.Text, keyboard: keyboard()}
}

// renderPrompt — запрос текстового ввода с кнопкой отмены.
func renderPrompt(text string) screen {
	l := locales.Get()
	return screen{
		text:     text,
		keyboard: keyboard(tgbotapi.NewInlineKeyboardRow(btn(l.Buttons.Back, actBack))),
	}
}

func renderSettingsPrompt(current int) screen {
	l := locales.Get()
	return screen{
		text:     fmt.Sprintf(l.Settings.Prompt, current),
		keyboard: keyboard(tgbotapi.NewInlineKeyboardRow(btn(l.Buttons.Back, actBack))),
	}
}

// renderAck — простое подтверждение c возвратом в меню.
func renderAck(text string) screen {
	return screen{text: text, keyboard: keyboard()}
}

// renderMealButtons — по кнопке на рецепт, один ряд на кнопку.
func renderMealButtons(meals []models.Meal) [][]tgbotapi.InlineKeyboardButton {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(meals))
	for _, m := range meals {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(btn(m.Name, actMeal, m.ID)))
	}
	return rows
}

// renderMealList — результаты поиска по имени или ингредиентам.
func renderMealList(title string, meals []models.Meal) screen {
	return screen{text: title, keyboard: keyboard(renderMealButtons(meals)...)}
}

// renderNameList — страница списка кухонь или категорий.
func renderNameList(kind string, names []string, page, totalPages int) screen {
	l := locales.Get()

	var title, pageAction, pickAction string
	switch kind {
	case browseArea:
		title, pageAction, pickAction = l.Lists.AreasTitle, actAreas, actArea
	default:
		title, pageAction, pickAction = l.Lists.CategoriesTitle, actCategories, actCategory
	}

	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(names)+1)
	for _, name := range names {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(btn(name, pickAction, name, "0")))
	}
	if nav := navRow(pageAction, nil, page, totalPages); nav != nil {
		rows = append(rows, nav)
	}

	text := title
	if totalPages > 1 {
		text += " — " + fmt.Sprintf(l.Lists.PageOf, page+1, totalPages)
	}
	return screen{text: text, keyboard: keyboard(rows...)}
}

// renderBrowsePage — страница рецептов выбранной кухни/категории.
func renderBrowsePage(kind, key string, meals []models.Meal, page, totalPages int) screen {
	l := locales.Get()

	var title, pageAction string
	switch kind {
	case browseArea:
		title, pageAction = fmt.Sprintf(l.Lists.MealsInArea, key), actArea
	default:
		title, pageAction = fmt.Sprintf(l.Lists.MealsInCategory, key), actCategory
	}

	rows := renderMealButtons(meals)
	if nav := navRow(pageAction, []string{key}, page, totalPages); nav != nil {
		rows = append(rows, nav)
	}

	if totalPages > 1 {
		title += " — " + fmt.Sprintf(l.Lists.PageOf, page+1, totalPages)
	}
	return screen{text: title, keyboard: keyboard(rows...)}
}

// navRow — кнопки Prev/Next; на краях соответствующей кнопки нет,
// на единственной странице ряда нет вовсе.
func navRow(action string, keyArgs []string, page, totalPages int) []tgbotapi.InlineKeyboardButton {
	if totalPages <= 1 {
		return nil
	}
	l := locales.Get()

	var row []tgbotapi.InlineKeyboardButton
	if page > 0 {
		row = append(row, btn(l.Buttons.Prev, action, append(keyArgs, strconv.Itoa(page-1))...))
	}
	if page < totalPages-1 {
		row = append(row, btn(l.Buttons.Next, action, append(keyArgs, strconv.Itoa(page+1))...))
	}
	return row
}

// favoriteRow — кнопка-переключатель избранного с подписью по состоянию.
func favoriteRow(mealID string, isFavorite bool) []tgbotapi.InlineKeyboardButton {
	l := locales.Get()
	label := l.Detail.AddFavorite
	if isFavorite {
		label = l.Detail.RemoveFavorite
	}
	return tgbotapi.NewInlineKeyboardRow(btn(label, actFav, mealID))
}

// renderDetail — карточка рецепта. При наличии картинки экран
// состоит из фото с подписью и текстового сообщения с клавиатурой.
func renderDetail(d *models.MealDetail, isFavorite bool) screen {
	l := locales.Get()

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🍽 *%s*\n", d.Name))
	if d.Category != "" || d.Area != "" {
		sb.WriteString(fmt.Sprintf("🏷️ %s · 🌍 %s\n", d.Category, d.Area))
	}
	sb.WriteString("\n" + l.Detail.IngredientsTitle + "\n")
	for _, ing := range d.Ingredients {
		if ing.Measure != "" {
			sb.WriteString(fmt.Sprintf("• %s — %s\n", ing.Name, ing.Measure))
		} else {
			sb.WriteString(fmt.Sprintf("• %s\n", ing.Name))
		}
	}
	sb.WriteString("\n")
	sb.WriteString(truncate(d.Instructions, maxTextLen-sb.Len()))

	return screen{
		text:     sb.String(),
		keyboard: keyboard(favoriteRow(d.ID, isFavorite)),
		photoURL: d.ThumbnailURL,
	}
}

func renderHistoryList(entries []models.HistoryEntry) screen {
	l := locales.Get()
	if len(entries) == 0 {
		return renderAck(l.Lists.HistoryEmpty)
	}
	meals := make([]models.Meal, 0, len(entries))
	for _, e := range entries {
		meals = append(meals, models.Meal{ID: e.MealID, Name: e.Name})
	}
	rows := renderMealButtons(meals)
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(btn(l.Buttons.Clear, actClear, models.ClearHistory)))
	return screen{text: l.Lists.HistoryTitle, keyboard: keyboard(rows...)}
}

func renderFavoritesList(favs []models.Favorite) screen {
	l := locales.Get()
	if len(favs) == 0 {
		return renderAck(l.Lists.FavoritesEmpty)
	}
	meals := make([]models.Meal, 0, len(favs))
	for _, f := range favs {
		meals = append(meals, models.Meal{ID: f.MealID, Name: f.Name})
	}
	rows := renderMealButtons(meals)
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(btn(l.Buttons.Clear, actClear, models.ClearFavorites)))
	return screen{text: l.Lists.FavoritesTitle, keyboard: keyboard(rows...)}
}

// renderConfirmClear — вопрос "точно очистить?" с Да/Нет.
func renderConfirmClear(kind string) screen {
	l := locales.Get()
	text := l.Clear.HistoryQuestion
	if kind == models.ClearFavorites {
		text = l.Clear.FavoritesQuestion
	}
	return screen{
		text: text,
		keyboard: keyboard(tgbotapi.NewInlineKeyboardRow(
			btn(l.Buttons.Yes, actConfirm, "yes"),
			btn(l.Buttons.No, actConfirm, "no"),
		)),
	}
}

func truncate(s string, limit int) string {
	if limit < 1 {
		return ""
	}
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit-1]) + "…"
}
