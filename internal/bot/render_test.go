package bot

import (
	"fmt"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pinghoyk/recipebot/pkg/locales"
	"github.com/pinghoyk/recipebot/pkg/models"
	"github.com/pinghoyk/recipebot/pkg/pager"
)

func buttonData(kb *tgbotapi.InlineKeyboardMarkup) []string {
	var out []string
	for _, row := range kb.InlineKeyboard {
		for _, b := range row {
			if b.CallbackData != nil {
				out = append(out, *b.CallbackData)
			}
		}
	}
	return out
}

func hasButton(kb *tgbotapi.InlineKeyboardMarkup, data string) bool {
	for _, d := range buttonData(kb) {
		if d == data {
			return true
		}
	}
	return false
}

// Кнопка "в меню" есть на всех экранах, кроме корневого меню.
func TestMenuButtonDiscipline(t *testing.T) {
	assert.False(t, hasButton(renderMenu().keyboard, encodeCallback(actMenu)))

	screens := []screen{
		renderHelp(),
		renderAck("ok"),
		renderPrompt("type something"),
		renderSettingsPrompt(5),
		renderConfirmClear(models.ClearHistory),
		renderMealList("title", []models.Meal{{ID: "1", Name: "A"}}),
	}
	for i, scr := range screens {
		assert.True(t, hasButton(scr.keyboard, encodeCallback(actMenu)), "screen %d", i)
	}
}

// Список из 45 рецептов по 20 на страницу: Next с первой страницы,
// Prev и Next со второй, с последней дальше некуда.
func TestBrowsePageNavigation(t *testing.T) {
	meals := make([]models.Meal, 45)
	for i := range meals {
		meals[i] = models.Meal{ID: fmt.Sprintf("%03d", i+1), Name: fmt.Sprintf("Meal %d", i+1)}
	}

	page0, total := pager.Paginate(meals, 0, 20)
	require.Equal(t, 3, total)
	scr := renderBrowsePage(browseArea, "Italian", page0, 0, total)
	assert.True(t, hasButton(scr.keyboard, encodeCallback(actArea, "Italian", "1")))
	assert.False(t, hasButton(scr.keyboard, encodeCallback(actArea, "Italian", "-1")))

	page1, _ := pager.Paginate(meals, 1, 20)
	scr = renderBrowsePage(browseArea, "Italian", page1, 1, total)
	assert.True(t, hasButton(scr.keyboard, encodeCallback(actArea, "Italian", "0")))
	assert.True(t, hasButton(scr.keyboard, encodeCallback(actArea, "Italian", "2")))
	// страница 1 начинается с 21-го рецепта
	assert.True(t, hasButton(scr.keyboard, encodeCallback(actMeal, "021")))

	page2, _ := pager.Paginate(meals, 2, 20)
	scr = renderBrowsePage(browseArea, "Italian", page2, 2, total)
	assert.True(t, hasButton(scr.keyboard, encodeCallback(actArea, "Italian", "1")))
	assert.False(t, hasButton(scr.keyboard, encodeCallback(actArea, "Italian", "3")))
}

// Короткий список навигации не несёт.
func TestBrowsePageSinglePageNoNav(t *testing.T) {
	meals := []models.Meal{{ID: "1", Name: "Only"}}
	scr := renderBrowsePage(browseCategory, "Dessert", meals, 0, 1)
	for _, d := range buttonData(scr.keyboard) {
		assert.NotContains(t, d, actCategory+":")
	}
}

// Непустые история и избранное несут кнопку очистки, пустые — нет.
func TestListClearButton(t *testing.T) {
	scr := renderHistoryList([]models.HistoryEntry{{MealID: "1", Name: "Pasta"}})
	assert.True(t, hasButton(scr.keyboard, encodeCallback(actClear, models.ClearHistory)))

	scr = renderFavoritesList([]models.Favorite{{MealID: "1", Name: "Pasta"}})
	assert.True(t, hasButton(scr.keyboard, encodeCallback(actClear, models.ClearFavorites)))

	assert.False(t, hasButton(renderHistoryList(nil).keyboard, encodeCallback(actClear, models.ClearHistory)))
	assert.False(t, hasButton(renderFavoritesList(nil).keyboard, encodeCallback(actClear, models.ClearFavorites)))
}

func TestDetailFavoriteLabel(t *testing.T) {
	l := locales.Get()
	d := &models.MealDetail{
		Meal:         models.Meal{ID: "52772", Name: "Teriyaki Chicken"},
		Category:     "Chicken",
		Area:         "Japanese",
		Instructions: "Cook it.",
		ThumbnailURL: "https://example.test/t.jpg",
		Ingredients:  []models.Ingredient{{Name: "soy sauce", Measure: "3/4 cup"}, {Name: "rice"}},
	}

	scr := renderDetail(d, false)
	assert.Equal(t, "https://example.test/t.jpg", scr.photoURL)
	assert.Contains(t, scr.text, "Teriyaki Chicken")
	assert.Contains(t, scr.text, "soy sauce — 3/4 cup")
	assert.True(t, hasButton(scr.keyboard, encodeCallback(actFav, "52772")))

	labelOf := func(s screen) string {
		for _, row := range s.keyboard.InlineKeyboard {
			for _, b := range row {
				if b.CallbackData != nil && *b.CallbackData == encodeCallback(actFav, "52772") {
					return b.Text
				}
			}
		}
		return ""
	}
	assert.Equal(t, l.Detail.AddFavorite, labelOf(renderDetail(d, false)))
	assert.Equal(t, l.Detail.RemoveFavorite, labelOf(renderDetail(d, true)))
}

// Чрезмерно длинная инструкция обрезается под лимит Telegram.
func TestDetailTruncatesLongInstructions(t *testing.T) {
	d := &models.MealDetail{
		Meal:         models.Meal{ID: "1", Name: "Long"},
		Instructions: strings.Repeat("шаг ", 3000),
	}
	scr := renderDetail(d, false)
	assert.LessOrEqual(t, len([]rune(scr.text)), maxTextLen+1)
	assert.True(t, strings.HasSuffix(scr.text, "…"))
}
