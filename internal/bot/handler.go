package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/pinghoyk/recipebot/internal/catalog"
	"github.com/pinghoyk/recipebot/pkg/locales"
	"github.com/pinghoyk/recipebot/pkg/models"
	"github.com/pinghoyk/recipebot/pkg/pager"
)

// handleMessage обрабатывает команды и свободный текст.
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil {
		return
	}
	chatID, userID, trigger := msg.Chat.ID, msg.From.ID, msg.MessageID

	if msg.IsCommand() {
		switch msg.Command() {
		case "start":
			b.showMenu(chatID, userID, trigger)
		case "help":
			b.showHelp(chatID, userID, trigger)
		case "random":
			b.doRandom(ctx, chatID, userID, trigger)
		case "name":
			b.askName(chatID, userID, trigger)
		case "find":
			b.askFind(chatID, userID, trigger)
		case "cuisines":
			b.showNameList(ctx, chatID, userID, trigger, browseArea, 0)
		case "categories":
			b.showNameList(ctx, chatID, userID, trigger, browseCategory, 0)
		case "history":
			b.showHistory(chatID, userID, trigger)
		case "favorites":
			b.showFavorites(chatID, userID, trigger)
		case "settings":
			b.askSettings(chatID, userID, trigger)
		case "clearhistory":
			b.askClear(chatID, userID, trigger, models.ClearHistory)
		case "clearfavorites":
			b.askClear(chatID, userID, trigger, models.ClearFavorites)
		default:
			b.screens.Show(chatID, trigger, renderAck(locales.Get().Errors.UseMenu))
		}
		return
	}

	text := strings.TrimSpace(msg.Text)
	if b.handleButtonLabel(ctx, chatID, userID, trigger, text) {
		return
	}

	// свободный текст трактуем по текущему режиму сессии
	sess := b.sessions.Get(userID)
	switch sess.Mode {
	case models.ModeAwaitingName:
		b.handleNameInput(ctx, chatID, userID, trigger, text)
	case models.ModeAwaitingIngredient:
		b.handleIngredientsInput(ctx, chatID, userID, trigger, text)
	case models.ModeAwaitingMaxResults:
		b.handleMaxResultsInput(chatID, userID, trigger, text)
	case models.ModeConfirmingClear:
		// текст вместо Да/Нет = отказ от очистки
		b.sessions.Reset(userID)
		b.screens.Show(chatID, trigger, renderAck(locales.Get().Clear.Kept))
	default:
		b.screens.Show(chatID, trigger, renderAck(locales.Get().Errors.UseMenu))
	}
}

// handleButtonLabel сопоставляет текст с подписями кнопок меню:
// их можно и набрать руками.
func (b *Bot) handleButtonLabel(ctx context.Context, chatID, userID int64, trigger int, text string) bool {
	bt := locales.Get().Buttons
	switch text {
	case bt.Ingredients:
		b.askFind(chatID, userID, trigger)
	case bt.Name:
		b.askName(chatID, userID, trigger)
	case bt.Area:
		b.showNameList(ctx, chatID, userID, trigger, browseArea, 0)
	case bt.Category:
		b.showNameList(ctx, chatID, userID, trigger, browseCategory, 0)
	case bt.Random:
		b.doRandom(ctx, chatID, userID, trigger)
	case bt.History:
		b.showHistory(chatID, userID, trigger)
	case bt.Favorites:
		b.showFavorites(chatID, userID, trigger)
	case bt.Settings:
		b.askSettings(chatID, userID, trigger)
	case bt.Help:
		b.showHelp(chatID, userID, trigger)
	case bt.Back:
		b.cancelInput(chatID, userID, trigger)
	default:
		return false
	}
	return true
}

// handleCallback обрабатывает нажатия на inline-кнопки
func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	// Отвечаем на callback чтобы убрать "часики"
	if _, err := b.tg.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		b.log.Debugw("Не удалось ответить на callback", "err", err)
	}
	if cb.Message == nil {
		return
	}
	chatID, userID := cb.Message.Chat.ID, cb.From.ID

	action, args, ok := decodeCallback(cb.Data)
	if !ok {
		b.log.Warnw("Битый callback payload", "data", cb.Data)
		return
	}

	switch action {
	case actMenu:
		b.showMenu(chatID, userID, 0)
	case actHelp:
		b.showHelp(chatID, userID, 0)
	case actRandom:
		b.doRandom(ctx, chatID, userID, 0)
	case actAskName:
		b.askName(chatID, userID, 0)
	case actAskFind:
		b.askFind(chatID, userID, 0)
	case actAskSettings:
		b.askSettings(chatID, userID, 0)
	case actBack:
		b.cancelInput(chatID, userID, 0)
	case actAreas:
		b.showNameList(ctx, chatID, userID, 0, browseArea, atoiPage(argAt(args, 0)))
	case actCategories:
		b.showNameList(ctx, chatID, userID, 0, browseCategory, atoiPage(argAt(args, 0)))
	case actArea:
		b.showBrowsePage(ctx, chatID, userID, 0, browseArea, argAt(args, 0), atoiPage(argAt(args, 1)))
	case actCategory:
		b.showBrowsePage(ctx, chatID, userID, 0, browseCategory, argAt(args, 0), atoiPage(argAt(args, 1)))
	case actMeal:
		b.openMeal(ctx, chatID, userID, 0, argAt(args, 0))
	case actFav:
		b.toggleFavorite(ctx, cb, argAt(args, 0))
	case actHistory:
		b.showHistory(chatID, userID, 0)
	case actFavorites:
		b.showFavorites(chatID, userID, 0)
	case actClear:
		b.askClear(chatID, userID, 0, argAt(args, 0))
	case actConfirm:
		b.handleConfirm(chatID, userID, argAt(args, 0))
	default:
		b.log.Warnw("Неизвестное действие callback", "action", action)
	}
}

// --- экраны без обращений к каталогу ---

// showMenu отображает главное меню и сбрасывает режим.
func (b *Bot) showMenu(chatID, userID int64, trigger int) {
	b.sessions.Reset(userID)
	b.screens.Show(chatID, trigger, renderMenu())
}

// showHelp отображает справку
func (b *Bot) showHelp(chatID, userID int64, trigger int) {
	b.sessions.Reset(userID)
	b.screens.Show(chatID, trigger, renderHelp())
}

// askName запрашивает название блюда.
func (b *Bot) askName(chatID, userID int64, trigger int) {
	b.sessions.Put(models.Session{UserID: userID, Mode: models.ModeAwaitingName})
	b.screens.Show(chatID, trigger, renderPrompt(locales.Get().Prompts.Name))
}

// askFind запрашивает список ингредиентов.
func (b *Bot) askFind(chatID, userID int64, trigger int) {
	b.sessions.Put(models.Session{UserID: userID, Mode: models.ModeAwaitingIngredient})
	b.screens.Show(chatID, trigger, renderPrompt(locales.Get().Prompts.Ingredients))
}

// askSettings показывает текущий лимит и ждёт новое число.
func (b *Bot) askSettings(chatID, userID int64, trigger int) {
	b.sessions.Put(models.Session{UserID: userID, Mode: models.ModeAwaitingMaxResults})
	b.screens.Show(chatID, trigger, renderSettingsPrompt(b.maxResults(userID)))
}

// cancelInput — "Назад" из режима ожидания ввода.
func (b *Bot) cancelInput(chatID, userID int64, trigger int) {
	b.sessions.Reset(userID)
	b.screens.Show(chatID, trigger, renderAck(locales.Get().Prompts.Cancelled))
}

// askClear показывает подтверждение очистки.
func (b *Bot) askClear(chatID, userID int64, trigger int, kind string) {
	if kind != models.ClearHistory && kind != models.ClearFavorites {
		return
	}
	b.sessions.Put(models.Session{UserID: userID, Mode: models.ModeConfirmingClear, ClearKind: kind})
	b.screens.Show(chatID, trigger, renderConfirmClear(kind))
}

// handleConfirm выполняет или отменяет подтверждённую очистку.
func (b *Bot) handleConfirm(chatID, userID int64, answer string) {
	l := locales.Get()

	sess := b.sessions.Get(userID)
	if sess.Mode != models.ModeConfirmingClear {
		// подтверждение с устаревшего экрана
		b.screens.Show(chatID, 0, renderAck(l.Errors.UseMenu))
		return
	}
	b.sessions.Reset(userID)

	if answer != "yes" {
		b.screens.Show(chatID, 0, renderAck(l.Clear.Kept))
		return
	}

	var err error
	text := l.Clear.HistoryDone
	if sess.ClearKind == models.ClearFavorites {
		err = b.db.ClearFavorites(userID)
		text = l.Clear.FavoritesDone
	} else {
		err = b.db.ClearHistory(userID)
	}
	if err != nil {
		b.log.Errorw("Не удалось выполнить очистку", "kind", sess.ClearKind, "err", err)
		text = l.Errors.Fallback
	}
	b.screens.Show(chatID, 0, renderAck(text))
}

// showHistory показывает последние просмотренные рецепты.
func (b *Bot) showHistory(chatID, userID int64, trigger int) {
	b.sessions.Reset(userID)
	entries, err := b.db.ListHistory(userID, b.maxResults(userID))
	if err != nil {
		b.log.Errorw("Не удалось прочитать историю", "err", err)
		b.screens.Show(chatID, trigger, renderAck(locales.Get().Errors.Fallback))
		return
	}
	b.screens.Show(chatID, trigger, renderHistoryList(entries))
}

// showFavorites показывает закладки.
func (b *Bot) showFavorites(chatID, userID int64, trigger int) {
	b.sessions.Reset(userID)
	favs, err := b.db.ListFavorites(userID, b.maxResults(userID))
	if err != nil {
		b.log.Errorw("Не удалось прочитать избранное", "err", err)
		b.screens.Show(chatID, trigger, renderAck(locales.Get().Errors.Fallback))
		return
	}
	b.screens.Show(chatID, trigger, renderFavoritesList(favs))
}

// --- ввод в режимах ожидания ---

// handleNameInput выполняет поиск по названию.
func (b *Bot) handleNameInput(ctx context.Context, chatID, userID int64, trigger int, text string) {
	b.sessions.Reset(userID)

	found, err := b.catalog.SearchByName(ctx, text)
	if err != nil {
		b.showCatalogError(chatID, trigger, err)
		return
	}
	if len(found) == 0 {
		b.screens.Show(chatID, trigger, renderAck(locales.Get().Results.Nothing))
		return
	}

	meals := make([]models.Meal, 0, len(found))
	for _, d := range found {
		meals = append(meals, d.Meal)
	}
	meals = capMeals(meals, b.maxResults(userID))
	title := fmt.Sprintf(locales.Get().Results.ByNameTitle, text)
	b.screens.Show(chatID, trigger, renderMealList(title, meals))
}

// handleIngredientsInput выполняет поиск пересечением по ингредиентам.
func (b *Bot) handleIngredientsInput(ctx context.Context, chatID, userID int64, trigger int, text string) {
	l := locales.Get()

	tokens := catalog.NormalizeTokens(text)
	if len(tokens) == 0 {
		// остаёмся в режиме ввода, показываем пример
		b.screens.Show(chatID, trigger, renderPrompt(l.Prompts.IngredientsExample))
		return
	}
	b.sessions.Reset(userID)

	meals, err := catalog.IntersectByIngredients(ctx, b.catalog, tokens)
	if err != nil {
		b.showCatalogError(chatID, trigger, err)
		return
	}
	if len(meals) == 0 {
		b.screens.Show(chatID, trigger, renderAck(l.Results.NoMatches))
		return
	}

	meals = capMeals(meals, b.maxResults(userID))
	title := fmt.Sprintf(l.Results.ByIngredientTitle, strings.Join(tokens, ", "))
	b.screens.Show(chatID, trigger, renderMealList(title, meals))
}

// handleMaxResultsInput проверяет и сохраняет лимит результатов.
// При некорректном вводе режим не меняется — ждём число дальше.
func (b *Bot) handleMaxResultsInput(chatID, userID int64, trigger int, text string) {
	l := locales.Get()

	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		b.screens.Show(chatID, trigger, renderPrompt(l.Settings.BadInt))
		return
	}
	if n < models.MinMaxResults || n > models.MaxMaxResults {
		b.screens.Show(chatID, trigger, renderPrompt(l.Settings.OutOfRange))
		return
	}

	b.sessions.Reset(userID)
	if err := b.db.SetMaxResults(userID, n); err != nil {
		b.log.Errorw("Не удалось сохранить настройки", "err", err)
		b.screens.Show(chatID, trigger, renderAck(l.Errors.Fallback))
		return
	}
	b.screens.Show(chatID, trigger, renderAck(fmt.Sprintf(l.Settings.Saved, n)))
}

// --- операции с каталогом ---

// doRandom показывает случайный рецепт.
func (b *Bot) doRandom(ctx context.Context, chatID, userID int64, trigger int) {
	b.sessions.Reset(userID)

	d, err := b.catalog.Random(ctx)
	if err != nil {
		b.showCatalogError(chatID, trigger, err)
		return
	}
	if d == nil {
		b.screens.Show(chatID, trigger, renderAck(locales.Get().Results.Nothing))
		return
	}
	b.showDetail(chatID, userID, trigger, d)
}

// openMeal открывает карточку рецепта из любого списка.
func (b *Bot) openMeal(ctx context.Context, chatID, userID int64, trigger int, id string) {
	if id == "" {
		return
	}
	b.sessions.Reset(userID)

	d, err := b.catalog.LookupByID(ctx, id)
	if err != nil {
		b.showCatalogError(chatID, trigger, err)
		return
	}
	if d == nil {
		b.screens.Show(chatID, trigger, renderAck(locales.Get().Results.Nothing))
		return
	}
	b.showDetail(chatID, userID, trigger, d)
}

// showDetail рисует карточку и пишет просмотр в историю.
func (b *Bot) showDetail(chatID, userID int64, trigger int, d *models.MealDetail) {
	if err := b.db.AddHistory(userID, d.ID, d.Name); err != nil {
		b.log.Errorw("Не удалось записать историю", "err", err)
	}
	isFav, err := b.db.IsFavorite(userID, d.ID)
	if err != nil {
		b.log.Errorw("Не удалось проверить избранное", "err", err)
	}
	b.screens.Show(chatID, trigger, renderDetail(d, isFav))
}

// showNameList показывает страницу списка кухонь или категорий.
// Источник перечитывается на каждую страницу — список не кешируется.
func (b *Bot) showNameList(ctx context.Context, chatID, userID int64, trigger int, kind string, page int) {
	b.sessions.Reset(userID)

	var (
		names []string
		err   error
	)
	if kind == browseArea {
		names, err = b.catalog.ListAreas(ctx)
	} else {
		names, err = b.catalog.ListCategories(ctx)
	}
	if err != nil {
		b.showCatalogError(chatID, trigger, err)
		return
	}

	pageNames, totalPages := pager.Paginate(names, page, pager.PageSize)
	b.screens.Show(chatID, trigger, renderNameList(kind, pageNames, pager.Clamp(page, totalPages), totalPages))
}

// showBrowsePage показывает страницу рецептов кухни/категории.
func (b *Bot) showBrowsePage(ctx context.Context, chatID, userID int64, trigger int, kind, key string, page int) {
	if key == "" {
		return
	}
	b.sessions.Reset(userID)

	var (
		meals []models.Meal
		err   error
	)
	if kind == browseArea {
		meals, err = b.catalog.FilterByArea(ctx, key)
	} else {
		meals, err = b.catalog.FilterByCategory(ctx, key)
	}
	if err != nil {
		b.showCatalogError(chatID, trigger, err)
		return
	}
	if len(meals) == 0 {
		b.screens.Show(chatID, trigger, renderAck(locales.Get().Results.Nothing))
		return
	}

	pageMeals, totalPages := pager.Paginate(meals, page, pager.PageSize)
	b.screens.Show(chatID, trigger, renderBrowsePage(kind, key, pageMeals, pager.Clamp(page, totalPages), totalPages))
}

// toggleFavorite переключает закладку и перерисовывает только
// клавиатуру текущей карточки.
func (b *Bot) toggleFavorite(ctx context.Context, cb *tgbotapi.CallbackQuery, mealID string) {
	if mealID == "" {
		return
	}
	chatID, userID := cb.Message.Chat.ID, cb.From.ID

	isFav, err := b.db.IsFavorite(userID, mealID)
	if err != nil {
		b.log.Errorw("Не удалось проверить избранное", "err", err)
		return
	}

	if isFav {
		err = b.db.RemoveFavorite(userID, mealID)
	} else {
		// название берём из свежей карточки
		var d *models.MealDetail
		d, err = b.catalog.LookupByID(ctx, mealID)
		if err == nil && d == nil {
			// рецепт исчез из каталога — ничего не добавили,
			// клавиатуру не трогаем
			b.log.Warnw("Рецепт не найден при добавлении в избранное", "meal_id", mealID)
			return
		}
		if err == nil {
			err = b.db.AddFavorite(userID, d.ID, d.Name)
		}
	}
	if err != nil {
		b.log.Warnw("Не удалось переключить избранное", "meal_id", mealID, "err", err)
		return
	}

	b.screens.EditKeyboard(chatID, cb.Message.MessageID, *keyboard(favoriteRow(mealID, !isFav)))
}

// --- вспомогательное ---

// maxResults читает лимит пользователя; при ошибке чтения — дефолт.
func (b *Bot) maxResults(userID int64) int {
	n, err := b.db.GetMaxResults(userID)
	if err != nil {
		b.log.Errorw("Не удалось прочитать настройки", "err", err)
		return models.DefaultMaxResults
	}
	return n
}

// showCatalogError превращает сбой каталога в общий "попробуйте позже",
// подробности остаются в логе.
func (b *Bot) showCatalogError(chatID int64, trigger int, err error) {
	l := locales.Get()

	var cerr *catalog.Error
	if errors.As(err, &cerr) {
		b.log.Warnw("Сбой каталога", "op", cerr.Op, "kind", cerr.Kind, "err", err)
		b.screens.Show(chatID, trigger, renderAck(l.Errors.Catalog))
		return
	}
	b.log.Errorw("Неожиданная ошибка", "err", err)
	b.screens.Show(chatID, trigger, renderAck(l.Errors.Fallback))
}

func capMeals(meals []models.Meal, limit int) []models.Meal {
	if len(meals) > limit {
		return meals[:limit]
	}
	return meals
}

func argAt(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

func atoiPage(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
