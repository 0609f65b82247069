package bot

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/pinghoyk/recipebot/internal/catalog"
	"github.com/pinghoyk/recipebot/internal/database"
	"github.com/pinghoyk/recipebot/internal/session"
	"github.com/pinghoyk/recipebot/pkg/locales"
	"github.com/pinghoyk/recipebot/pkg/models"
)

// queueCap — буфер очереди апдейтов одного чата.
const queueCap = 16

// catalogAPI — операции каталога, которыми пользуется бот.
type catalogAPI interface {
	Random(ctx context.Context) (*models.MealDetail, error)
	SearchByName(ctx context.Context, q string) ([]models.MealDetail, error)
	LookupByID(ctx context.Context, id string) (*models.MealDetail, error)
	FilterByIngredient(ctx context.Context, token string) ([]models.Meal, error)
	ListAreas(ctx context.Context) ([]string, error)
	ListCategories(ctx context.Context) ([]string, error)
	FilterByArea(ctx context.Context, area string) ([]models.Meal, error)
	FilterByCategory(ctx context.Context, category string) ([]models.Meal, error)
}

// Bot представляет Telegram бота
type Bot struct {
	api      *tgbotapi.BotAPI // только для long-polling
	tg       sender
	db       *database.DB
	catalog  catalogAPI
	sessions *session.Store
	screens  *screenManager
	log      *zap.SugaredLogger

	mu     sync.Mutex
	queues map[int64]chan tgbotapi.Update
}

// New создает нового бота
func New(token string, db *database.DB, cat *catalog.Client, log *zap.SugaredLogger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания бота: %w", err)
	}

	log.Infow("Авторизован", "username", api.Self.UserName)

	b := newBot(api, db, cat, log)
	b.api = api
	return b, nil
}

// newBot собирает бота вокруг готового транспорта (для тестов в том числе).
func newBot(tg sender, db *database.DB, cat catalogAPI, log *zap.SugaredLogger) *Bot {
	return &Bot{
		tg:       tg,
		db:       db,
		catalog:  cat,
		sessions: session.NewStore(),
		screens:  newScreenManager(tg, log),
		log:      log,
		queues:   make(map[int64]chan tgbotapi.Update),
	}
}

// Start запускает обработку обновлений
func (b *Bot) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return nil
		case update := <-updates:
			b.dispatch(ctx, update)
		}
	}
}

// dispatch направляет апдейт в очередь его чата: апдейты одного чата
// обрабатываются строго по одному (Session и текущий экран внутри не
// синхронизированы — очередь и есть их синхронизация), разные чаты
// идут параллельно.
func (b *Bot) dispatch(ctx context.Context, update tgbotapi.Update) {
	chatID := updateChatID(update)
	if chatID == 0 {
		return
	}

	b.mu.Lock()
	q, ok := b.queues[chatID]
	if !ok {
		q = make(chan tgbotapi.Update, queueCap)
		b.queues[chatID] = q
		go b.runWorker(ctx, q)
	}
	b.mu.Unlock()

	select {
	case q <- update:
	default:
		// не даём одному чату заблокировать приём остальных
		b.log.Warnw("Очередь чата переполнена, апдейт отброшен", "chat_id", chatID)
	}
}

func (b *Bot) runWorker(ctx context.Context, q chan tgbotapi.Update) {
	for {
		select {
		case <-ctx.Done():
			return
		case update := <-q:
			b.handleUpdate(ctx, update)
		}
	}
}

// handleUpdate — одна единица работы. Паника внутри обработчика
// логируется и превращается в общий fallback-экран, процесс живёт дальше.
func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Errorw("Паника при обработке апдейта", "panic", r, "stack", string(debug.Stack()))
			if chatID := updateChatID(update); chatID != 0 {
				b.screens.Show(chatID, 0, renderAck(locales.Get().Errors.Fallback))
			}
		}
	}()

	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil:
		b.handleMessage(ctx, update.Message)
	}
}

func updateChatID(update tgbotapi.Update) int64 {
	if update.Message != nil {
		return update.Message.Chat.ID
	}
	if update.CallbackQuery != nil && update.CallbackQuery.Message != nil {
		return update.CallbackQuery.Message.Chat.ID
	}
	return 0
}
