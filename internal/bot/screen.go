package bot

import (
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// trackedCap — сколько id сообщений помним на чат.
const trackedCap = 30

// sender — часть tgbotapi.BotAPI, нужная для отправки и удаления.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// screenManager следит, чтобы в чате был виден ровно один "текущий"
// экран бота: новый экран отправляется, прежние сообщения и триггер
// пользователя удаляются. Все удаления — best-effort.
type screenManager struct {
	tg  sender
	log *zap.SugaredLogger

	mu      sync.Mutex
	tracked map[int64][]int // chatID -> id текущих сообщений
}

func newScreenManager(tg sender, log *zap.SugaredLogger) *screenManager {
	return &screenManager{
		tg:      tg,
		log:     log,
		tracked: make(map[int64][]int),
	}
}

// Show отправляет экран и прибирает чат: удаляет прежний экран и
// сообщение-триггер (triggerMsgID = 0, если триггера-сообщения нет).
// Карточка с фото — это два сообщения, оба считаются текущим экраном.
func (m *screenManager) Show(chatID int64, triggerMsgID int, scr screen) {
	var sent []int

	if scr.photoURL != "" {
		photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(scr.photoURL))
		if msg, err := m.tg.Send(photo); err == nil {
			sent = append(sent, msg.MessageID)
		} else {
			// без картинки экран всё равно показываем
			m.log.Warnw("Не удалось отправить фото", "chat_id", chatID, "err", err)
		}
	}

	text := tgbotapi.NewMessage(chatID, scr.text)
	text.ParseMode = tgbotapi.ModeMarkdown
	if scr.keyboard != nil {
		text.ReplyMarkup = scr.keyboard
	}
	msg, err := m.tg.Send(text)
	if err != nil {
		m.log.Errorw("Не удалось отправить сообщение", "chat_id", chatID, "err", err)
	} else {
		sent = append(sent, msg.MessageID)
	}

	m.mu.Lock()
	old := m.tracked[chatID]
	if len(sent) > trackedCap {
		sent = sent[len(sent)-trackedCap:]
	}
	m.tracked[chatID] = sent
	m.mu.Unlock()

	keep := make(map[int]bool, len(sent))
	for _, id := range sent {
		keep[id] = true
	}
	for _, id := range old {
		if !keep[id] {
			m.tryDelete(chatID, id)
		}
	}
	if triggerMsgID != 0 {
		m.tryDelete(chatID, triggerMsgID)
	}
}

// CurrentIDs возвращает id сообщений текущего экрана.
func (m *screenManager) CurrentIDs(chatID int64) []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]int(nil), m.tracked[chatID]...)
}

// EditKeyboard заменяет только клавиатуру у сообщения текущего экрана.
func (m *screenManager) EditKeyboard(chatID int64, msgID int, kb tgbotapi.InlineKeyboardMarkup) {
	edit := tgbotapi.NewEditMessageReplyMarkup(chatID, msgID, kb)
	if _, err := m.tg.Request(edit); err != nil {
		m.log.Warnw("Не удалось обновить клавиатуру", "chat_id", chatID, "msg_id", msgID, "err", err)
	}
}

// tryDelete удаляет сообщение, глотая любые отказы: сообщение могло
// исчезнуть само, либо у бота нет прав — пользователю это не мешает.
func (m *screenManager) tryDelete(chatID int64, msgID int) bool {
	del := tgbotapi.NewDeleteMessage(chatID, msgID)
	if _, err := m.tg.Request(del); err != nil {
		m.log.Debugw("Не удалось удалить сообщение", "chat_id", chatID, "msg_id", msgID, "err", err)
		return false
	}
	return true
}
