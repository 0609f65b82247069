// Package session хранит эфемерное состояние диалога per-user.
package session

import (
	"strconv"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/pinghoyk/recipebot/pkg/models"
)

// Сессии живут до рестарта процесса; TTL лишь ограничивает память —
// пользователь, молчавший сутки, и так должен оказаться в Idle.
const (
	sessionTTL      = 24 * time.Hour
	cleanupInterval = time.Hour
)

// Store — процессное хранилище сессий, ключ — id пользователя.
type Store struct {
	cache *gocache.Cache
}

func NewStore() *Store {
	return &Store{cache: gocache.New(sessionTTL, cleanupInterval)}
}

// Get возвращает сессию пользователя; если её нет — свежую в Idle.
func (s *Store) Get(userID int64) models.Session {
	if v, ok := s.cache.Get(key(userID)); ok {
		return v.(models.Session)
	}
	return models.Session{UserID: userID, Mode: models.ModeIdle}
}

// Put перезаписывает сессию целиком.
func (s *Store) Put(sess models.Session) {
	s.cache.Set(key(sess.UserID), sess, gocache.DefaultExpiration)
}

// Reset возвращает пользователя в Idle.
func (s *Store) Reset(userID int64) {
	s.Put(models.Session{UserID: userID, Mode: models.ModeIdle})
}

func key(userID int64) string {
	return strconv.FormatInt(userID, 10)
}
