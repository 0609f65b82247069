package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/pinghoyk/recipebot/pkg/models"
)

// historyLimit — сколько записей истории держим на пользователя.
const historyLimit = 200

// --- настройки ---

// GetMaxResults возвращает лимит результатов пользователя.
// Значение зажимается в [1, 10] на каждом чтении — даже если в базу
// записали мусор в обход бота. Нет строки — дефолт без записи.
func (db *DB) GetMaxResults(userID int64) (int, error) {
	var n int
	err := db.conn.QueryRow(
		`SELECT max_results FROM settings WHERE user_id = ?`, userID,
	).Scan(&n)
	if errors.Is(err, sql.ErrNoRows) {
		return models.DefaultMaxResults, nil
	}
	if err != nil {
		return 0, fmt.Errorf("чтение настроек: %w", err)
	}
	return models.ClampMaxResults(n), nil
}

// SetMaxResults сохраняет лимит результатов (последняя запись побеждает).
func (db *DB) SetMaxResults(userID int64, n int) error {
	_, err := db.conn.Exec(
		`INSERT INTO settings (user_id, max_results) VALUES (?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET max_results = excluded.max_results`,
		userID, models.ClampMaxResults(n),
	)
	if err != nil {
		return fmt.Errorf("запись настроек: %w", err)
	}
	return nil
}

// --- избранное ---

// IsFavorite проверяет, есть ли рецепт в избранном пользователя.
func (db *DB) IsFavorite(userID int64, mealID string) (bool, error) {
	var one int
	err := db.conn.QueryRow(
		`SELECT 1 FROM favorites WHERE user_id = ? AND meal_id = ?`,
		userID, mealID,
	).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("проверка избранного: %w", err)
	}
	return true, nil
}

// AddFavorite добавляет рецепт в избранное. Повторное добавление
// перезаписывает существующую строку — дублей (user, meal) не бывает.
func (db *DB) AddFavorite(userID int64, mealID, mealName string) error {
	_, err := db.conn.Exec(
		`INSERT INTO favorites (user_id, meal_id, meal_name, saved_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(user_id, meal_id) DO UPDATE SET meal_name = excluded.meal_name, saved_at = excluded.saved_at`,
		userID, mealID, mealName, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("добавление в избранное: %w", err)
	}
	return nil
}

// RemoveFavorite убирает рецепт из избранного.
func (db *DB) RemoveFavorite(userID int64, mealID string) error {
	_, err := db.conn.Exec(
		`DELETE FROM favorites WHERE user_id = ? AND meal_id = ?`,
		userID, mealID,
	)
	if err != nil {
		return fmt.Errorf("удаление из избранного: %w", err)
	}
	return nil
}

// ListFavorites возвращает до limit закладок, свежие первыми.
func (db *DB) ListFavorites(userID int64, limit int) ([]models.Favorite, error) {
	rows, err := db.conn.Query(
		`SELECT meal_id, meal_name, saved_at FROM favorites
		 WHERE user_id = ? ORDER BY saved_at DESC LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("список избранного: %w", err)
	}
	defer rows.Close()

	var out []models.Favorite
	for rows.Next() {
		f := models.Favorite{UserID: userID}
		if err := rows.Scan(&f.MealID, &f.Name, &f.SavedAt); err != nil {
			return nil, fmt.Errorf("чтение строки избранного: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// ClearFavorites удаляет все закладки пользователя.
func (db *DB) ClearFavorites(userID int64) error {
	_, err := db.conn.Exec(`DELETE FROM favorites WHERE user_id = ?`, userID)
	if err != nil {
		return fmt.Errorf("очистка избранного: %w", err)
	}
	return nil
}

// --- история просмотров ---

// AddHistory пишет просмотр и подрезает историю до historyLimit
// последних записей.
func (db *DB) AddHistory(userID int64, mealID, mealName string) error {
	_, err := db.conn.Exec(
		`INSERT INTO history (user_id, meal_id, meal_name, viewed_at) VALUES (?, ?, ?, ?)`,
		userID, mealID, mealName, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("запись истории: %w", err)
	}

	_, err = db.conn.Exec(
		`DELETE FROM history WHERE user_id = ? AND id NOT IN (
		   SELECT id FROM history WHERE user_id = ? ORDER BY id DESC LIMIT ?
		 )`,
		userID, userID, historyLimit,
	)
	if err != nil {
		return fmt.Errorf("подрезка истории: %w", err)
	}
	return nil
}

// ListHistory возвращает до limit просмотров, свежие первыми.
func (db *DB) ListHistory(userID int64, limit int) ([]models.HistoryEntry, error) {
	rows, err := db.conn.Query(
		`SELECT meal_id, meal_name, viewed_at FROM history
		 WHERE user_id = ? ORDER BY id DESC LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("список истории: %w", err)
	}
	defer rows.Close()

	var out []models.HistoryEntry
	for rows.Next() {
		h := models.HistoryEntry{UserID: userID}
		if err := rows.Scan(&h.MealID, &h.Name, &h.ViewedAt); err != nil {
			return nil, fmt.Errorf("чтение строки истории: %w", err)
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// HistoryCount возвращает размер истории пользователя.
func (db *DB) HistoryCount(userID int64) (int, error) {
	var n int
	err := db.conn.QueryRow(
		`SELECT COUNT(*) FROM history WHERE user_id = ?`, userID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("подсчёт истории: %w", err)
	}
	return n, nil
}

// ClearHistory удаляет всю историю пользователя.
func (db *DB) ClearHistory(userID int64) error {
	_, err := db.conn.Exec(`DELETE FROM history WHERE user_id = ?`, userID)
	if err != nil {
		return fmt.Errorf("очистка истории: %w", err)
	}
	return nil
}
