package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresToken(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "123:abc")
	t.Setenv("MEALDB_API_KEY", "")
	t.Setenv("DATABASE_PATH", "")
	t.Setenv("LOG_LEVEL", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "123:abc", cfg.TelegramBotToken)
	assert.Equal(t, "1", cfg.MealDBAPIKey)
	assert.Equal(t, "recipebot.db", cfg.DatabasePath)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "123:abc")
	t.Setenv("MEALDB_API_KEY", "9973533")
	t.Setenv("DATABASE_PATH", "/tmp/bot.db")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9973533", cfg.MealDBAPIKey)
	assert.Equal(t, "/tmp/bot.db", cfg.DatabasePath)
}
