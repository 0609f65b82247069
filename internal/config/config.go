package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	TelegramBotToken string
	MealDBAPIKey     string // "1" — публичный бесплатный ключ
	DatabasePath     string
	LogLevel         string
}

// Load читает конфигурацию из .env и переменных окружения.
// .env может отсутствовать — тогда берём только окружение.
func Load() (*Config, error) {
	_ = godotenv.Load()

	token := os.Getenv("TELEGRAM_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("не задан TELEGRAM_TOKEN")
	}

	return &Config{
		TelegramBotToken: token,
		MealDBAPIKey:     getEnv("MEALDB_API_KEY", "1"),
		DatabasePath:     getEnv("DATABASE_PATH", "recipebot.db"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
	}, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
