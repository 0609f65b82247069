package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/pinghoyk/recipebot/internal/bot"
	"github.com/pinghoyk/recipebot/internal/catalog"
	"github.com/pinghoyk/recipebot/internal/config"
	"github.com/pinghoyk/recipebot/internal/database"
	"github.com/pinghoyk/recipebot/internal/logger"
)

func main() {
	// Загрузка конфигурации из переменных окружения
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Не удалось загрузить конфигурацию: %v", err)
	}

	zlog, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Не удалось создать логгер: %v", err)
	}
	defer zlog.Sync()

	// Создание базы данных
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		zlog.Fatalw("Не удалось создать базу данных", "err", err)
	}
	defer db.Close() // Закрыть соединение с БД при завершении

	catalogClient := catalog.NewClient(cfg.MealDBAPIKey)

	b, err := bot.New(cfg.TelegramBotToken, db, catalogClient, zlog)
	if err != nil {
		zlog.Fatalw("Не удалось создать бота", "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	zlog.Infow("Бот запущен")
	if err := b.Start(ctx); err != nil {
		zlog.Fatalw("Бот остановился с ошибкой", "err", err)
	}
	zlog.Infow("Бот остановлен")
}
