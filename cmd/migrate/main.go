package main

import (
	"context"
	"os"

	"school-store/config"
	"school-store/internal/database"
	"school-store/internal/logger"
	"school-store/internal/migrate"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	isDev := os.Getenv("ENV") == "development"
	if err := logger.Init(isDev); err != nil {
		panic(err)
	}

	defer logger.Sync()

	log := logger.L()

	cfg := config.Load(log)

	db := database.ConnectDB(&cfg.DB.Config, log)
	defer database.CloseDB(db, log)

	ctx := context.Background()

	opts := migrate.DefaultMigrateOptions()

	if err := migrate.MigrateStoreDB(ctx, db, log, opts); err != nil {
		log.Fatal("Ошибка при выполнении миграции", zap.Error(err))
	}

	// Демо-сид включается явно, путь к файлу можно переопределить
	if os.Getenv("SEED_DEMO") == "true" {
		seedPath := os.Getenv("SEED_FILE")
		if seedPath == "" {
			seedPath = "db/seed.json"
		}
		if err := migrate.SeedProducts(ctx, db, log, seedPath); err != nil {
			log.Fatal("Ошибка при загрузке демо-товаров", zap.Error(err))
		}
	}

	log.Info("Миграция успешно завершена")
}
