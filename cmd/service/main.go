package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"school-store/config"
	"school-store/internal/database"
	"school-store/internal/handlers"
	"school-store/internal/logger"
	"school-store/internal/repository"
	"school-store/internal/router"
	"school-store/internal/service"
	"school-store/internal/session"

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

	sessions, err := session.NewStore(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Session.TTL, log)
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer sessions.Close()

	repos := repository.New(db)

	catalogSvc := service.NewCatalogService(repos)
	cartSvc := service.NewCartService(repos)
	orderSvc := service.NewOrderService(repos)
	adminAuth := service.NewAdminAuth(cfg.Admin.Username, cfg.Admin.PasswordHash)
	payment := service.NewPaymentRedirect(cfg.Payment.BaseURL)

	storeHandler := handlers.NewStoreHandler(catalogSvc, cartSvc, orderSvc, payment, sessions, log)
	adminHandler := handlers.NewAdminHandler(catalogSvc, orderSvc, adminAuth, sessions, log)

	r := router.Router(storeHandler, adminHandler, sessions, cfg.Session.TTL, log)

	srv := &http.Server{
		Addr:    cfg.Port,
		Handler: r,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info("Starting store HTTP server", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	<-quit
	log.Info("Shutting down store HTTP server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("HTTP server shutdown failed", zap.Error(err))
	}
	log.Info("Store HTTP server stopped gracefully")
}
