package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"orderdesk/internal/config"
	directoryrepo "orderdesk/internal/directory/repository"
	"orderdesk/internal/infrastructure/logger"
	"orderdesk/internal/infrastructure/mysql"
	"orderdesk/internal/message"
	"orderdesk/internal/notifier"
	"orderdesk/internal/order"
	"orderdesk/internal/reporting"
	"orderdesk/internal/server"
)

func main() {
	// Missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	loc, err := cfg.Location()
	if err != nil {
		zapLogger.Fatal("resolving timezone", zap.Error(err))
	}

	db, err := mysql.NewConnection(cfg.Database)
	if err != nil {
		zapLogger.Fatal("connecting to database", zap.Error(err))
	}
	defer db.Close()
	zapLogger.Info("database connected")

	sender := notifier.NewSMTPNotifier(cfg.SMTP, zapLogger)
	dir := directoryrepo.NewMySQLDirectoryRepository(db)

	orderCtrl := order.NewModule(db, cfg, loc, sender, zapLogger)
	messageCtrl := message.NewModule(db, zapLogger)
	reportingCtrl := reporting.NewModule(db, cfg, loc, zapLogger)

	router := server.NewRouter(orderCtrl, messageCtrl, reportingCtrl, dir, zapLogger)

	srv := server.New(cfg.Server, router, zapLogger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	zapLogger.Info("received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("server shutdown failed", zap.Error(err))
	}

	zapLogger.Info("server stopped gracefully")
}
