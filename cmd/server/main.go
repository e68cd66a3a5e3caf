package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"salary-admin/internal/app"
	"salary-admin/internal/config"
	"salary-admin/internal/database"
	"salary-admin/internal/handler/bot"
	apphttp "salary-admin/internal/handler/http"
	"salary-admin/internal/service"
	"salary-admin/pkg/telegram"
)

func main() {
	logrus.Info("Initializing config...")
	cfg := config.GetConfig()
	logrus.SetLevel(cfg.LogLevel)
	logrus.Info("Config initialized...")

	db, err := database.Open(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}

	// Без токена бот не запускается, уведомления пишутся в лог
	var client *telegram.Client
	var notifier service.Notifier
	if cfg.BotEnabled() {
		client, err = telegram.NewClient(cfg.TelegramToken, cfg.LogLevel == logrus.DebugLevel)
		if err != nil {
			logrus.WithError(err).Fatal("Failed to create Telegram client")
		}
		logrus.Infof("Authorized on account %s", client.Bot.Self.UserName)
		notifier = service.NewTelegramNotifier(client)
	}

	services, err := app.NewServices(db, notifier)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize services")
	}

	if err := services.Employees.InitializeAdmin(context.Background(), cfg.BaseAdminChatID); err != nil {
		logrus.Warnf("Failed to initialize admin: %v", err)
	}

	if client != nil {
		botHandler := bot.NewHandler(client, services)
		go botHandler.HandleUpdates(client.Updates())
		logrus.Info("Bot started")
	}

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      apphttp.NewRouter(services, apphttp.RouterConfig{AllowedOrigins: cfg.CORSAllowedOrigins}),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logrus.Infof("HTTP server listening on %s", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("HTTP server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logrus.Info("Shutting down...")

	if client != nil {
		client.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("Server forced to shutdown")
	}

	if err := database.Close(db); err != nil {
		logrus.Infof("Error closing database: %v", err)
	}

	logrus.Info("Server stopped gracefully")
}
