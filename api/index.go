package api

import (
	"net/http"
	"sync"

	"github.com/sirupsen/logrus"

	"salary-admin/internal/app"
	"salary-admin/internal/config"
	"salary-admin/internal/database"
	apphttp "salary-admin/internal/handler/http"
	"salary-admin/internal/handler/http/response"
	"salary-admin/internal/service"
	"salary-admin/pkg/telegram"
)

var (
	router  http.Handler
	initErr error
	once    sync.Once
)

func setup() {
	cfg := config.GetConfig()
	logrus.SetLevel(cfg.LogLevel)

	db, err := database.Open(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		initErr = err
		return
	}

	// В serverless бот не слушает обновления, только отправляет уведомления
	var notifier service.Notifier
	if cfg.BotEnabled() {
		client, err := telegram.NewClient(cfg.TelegramToken, false)
		if err != nil {
			logrus.WithError(err).Warn("Telegram client unavailable, notifications go to log")
		} else {
			notifier = service.NewTelegramNotifier(client)
		}
	}

	services, err := app.NewServices(db, notifier)
	if err != nil {
		initErr = err
		return
	}

	router = apphttp.NewRouter(services, apphttp.RouterConfig{AllowedOrigins: cfg.CORSAllowedOrigins})
}

// Handler - точка входа serverless-платформы
func Handler(w http.ResponseWriter, r *http.Request) {
	once.Do(setup)

	if initErr != nil {
		logrus.WithError(initErr).Error("Failed to initialize application")
		response.InternalServerError(w, "Service initialization failed")
		return
	}

	router.ServeHTTP(w, r)
}
