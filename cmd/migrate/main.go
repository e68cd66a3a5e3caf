package main

import (
	"context"
	"flag"
	"time"

	"github.com/sirupsen/logrus"

	"salary-admin/internal/app"
	"salary-admin/internal/config"
	"salary-admin/internal/database"
	"salary-admin/pkg/dates"
)

func main() {
	seed := flag.Bool("seed", false, "create sample employees when the database is empty")
	refDate := flag.String("date", "", "reference date for attendance recompute (YYYY-MM-DD), default today")
	flag.Parse()

	cfg := config.GetConfig()
	logrus.SetLevel(cfg.LogLevel)

	db, err := database.Open(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}
	defer database.Close(db)

	// Конструкторы репозиториев выполняют AutoMigrate
	services, err := app.NewServices(db, nil)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to migrate schema")
	}
	logrus.Info("Schema migrated")

	ctx := context.Background()

	if *seed || cfg.SeedSampleData {
		created, err := services.Employees.SeedSampleData(ctx)
		if err != nil {
			logrus.WithError(err).Fatal("Failed to seed sample data")
		}
		logrus.WithField("created", created).Info("Sample data seeded")
	}

	if err := services.Employees.InitializeAdmin(ctx, cfg.BaseAdminChatID); err != nil {
		logrus.Warnf("Failed to initialize admin: %v", err)
	}

	var referenceDate time.Time
	if *refDate != "" {
		referenceDate, err = dates.Parse(*refDate, time.Now())
		if err != nil {
			logrus.WithError(err).Fatal("Invalid reference date")
		}
	}

	updated, err := services.Attendance.RecomputeAll(ctx, referenceDate)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to recompute attendance")
	}

	logrus.WithField("updated", updated).Info("Attendance recomputed")
}
