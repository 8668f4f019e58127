package main

import (
	"context"
	"embed"

	"mclink/internal/application"
	"mclink/internal/delivery/discord"
	"mclink/internal/delivery/httpapi"
	"mclink/internal/repository"
	"mclink/pkg/config"
	"mclink/pkg/logger"
	service "mclink/pkg/services"
	"mclink/pkg/sheets"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

func main() {
	_ = godotenv.Load()

	cfg := config.Config{}
	if err := config.ReadEnvConfig(&cfg); err != nil {
		panic(err)
	}

	log := logger.NewLogger(&logger.Config{Level: cfg.LogLevel})

	db, err := repository.NewPostgresDB(&cfg.Repo)
	if err != nil {
		log.Error("failed to init db: %s", err.Error())
		return
	}
	defer db.Close()

	log.Info("Running migrations...")
	if err := repository.RunMigrations(db, migrationFS); err != nil {
		log.Error("failed to run migrations: %s", err.Error())
		return
	}
	log.Info("Migrations applied successfully")

	repos := repository.NewRepository(db, log)

	var sheetsClient *sheets.Client
	if cfg.GoogleCredentialsPath != "" {
		sheetsClient, err = sheets.NewClient(cfg.GoogleCredentialsPath)
		if err != nil {
			log.Error("failed to init sheets client: %s", err.Error())
			return
		}
	}

	services := application.NewService(repos, sheetsClient, application.Options{
		MaxAccountsPerDiscord: cfg.MaxAccountsPerDiscord,
		CodeLength:            cfg.CodeLength,
		VerificationEnabled:   cfg.VerificationEnabled,
		MinAccountAgeDays:     cfg.MinAccountAgeDays,
		MinServerJoinMinutes:  cfg.MinServerJoinMinutes,
		SheetsOwnerEmail:      cfg.GoogleOwnerEmail,
	}, log)

	bot := discord.NewBot(&cfg, services, log)
	api := httpapi.NewServer(&cfg, services, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := service.NewManager(log)
	manager.AddService(bot, api)

	if err := manager.Run(ctx); err != nil {
		log.Error("failed to run services: %s", err.Error())
		return
	}

	log.Info("Stopped")
}
