package main

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"

	"telegram-cargo-bot/internal/config"
	"telegram-cargo-bot/internal/handlers"
	"telegram-cargo-bot/internal/logger"
	"telegram-cargo-bot/internal/scheduler"
	"telegram-cargo-bot/internal/session"
	"telegram-cargo-bot/internal/storage"
)

func main() {
	_ = godotenv.Load() // TELEGRAM_BOT_TOKEN etc.

	cfg := config.Load()
	log := logger.New(cfg.LogLevel)

	if cfg.TelegramToken == "" {
		log.Fatal("telegram token is not set")
	}

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		log.WithError(err).Fatal("telegram api init failed")
	}

	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.WithError(err).Fatal("storage init failed")
	}
	defer db.Close()

	sessions := session.NewManager(session.DefaultTTL)

	sched, err := scheduler.Start(sessions, log)
	if err != nil {
		log.WithError(err).Fatal("scheduler start failed")
	}
	defer func() { _ = sched.Shutdown() }()

	h := handlers.New(bot, db, sessions, log, cfg)

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60

	updates := bot.GetUpdatesChan(updateConfig)

	log.Info("bot started")
	for upd := range updates {
		// updates for different users are independent, handle concurrently;
		// HandleUpdate recovers its own panics
		go h.HandleUpdate(upd)
	}
}
