package handlers

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"telegram-cargo-bot/internal/config"
	"telegram-cargo-bot/internal/locales"
	"telegram-cargo-bot/internal/models"
	"telegram-cargo-bot/internal/session"
	"telegram-cargo-bot/internal/storage"
)

// Sender is the slice of the bot API the handlers use. *tgbotapi.BotAPI
// satisfies it, tests plug in a fake.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type Handler struct {
	Bot      Sender
	DB       *storage.DB
	Sessions *session.Manager
	Log      *logrus.Logger
	Cfg      config.Config
}

func New(bot Sender, db *storage.DB, sessions *session.Manager, log *logrus.Logger, cfg config.Config) *Handler {
	return &Handler{Bot: bot, DB: db, Sessions: sessions, Log: log, Cfg: cfg}
}

// HandleUpdate routes one inbound update. Nothing that happens here may
// take down the poll loop, so panics are swallowed into the log.
func (h *Handler) HandleUpdate(upd tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			h.Log.WithField("panic", r).Error("update handler panicked")
		}
	}()

	switch {
	case upd.Message != nil:
		h.handleMessage(upd.Message)
	case upd.CallbackQuery != nil:
		h.handleCallback(upd.CallbackQuery)
	}
}

// gate runs the per-user request limiter in front of every handler.
func (h *Handler) gate(userID, chatID int64) bool {
	ok, err := h.DB.CheckRequestLimit(userID)
	if err != nil {
		h.Log.WithError(err).WithField("user_id", userID).Error("rate limit check failed")
		h.send(chatID, h.locale(userID).Get("error_generic"))
		return false
	}
	if !ok {
		h.send(chatID, h.locale(userID).Get("rate_limited"))
		return false
	}
	return true
}

func (h *Handler) locale(userID int64) locales.Locale {
	u, err := h.DB.GetUser(userID)
	if err != nil || u == nil {
		return locales.Load(models.LangRU)
	}
	return locales.Load(u.Lang)
}

func (h *Handler) send(chatID int64, text string) {
	h.sendCfg(tgbotapi.NewMessage(chatID, text))
}

func (h *Handler) sendCfg(c tgbotapi.Chattable) {
	if _, err := h.Bot.Send(c); err != nil {
		h.Log.WithError(err).Error("send failed")
	}
}

// fail logs a storage error and shows the generic notice; the process keeps
// serving other users.
func (h *Handler) fail(userID, chatID int64, err error, op string) {
	h.Log.WithError(err).WithFields(logrus.Fields{
		"user_id": userID,
		"op":      op,
	}).Error("storage operation failed")
	h.send(chatID, h.locale(userID).Get("error_generic"))
}
