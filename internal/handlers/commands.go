package handlers

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (h *Handler) handleCommand(msg *tgbotapi.Message) {
	userID := msg.From.ID
	chatID := msg.Chat.ID

	switch msg.Command() {
	case "start":
		h.handleStart(userID, chatID)
	case "history":
		h.handleHistory(userID, chatID)
	case "stats":
		h.handleStats(userID, chatID)
	case "report":
		h.handleReport(userID, chatID)
	}
}

// handleStart registers the user on first contact. Repeat /start keeps the
// existing profile untouched.
func (h *Handler) handleStart(userID, chatID int64) {
	if err := h.DB.CreateUser(userID); err != nil {
		h.fail(userID, chatID, err, "CreateUser")
		return
	}

	loc := h.locale(userID)
	reply := tgbotapi.NewMessage(chatID, loc.Get("welcome")+"\n\n"+loc.Get("help"))
	reply.ReplyMarkup = mainKeyboard(loc)
	h.sendCfg(reply)
}

func (h *Handler) handleHistory(userID, chatID int64) {
	loc := h.locale(userID)

	txs, err := h.DB.GetTransactions(userID)
	if err != nil {
		h.fail(userID, chatID, err, "GetTransactions")
		return
	}
	if len(txs) == 0 {
		h.send(chatID, loc.Get("history_empty"))
		return
	}

	var b strings.Builder
	for _, t := range txs {
		fmt.Fprintf(&b, "%s — %s (%s)\n",
			t.Bank, t.Amount.String(), t.CreatedAt.Format("02.01.2006 15:04"))
	}
	h.send(chatID, b.String())
}
