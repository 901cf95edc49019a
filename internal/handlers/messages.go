package handlers

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"telegram-cargo-bot/internal/banks"
	"telegram-cargo-bot/internal/locales"
	"telegram-cargo-bot/internal/session"
	"telegram-cargo-bot/internal/validate"
)

// receiptAttempts bounds re-prompting when the user keeps sending something
// that is not a photo.
const receiptAttempts = 3

func (h *Handler) handleMessage(msg *tgbotapi.Message) {
	userID := msg.From.ID
	chatID := msg.Chat.ID

	if !h.gate(userID, chatID) {
		return
	}

	if msg.IsCommand() {
		h.handleCommand(msg)
		return
	}
	h.handleText(msg)
}

// handleText interprets free text through the user's conversation state.
// Validator failures re-prompt and keep the waiting state.
func (h *Handler) handleText(msg *tgbotapi.Message) {
	userID := msg.From.ID
	chatID := msg.Chat.ID
	loc := h.locale(userID)
	s := h.Sessions.Get(userID)

	switch s.Step {
	case session.StepAwaitName:
		name := strings.TrimSpace(msg.Text)
		if err := validate.Name(name); err != nil {
			h.send(chatID, loc.Get("name_invalid"))
			return
		}
		s.Step = session.StepConfirmName
		s.Pending = name
		h.Sessions.Set(userID, s)
		h.sendConfirm(chatID, fmt.Sprintf(loc.Get("confirm_value"), name), loc)

	case session.StepAwaitAddress:
		address := strings.TrimSpace(msg.Text)
		if err := validate.Address(address); err != nil {
			h.send(chatID, loc.Get("address_invalid"))
			return
		}
		s.Step = session.StepConfirmAddress
		s.Pending = address
		h.Sessions.Set(userID, s)
		h.sendConfirm(chatID, fmt.Sprintf(loc.Get("confirm_value"), address), loc)

	case session.StepAwaitTracking:
		item := strings.TrimSpace(msg.Text)
		if err := validate.TrackingItem(item); err != nil {
			h.send(chatID, loc.Get("tracking_item_invalid"))
			return
		}
		if err := h.DB.AddTrackingItem(userID, item); err != nil {
			h.fail(userID, chatID, err, "AddTrackingItem")
			return
		}
		h.Sessions.Reset(userID)
		h.send(chatID, loc.Get("tracking_item_added"))

	case session.StepAwaitAmount:
		amount, err := validate.Amount(strings.TrimSpace(msg.Text))
		if err != nil {
			h.send(chatID, loc.Get("amount_invalid"))
			return
		}
		bank, ok := banks.ByCode(s.Bank)
		if !ok {
			h.Sessions.Reset(userID)
			h.send(chatID, loc.Get("error_generic"))
			return
		}
		s.Step = session.StepConfirmPayment
		s.Amount = amount
		h.Sessions.Set(userID, s)
		h.sendConfirm(chatID,
			fmt.Sprintf(loc.Get("confirm_payment"), amount.String(), bank.Title), loc)

	case session.StepAwaitReceipt:
		h.handleReceipt(msg, s, loc)

	case session.StepConfirmName, session.StepConfirmAddress, session.StepConfirmPayment:
		h.send(chatID, loc.Get("use_buttons"))

	default:
		// free text outside any flow; the bot is menu-driven
	}
}

func (h *Handler) handleReceipt(msg *tgbotapi.Message, s session.Session, loc locales.Locale) {
	userID := msg.From.ID
	chatID := msg.Chat.ID

	if len(msg.Photo) == 0 {
		s.Attempts++
		if s.Attempts >= receiptAttempts {
			h.Sessions.Reset(userID)
			h.send(chatID, loc.Get("receipt_abandoned"))
			return
		}
		h.Sessions.Set(userID, s)
		h.send(chatID, loc.Get("receipt_not_photo"))
		return
	}

	// sizes come smallest first, keep the largest
	fileID := msg.Photo[len(msg.Photo)-1].FileID
	if err := h.DB.AddReceipt(userID, s.TxID, fileID); err != nil {
		h.Sessions.Reset(userID)
		h.fail(userID, chatID, err, "AddReceipt")
		return
	}
	h.Sessions.Reset(userID)
	h.send(chatID, loc.Get("receipt_saved"))
}

func (h *Handler) sendConfirm(chatID int64, text string, loc locales.Locale) {
	reply := tgbotapi.NewMessage(chatID, text)
	reply.ReplyMarkup = confirmKeyboard(loc)
	h.sendCfg(reply)
}
