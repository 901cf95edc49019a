package handlers

import (
	"fmt"
	"os"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"telegram-cargo-bot/internal/banks"
	"telegram-cargo-bot/internal/locales"
	"telegram-cargo-bot/internal/models"
	"telegram-cargo-bot/internal/session"
)

// Китайский склад, куда едут посылки.
const warehouseAddress = "AP-1805\n18727306620\n浙江省金华市义乌市北苑街道凌云八区59栋3单元AP-1805 门面仓库 AP-1805"

func (h *Handler) handleCallback(cq *tgbotapi.CallbackQuery) {
	// callbacks on messages older than 48h arrive without the message
	if cq.Message == nil {
		if _, err := h.Bot.Request(tgbotapi.NewCallback(cq.ID, "")); err != nil {
			h.Log.WithError(err).Warn("answer callback failed")
		}
		return
	}

	userID := cq.From.ID
	chatID := cq.Message.Chat.ID

	// always answer to clear the loading spinner
	if _, err := h.Bot.Request(tgbotapi.NewCallback(cq.ID, "")); err != nil {
		h.Log.WithError(err).Warn("answer callback failed")
	}

	if !h.gate(userID, chatID) {
		return
	}

	u, err := h.DB.GetUser(userID)
	if err != nil {
		h.fail(userID, chatID, err, "GetUser")
		return
	}
	if u == nil {
		h.send(chatID, locales.Load(models.LangRU).Get("register_first"))
		return
	}
	loc := locales.Load(u.Lang)
	data := cq.Data

	switch {
	case data == "edit_profile":
		reply := tgbotapi.NewMessage(chatID, loc.Get("edit_profile"))
		reply.ReplyMarkup = profileKeyboard(loc)
		h.sendCfg(reply)

	case data == "set_name":
		h.Sessions.Set(userID, session.Session{Step: session.StepAwaitName})
		h.send(chatID, loc.Get("enter_name"))

	case data == "set_address":
		h.Sessions.Set(userID, session.Session{Step: session.StepAwaitAddress})
		h.send(chatID, loc.Get("enter_address"))

	case data == "change_lang":
		reply := tgbotapi.NewMessage(chatID, loc.Get("language"))
		reply.ReplyMarkup = langKeyboard()
		h.sendCfg(reply)

	case strings.HasPrefix(data, "lang_"):
		h.handleLangChange(userID, chatID, cq.Message.MessageID, strings.TrimPrefix(data, "lang_"))

	case data == "view_profile":
		h.sendProfile(chatID, u, loc)

	case data == "show_address":
		reply := tgbotapi.NewMessage(chatID, fmt.Sprintf(loc.Get("copy_address"), warehouseAddress))
		reply.ParseMode = tgbotapi.ModeMarkdown
		h.sendCfg(reply)

	case data == "instruction":
		h.send(chatID, loc.Get("instruction_text"))

	case data == "tracking":
		h.sendTracking(userID, chatID, loc)

	case data == "add_tracking":
		h.Sessions.Set(userID, session.Session{Step: session.StepAwaitTracking})
		h.send(chatID, loc.Get("enter_tracking_item"))

	case strings.HasPrefix(data, "track_"):
		item := strings.TrimPrefix(data, "track_")
		if err := h.DB.RemoveTrackingItem(userID, item); err != nil {
			h.fail(userID, chatID, err, "RemoveTrackingItem")
			return
		}
		h.send(chatID, fmt.Sprintf(loc.Get("tracking_item_removed"), item))

	case data == "pay":
		reply := tgbotapi.NewMessage(chatID, loc.Get("choose_bank"))
		reply.ReplyMarkup = banksKeyboard()
		h.sendCfg(reply)

	case strings.HasPrefix(data, "pay_"):
		bank, ok := banks.ByCode(data)
		if !ok {
			return
		}
		h.Sessions.Set(userID, session.Session{Step: session.StepAwaitAmount, Bank: bank.Code})
		h.send(chatID, loc.Get("enter_amount"))

	case data == "history":
		h.handleHistory(userID, chatID)

	case data == "confirm_yes":
		h.handleConfirmYes(userID, chatID, loc)

	case data == "confirm_no":
		h.Sessions.Reset(userID)
		h.send(chatID, loc.Get("cancelled"))
	}
}

func (h *Handler) handleLangChange(userID, chatID int64, messageID int, lang string) {
	if lang != models.LangRU && lang != models.LangKG && lang != models.LangEN {
		return
	}
	if err := h.DB.UpdateLang(userID, lang); err != nil {
		h.fail(userID, chatID, err, "UpdateLang")
		return
	}
	loc := locales.Load(lang)
	h.sendCfg(tgbotapi.NewEditMessageTextAndMarkup(
		chatID, messageID, loc.Get("lang_changed"), mainKeyboard(loc)))
}

func (h *Handler) sendProfile(chatID int64, u *models.User, loc locales.Locale) {
	name, address := u.Name, u.Address
	if name == "" {
		name = loc.Get("not_specified")
	}
	if address == "" {
		address = loc.Get("not_specified")
	}
	h.send(chatID, fmt.Sprintf(loc.Get("profile_info"), name, address, loc.Get("lang_"+u.Lang)))
}

func (h *Handler) sendTracking(userID, chatID int64, loc locales.Locale) {
	items, err := h.DB.GetTrackingItems(userID)
	if err != nil {
		h.fail(userID, chatID, err, "GetTrackingItems")
		return
	}
	title := loc.Get("tracking_title")
	if len(items) == 0 {
		title = loc.Get("tracking_empty")
	}
	reply := tgbotapi.NewMessage(chatID, title)
	reply.ReplyMarkup = trackingKeyboard(items, loc)
	h.sendCfg(reply)
}

// handleConfirmYes commits whatever value is pending for this user. The
// pending session is taken atomically, so a double tap finds nothing left to
// commit; a tap with nothing pending (expired session) is answered, not acted.
func (h *Handler) handleConfirmYes(userID, chatID int64, loc locales.Locale) {
	s, ok := h.Sessions.TakeIf(userID,
		session.StepConfirmName, session.StepConfirmAddress, session.StepConfirmPayment)
	if !ok {
		h.send(chatID, loc.Get("nothing_to_confirm"))
		return
	}

	switch s.Step {
	case session.StepConfirmName:
		if err := h.DB.UpdateName(userID, s.Pending); err != nil {
			h.Sessions.Set(userID, s) // re-arm, the user can retry
			h.fail(userID, chatID, err, "UpdateName")
			return
		}
		h.send(chatID, loc.Get("name_updated"))

	case session.StepConfirmAddress:
		if err := h.DB.UpdateAddress(userID, s.Pending); err != nil {
			h.Sessions.Set(userID, s)
			h.fail(userID, chatID, err, "UpdateAddress")
			return
		}
		h.send(chatID, loc.Get("address_updated"))

	case session.StepConfirmPayment:
		h.commitPayment(userID, chatID, s, loc)
	}
}

// commitPayment records the taken payment. On storage failure the session is
// re-armed so the confirmation can be tapped again.
func (h *Handler) commitPayment(userID, chatID int64, s session.Session, loc locales.Locale) {
	bank, ok := banks.ByCode(s.Bank)
	if !ok {
		h.send(chatID, loc.Get("error_generic"))
		return
	}

	txID, err := h.DB.AddTransaction(userID, bank.Title, s.Amount)
	if err != nil {
		h.Sessions.Set(userID, s)
		h.fail(userID, chatID, err, "AddTransaction")
		return
	}

	if bank.Mir {
		h.send(chatID, loc.Get("mir_caution"))
	} else {
		h.send(chatID, loc.Get("payment_instruction"))
	}
	h.sendBankImage(chatID, bank, loc)
	h.send(chatID, fmt.Sprintf(loc.Get("branch_locator"), bank.BranchURL))
	h.send(chatID, loc.Get("send_receipt"))

	h.Sessions.Set(userID, session.Session{Step: session.StepAwaitReceipt, TxID: txID})
}

// sendBankImage degrades to text when the requisites asset is missing or the
// upload fails; the payment itself is already recorded.
func (h *Handler) sendBankImage(chatID int64, b banks.Bank, loc locales.Locale) {
	if _, err := os.Stat(b.Image); err != nil {
		h.Log.WithField("image", b.Image).Warn("bank image missing")
		h.send(chatID, fmt.Sprintf(loc.Get("requisites_missing"), b.Title))
		return
	}
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FilePath(b.Image))
	if _, err := h.Bot.Send(photo); err != nil {
		h.Log.WithError(err).Warn("bank image send failed")
		h.send(chatID, fmt.Sprintf(loc.Get("requisites_missing"), b.Title))
	}
}
