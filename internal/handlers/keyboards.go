package handlers

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"telegram-cargo-bot/internal/banks"
	"telegram-cargo-bot/internal/locales"
)

const supportURL = "https://t.me/cargo_support"

func mainKeyboard(loc locales.Locale) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(loc.Get("profile"), "edit_profile"),
			tgbotapi.NewInlineKeyboardButtonData(loc.Get("language"), "change_lang"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(loc.Get("tracking"), "tracking"),
			tgbotapi.NewInlineKeyboardButtonData(loc.Get("my_profile"), "view_profile"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(loc.Get("payment"), "pay"),
			tgbotapi.NewInlineKeyboardButtonData(loc.Get("history"), "history"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(loc.Get("address"), "show_address"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL(loc.Get("support"), supportURL),
			tgbotapi.NewInlineKeyboardButtonData(loc.Get("instruction"), "instruction"),
		),
	)
}

func profileKeyboard(loc locales.Locale) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(loc.Get("change_name"), "set_name"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(loc.Get("change_address"), "set_address"),
		),
	)
}

func langKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Русский 🇷🇺", "lang_ru"),
			tgbotapi.NewInlineKeyboardButtonData("Кыргызча 🇰🇬", "lang_kg"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("English 🇬🇧", "lang_en"),
		),
	)
}

func banksKeyboard() tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(banks.Catalog))
	for _, b := range banks.Catalog {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(b.Title, b.Code),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func confirmKeyboard(loc locales.Locale) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(loc.Get("yes"), "confirm_yes"),
			tgbotapi.NewInlineKeyboardButtonData(loc.Get("no"), "confirm_no"),
		),
	)
}

func trackingKeyboard(items []string, loc locales.Locale) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(items)+1)
	for _, item := range items {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(item, "track_"+item),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(loc.Get("add_tracking"), "add_tracking"),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
