package handlers

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/wcharczuk/go-chart/v2"

	"telegram-cargo-bot/internal/models"
)

// handleStats sends the operator the bank usage ranking with a bar chart.
func (h *Handler) handleStats(userID, chatID int64) {
	loc := h.locale(userID)
	if userID != h.Cfg.AdminID {
		h.send(chatID, loc.Get("not_allowed"))
		return
	}

	stats, err := h.DB.GetBankStats()
	if err != nil {
		h.fail(userID, chatID, err, "GetBankStats")
		return
	}
	if len(stats) == 0 {
		h.send(chatID, loc.Get("stats_empty"))
		return
	}

	if png, err := statsChart(stats); err != nil {
		h.Log.WithError(err).Warn("stats chart render failed")
	} else {
		h.sendCfg(tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: "stats.png", Bytes: png}))
	}

	var b strings.Builder
	b.WriteString(loc.Get("stats_title") + "\n")
	for i, s := range stats {
		fmt.Fprintf(&b, "%d. %s — %d\n", i+1, s.Bank, s.Count)
	}
	h.send(chatID, b.String())
}

func statsChart(stats []models.BankStat) ([]byte, error) {
	bars := make([]chart.Value, 0, len(stats))
	for _, s := range stats {
		bars = append(bars, chart.Value{Label: s.Bank, Value: float64(s.Count)})
	}

	graph := chart.BarChart{
		Width:    800,
		Height:   400,
		BarWidth: 60,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    40,
				Left:   20,
				Right:  20,
				Bottom: 20,
			},
			FillColor: chart.ColorWhite,
		},
		Bars: bars,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render stats chart: %w", err)
	}
	return buffer.Bytes(), nil
}

// handleReport sends the operator a CSV of all users and transactions.
func (h *Handler) handleReport(userID, chatID int64) {
	loc := h.locale(userID)
	if userID != h.Cfg.AdminID {
		h.send(chatID, loc.Get("not_allowed"))
		return
	}

	users, err := h.DB.ListUsers()
	if err != nil {
		h.fail(userID, chatID, err, "ListUsers")
		return
	}
	txs, err := h.DB.AllTransactions()
	if err != nil {
		h.fail(userID, chatID, err, "AllTransactions")
		return
	}

	payload, err := reportCSV(users, txs)
	if err != nil {
		h.fail(userID, chatID, err, "reportCSV")
		return
	}

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  "report-" + uuid.NewString() + ".csv",
		Bytes: payload,
	})
	h.sendCfg(doc)
}

func reportCSV(users []models.User, txs []models.Transaction) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	records := [][]string{{"user_id", "lang", "name", "address"}}
	for _, u := range users {
		records = append(records, []string{
			strconv.FormatInt(u.ID, 10), u.Lang, u.Name, u.Address,
		})
	}
	records = append(records,
		[]string{""},
		[]string{"transaction_id", "user_id", "bank", "amount", "date"},
	)
	for _, t := range txs {
		records = append(records, []string{
			strconv.FormatInt(t.ID, 10),
			strconv.FormatInt(t.UserID, 10),
			t.Bank,
			t.Amount.String(),
			t.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}

	if err := w.WriteAll(records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
