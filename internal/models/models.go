package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Languages the locale files ship with.
const (
	LangRU = "ru"
	LangKG = "kg"
	LangEN = "en"
)

// User is one telegram account's profile. The id is assigned by the
// platform, never generated here.
type User struct {
	ID      int64  `db:"user_id" json:"user_id"`
	Lang    string `db:"lang"    json:"lang"`
	Name    string `db:"name"    json:"name"`    // empty -> not specified
	Address string `db:"address" json:"address"` // empty -> not specified
}

// Transaction is one user-claimed payment. Immutable after insert.
type Transaction struct {
	ID        int64           `db:"id"`
	UserID    int64           `db:"user_id"`
	Bank      string          `db:"bank"`
	Amount    decimal.Decimal `db:"amount"`
	CreatedAt time.Time       `db:"created_at"`
}

// Receipt attaches a telegram file handle to a transaction. The payload
// stays on telegram's servers, we only keep the token.
type Receipt struct {
	ID            int64  `db:"id"`
	UserID        int64  `db:"user_id"`
	TransactionID int64  `db:"transaction_id"`
	FileID        string `db:"file_id"`
}

// BankStat is the denormalized per-bank payment count. Recomputable from
// transactions if ever lost.
type BankStat struct {
	Bank  string `db:"bank"`
	Count int64  `db:"count"`
}
