package storage

import (
	"database/sql"
	"embed"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"telegram-cargo-bot/internal/models"
)

//go:embed schema.sql
var ddl embed.FS

// ErrNotFound is returned when a row that must exist does not
// (e.g. attaching a receipt to someone else's transaction).
var ErrNotFound = errors.New("not found")

type DB struct{ *sql.DB }

func New(path string) (*DB, error) {
	// _txlock=immediate: transactions take the write lock up front, so two
	// concurrent read-then-update ops for the same row queue on busy_timeout
	// instead of failing the snapshot upgrade
	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_txlock=immediate")
	if err != nil {
		return nil, err
	}
	if err = migrate(db); err != nil {
		return nil, err
	}
	return &DB{db}, nil
}

func migrate(db *sql.DB) error {
	b, err := ddl.ReadFile("schema.sql")
	if err != nil {
		return err
	}
	_, err = db.Exec(string(b))
	return err
}

// ---------- users -----------------------------------------------------------

func (d *DB) UserExists(userID int64) (bool, error) {
	var one int
	err := d.QueryRow(`SELECT 1 FROM users WHERE user_id=?`, userID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// CreateUser registers the user with default language and an empty profile.
// Re-registering an existing id must not wipe name/address, hence DO NOTHING
// rather than a destructive replace.
func (d *DB) CreateUser(userID int64) error {
	_, err := d.Exec(`
        INSERT INTO users (user_id) VALUES (?)
        ON CONFLICT(user_id) DO NOTHING
    `, userID)
	return err
}

func (d *DB) GetUser(userID int64) (*models.User, error) {
	var u models.User

	err := d.QueryRow(`
        SELECT user_id, lang, name, address
        FROM users WHERE user_id=?`, userID,
	).Scan(&u.ID, &u.Lang, &u.Name, &u.Address)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (d *DB) ListUsers() ([]models.User, error) {
	rows, err := d.Query(`SELECT user_id, lang, name, address FROM users ORDER BY user_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Lang, &u.Name, &u.Address); err != nil {
			return nil, err
		}
		res = append(res, u)
	}
	return res, rows.Err()
}

func (d *DB) UpdateLang(userID int64, lang string) error {
	return d.updateField(userID, `UPDATE users SET lang=? WHERE user_id=?`, lang)
}

func (d *DB) UpdateName(userID int64, name string) error {
	return d.updateField(userID, `UPDATE users SET name=? WHERE user_id=?`, name)
}

func (d *DB) UpdateAddress(userID int64, address string) error {
	return d.updateField(userID, `UPDATE users SET address=? WHERE user_id=?`, address)
}

// updateField creates the user row if missing, then mutates exactly one
// column, all inside a single transaction.
func (d *DB) updateField(userID int64, query, value string) error {
	tx, err := d.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := ensureUser(tx, userID); err != nil {
		return err
	}
	if _, err := tx.Exec(query, value, userID); err != nil {
		return err
	}
	return tx.Commit()
}

func ensureUser(tx *sql.Tx, userID int64) error {
	_, err := tx.Exec(`
        INSERT INTO users (user_id) VALUES (?)
        ON CONFLICT(user_id) DO NOTHING
    `, userID)
	return err
}

// ---------- transactions ----------------------------------------------------

// AddTransaction inserts the payment and bumps the bank's usage counter in
// the same transaction, returning the new row id for receipt correlation.
func (d *DB) AddTransaction(userID int64, bank string, amount decimal.Decimal) (int64, error) {
	tx, err := d.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if err := ensureUser(tx, userID); err != nil {
		return 0, err
	}
	res, err := tx.Exec(`
        INSERT INTO transactions (user_id, bank, amount, created_at)
        VALUES (?,?,?,?)
    `, userID, bank, amount.String(), time.Now().Unix())
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	if _, err := tx.Exec(`
        INSERT INTO bank_stats (bank, count) VALUES (?, 1)
        ON CONFLICT(bank) DO UPDATE SET count = count + 1
    `, bank); err != nil {
		return 0, err
	}
	return id, tx.Commit()
}

func (d *DB) GetTransactions(userID int64) ([]models.Transaction, error) {
	rows, err := d.Query(`
        SELECT id, user_id, bank, amount, created_at
        FROM transactions WHERE user_id=?
        ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTransactions(rows)
}

// AllTransactions is used by the operator report.
func (d *DB) AllTransactions() ([]models.Transaction, error) {
	rows, err := d.Query(`
        SELECT id, user_id, bank, amount, created_at
        FROM transactions
        ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTransactions(rows)
}

func scanTransactions(rows *sql.Rows) ([]models.Transaction, error) {
	res := []models.Transaction{}
	for rows.Next() {
		var t models.Transaction
		var amount string
		var ts int64
		if err := rows.Scan(&t.ID, &t.UserID, &t.Bank, &amount, &ts); err != nil {
			return nil, err
		}
		a, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, err
		}
		t.Amount = a
		t.CreatedAt = time.Unix(ts, 0)
		res = append(res, t)
	}
	return res, rows.Err()
}

// ---------- receipts --------------------------------------------------------

// AddReceipt attaches a telegram file handle to a transaction. The
// transaction must belong to the user, otherwise ErrNotFound.
func (d *DB) AddReceipt(userID, transactionID int64, fileID string) error {
	tx, err := d.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var one int
	err = tx.QueryRow(`
        SELECT 1 FROM transactions WHERE id=? AND user_id=?`,
		transactionID, userID,
	).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	if _, err := tx.Exec(`
        INSERT INTO receipts (user_id, transaction_id, file_id)
        VALUES (?,?,?)
    `, userID, transactionID, fileID); err != nil {
		return err
	}
	return tx.Commit()
}

func (d *DB) GetReceipts(transactionID int64) ([]models.Receipt, error) {
	rows, err := d.Query(`
        SELECT id, user_id, transaction_id, file_id
        FROM receipts WHERE transaction_id=?`, transactionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []models.Receipt
	for rows.Next() {
		var r models.Receipt
		if err := rows.Scan(&r.ID, &r.UserID, &r.TransactionID, &r.FileID); err != nil {
			return nil, err
		}
		res = append(res, r)
	}
	return res, rows.Err()
}

// ---------- bank stats ------------------------------------------------------

func (d *DB) GetBankStats() ([]models.BankStat, error) {
	rows, err := d.Query(`SELECT bank, count FROM bank_stats ORDER BY count DESC, bank`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	res := []models.BankStat{}
	for rows.Next() {
		var s models.BankStat
		if err := rows.Scan(&s.Bank, &s.Count); err != nil {
			return nil, err
		}
		res = append(res, s)
	}
	return res, rows.Err()
}

// ---------- tracking --------------------------------------------------------

func (d *DB) AddTrackingItem(userID int64, item string) error {
	tx, err := d.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := ensureUser(tx, userID); err != nil {
		return err
	}
	// duplicates are silently dropped, items are unique per user
	if _, err := tx.Exec(`
        INSERT INTO tracking_items (user_id, item) VALUES (?,?)
        ON CONFLICT(user_id, item) DO NOTHING
    `, userID, item); err != nil {
		return err
	}
	return tx.Commit()
}

func (d *DB) GetTrackingItems(userID int64) ([]string, error) {
	rows, err := d.Query(`SELECT item FROM tracking_items WHERE user_id=? ORDER BY item`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	res := []string{}
	for rows.Next() {
		var item string
		if err := rows.Scan(&item); err != nil {
			return nil, err
		}
		res = append(res, item)
	}
	return res, rows.Err()
}

func (d *DB) RemoveTrackingItem(userID int64, item string) error {
	_, err := d.Exec(`DELETE FROM tracking_items WHERE user_id=? AND item=?`, userID, item)
	return err
}
