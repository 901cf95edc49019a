package storage

import (
	"database/sql"
	"errors"
	"time"
)

const (
	limitWindow = time.Minute
	limitCap    = 15
)

// CheckRequestLimit reports whether the user is allowed another request and
// advances the counter in the same transaction. This is a fixed-window
// counter: a burst straddling a window boundary can admit up to twice the
// cap, which is an accepted trade-off for keeping the check to one row.
func (d *DB) CheckRequestLimit(userID int64) (bool, error) {
	return d.checkRequestLimit(userID, time.Now())
}

func (d *DB) checkRequestLimit(userID int64, now time.Time) (bool, error) {
	tx, err := d.Begin()
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	var count int
	var start int64
	err = tx.QueryRow(`
        SELECT count, window_start FROM request_limits WHERE user_id=?`, userID,
	).Scan(&count, &start)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		// first request ever
		if _, err := tx.Exec(`
            INSERT INTO request_limits (user_id, count, window_start)
            VALUES (?,1,?)`, userID, now.Unix()); err != nil {
			return false, err
		}

	case err != nil:
		return false, err

	case now.Unix()-start >= int64(limitWindow.Seconds()):
		// window rolled over, start a fresh one
		if _, err := tx.Exec(`
            UPDATE request_limits SET count=1, window_start=? WHERE user_id=?`,
			now.Unix(), userID); err != nil {
			return false, err
		}

	case count >= limitCap:
		// denied requests leave the counter untouched
		return false, nil

	default:
		if _, err := tx.Exec(`
            UPDATE request_limits SET count=count+1 WHERE user_id=?`, userID); err != nil {
			return false, err
		}
	}

	return true, tx.Commit()
}
