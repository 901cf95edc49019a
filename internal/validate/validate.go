package validate

import (
	"errors"
	"regexp"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

var (
	ErrName         = errors.New("invalid name")
	ErrAddress      = errors.New("invalid address")
	ErrAmount       = errors.New("invalid amount")
	ErrTrackingItem = errors.New("invalid tracking item")
)

var (
	nameRx = regexp.MustCompile(`^[A-Za-zА-Яа-яЁё]+( [A-Za-zА-Яа-яЁё]+)*$`)
	itemRx = regexp.MustCompile(`^[A-Za-z0-9]+$`)
)

// Name accepts Latin or Cyrillic letters separated by single spaces,
// 2 to 50 runes.
func Name(s string) error {
	n := utf8.RuneCountInString(s)
	if n < 2 || n > 50 || !nameRx.MatchString(s) {
		return ErrName
	}
	return nil
}

// Address only bounds the length, 5 to 200 runes.
func Address(s string) error {
	n := utf8.RuneCountInString(s)
	if n < 5 || n > 200 {
		return ErrAddress
	}
	return nil
}

// Amount parses a positive decimal like "100.50".
func Amount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil || !d.IsPositive() {
		return decimal.Decimal{}, ErrAmount
	}
	return d, nil
}

// TrackingItem accepts alphanumeric parcel codes up to 50 characters.
func TrackingItem(s string) error {
	if utf8.RuneCountInString(s) > 50 || !itemRx.MatchString(s) {
		return ErrTrackingItem
	}
	return nil
}
