package ledger

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Validation failures surfaced to the caller as rejection reasons. None of
// them is ever fatal to the process.
var (
	ErrBadDate           = errors.New("unrecognized date format")
	ErrBadAmount         = errors.New("amount is not a valid number")
	ErrAmountNotPositive = errors.New("payment amount must be greater than zero")
	ErrNegativeDebt      = errors.New("initial debt cannot be negative")
	ErrBadYear           = errors.New("year must be exactly 4 digits")
)

// ISODate is the normalized date layout used everywhere in storage and
// reports.
const ISODate = "2006-01-02"

// Accepted payment date layouts, tried in order; first match wins.
var dateLayouts = []string{
	ISODate,
	"02.01.2006",
	"02/01/2006",
	"02-01-2006",
}

// ParseDate normalizes a user-supplied date string to YYYY-MM-DD, or returns
// ErrBadDate when no accepted layout matches.
func ParseDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(ISODate), nil
		}
	}
	return "", ErrBadDate
}

// ParseAmount parses a decimal amount with no sign constraint.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, ErrBadAmount
	}
	return d, nil
}

// ParsePaymentAmount parses a payment amount; zero and negative values are
// rejected.
func ParsePaymentAmount(s string) (decimal.Decimal, error) {
	d, err := ParseAmount(s)
	if err != nil {
		return decimal.Zero, err
	}
	if d.Sign() <= 0 {
		return decimal.Zero, ErrAmountNotPositive
	}
	return d, nil
}

// ParseInitialDebt parses an opening debt; zero is allowed, negative is not.
func ParseInitialDebt(s string) (decimal.Decimal, error) {
	d, err := ParseAmount(s)
	if err != nil {
		return decimal.Zero, err
	}
	if d.Sign() < 0 {
		return decimal.Zero, ErrNegativeDebt
	}
	return d, nil
}

var yearPattern = regexp.MustCompile(`^[0-9]{4}$`)

// ValidateYear checks the 4-digit year label invariant.
func ValidateYear(s string) error {
	if !yearPattern.MatchString(s) {
		return ErrBadYear
	}
	return nil
}
