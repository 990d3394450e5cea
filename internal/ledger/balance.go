// Package ledger holds the pure debt/payment arithmetic and report
// composition. All money values are fixed-point decimals; rounding to two
// places happens only when formatting, never while accumulating. Nothing in
// this package touches the database — callers pass in loaded entities.
package ledger

import (
	"sort"

	"github.com/shopspring/decimal"

	"ledger_system/internal/domain"
)

// TotalPaid sums the payments recorded against an account.
func TotalPaid(acct domain.YearAccount) decimal.Decimal {
	total := decimal.Zero
	for _, p := range acct.Payments {
		total = total.Add(p.Amount)
	}
	return total
}

// YearBalance returns initial debt minus total payments. A balance may go
// negative on overpayment; it is never clamped.
func YearBalance(acct domain.YearAccount) decimal.Decimal {
	return acct.InitialDebt.Sub(TotalPaid(acct))
}

// TotalBalance sums YearBalance over all of the customer's accounts.
// Order-independent; report rendering sorts separately.
func TotalBalance(cust domain.Customer) decimal.Decimal {
	total := decimal.Zero
	for _, a := range cust.Accounts {
		total = total.Add(YearBalance(a))
	}
	return total
}

// sortedPayments returns a copy ordered by date ascending. Payments on the
// same date keep their stored order.
func sortedPayments(payments []domain.Payment) []domain.Payment {
	out := make([]domain.Payment, len(payments))
	copy(out, payments)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

// sortedAccounts returns a copy ordered by year label ascending.
func sortedAccounts(accounts []domain.YearAccount) []domain.YearAccount {
	out := make([]domain.YearAccount, len(accounts))
	copy(out, accounts)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Year < out[j].Year
	})
	return out
}
