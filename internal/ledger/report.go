package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"ledger_system/internal/domain"
)

// ComposeYearReport renders one account's ledger as plain text. Output is
// byte-for-byte reproducible given identical inputs and the same generation
// date; today is passed in rather than read from the clock so callers and
// tests control it.
func ComposeYearReport(cust domain.Customer, acct domain.YearAccount, today time.Time) string {
	var b strings.Builder
	payments := sortedPayments(acct.Payments)
	totalPaid := TotalPaid(acct)

	fmt.Fprintf(&b, "=== Debt report for %s ===\n", acct.Year)
	fmt.Fprintf(&b, "Generated: %s\n", today.Format(ISODate))
	fmt.Fprintf(&b, "Customer: %s", cust.Name)
	if cust.Phone != "" {
		fmt.Fprintf(&b, " (%s)", cust.Phone)
	}
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Initial debt: %s\n\n", acct.InitialDebt.StringFixed(2))

	if len(payments) == 0 {
		b.WriteString("No payments recorded.\n")
	} else {
		b.WriteString("Payments:\n")
		for i, p := range payments {
			fmt.Fprintf(&b, "%3d. %s  %12s", i+1, p.Date.Format(ISODate), p.Amount.StringFixed(2))
			if p.Note != "" {
				fmt.Fprintf(&b, "  %s", p.Note)
			}
			b.WriteByte('\n')
		}
	}
	b.WriteByte('\n')
	fmt.Fprintf(&b, "Total paid: %s\n", totalPaid.StringFixed(2))
	fmt.Fprintf(&b, "Balance:    %s\n", acct.InitialDebt.Sub(totalPaid).StringFixed(2))
	return b.String()
}

// ComposeAllYearsReport concatenates per-year reports sorted by year
// ascending and appends a grand-total section accumulated with the same
// fixed-point rule as the per-year figures.
func ComposeAllYearsReport(cust domain.Customer, today time.Time) string {
	accounts := sortedAccounts(cust.Accounts)
	var b strings.Builder

	totalDebt := decimal.Zero
	totalPaid := decimal.Zero
	for _, a := range accounts {
		b.WriteString(ComposeYearReport(cust, a, today))
		b.WriteByte('\n')
		totalDebt = totalDebt.Add(a.InitialDebt)
		totalPaid = totalPaid.Add(TotalPaid(a))
	}

	fmt.Fprintf(&b, "=== Grand total (%d years) ===\n", len(accounts))
	fmt.Fprintf(&b, "Initial debt: %s\n", totalDebt.StringFixed(2))
	fmt.Fprintf(&b, "Total paid:   %s\n", totalPaid.StringFixed(2))
	fmt.Fprintf(&b, "Balance:      %s\n", totalDebt.Sub(totalPaid).StringFixed(2))
	return b.String()
}
