package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledger_system/internal/domain"
)

func day(s string) time.Time {
	t, err := time.Parse(ISODate, s)
	if err != nil {
		panic(err)
	}
	return t
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func anaPetrova() domain.Customer {
	return domain.Customer{
		ID:    1,
		Name:  "Ana Petrova",
		Phone: "+389 70 123 456",
		Accounts: []domain.YearAccount{
			{
				ID:          1,
				CustomerID:  1,
				Year:        "2024",
				InitialDebt: dec("500.00"),
				Payments: []domain.Payment{
					{ID: 1, Date: day("2024-01-10"), Amount: dec("120.00")},
					{ID: 2, Date: day("2024-02-01"), Amount: dec("80.50"), Note: "partial"},
				},
			},
		},
	}
}

func TestYearBalance(t *testing.T) {
	cust := anaPetrova()
	got := YearBalance(cust.Accounts[0])
	assert.True(t, got.Equal(dec("299.50")), "got %s", got)
}

func TestYearBalanceCommutative(t *testing.T) {
	acct := anaPetrova().Accounts[0]
	acct.Payments = append(acct.Payments, domain.Payment{ID: 3, Date: day("2024-03-15"), Amount: dec("33.25")})
	want := YearBalance(acct)

	// Every permutation of the payment list yields the same balance.
	p := acct.Payments
	perms := [][]domain.Payment{
		{p[0], p[1], p[2]},
		{p[0], p[2], p[1]},
		{p[1], p[0], p[2]},
		{p[1], p[2], p[0]},
		{p[2], p[0], p[1]},
		{p[2], p[1], p[0]},
	}
	for _, perm := range perms {
		acct.Payments = perm
		assert.True(t, YearBalance(acct).Equal(want))
	}
}

func TestYearBalanceNoPayments(t *testing.T) {
	acct := domain.YearAccount{Year: "2023", InitialDebt: dec("150.00")}
	assert.True(t, YearBalance(acct).Equal(dec("150.00")))
}

func TestYearBalanceOverpaymentGoesNegative(t *testing.T) {
	acct := domain.YearAccount{
		Year:        "2024",
		InitialDebt: dec("100.00"),
		Payments: []domain.Payment{
			{Date: day("2024-05-01"), Amount: dec("150.00")},
		},
	}
	assert.True(t, YearBalance(acct).Equal(dec("-50.00")))
}

func TestYearBalanceZeroDebt(t *testing.T) {
	acct := domain.YearAccount{Year: "2024", InitialDebt: decimal.Zero}
	assert.True(t, YearBalance(acct).IsZero())
}

func TestTotalBalance(t *testing.T) {
	cust := anaPetrova()
	cust.Accounts = append(cust.Accounts, domain.YearAccount{
		ID:          2,
		CustomerID:  1,
		Year:        "2023",
		InitialDebt: dec("200.00"),
		Payments: []domain.Payment{
			{Date: day("2023-06-01"), Amount: dec("50.00")},
		},
	})

	want := decimal.Zero
	for _, a := range cust.Accounts {
		want = want.Add(YearBalance(a))
	}
	require.True(t, want.Equal(dec("449.50")))
	assert.True(t, TotalBalance(cust).Equal(want))
}

func TestTotalBalanceSingleAccountMatchesYear(t *testing.T) {
	cust := anaPetrova()
	assert.True(t, TotalBalance(cust).Equal(YearBalance(cust.Accounts[0])))
}

func TestTotalPaidAvoidsFloatDrift(t *testing.T) {
	// 0.1 added ten times is exactly 1 in fixed-point arithmetic.
	acct := domain.YearAccount{Year: "2024", InitialDebt: dec("1.00")}
	for i := 0; i < 10; i++ {
		acct.Payments = append(acct.Payments, domain.Payment{Date: day("2024-01-02"), Amount: dec("0.1")})
	}
	assert.True(t, TotalPaid(acct).Equal(dec("1")))
	assert.True(t, YearBalance(acct).IsZero())
}
