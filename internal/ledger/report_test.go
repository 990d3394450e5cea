package ledger

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledger_system/internal/domain"
)

var reportDay = time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)

func TestComposeYearReportDeterministic(t *testing.T) {
	cust := anaPetrova()
	first := ComposeYearReport(cust, cust.Accounts[0], reportDay)
	second := ComposeYearReport(cust, cust.Accounts[0], reportDay)
	assert.Equal(t, first, second)
}

func TestComposeYearReportContent(t *testing.T) {
	cust := anaPetrova()
	report := ComposeYearReport(cust, cust.Accounts[0], reportDay)

	assert.Contains(t, report, "=== Debt report for 2024 ===")
	assert.Contains(t, report, "Generated: 2025-01-15")
	assert.Contains(t, report, "Ana Petrova (+389 70 123 456)")
	assert.Contains(t, report, "Initial debt: 500.00")
	assert.Contains(t, report, "2024-01-10")
	assert.Contains(t, report, "partial")
	assert.Contains(t, report, "Total paid: 200.50")
	assert.Contains(t, report, "Balance:    299.50")
}

func TestComposeYearReportSortsPaymentsByDate(t *testing.T) {
	cust := anaPetrova()
	acct := cust.Accounts[0]
	// Reverse the stored order; the report must still list January first.
	acct.Payments = []domain.Payment{acct.Payments[1], acct.Payments[0]}

	report := ComposeYearReport(cust, acct, reportDay)
	jan := strings.Index(report, "2024-01-10")
	feb := strings.Index(report, "2024-02-01")
	require.NotEqual(t, -1, jan)
	require.NotEqual(t, -1, feb)
	assert.Less(t, jan, feb)
}

func TestComposeYearReportNoPayments(t *testing.T) {
	cust := domain.Customer{Name: "Empty Ledger"}
	acct := domain.YearAccount{Year: "2023", InitialDebt: dec("150.00")}

	report := ComposeYearReport(cust, acct, reportDay)
	assert.Contains(t, report, "No payments recorded.")
	assert.Contains(t, report, "Total paid: 0.00")
	assert.Contains(t, report, "Balance:    150.00")
}

func TestComposeAllYearsReport(t *testing.T) {
	cust := anaPetrova()
	// Prepend a later-created earlier year; rendering must sort by year.
	cust.Accounts = append(cust.Accounts, domain.YearAccount{
		ID:          2,
		CustomerID:  1,
		Year:        "2023",
		InitialDebt: dec("200.00"),
		Payments: []domain.Payment{
			{Date: day("2023-06-01"), Amount: dec("50.00")},
		},
	})

	report := ComposeAllYearsReport(cust, reportDay)
	i2023 := strings.Index(report, "=== Debt report for 2023 ===")
	i2024 := strings.Index(report, "=== Debt report for 2024 ===")
	require.NotEqual(t, -1, i2023)
	require.NotEqual(t, -1, i2024)
	assert.Less(t, i2023, i2024)

	assert.Contains(t, report, "=== Grand total (2 years) ===")
	assert.Contains(t, report, "Initial debt: 700.00")
	assert.Contains(t, report, "Total paid:   250.50")
	assert.Contains(t, report, "Balance:      449.50")
}

func TestComposeAllYearsReportSingleAccountGrandTotal(t *testing.T) {
	// With one account the grand total balance equals the year balance.
	cust := anaPetrova()
	report := ComposeAllYearsReport(cust, reportDay)
	assert.Contains(t, report, "=== Grand total (1 years) ===")
	assert.Contains(t, report, "Balance:      299.50")
}

func TestArchiveReports(t *testing.T) {
	cust := anaPetrova()
	cust.Accounts = append(cust.Accounts, domain.YearAccount{
		ID:          2,
		CustomerID:  1,
		Year:        "2023",
		InitialDebt: dec("200.00"),
	})

	data, err := ArchiveReports(cust, reportDay)
	require.NoError(t, err)

	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	require.Len(t, r.File, 2)

	// One file per year, in year order, each holding the year report.
	assert.Equal(t, "2023.txt", r.File[0].Name)
	assert.Equal(t, "2024.txt", r.File[1].Name)

	f, err := r.File[1].Open()
	require.NoError(t, err)
	defer f.Close()
	content, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, ComposeYearReport(cust, cust.Accounts[0], reportDay), string(content))
}

func TestArchiveReportsEmptyCustomer(t *testing.T) {
	data, err := ArchiveReports(domain.Customer{Name: "Nobody"}, reportDay)
	require.NoError(t, err)
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	assert.Empty(t, r.File)
}
