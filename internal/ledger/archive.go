package ledger

import (
	"archive/zip"
	"bytes"
	"fmt"
	"time"

	"ledger_system/internal/domain"
)

// ArchiveReports bundles one <year>.txt report per account into a zip
// archive, the downloadable batch artifact. Accounts are written in year
// order so the archive layout is deterministic.
func ArchiveReports(cust domain.Customer, today time.Time) ([]byte, error) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, acct := range sortedAccounts(cust.Accounts) {
		f, err := w.Create(acct.Year + ".txt")
		if err != nil {
			return nil, fmt.Errorf("adding %s to archive: %w", acct.Year, err)
		}
		if _, err := f.Write([]byte(ComposeYearReport(cust, acct, today))); err != nil {
			return nil, fmt.Errorf("writing %s report: %w", acct.Year, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("closing archive: %w", err)
	}
	return buf.Bytes(), nil
}
