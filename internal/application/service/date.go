package service

import (
	"strings"
	"time"

	"github.com/regoline/nina-controle/pkg/apperror"
)

// ledgerDateLayout is the DD/MM/YYYY format the ledger accepts for business
// dates.
const ledgerDateLayout = "02/01/2006"

// parseLedgerDate parses a DD/MM/YYYY business date. An empty value defaults
// to today; anything else that does not parse is ErrInvalidDate.
func parseLedgerDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}

	t, err := time.Parse(ledgerDateLayout, value)
	if err != nil {
		return time.Time{}, apperror.ErrInvalidDate
	}
	return t, nil
}
