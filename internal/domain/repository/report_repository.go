package repository

import (
	"context"
	"time"

	"github.com/regoline/nina-controle/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// DailyTotal is one date bucket of summed activity.
type DailyTotal struct {
	Date  time.Time       `json:"date"`
	Total decimal.Decimal `json:"total"`
}

// ReportRepository defines the read-side queries used by the profit/loss
// report. Reads are not isolated from concurrent writes; a report may see a
// mid-write state, which is acceptable for this single-tenant workload.
type ReportRepository interface {
	// SumSales returns the lifetime sales total and the lifetime delivery
	// cost portion of it.
	SumSales(ctx context.Context) (total, delivery decimal.Decimal, err error)
	// SumExpenses returns the lifetime expense total.
	SumExpenses(ctx context.Context) (decimal.Decimal, error)
	// DailySales returns per-date sales sums for dates on or after start,
	// ascending by date. Dates with no sales are omitted.
	DailySales(ctx context.Context, start time.Time) ([]DailyTotal, error)
	// DailyExpenses returns per-date expense sums for dates on or after
	// start, ascending by date. Dates with no expenses are omitted.
	DailyExpenses(ctx context.Context, start time.Time) ([]DailyTotal, error)
	// RecentSales returns the latest sales by business date, descending.
	RecentSales(ctx context.Context, limit int) ([]entity.Sale, error)
	// RecentExpenses returns the latest expenses by date, descending.
	RecentExpenses(ctx context.Context, limit int) ([]entity.Expense, error)
}
