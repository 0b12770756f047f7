package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/regoline/nina-controle/internal/domain/entity"
	"github.com/regoline/nina-controle/internal/domain/repository"
	"github.com/regoline/nina-controle/pkg/apperror"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReportRepo struct {
	totalSales    decimal.Decimal
	totalDelivery decimal.Decimal
	totalExpenses decimal.Decimal
	dailySales    []repository.DailyTotal
	dailyExpenses []repository.DailyTotal
	recentSales   []entity.Sale
	recentExp     []entity.Expense

	lastStart time.Time
	lastLimit int
	err       error
}

func (f *fakeReportRepo) SumSales(ctx context.Context) (decimal.Decimal, decimal.Decimal, error) {
	if f.err != nil {
		return decimal.Zero, decimal.Zero, f.err
	}
	return f.totalSales, f.totalDelivery, nil
}

func (f *fakeReportRepo) SumExpenses(ctx context.Context) (decimal.Decimal, error) {
	if f.err != nil {
		return decimal.Zero, f.err
	}
	return f.totalExpenses, nil
}

func (f *fakeReportRepo) DailySales(ctx context.Context, start time.Time) ([]repository.DailyTotal, error) {
	f.lastStart = start
	return f.dailySales, nil
}

func (f *fakeReportRepo) DailyExpenses(ctx context.Context, start time.Time) ([]repository.DailyTotal, error) {
	return f.dailyExpenses, nil
}

func (f *fakeReportRepo) RecentSales(ctx context.Context, limit int) ([]entity.Sale, error) {
	f.lastLimit = limit
	return f.recentSales, nil
}

func (f *fakeReportRepo) RecentExpenses(ctx context.Context, limit int) ([]entity.Expense, error) {
	return f.recentExp, nil
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestReportService_Summary(t *testing.T) {
	ctx := context.Background()

	t.Run("profit is lifetime sales minus lifetime expenses", func(t *testing.T) {
		repo := &fakeReportRepo{
			totalSales:    decimal.RequireFromString("1500.00"),
			totalDelivery: decimal.RequireFromString("120.00"),
			totalExpenses: decimal.RequireFromString("400.00"),
		}
		svc := NewReportService(repo, 30, 10)

		summary, err := svc.Summary(ctx, time.Time{}, 0)

		require.NoError(t, err)
		assert.True(t, summary.Profit.Equal(decimal.RequireFromString("1100.00")))
		assert.True(t, summary.TotalDelivery.Equal(decimal.RequireFromString("120.00")))
		assert.Equal(t, 30, summary.WindowDays)
	})

	t.Run("profit does not change with the window", func(t *testing.T) {
		repo := &fakeReportRepo{
			totalSales:    decimal.RequireFromString("1500.00"),
			totalExpenses: decimal.RequireFromString("400.00"),
		}
		svc := NewReportService(repo, 30, 10)

		for _, window := range []int{7, 30, 365} {
			summary, err := svc.Summary(ctx, time.Time{}, window)
			require.NoError(t, err)
			assert.True(t, summary.Profit.Equal(decimal.RequireFromString("1100.00")),
				"window %d", window)
			assert.Equal(t, window, summary.WindowDays)
		}
	})

	t.Run("series starts window_days before the as-of date", func(t *testing.T) {
		repo := &fakeReportRepo{}
		svc := NewReportService(repo, 30, 10)

		_, err := svc.Summary(ctx, day(2026, 3, 20), 7)

		require.NoError(t, err)
		assert.Equal(t, day(2026, 3, 13), repo.lastStart)
	})

	t.Run("zero as-of defaults to today", func(t *testing.T) {
		repo := &fakeReportRepo{}
		svc := NewReportService(repo, 30, 10)

		_, err := svc.Summary(ctx, time.Time{}, 7)

		require.NoError(t, err)
		want := time.Now().AddDate(0, 0, -7)
		assert.Equal(t, want.Year(), repo.lastStart.Year())
		assert.Equal(t, want.YearDay(), repo.lastStart.YearDay())
	})

	t.Run("series keeps days after the as-of date", func(t *testing.T) {
		repo := &fakeReportRepo{
			dailySales: []repository.DailyTotal{
				{Date: day(2026, 3, 18), Total: decimal.RequireFromString("40.00")},
				{Date: day(2026, 3, 25), Total: decimal.RequireFromString("60.00")},
			},
		}
		svc := NewReportService(repo, 30, 10)

		summary, err := svc.Summary(ctx, day(2026, 3, 20), 7)

		require.NoError(t, err)
		require.Len(t, summary.Series, 2)
		assert.Equal(t, day(2026, 3, 25), summary.Series[1].Date)
		assert.True(t, summary.Series[1].Sales.Equal(decimal.RequireFromString("60.00")))
	})

	t.Run("merges sales and expenses by date and stays sparse", func(t *testing.T) {
		repo := &fakeReportRepo{
			dailySales: []repository.DailyTotal{
				{Date: day(2026, 3, 10), Total: decimal.RequireFromString("50.00")},
				{Date: day(2026, 3, 12), Total: decimal.RequireFromString("80.00")},
			},
			dailyExpenses: []repository.DailyTotal{
				{Date: day(2026, 3, 11), Total: decimal.RequireFromString("20.00")},
				{Date: day(2026, 3, 12), Total: decimal.RequireFromString("30.00")},
			},
		}
		svc := NewReportService(repo, 30, 10)

		summary, err := svc.Summary(ctx, day(2026, 3, 20), 30)

		require.NoError(t, err)
		require.Len(t, summary.Series, 3)

		assert.Equal(t, day(2026, 3, 10), summary.Series[0].Date)
		assert.True(t, summary.Series[0].Sales.Equal(decimal.RequireFromString("50.00")))
		assert.True(t, summary.Series[0].Expenses.IsZero())

		assert.Equal(t, day(2026, 3, 11), summary.Series[1].Date)
		assert.True(t, summary.Series[1].Sales.IsZero())
		assert.True(t, summary.Series[1].Expenses.Equal(decimal.RequireFromString("20.00")))

		assert.Equal(t, day(2026, 3, 12), summary.Series[2].Date)
		assert.True(t, summary.Series[2].Sales.Equal(decimal.RequireFromString("80.00")))
		assert.True(t, summary.Series[2].Expenses.Equal(decimal.RequireFromString("30.00")))
	})

	t.Run("empty ledger yields zero totals and an empty series", func(t *testing.T) {
		svc := NewReportService(&fakeReportRepo{}, 30, 10)

		summary, err := svc.Summary(ctx, time.Time{}, 30)

		require.NoError(t, err)
		assert.True(t, summary.Profit.IsZero())
		assert.Empty(t, summary.Series)
	})

	t.Run("wraps storage failures", func(t *testing.T) {
		repo := &fakeReportRepo{err: errors.New("connection reset")}
		svc := NewReportService(repo, 30, 10)

		_, err := svc.Summary(ctx, time.Time{}, 30)

		require.Error(t, err)
		appErr := apperror.GetAppError(err)
		assert.Equal(t, 500, appErr.Code)
		assert.Equal(t, "Storage operation failed", appErr.Message)
	})
}

func TestReportService_Recent(t *testing.T) {
	ctx := context.Background()

	repo := &fakeReportRepo{
		recentSales: []entity.Sale{{CustomerName: "Ana"}},
		recentExp:   []entity.Expense{{Description: "Flour"}},
	}
	svc := NewReportService(repo, 30, 5)

	activity, err := svc.Recent(ctx)

	require.NoError(t, err)
	assert.Equal(t, 5, repo.lastLimit)
	require.Len(t, activity.Sales, 1)
	require.Len(t, activity.Expenses, 1)
	assert.Equal(t, "Ana", activity.Sales[0].CustomerName)
	assert.Equal(t, "Flour", activity.Expenses[0].Description)
}
