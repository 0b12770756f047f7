package service

import (
	"context"
	"sort"
	"time"

	"github.com/regoline/nina-controle/internal/domain/entity"
	"github.com/regoline/nina-controle/internal/domain/repository"
	"github.com/regoline/nina-controle/pkg/apperror"
	"github.com/shopspring/decimal"
)

// SeriesPoint is one day of combined activity in the report series. Only
// days with at least one sale or expense appear.
type SeriesPoint struct {
	Date     time.Time       `json:"date"`
	Sales    decimal.Decimal `json:"sales"`
	Expenses decimal.Decimal `json:"expenses"`
}

// Summary is the profit/loss report. The totals and profit are lifetime
// figures; only the daily series is bounded by the window.
type Summary struct {
	TotalSales    decimal.Decimal `json:"total_sales"`
	TotalDelivery decimal.Decimal `json:"total_delivery"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	Profit        decimal.Decimal `json:"profit"`
	WindowDays    int             `json:"window_days"`
	Series        []SeriesPoint   `json:"series"`
}

// RecentActivity lists the latest sales and expenses.
type RecentActivity struct {
	Sales    []entity.Sale    `json:"sales"`
	Expenses []entity.Expense `json:"expenses"`
}

// ReportService aggregates ledger activity into the profit/loss report.
type ReportService struct {
	reportRepo  repository.ReportRepository
	windowDays  int
	recentLimit int
}

// NewReportService creates a new report service
func NewReportService(reportRepo repository.ReportRepository, windowDays, recentLimit int) *ReportService {
	if windowDays <= 0 {
		windowDays = 30
	}
	if recentLimit <= 0 {
		recentLimit = 10
	}
	return &ReportService{
		reportRepo:  reportRepo,
		windowDays:  windowDays,
		recentLimit: recentLimit,
	}
}

// Summary builds the report for the trailing window starting at
// asOf - windowDays. The series has no upper bound, so sales attributed to
// a future business day still appear. A zero asOf means today; a
// non-positive windowDays falls back to the configured default. Profit is
// lifetime sales minus lifetime expenses regardless of the window.
func (s *ReportService) Summary(ctx context.Context, asOf time.Time, windowDays int) (*Summary, error) {
	if windowDays <= 0 {
		windowDays = s.windowDays
	}
	if asOf.IsZero() {
		now := time.Now()
		asOf = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}

	totalSales, totalDelivery, err := s.reportRepo.SumSales(ctx)
	if err != nil {
		return nil, apperror.NewStorageError(err)
	}
	totalExpenses, err := s.reportRepo.SumExpenses(ctx)
	if err != nil {
		return nil, apperror.NewStorageError(err)
	}

	start := asOf.AddDate(0, 0, -windowDays)

	dailySales, err := s.reportRepo.DailySales(ctx, start)
	if err != nil {
		return nil, apperror.NewStorageError(err)
	}
	dailyExpenses, err := s.reportRepo.DailyExpenses(ctx, start)
	if err != nil {
		return nil, apperror.NewStorageError(err)
	}

	return &Summary{
		TotalSales:    totalSales,
		TotalDelivery: totalDelivery,
		TotalExpenses: totalExpenses,
		Profit:        totalSales.Sub(totalExpenses),
		WindowDays:    windowDays,
		Series:        mergeSeries(dailySales, dailyExpenses),
	}, nil
}

// Recent returns the latest sales and expenses, bounded by the configured
// limit.
func (s *ReportService) Recent(ctx context.Context) (*RecentActivity, error) {
	sales, err := s.reportRepo.RecentSales(ctx, s.recentLimit)
	if err != nil {
		return nil, apperror.NewStorageError(err)
	}
	expenses, err := s.reportRepo.RecentExpenses(ctx, s.recentLimit)
	if err != nil {
		return nil, apperror.NewStorageError(err)
	}
	return &RecentActivity{Sales: sales, Expenses: expenses}, nil
}

// mergeSeries joins the sales and expense buckets by date. Days present in
// only one side get a zero for the other; the result stays sparse and
// ascending by date.
func mergeSeries(sales, expenses []repository.DailyTotal) []SeriesPoint {
	byDate := make(map[string]*SeriesPoint)
	for _, d := range sales {
		key := d.Date.Format("2006-01-02")
		byDate[key] = &SeriesPoint{Date: d.Date, Sales: d.Total, Expenses: decimal.Zero}
	}
	for _, d := range expenses {
		key := d.Date.Format("2006-01-02")
		if p, ok := byDate[key]; ok {
			p.Expenses = d.Total
			continue
		}
		byDate[key] = &SeriesPoint{Date: d.Date, Sales: decimal.Zero, Expenses: d.Total}
	}

	series := make([]SeriesPoint, 0, len(byDate))
	for _, p := range byDate {
		series = append(series, *p)
	}
	sort.Slice(series, func(i, j int) bool {
		return series[i].Date.Before(series[j].Date)
	})
	return series
}
