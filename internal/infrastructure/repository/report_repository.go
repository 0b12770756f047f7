package repository

import (
	"context"
	"time"

	"github.com/regoline/nina-controle/internal/domain/entity"
	domainRepo "github.com/regoline/nina-controle/internal/domain/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *gorm.DB) domainRepo.ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) SumSales(ctx context.Context) (decimal.Decimal, decimal.Decimal, error) {
	var result struct {
		Total    decimal.Decimal
		Delivery decimal.Decimal
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(total_amount), 0) AS total,
		       COALESCE(SUM(delivery_cost), 0) AS delivery
		FROM sales
		WHERE deleted_at IS NULL
	`).Scan(&result).Error
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	return result.Total, result.Delivery, nil
}

func (r *reportRepository) SumExpenses(ctx context.Context) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(amount), 0) AS total
		FROM expenses
		WHERE deleted_at IS NULL
	`).Scan(&result).Error
	if err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

func (r *reportRepository) DailySales(ctx context.Context, start time.Time) ([]domainRepo.DailyTotal, error) {
	var totals []domainRepo.DailyTotal
	err := r.db.WithContext(ctx).Raw(`
		SELECT date, SUM(total_amount) AS total
		FROM sales
		WHERE deleted_at IS NULL AND date >= ?
		GROUP BY date
		ORDER BY date ASC
	`, start).Scan(&totals).Error
	return totals, err
}

func (r *reportRepository) DailyExpenses(ctx context.Context, start time.Time) ([]domainRepo.DailyTotal, error) {
	var totals []domainRepo.DailyTotal
	err := r.db.WithContext(ctx).Raw(`
		SELECT date, SUM(amount) AS total
		FROM expenses
		WHERE deleted_at IS NULL AND date >= ?
		GROUP BY date
		ORDER BY date ASC
	`, start).Scan(&totals).Error
	return totals, err
}

func (r *reportRepository) RecentSales(ctx context.Context, limit int) ([]entity.Sale, error) {
	var sales []entity.Sale
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Recipe").
		Order("date DESC, created_at DESC").
		Limit(limit).
		Find(&sales).Error
	return sales, err
}

func (r *reportRepository) RecentExpenses(ctx context.Context, limit int) ([]entity.Expense, error) {
	var expenses []entity.Expense
	err := r.db.WithContext(ctx).
		Order("date DESC, created_at DESC").
		Limit(limit).
		Find(&expenses).Error
	return expenses, err
}
