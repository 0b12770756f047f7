package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/regoline/nina-controle/internal/domain/entity"
	domainRepo "github.com/regoline/nina-controle/internal/domain/repository"
	"github.com/regoline/nina-controle/pkg/pagination"
	"gorm.io/gorm"
)

type saleRepository struct {
	db *gorm.DB
}

// NewSaleRepository creates a new sale repository
func NewSaleRepository(db *gorm.DB) domainRepo.SaleRepository {
	return &saleRepository{db: db}
}

// CreateWithItems persists the sale header and its line items in a single
// transaction. GORM cascades the Items association through the same tx.
func (r *saleRepository) CreateWithItems(ctx context.Context, sale *entity.Sale) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(sale).Error
	})
}

// ReplaceWithItems rewrites a sale: the old line items are removed, the
// header fields are updated and sale.Items is inserted as the new set. The
// whole rewrite commits or rolls back together.
func (r *saleRepository) ReplaceWithItems(ctx context.Context, sale *entity.Sale) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("sale_id = ?", sale.ID).Delete(&entity.SaleItem{}).Error; err != nil {
			return err
		}

		if err := tx.Model(&entity.Sale{}).Where("id = ?", sale.ID).
			Updates(map[string]interface{}{
				"customer_name": sale.CustomerName,
				"date":          sale.Date,
				"delivery_cost": sale.DeliveryCost,
				"total_amount":  sale.TotalAmount,
				"is_delivered":  sale.IsDelivered,
				"is_paid":       sale.IsPaid,
			}).Error; err != nil {
			return err
		}

		for i := range sale.Items {
			sale.Items[i].SaleID = sale.ID
		}
		if len(sale.Items) > 0 {
			if err := tx.Create(&sale.Items).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteWithItems removes the sale and its line items together.
func (r *saleRepository) DeleteWithItems(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("sale_id = ?", id).Delete(&entity.SaleItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Sale{}, "id = ?", id).Error
	})
}

// ToggleStatus flips one boolean flag in place, in the database, so two
// concurrent toggles serialize on the row instead of losing an update.
func (r *saleRepository) ToggleStatus(ctx context.Context, id uuid.UUID, field domainRepo.StatusField) error {
	var column string
	switch field {
	case domainRepo.StatusDelivered:
		column = "is_delivered"
	case domainRepo.StatusPaid:
		column = "is_paid"
	default:
		return fmt.Errorf("unknown status field: %s", field)
	}

	return r.db.WithContext(ctx).Model(&entity.Sale{}).
		Where("id = ?", id).
		Update(column, gorm.Expr("NOT "+column)).Error
}

func (r *saleRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	var sale entity.Sale
	err := r.db.WithContext(ctx).First(&sale, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

func (r *saleRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	var sale entity.Sale
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Recipe").
		First(&sale, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

func (r *saleRepository) GetItems(ctx context.Context, saleID uuid.UUID) ([]entity.SaleItem, error) {
	var items []entity.SaleItem
	err := r.db.WithContext(ctx).
		Preload("Recipe").
		Where("sale_id = ?", saleID).
		Find(&items).Error
	return items, err
}

func (r *saleRepository) List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Sale, int64, error) {
	var sales []entity.Sale
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Sale{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Preload("Items").
		Preload("Items.Recipe").
		Order("date DESC, created_at DESC").
		Find(&sales).Error

	return sales, total, err
}
