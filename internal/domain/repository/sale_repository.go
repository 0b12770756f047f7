package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/regoline/nina-controle/internal/domain/entity"
	"github.com/regoline/nina-controle/pkg/pagination"
)

// StatusField names a toggleable sale flag.
type StatusField string

const (
	StatusDelivered StatusField = "delivered"
	StatusPaid      StatusField = "paid"
)

// Valid reports whether the field names a known flag.
func (f StatusField) Valid() bool {
	return f == StatusDelivered || f == StatusPaid
}

// SaleRepository defines the interface for sale data operations.
// CreateWithItems, ReplaceWithItems and DeleteWithItems each run as one
// atomic unit: a failure mid-operation leaves prior state intact.
type SaleRepository interface {
	// CreateWithItems persists the sale header and all of its line items.
	CreateWithItems(ctx context.Context, sale *entity.Sale) error
	// ReplaceWithItems removes every existing line item for sale.ID,
	// updates the header fields and inserts sale.Items as the new set.
	ReplaceWithItems(ctx context.Context, sale *entity.Sale) error
	// DeleteWithItems removes the sale and all of its line items.
	DeleteWithItems(ctx context.Context, id uuid.UUID) error
	// ToggleStatus flips a single boolean flag in place.
	ToggleStatus(ctx context.Context, id uuid.UUID, field StatusField) error

	GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	GetItems(ctx context.Context, saleID uuid.UUID) ([]entity.SaleItem, error)
	List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Sale, int64, error)
}
