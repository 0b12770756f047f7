package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Sale represents one customer transaction: header fields plus an ordered
// set of line items. TotalAmount is derived (line subtotals + delivery cost)
// and is recomputed on every create or revision, never set directly.
type Sale struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	CustomerName string          `gorm:"size:255" json:"customer_name"`
	Date         time.Time       `gorm:"type:date;not null;index" json:"date"`
	DeliveryCost decimal.Decimal `gorm:"type:decimal(15,2);default:0" json:"delivery_cost"`
	TotalAmount  decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"total_amount"`
	IsDelivered  bool            `gorm:"default:false" json:"is_delivered"`
	IsPaid       bool            `gorm:"default:false" json:"is_paid"`
	CreatedByID  *uuid.UUID      `gorm:"type:uuid;column:created_by" json:"created_by,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	DeletedAt    gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	Items []SaleItem `gorm:"foreignKey:SaleID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new sale
func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}

// SaleItem is one recipe/quantity entry within a sale. UnitPrice and
// BoxPrice are snapshots taken at transaction time; later recipe price
// changes never rewrite past sales.
type SaleItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	SaleID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"sale_id"`
	RecipeID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"recipe_id"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"unit_price"`
	BoxPrice  decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"box_price"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	DeletedAt gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	Sale   Sale   `gorm:"foreignKey:SaleID" json:"-"`
	Recipe Recipe `gorm:"foreignKey:RecipeID" json:"recipe,omitempty"`
}

// BeforeCreate generates a UUID before creating a new sale item
func (si *SaleItem) BeforeCreate(tx *gorm.DB) error {
	if si.ID == uuid.Nil {
		si.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SaleItem model
func (SaleItem) TableName() string {
	return "sales_items"
}
