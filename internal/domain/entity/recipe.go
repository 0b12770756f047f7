package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Recipe is a priced item sold individually or by the box. UnitPrice applies
// per piece; BoxPrice applies to each full box of the configured box size.
type Recipe struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Name        string          `gorm:"size:255;not null" json:"name"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"unit_price"`
	BoxPrice    decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"box_price"`
	Description string          `gorm:"type:text" json:"description"`
	CreatedByID *uuid.UUID      `gorm:"type:uuid;column:created_by" json:"created_by,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new recipe
func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Recipe model
func (Recipe) TableName() string {
	return "recipes"
}
