// Package pricing implements the unit/box price split used for sale line
// items: full boxes are charged at the box price, the remainder per unit.
package pricing

import "github.com/shopspring/decimal"

// DefaultBoxSize is the quantity at which the box price starts to apply.
const DefaultBoxSize = 6

// Rule computes line subtotals for a fixed box size.
type Rule struct {
	BoxSize int
}

// NewRule returns a Rule for the given box size, falling back to
// DefaultBoxSize when the input is not positive.
func NewRule(boxSize int) Rule {
	if boxSize <= 0 {
		boxSize = DefaultBoxSize
	}
	return Rule{BoxSize: boxSize}
}

// Subtotal returns boxes*boxPrice + remainder*unitPrice where
// boxes = quantity div BoxSize and remainder = quantity mod BoxSize.
// It is pure and total: quantity 0 yields 0.
func (r Rule) Subtotal(quantity int, unitPrice, boxPrice decimal.Decimal) decimal.Decimal {
	if quantity <= 0 {
		return decimal.Zero
	}

	boxes := quantity / r.BoxSize
	units := quantity % r.BoxSize

	return boxPrice.Mul(decimal.NewFromInt(int64(boxes))).
		Add(unitPrice.Mul(decimal.NewFromInt(int64(units))))
}
