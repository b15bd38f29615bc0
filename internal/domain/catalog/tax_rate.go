package catalog

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/erp/connector/internal/domain/shared"
)

// TaxDirection distinguishes purchase taxes from sale taxes
type TaxDirection string

const (
	TaxDirectionPurchase TaxDirection = "purchase"
	TaxDirectionSale     TaxDirection = "sale"
)

// IsValid checks if the direction is a known value
func (d TaxDirection) IsValid() bool {
	return d == TaxDirectionPurchase || d == TaxDirectionSale
}

// TaxRate represents a percentage tax, unique per (rate, direction)
type TaxRate struct {
	shared.BaseAggregateRoot
	Name      string          `gorm:"type:varchar(50);not null"`
	Rate      decimal.Decimal `gorm:"type:decimal(8,4);not null;uniqueIndex:idx_tax_rate_direction,priority:1"`
	Direction TaxDirection    `gorm:"type:varchar(20);not null;uniqueIndex:idx_tax_rate_direction,priority:2"`
}

// TableName returns the table name for GORM
func (TaxRate) TableName() string {
	return "tax_rates"
}

// NewTaxRate creates a new tax rate
func NewTaxRate(rate decimal.Decimal, direction TaxDirection) (*TaxRate, error) {
	if rate.IsNegative() {
		return nil, shared.NewDomainError("INVALID_RATE", "Tax rate cannot be negative")
	}
	if !direction.IsValid() {
		return nil, shared.NewDomainError("INVALID_DIRECTION", "Tax direction must be purchase or sale")
	}

	return &TaxRate{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              fmt.Sprintf("%s %%", rate.String()),
		Rate:              rate,
		Direction:         direction,
	}, nil
}
