package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/erp/connector/internal/domain/shared"
)

// SupplierLink ties a product to a supplier with the negotiated cost
// price and ordering terms. One link per (product, supplier) pair.
type SupplierLink struct {
	shared.BaseAggregateRoot
	ProductID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_link_product_supplier,priority:1"`
	SupplierID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_link_product_supplier,priority:2"`
	ProductCode  string          `gorm:"type:varchar(50);index"`
	ProductName  string          `gorm:"type:varchar(200)"`
	Price        decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	MinQty       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:1"`
	LeadTimeDays int             `gorm:"not null;default:2"`
}

// TableName returns the table name for GORM
func (SupplierLink) TableName() string {
	return "supplier_links"
}

// NewSupplierLink creates a new supplier link
func NewSupplierLink(productID, supplierID uuid.UUID, price decimal.Decimal) (*SupplierLink, error) {
	if productID == uuid.Nil || supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_LINK", "Supplier link requires a product and a supplier")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Supplier price cannot be negative")
	}

	return &SupplierLink{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProductID:         productID,
		SupplierID:        supplierID,
		Price:             price,
		MinQty:            decimal.NewFromInt(1),
		LeadTimeDays:      2,
	}, nil
}

// RefreshPrice updates the negotiated cost price
func (l *SupplierLink) RefreshPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Supplier price cannot be negative")
	}

	l.Price = price
	l.UpdatedAt = time.Now()
	l.IncrementVersion()

	return nil
}

// SetProductInfo records the denormalized product code and name
func (l *SupplierLink) SetProductInfo(code, name string) {
	l.ProductCode = code
	l.ProductName = name
	l.UpdatedAt = time.Now()
	l.IncrementVersion()
}
