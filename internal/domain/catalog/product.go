package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/erp/connector/internal/domain/shared"
)

// Product represents a product/SKU in the catalog.
// It is the aggregate root for product-related operations.
type Product struct {
	shared.BaseAggregateRoot
	Code              string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	PartNumber        string          `gorm:"type:varchar(50);index"`
	Name              string          `gorm:"type:varchar(200);not null"`
	Description       string          `gorm:"type:text"`
	Barcode           string          `gorm:"type:varchar(50);index"`
	CategoryID        *uuid.UUID      `gorm:"type:uuid;index"`
	PurchaseTaxID     *uuid.UUID      `gorm:"type:uuid"`
	SaleTaxID         *uuid.UUID      `gorm:"type:uuid"`
	CostPrice         decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	SalePrice         decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Weight            decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Volume            decimal.Decimal `gorm:"type:decimal(18,6);not null;default:0"`
	SupplierStockQty  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ShowSupplierStock bool            `gorm:"not null;default:false"`
	SaleOK            bool            `gorm:"not null;default:true"`
	PurchaseOK        bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product keyed by its external SKU
func NewProduct(code, name string) (*Product, error) {
	if err := validateProductCode(code); err != nil {
		return nil, err
	}
	if name == "" {
		name = "Product " + code
	}
	if err := validateProductName(name); err != nil {
		return nil, err
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(code),
		Name:              name,
		CostPrice:         decimal.Zero,
		SalePrice:         decimal.Zero,
		SupplierStockQty:  decimal.Zero,
		SaleOK:            true,
		PurchaseOK:        true,
	}, nil
}

// Update updates the product's basic information
func (p *Product) Update(name, description string) error {
	if err := validateProductName(name); err != nil {
		return err
	}

	p.Name = name
	p.Description = description
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetBarcode sets the product barcode
func (p *Product) SetBarcode(barcode string) error {
	if barcode != "" && len(barcode) > 50 {
		return shared.NewDomainError("INVALID_BARCODE", "Barcode cannot exceed 50 characters")
	}

	p.Barcode = barcode
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetCategory sets the product category
func (p *Product) SetCategory(categoryID *uuid.UUID) {
	p.CategoryID = categoryID
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// SetTaxes sets the purchase and sale tax references
func (p *Product) SetTaxes(purchaseTaxID, saleTaxID *uuid.UUID) {
	p.PurchaseTaxID = purchaseTaxID
	p.SaleTaxID = saleTaxID
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// SetPrices sets both cost and sale prices
func (p *Product) SetPrices(costPrice, salePrice decimal.Decimal) error {
	if costPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Cost price cannot be negative")
	}
	if salePrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Sale price cannot be negative")
	}

	p.CostPrice = costPrice
	p.SalePrice = salePrice
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetWeight sets the gross weight
func (p *Product) SetWeight(weight decimal.Decimal) error {
	if weight.IsNegative() {
		return shared.NewDomainError("INVALID_WEIGHT", "Weight cannot be negative")
	}

	p.Weight = weight
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetVolume sets the computed volume
func (p *Product) SetVolume(volume decimal.Decimal) {
	p.Volume = volume
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// SetSupplierStock records the stock available at the external supplier
// and whether it is shown on the storefront. Saleability follows stock.
func (p *Product) SetSupplierStock(qty decimal.Decimal, show bool) {
	p.SupplierStockQty = qty
	p.ShowSupplierStock = show
	p.SaleOK = qty.IsPositive()
	p.PurchaseOK = qty.IsPositive()
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// SetPartNumber sets the manufacturer part number
func (p *Product) SetPartNumber(partNumber string) {
	p.PartNumber = partNumber
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// validateProductCode validates the product code (SKU)
func validateProductCode(code string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Product code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_CODE", "Product code cannot exceed 50 characters")
	}
	return nil
}

// validateProductName validates the product name
func validateProductName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}
