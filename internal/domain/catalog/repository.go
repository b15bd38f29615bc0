package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductRepository defines the interface for product persistence.
// Lookups return shared.ErrNotFound on miss.
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindByCode finds a product by its SKU code
	FindByCode(ctx context.Context, code string) (*Product, error)

	// FindByCodeOrBarcode finds a product matching either key; the SKU
	// match wins when both match different records
	FindByCodeOrBarcode(ctx context.Context, code, barcode string) (*Product, error)

	// FindOldestModified returns up to limit products ordered by least
	// recently updated, restricted to products linked to the given
	// supplier
	FindOldestModified(ctx context.Context, supplierID uuid.UUID, limit int) ([]Product, error)

	// ExistsByCode checks if a product with the given code exists
	ExistsByCode(ctx context.Context, code string) (bool, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// TouchUpdatedAt forces the modification timestamp, used to cycle
	// coverage across pricing runs
	TouchUpdatedAt(ctx context.Context, id uuid.UUID, at time.Time) error

	// Count counts all products
	Count(ctx context.Context) (int64, error)
}

// CategoryRepository defines the interface for category persistence
type CategoryRepository interface {
	// FindByID finds a category by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)

	// FindByName finds a category by its exact name
	FindByName(ctx context.Context, name string) (*Category, error)

	// Save creates or updates a category
	Save(ctx context.Context, category *Category) error
}

// TaxRateRepository defines the interface for tax rate persistence
type TaxRateRepository interface {
	// FindByRateAndDirection finds a tax by exact rate and direction
	FindByRateAndDirection(ctx context.Context, rate decimal.Decimal, direction TaxDirection) (*TaxRate, error)

	// Save creates or updates a tax rate
	Save(ctx context.Context, tax *TaxRate) error
}
