package partner

import (
	"context"

	"github.com/google/uuid"
)

// SupplierRepository defines the interface for supplier persistence.
// Lookups return shared.ErrNotFound on miss.
type SupplierRepository interface {
	// FindByID finds a supplier by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Supplier, error)

	// FindByRef finds a supplier by its external reference code
	FindByRef(ctx context.Context, ref string) (*Supplier, error)

	// Save creates or updates a supplier
	Save(ctx context.Context, supplier *Supplier) error
}

// SupplierLinkRepository defines the interface for supplier link persistence
type SupplierLinkRepository interface {
	// FindByProductAndSupplier finds the link for a (product, supplier) pair
	FindByProductAndSupplier(ctx context.Context, productID, supplierID uuid.UUID) (*SupplierLink, error)

	// ExistsByProductAndSupplier reports whether a product is linked to
	// the given supplier
	ExistsByProductAndSupplier(ctx context.Context, productID, supplierID uuid.UUID) (bool, error)

	// Save creates or updates a supplier link
	Save(ctx context.Context, link *SupplierLink) error
}
