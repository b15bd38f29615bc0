package trade

import (
	"context"

	"github.com/google/uuid"
)

// SalesOrderRepository defines the interface for sales order persistence.
// Lookups return shared.ErrNotFound on miss and load order lines.
type SalesOrderRepository interface {
	// FindByID finds an order by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*SalesOrder, error)

	// FindByNumber finds an order by its number
	FindByNumber(ctx context.Context, number string) (*SalesOrder, error)

	// Save creates or updates an order together with its lines
	Save(ctx context.Context, order *SalesOrder) error
}
