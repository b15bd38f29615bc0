package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/erp/connector/internal/domain/catalog"
	"github.com/erp/connector/internal/domain/partner"
)

// GormCatalogueWriter persists catalogue commit batches. Products and
// their supplier links land in one transaction so a failed flush never
// leaves products committed without links.
type GormCatalogueWriter struct {
	db *gorm.DB
}

// NewGormCatalogueWriter creates a new GormCatalogueWriter
func NewGormCatalogueWriter(db *gorm.DB) *GormCatalogueWriter {
	return &GormCatalogueWriter{db: db}
}

// SaveBatch creates or updates the batch atomically
func (w *GormCatalogueWriter) SaveBatch(ctx context.Context, products []*catalog.Product, links []*partner.SupplierLink) error {
	if len(products) == 0 && len(links) == 0 {
		return nil
	}
	return w.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, product := range products {
			if err := tx.Save(product).Error; err != nil {
				return fmt.Errorf("save product %s: %w", product.Code, err)
			}
		}
		for _, link := range links {
			if err := tx.Save(link).Error; err != nil {
				return fmt.Errorf("save supplier link %s: %w", link.ProductCode, err)
			}
		}
		return nil
	})
}
