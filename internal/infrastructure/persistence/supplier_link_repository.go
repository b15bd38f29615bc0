package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/erp/connector/internal/domain/partner"
	"github.com/erp/connector/internal/domain/shared"
)

// GormSupplierLinkRepository implements partner.SupplierLinkRepository using GORM
type GormSupplierLinkRepository struct {
	db *gorm.DB
}

// NewGormSupplierLinkRepository creates a new GormSupplierLinkRepository
func NewGormSupplierLinkRepository(db *gorm.DB) *GormSupplierLinkRepository {
	return &GormSupplierLinkRepository{db: db}
}

// FindByProductAndSupplier finds the link for a (product, supplier) pair
func (r *GormSupplierLinkRepository) FindByProductAndSupplier(ctx context.Context, productID, supplierID uuid.UUID) (*partner.SupplierLink, error) {
	var link partner.SupplierLink
	if err := r.db.WithContext(ctx).
		Where("product_id = ? AND supplier_id = ?", productID, supplierID).
		First(&link).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &link, nil
}

// ExistsByProductAndSupplier reports whether a product is linked to the
// given supplier
func (r *GormSupplierLinkRepository) ExistsByProductAndSupplier(ctx context.Context, productID, supplierID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&partner.SupplierLink{}).
		Where("product_id = ? AND supplier_id = ?", productID, supplierID).
		Count(&count).Error
	return count > 0, err
}

// Save creates or updates a supplier link
func (r *GormSupplierLinkRepository) Save(ctx context.Context, link *partner.SupplierLink) error {
	return r.db.WithContext(ctx).Save(link).Error
}
