package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/erp/connector/internal/domain/catalog"
	"github.com/erp/connector/internal/domain/shared"
)

// GormProductRepository implements catalog.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product by its ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindByCode finds a product by its SKU code
func (r *GormProductRepository) FindByCode(ctx context.Context, code string) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).First(&product, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindByCodeOrBarcode finds a product matching either key. Ordering by
// the code match first makes the SKU hit win when both keys match
// different records.
func (r *GormProductRepository) FindByCodeOrBarcode(ctx context.Context, code, barcode string) (*catalog.Product, error) {
	query := r.db.WithContext(ctx)
	switch {
	case code != "" && barcode != "":
		query = query.Where("code = ? OR barcode = ?", code, barcode).
			Order(clause.OrderBy{Expression: clause.Expr{
				SQL:  "CASE WHEN code = ? THEN 0 ELSE 1 END",
				Vars: []interface{}{code},
			}})
	case code != "":
		query = query.Where("code = ?", code)
	case barcode != "":
		query = query.Where("barcode = ?", barcode)
	default:
		return nil, shared.ErrNotFound
	}

	var product catalog.Product
	if err := query.First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindOldestModified returns up to limit products linked to the given
// supplier, least recently updated first.
func (r *GormProductRepository) FindOldestModified(ctx context.Context, supplierID uuid.UUID, limit int) ([]catalog.Product, error) {
	var products []catalog.Product
	err := r.db.WithContext(ctx).
		Joins("JOIN supplier_links ON supplier_links.product_id = products.id").
		Where("supplier_links.supplier_id = ?", supplierID).
		Order("products.updated_at ASC").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// ExistsByCode checks if a product with the given code exists
func (r *GormProductRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&catalog.Product{}).
		Where("code = ?", code).
		Count(&count).Error
	return count > 0, err
}

// Save creates or updates a product
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

// TouchUpdatedAt forces the modification timestamp of one product
func (r *GormProductRepository) TouchUpdatedAt(ctx context.Context, id uuid.UUID, at time.Time) error {
	result := r.db.WithContext(ctx).Model(&catalog.Product{}).
		Where("id = ?", id).
		UpdateColumn("updated_at", at)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts all products
func (r *GormProductRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&catalog.Product{}).Count(&count).Error
	return count, err
}
