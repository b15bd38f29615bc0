package persistence

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/erp/connector/internal/domain/catalog"
	"github.com/erp/connector/internal/domain/shared"
)

// GormTaxRateRepository implements catalog.TaxRateRepository using GORM
type GormTaxRateRepository struct {
	db *gorm.DB
}

// NewGormTaxRateRepository creates a new GormTaxRateRepository
func NewGormTaxRateRepository(db *gorm.DB) *GormTaxRateRepository {
	return &GormTaxRateRepository{db: db}
}

// FindByRateAndDirection finds a tax by exact rate and direction
func (r *GormTaxRateRepository) FindByRateAndDirection(ctx context.Context, rate decimal.Decimal, direction catalog.TaxDirection) (*catalog.TaxRate, error) {
	var tax catalog.TaxRate
	if err := r.db.WithContext(ctx).
		Where("rate = ? AND direction = ?", rate, direction).
		First(&tax).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &tax, nil
}

// Save creates or updates a tax rate
func (r *GormTaxRateRepository) Save(ctx context.Context, tax *catalog.TaxRate) error {
	return r.db.WithContext(ctx).Save(tax).Error
}
