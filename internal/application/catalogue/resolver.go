package catalogue

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/erp/connector/internal/domain/catalog"
	"github.com/erp/connector/internal/domain/partner"
	"github.com/erp/connector/internal/domain/shared"
)

// Resolver finds or creates the reference records a catalogue import
// hangs products on: categories, tax rates and the distributor's
// supplier card. Hits are memoized for the lifetime of the resolver, so
// one instance covers one import run.
type Resolver struct {
	categories catalog.CategoryRepository
	taxes      catalog.TaxRateRepository
	suppliers  partner.SupplierRepository
	logger     *zap.Logger

	categoryCache map[string]*catalog.Category
	taxCache      map[string]*catalog.TaxRate
}

// NewResolver creates a resolver for one import run
func NewResolver(
	categories catalog.CategoryRepository,
	taxes catalog.TaxRateRepository,
	suppliers partner.SupplierRepository,
	logger *zap.Logger,
) *Resolver {
	return &Resolver{
		categories:    categories,
		taxes:         taxes,
		suppliers:     suppliers,
		logger:        logger.Named("catalogue.resolver"),
		categoryCache: make(map[string]*catalog.Category),
		taxCache:      make(map[string]*catalog.TaxRate),
	}
}

// ResolveCategory returns the category with the given name, creating it
// when absent.
func (r *Resolver) ResolveCategory(ctx context.Context, name string) (*catalog.Category, error) {
	if cached, ok := r.categoryCache[name]; ok {
		return cached, nil
	}

	category, err := r.categories.FindByName(ctx, name)
	if errors.Is(err, shared.ErrNotFound) {
		category, err = catalog.NewCategory(name)
		if err != nil {
			return nil, err
		}
		if err := r.categories.Save(ctx, category); err != nil {
			return nil, err
		}
		r.logger.Info("Created product category", zap.String("name", name))
	} else if err != nil {
		return nil, err
	}

	r.categoryCache[name] = category
	return category, nil
}

// ResolveTax returns the tax with the given rate and direction,
// creating it when absent.
func (r *Resolver) ResolveTax(ctx context.Context, rate decimal.Decimal, direction catalog.TaxDirection) (*catalog.TaxRate, error) {
	key := rate.String() + "/" + string(direction)
	if cached, ok := r.taxCache[key]; ok {
		return cached, nil
	}

	tax, err := r.taxes.FindByRateAndDirection(ctx, rate, direction)
	if errors.Is(err, shared.ErrNotFound) {
		tax, err = catalog.NewTaxRate(rate, direction)
		if err != nil {
			return nil, err
		}
		if err := r.taxes.Save(ctx, tax); err != nil {
			return nil, err
		}
		r.logger.Info("Created tax rate",
			zap.String("name", tax.Name),
			zap.String("direction", string(direction)),
		)
	} else if err != nil {
		return nil, err
	}

	r.taxCache[key] = tax
	return tax, nil
}

// ResolveSupplier returns the distributor's supplier card, creating it
// when absent.
func (r *Resolver) ResolveSupplier(ctx context.Context) (*partner.Supplier, error) {
	supplier, err := r.suppliers.FindByRef(ctx, partner.EsprinetSupplierRef)
	if errors.Is(err, shared.ErrNotFound) {
		supplier, err = partner.NewSupplier(partner.EsprinetSupplierRef, "Esprinet")
		if err != nil {
			return nil, err
		}
		if err := r.suppliers.Save(ctx, supplier); err != nil {
			return nil, err
		}
		r.logger.Info("Created distributor supplier", zap.String("ref", supplier.Ref))
		return supplier, nil
	}
	return supplier, err
}
