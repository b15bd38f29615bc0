// Package pricing keeps local product prices and supplier stock aligned
// with the distributor's live pricing and availability endpoints.
package pricing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/erp/connector/internal/domain/catalog"
	"github.com/erp/connector/internal/domain/partner"
	"github.com/erp/connector/internal/domain/shared"
	"github.com/erp/connector/internal/infrastructure/config"
	"github.com/erp/connector/internal/infrastructure/esprinet"
)

// Lookup is the slice of the distributor API the refresh needs
type Lookup interface {
	GetPricing(ctx context.Context, esprinetCode, customerCode string) ([]esprinet.ProductPricing, error)
	GetAvailability(ctx context.Context, esprinetCode, customerCode string) ([]esprinet.ProductAvailability, error)
}

// Result summarizes one refresh run
type Result struct {
	Checked int
	Updated int
	Skipped int
	Errored int
}

// Service refreshes prices and stock for distributor-sourced products.
// Each run covers one batch of the least recently refreshed products;
// repeated runs cycle through the whole linked catalog.
type Service struct {
	products  catalog.ProductRepository
	links     partner.SupplierLinkRepository
	suppliers partner.SupplierRepository
	lookup    Lookup
	margin    decimal.Decimal
	batchSize int
	logger    *zap.Logger
}

// NewService creates a pricing refresh service
func NewService(
	products catalog.ProductRepository,
	links partner.SupplierLinkRepository,
	suppliers partner.SupplierRepository,
	lookup Lookup,
	cfg config.SyncConfig,
	logger *zap.Logger,
) *Service {
	return &Service{
		products:  products,
		links:     links,
		suppliers: suppliers,
		lookup:    lookup,
		margin:    decimal.NewFromFloat(cfg.SaleMargin),
		batchSize: cfg.PricingBatchSize,
		logger:    logger.Named("pricing.service"),
	}
}

// Run refreshes one batch of products. Per-product failures are logged
// and counted; only authentication failures abort the run since every
// remaining product would fail the same way.
func (s *Service) Run(ctx context.Context) (*Result, error) {
	result := &Result{}

	supplier, err := s.suppliers.FindByRef(ctx, partner.EsprinetSupplierRef)
	if errors.Is(err, shared.ErrNotFound) {
		s.logger.Info("No distributor supplier yet, nothing to refresh")
		return result, nil
	}
	if err != nil {
		return nil, err
	}

	products, err := s.products.FindOldestModified(ctx, supplier.ID, s.batchSize)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Refreshing distributor pricing", zap.Int("products", len(products)))

	for i := range products {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		product := &products[i]
		result.Checked++

		err := s.refreshProduct(ctx, product, supplier)
		switch {
		case errors.Is(err, shared.ErrAuthentication):
			return result, err
		case errors.Is(err, errSkipped):
			result.Skipped++
		case err != nil:
			s.logger.Error("Could not refresh product",
				zap.String("code", product.Code),
				zap.Error(err),
			)
			result.Errored++
		default:
			result.Updated++
		}
	}

	s.logger.Info("Pricing refresh completed",
		zap.Int("checked", result.Checked),
		zap.Int("updated", result.Updated),
		zap.Int("skipped", result.Skipped),
		zap.Int("errored", result.Errored),
	)

	return result, nil
}

// errSkipped marks products left untouched by a refresh pass
var errSkipped = errors.New("pricing: product skipped")

// refreshProduct pulls current pricing and availability for one product
// and persists any change. Untouched products get their refresh
// timestamp advanced so the batch window moves on.
func (s *Service) refreshProduct(ctx context.Context, product *catalog.Product, supplier *partner.Supplier) error {
	pricing, err := s.lookup.GetPricing(ctx, product.Code, "")
	if errors.Is(err, shared.ErrNotFound) {
		return s.skip(ctx, product)
	}
	if err != nil {
		return err
	}
	if len(pricing) == 0 {
		return s.skip(ctx, product)
	}

	cost := pricing[0].StandardDealerPrice.Add(pricing[0].Fees)
	if !cost.IsPositive() {
		s.logger.Warn("Distributor returned non-positive price, skipping",
			zap.String("code", product.Code),
			zap.String("price", cost.String()),
		)
		return s.skip(ctx, product)
	}

	availability, err := s.lookup.GetAvailability(ctx, product.Code, "")
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return err
	}
	stock := decimal.Zero
	if len(availability) > 0 {
		stock = availability[0].StockQty
	}

	sale := cost.Mul(decimal.NewFromInt(1).Add(s.margin.Div(decimal.NewFromInt(100))))

	changed := !product.CostPrice.Equal(cost) ||
		!product.SalePrice.Equal(sale) ||
		!product.SupplierStockQty.Equal(stock)
	if !changed {
		return s.skip(ctx, product)
	}

	if err := product.SetPrices(cost, sale); err != nil {
		return err
	}
	product.SetSupplierStock(stock, product.ShowSupplierStock)

	if err := s.products.Save(ctx, product); err != nil {
		return err
	}

	if err := s.refreshLink(ctx, product, supplier, cost); err != nil {
		return err
	}

	s.logger.Debug("Refreshed product",
		zap.String("code", product.Code),
		zap.String("cost", cost.String()),
		zap.String("stock", stock.String()),
	)

	return nil
}

// refreshLink propagates the new cost onto the supplier link
func (s *Service) refreshLink(ctx context.Context, product *catalog.Product, supplier *partner.Supplier, cost decimal.Decimal) error {
	link, err := s.links.FindByProductAndSupplier(ctx, product.ID, supplier.ID)
	if errors.Is(err, shared.ErrNotFound) {
		link, err = partner.NewSupplierLink(product.ID, supplier.ID, cost)
		if err != nil {
			return err
		}
		link.SetProductInfo(product.Code, product.Name)
		return s.links.Save(ctx, link)
	}
	if err != nil {
		return err
	}

	if link.Price.Equal(cost) {
		return nil
	}
	if err := link.RefreshPrice(cost); err != nil {
		return err
	}
	return s.links.Save(ctx, link)
}

// skip advances the product's refresh timestamp without other changes
func (s *Service) skip(ctx context.Context, product *catalog.Product) error {
	if err := s.products.TouchUpdatedAt(ctx, product.ID, time.Now()); err != nil {
		return fmt.Errorf("pricing: advance refresh window: %w", err)
	}
	return errSkipped
}
