// Package catalogue implements the catalogue feed import: download,
// parse and reconcile the distributor's product list into the local
// catalog.
package catalogue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/erp/connector/internal/domain/catalog"
	"github.com/erp/connector/internal/domain/partner"
	"github.com/erp/connector/internal/domain/shared"
	"github.com/erp/connector/internal/infrastructure/config"
)

// Result summarizes one reconciliation run
type Result struct {
	Processed int
	Created   int
	Updated   int
	Skipped   int
	Errored   int
}

// Fetcher downloads the catalogue feed and hands back the local file
// path plus a cleanup func.
type Fetcher interface {
	Fetch(ctx context.Context) (string, func(), error)
}

// BatchWriter persists one commit batch of products together with
// their supplier links atomically, so a failed flush never leaves
// products committed without links.
type BatchWriter interface {
	SaveBatch(ctx context.Context, products []*catalog.Product, links []*partner.SupplierLink) error
}

// Reconciler imports a catalogue feed file into the product catalog
type Reconciler struct {
	products  catalog.ProductRepository
	links     partner.SupplierLinkRepository
	writer    BatchWriter
	resolver  *Resolver
	margin    decimal.Decimal
	policy    config.CataloguePolicy
	batchSize int
	logger    *zap.Logger
}

// NewReconciler creates a catalogue reconciler
func NewReconciler(
	products catalog.ProductRepository,
	links partner.SupplierLinkRepository,
	writer BatchWriter,
	resolver *Resolver,
	cfg config.SyncConfig,
	logger *zap.Logger,
) *Reconciler {
	return &Reconciler{
		products:  products,
		links:     links,
		writer:    writer,
		resolver:  resolver,
		margin:    decimal.NewFromFloat(cfg.SaleMargin),
		policy:    cfg.CataloguePolicy,
		batchSize: cfg.CommitBatchSize,
		logger:    logger.Named("catalogue.reconciler"),
	}
}

// batch accumulates products and supplier links between flushes.
// Pending products are indexed by code and pending links by product id
// so duplicate feed entries inside one batch hit the pending records
// instead of creating twice.
type batch struct {
	products      []*catalog.Product
	links         []*partner.SupplierLink
	byCode        map[string]*catalog.Product
	linkByProduct map[uuid.UUID]*partner.SupplierLink
}

func newBatch() *batch {
	return &batch{
		byCode:        make(map[string]*catalog.Product),
		linkByProduct: make(map[uuid.UUID]*partner.SupplierLink),
	}
}

func (b *batch) add(product *catalog.Product, link *partner.SupplierLink) {
	if _, pending := b.byCode[product.Code]; !pending {
		b.products = append(b.products, product)
		b.byCode[product.Code] = product
	}
	if link == nil {
		return
	}
	if _, pending := b.linkByProduct[link.ProductID]; !pending {
		b.links = append(b.links, link)
		b.linkByProduct[link.ProductID] = link
	}
}

func (b *batch) empty() bool { return len(b.products) == 0 }

// Reconcile imports the feed file at path. Records that cannot be
// processed are logged and counted, never fatal; only an unreadable or
// non-array file aborts the run.
func (r *Reconciler) Reconcile(ctx context.Context, path string) (*Result, error) {
	result := &Result{}

	info, err := os.Stat(path)
	if err != nil {
		r.logger.Error("Feed file does not exist", zap.String("file", path), zap.Error(err))
		return result, nil
	}
	if info.Size() == 0 {
		r.logger.Error("Feed file is empty", zap.String("file", path))
		return result, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		r.logger.Error("Feed file is not readable", zap.String("file", path), zap.Error(err))
		return result, nil
	}

	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: feed is not a JSON array: %v", shared.ErrFormat, err)
	}

	r.logger.Info("Reconciling catalogue feed",
		zap.String("file", path),
		zap.Int("records", len(records)),
	)

	// A zero-record feed commits nothing, not even the supplier record
	if len(records) == 0 {
		return result, nil
	}

	supplier, err := r.resolver.ResolveSupplier(ctx)
	if err != nil {
		return nil, err
	}

	pending := newBatch()
	sinceFlush := 0

	for i, raw := range records {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		var record FeedRecord
		if err := json.Unmarshal(raw, &record); err != nil {
			r.logger.Error("Undecodable feed record", zap.Int("index", i), zap.Error(err))
			result.Errored++
		} else {
			outcome, err := r.reconcileRecord(ctx, &record, supplier, pending)
			switch {
			case err != nil:
				r.logger.Error("Error processing feed record",
					zap.Int("index", i),
					zap.String("code", record.Code()),
					zap.Error(err),
				)
				result.Errored++
			case outcome == outcomeCreated:
				result.Created++
			case outcome == outcomeUpdated:
				result.Updated++
			default:
				result.Skipped++
			}
		}
		result.Processed++
		sinceFlush++

		// The checkpoint counts processed records, not pending writes,
		// so skip- and error-heavy feeds still commit on schedule.
		if sinceFlush >= r.batchSize {
			if err := r.flush(ctx, pending); err != nil {
				return result, err
			}
			pending = newBatch()
			sinceFlush = 0
			r.logger.Info("Processed feed records", zap.Int("count", result.Processed))
		}
	}

	if err := r.flush(ctx, pending); err != nil {
		return result, err
	}

	r.logger.Info("Catalogue reconciliation completed",
		zap.Int("processed", result.Processed),
		zap.Int("created", result.Created),
		zap.Int("updated", result.Updated),
		zap.Int("skipped", result.Skipped),
		zap.Int("errored", result.Errored),
	)

	return result, nil
}

type outcome int

const (
	outcomeSkipped outcome = iota
	outcomeCreated
	outcomeUpdated
)

// reconcileRecord processes one feed record against the catalog
func (r *Reconciler) reconcileRecord(ctx context.Context, record *FeedRecord, supplier *partner.Supplier, pending *batch) (outcome, error) {
	code := strings.ToUpper(record.Code())
	if code == "" {
		r.logger.Warn("Feed record without SKU or part number, skipping")
		return outcomeSkipped, nil
	}

	product, existing, err := r.lookup(ctx, code, record.EAN, pending)
	if err != nil {
		return outcomeSkipped, err
	}

	if existing && r.policy == config.CataloguePolicySkip {
		return outcomeSkipped, nil
	}

	if product == nil {
		product, err = catalog.NewProduct(code, record.Description)
		if err != nil {
			return outcomeSkipped, err
		}
	}

	if err := r.apply(ctx, product, record); err != nil {
		return outcomeSkipped, err
	}

	link, err := r.supplierLink(ctx, product, supplier, record, pending)
	if err != nil {
		return outcomeSkipped, err
	}

	pending.add(product, link)

	if existing {
		return outcomeUpdated, nil
	}
	return outcomeCreated, nil
}

// lookup finds the product by code or barcode, checking the pending
// batch before the database.
func (r *Reconciler) lookup(ctx context.Context, code, barcode string, pending *batch) (*catalog.Product, bool, error) {
	if product, ok := pending.byCode[code]; ok {
		return product, true, nil
	}

	product, err := r.products.FindByCodeOrBarcode(ctx, code, barcode)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return product, true, nil
}

// apply copies the feed record onto the product
func (r *Reconciler) apply(ctx context.Context, product *catalog.Product, record *FeedRecord) error {
	if record.Description != "" {
		if err := product.Update(record.Description, record.ExtendedDescription); err != nil {
			return err
		}
	}

	if record.EAN != "" {
		if err := product.SetBarcode(record.EAN); err != nil {
			return err
		}
	}

	product.SetPartNumber(record.PartNumber)

	cost := record.Cost()
	sale := cost.Mul(decimal.NewFromInt(1).Add(r.margin.Div(decimal.NewFromInt(100))))
	if err := product.SetPrices(cost, sale); err != nil {
		return err
	}

	product.SetVolume(record.Volume())

	if weight, ok := record.Weight(); ok {
		if err := product.SetWeight(weight); err != nil {
			return err
		}
	} else if len(record.GrossWeight) > 0 && string(record.GrossWeight) != "null" {
		r.logger.Warn("Invalid weight value",
			zap.String("code", product.Code),
			zap.ByteString("weight", record.GrossWeight),
		)
	}

	product.SetSupplierStock(record.Stock(), true)

	if record.Grouping != "" {
		category, err := r.resolver.ResolveCategory(ctx, record.Grouping)
		if err != nil {
			return err
		}
		product.SetCategory(&category.ID)
	}

	if record.VatRate.Valid {
		purchaseTax, err := r.resolver.ResolveTax(ctx, record.VatRate.Decimal, catalog.TaxDirectionPurchase)
		if err != nil {
			return err
		}
		saleTax, err := r.resolver.ResolveTax(ctx, record.VatRate.Decimal, catalog.TaxDirectionSale)
		if err != nil {
			return err
		}
		product.SetTaxes(&purchaseTax.ID, &saleTax.ID)
	}

	return nil
}

// supplierLink refreshes or creates the product's supplier link,
// checking the pending batch before the database so a duplicate feed
// entry refreshes the unflushed link instead of creating a second one
// for the same (product, supplier) pair.
func (r *Reconciler) supplierLink(ctx context.Context, product *catalog.Product, supplier *partner.Supplier, record *FeedRecord, pending *batch) (*partner.SupplierLink, error) {
	cost := record.Cost()

	link, ok := pending.linkByProduct[product.ID]
	if !ok {
		var err error
		link, err = r.links.FindByProductAndSupplier(ctx, product.ID, supplier.ID)
		switch {
		case errors.Is(err, shared.ErrNotFound):
			link, err = partner.NewSupplierLink(product.ID, supplier.ID, cost)
			if err != nil {
				return nil, err
			}
			link.SetProductInfo(product.Code, product.Name)
			return link, nil
		case err != nil:
			return nil, err
		}
	}

	if err := link.RefreshPrice(cost); err != nil {
		return nil, err
	}
	link.SetProductInfo(product.Code, product.Name)
	return link, nil
}

// flush persists the pending batch in one transaction
func (r *Reconciler) flush(ctx context.Context, pending *batch) error {
	if pending.empty() {
		return nil
	}
	if err := r.writer.SaveBatch(ctx, pending.products, pending.links); err != nil {
		return fmt.Errorf("catalogue: flush batch: %w", err)
	}
	return nil
}

// Importer ties the fetcher and the reconciler into the full
// download-and-import operation.
type Importer struct {
	fetcher    Fetcher
	reconciler *Reconciler
	logger     *zap.Logger
}

// NewImporter creates the full catalogue import operation
func NewImporter(fetcher Fetcher, reconciler *Reconciler, logger *zap.Logger) *Importer {
	return &Importer{
		fetcher:    fetcher,
		reconciler: reconciler,
		logger:     logger.Named("catalogue.importer"),
	}
}

// Run downloads the feed, reconciles it and removes the downloaded file
func (i *Importer) Run(ctx context.Context) (*Result, error) {
	path, cleanup, err := i.fetcher.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	return i.reconciler.Reconcile(ctx, path)
}
