package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/erp/connector/internal/domain/catalog"
	"github.com/erp/connector/internal/domain/partner"
	"github.com/erp/connector/internal/domain/shared"
	"github.com/erp/connector/internal/domain/trade"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&catalog.Product{},
		&catalog.Category{},
		&catalog.TaxRate{},
		&partner.Supplier{},
		&partner.SupplierLink{},
		&trade.SalesOrder{},
		&trade.SalesOrderLine{},
	))

	return db
}

func mustProduct(t *testing.T, db *gorm.DB, code, barcode string) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(code, "Product "+code)
	require.NoError(t, err)
	if barcode != "" {
		require.NoError(t, product.SetBarcode(barcode))
	}
	require.NoError(t, NewGormProductRepository(db).Save(context.Background(), product))
	return product
}

func TestGormProductRepository_FindByCodeOrBarcode(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	byCode := mustProduct(t, db, "ESP-001", "1111111111111")
	byBarcode := mustProduct(t, db, "ESP-002", "2222222222222")

	t.Run("matches by code", func(t *testing.T) {
		found, err := repo.FindByCodeOrBarcode(ctx, "ESP-001", "")
		require.NoError(t, err)
		assert.Equal(t, byCode.ID, found.ID)
	})

	t.Run("matches by barcode", func(t *testing.T) {
		found, err := repo.FindByCodeOrBarcode(ctx, "", "2222222222222")
		require.NoError(t, err)
		assert.Equal(t, byBarcode.ID, found.ID)
	})

	t.Run("code match wins over barcode match", func(t *testing.T) {
		// Keys point at different products: the SKU hit must win
		found, err := repo.FindByCodeOrBarcode(ctx, "ESP-002", "1111111111111")
		require.NoError(t, err)
		assert.Equal(t, byBarcode.ID, found.ID)
	})

	t.Run("no keys", func(t *testing.T) {
		_, err := repo.FindByCodeOrBarcode(ctx, "", "")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("unknown keys", func(t *testing.T) {
		_, err := repo.FindByCodeOrBarcode(ctx, "ESP-999", "9999999999999")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormProductRepository_FindOldestModified(t *testing.T) {
	db := newTestDB(t)
	products := NewGormProductRepository(db)
	links := NewGormSupplierLinkRepository(db)
	suppliers := NewGormSupplierRepository(db)
	ctx := context.Background()

	supplier, err := partner.NewSupplier(partner.EsprinetSupplierRef, "Esprinet")
	require.NoError(t, err)
	require.NoError(t, suppliers.Save(ctx, supplier))

	newest := mustProduct(t, db, "ESP-001", "")
	oldest := mustProduct(t, db, "ESP-002", "")
	// Unlinked products stay outside the refresh window
	mustProduct(t, db, "ESP-003", "")

	for _, p := range []*catalog.Product{newest, oldest} {
		link, err := partner.NewSupplierLink(p.ID, supplier.ID, decimal.NewFromInt(10))
		require.NoError(t, err)
		require.NoError(t, links.Save(ctx, link))
	}

	// Push one product far into the past
	require.NoError(t, products.TouchUpdatedAt(ctx, oldest.ID, time.Now().Add(-48*time.Hour)))

	batch, err := products.FindOldestModified(ctx, supplier.ID, 10)
	require.NoError(t, err)
	require.Len(t, batch, 2)
	assert.Equal(t, "ESP-002", batch[0].Code)
	assert.Equal(t, "ESP-001", batch[1].Code)

	limited, err := products.FindOldestModified(ctx, supplier.ID, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "ESP-002", limited[0].Code)
}

func TestGormProductRepository_TouchUpdatedAt(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	product := mustProduct(t, db, "ESP-001", "")
	at := time.Now().Add(-time.Hour).Truncate(time.Second)

	require.NoError(t, repo.TouchUpdatedAt(ctx, product.ID, at))

	found, err := repo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.WithinDuration(t, at, found.UpdatedAt, time.Second)

	err = repo.TouchUpdatedAt(ctx, uuid.New(), at)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormCatalogueWriter_SaveBatch(t *testing.T) {
	db := newTestDB(t)
	writer := NewGormCatalogueWriter(db)
	products := NewGormProductRepository(db)
	ctx := context.Background()

	supplier, err := partner.NewSupplier(partner.EsprinetSupplierRef, "Esprinet")
	require.NoError(t, err)
	require.NoError(t, NewGormSupplierRepository(db).Save(ctx, supplier))

	t.Run("persists products with their supplier links", func(t *testing.T) {
		first, err := catalog.NewProduct("ESP-001", "Mouse")
		require.NoError(t, err)
		second, err := catalog.NewProduct("ESP-002", "Keyboard")
		require.NoError(t, err)

		firstLink, err := partner.NewSupplierLink(first.ID, supplier.ID, decimal.NewFromInt(11))
		require.NoError(t, err)
		secondLink, err := partner.NewSupplierLink(second.ID, supplier.ID, decimal.NewFromInt(25))
		require.NoError(t, err)

		require.NoError(t, writer.SaveBatch(ctx,
			[]*catalog.Product{first, second},
			[]*partner.SupplierLink{firstLink, secondLink},
		))

		count, err := products.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)

		found, err := NewGormSupplierLinkRepository(db).FindByProductAndSupplier(ctx, first.ID, supplier.ID)
		require.NoError(t, err)
		assert.True(t, found.Price.Equal(decimal.NewFromInt(11)))

		require.NoError(t, writer.SaveBatch(ctx, nil, nil))
	})

	t.Run("rolls back products when a link fails", func(t *testing.T) {
		product, err := catalog.NewProduct("ESP-003", "Monitor")
		require.NoError(t, err)

		// Two links for the same (product, supplier) pair violate the
		// unique index; the products saved in the same batch must roll
		// back with them.
		one, err := partner.NewSupplierLink(product.ID, supplier.ID, decimal.NewFromInt(99))
		require.NoError(t, err)
		two, err := partner.NewSupplierLink(product.ID, supplier.ID, decimal.NewFromInt(88))
		require.NoError(t, err)

		err = writer.SaveBatch(ctx,
			[]*catalog.Product{product},
			[]*partner.SupplierLink{one, two},
		)
		require.Error(t, err)

		_, err = products.FindByCodeOrBarcode(ctx, "ESP-003", "")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormTaxRateRepository_FindByRateAndDirection(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormTaxRateRepository(db)
	ctx := context.Background()

	sale, err := catalog.NewTaxRate(decimal.NewFromInt(22), catalog.TaxDirectionSale)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, sale))

	purchase, err := catalog.NewTaxRate(decimal.NewFromInt(22), catalog.TaxDirectionPurchase)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, purchase))

	found, err := repo.FindByRateAndDirection(ctx, decimal.NewFromInt(22), catalog.TaxDirectionSale)
	require.NoError(t, err)
	assert.Equal(t, sale.ID, found.ID)

	found, err = repo.FindByRateAndDirection(ctx, decimal.NewFromInt(22), catalog.TaxDirectionPurchase)
	require.NoError(t, err)
	assert.Equal(t, purchase.ID, found.ID)

	_, err = repo.FindByRateAndDirection(ctx, decimal.NewFromInt(10), catalog.TaxDirectionSale)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormCategoryRepository_FindByName(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormCategoryRepository(db)
	ctx := context.Background()

	category, err := catalog.NewCategory("Notebooks")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, category))

	found, err := repo.FindByName(ctx, "Notebooks")
	require.NoError(t, err)
	assert.Equal(t, category.ID, found.ID)

	_, err = repo.FindByName(ctx, "Printers")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormSupplierRepository_FindByRef(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormSupplierRepository(db)
	ctx := context.Background()

	supplier, err := partner.NewSupplier(partner.EsprinetSupplierRef, "Esprinet")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, supplier))

	found, err := repo.FindByRef(ctx, partner.EsprinetSupplierRef)
	require.NoError(t, err)
	assert.Equal(t, supplier.ID, found.ID)
	assert.Equal(t, "Esprinet", found.Name)

	_, err = repo.FindByRef(ctx, "OTHER_SUPPLIER")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormSupplierLinkRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormSupplierLinkRepository(db)
	ctx := context.Background()

	productID := uuid.New()
	supplierID := uuid.New()

	link, err := partner.NewSupplierLink(productID, supplierID, decimal.NewFromInt(11))
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, link))

	found, err := repo.FindByProductAndSupplier(ctx, productID, supplierID)
	require.NoError(t, err)
	assert.Equal(t, link.ID, found.ID)
	assert.True(t, found.Price.Equal(decimal.NewFromInt(11)))

	exists, err := repo.ExistsByProductAndSupplier(ctx, productID, supplierID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByProductAndSupplier(ctx, productID, uuid.New())
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = repo.FindByProductAndSupplier(ctx, uuid.New(), supplierID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormSalesOrderRepository_SaveAndLoadLines(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormSalesOrderRepository(db)
	ctx := context.Background()

	order, err := trade.NewSalesOrder("SO-1001")
	require.NoError(t, err)
	require.NoError(t, order.AddLine(uuid.New(), "Mouse", "ESP-001",
		decimal.NewFromInt(2), decimal.RequireFromString("13.20")))
	require.NoError(t, order.AddLine(uuid.New(), "Keyboard", "ESP-002",
		decimal.NewFromInt(1), decimal.RequireFromString("45.90")))

	require.NoError(t, repo.Save(ctx, order))

	found, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "SO-1001", found.Number)
	require.Len(t, found.Lines, 2)

	// The sent flag round-trips through an update
	require.NoError(t, found.Confirm())
	require.NoError(t, found.MarkDistributorSent("EXT-42"))
	require.NoError(t, repo.Save(ctx, found))

	again, err := repo.FindByNumber(ctx, "SO-1001")
	require.NoError(t, err)
	assert.True(t, again.DistributorSent)
	assert.Equal(t, "EXT-42", again.DistributorOrderID)
	require.Len(t, again.Lines, 2)

	_, err = repo.FindByNumber(ctx, "SO-9999")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
