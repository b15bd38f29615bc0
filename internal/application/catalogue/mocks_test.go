package catalogue

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/erp/connector/internal/domain/catalog"
	"github.com/erp/connector/internal/domain/partner"
)

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByCode(ctx context.Context, code string) (*catalog.Product, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByCodeOrBarcode(ctx context.Context, code, barcode string) (*catalog.Product, error) {
	args := m.Called(ctx, code, barcode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindOldestModified(ctx context.Context, supplierID uuid.UUID, limit int) ([]catalog.Product, error) {
	args := m.Called(ctx, supplierID, limit)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) TouchUpdatedAt(ctx context.Context, id uuid.UUID, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockCategoryRepository is a mock implementation of catalog.CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindByName(ctx context.Context, name string) (*catalog.Category, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) Save(ctx context.Context, category *catalog.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

// MockTaxRateRepository is a mock implementation of catalog.TaxRateRepository
type MockTaxRateRepository struct {
	mock.Mock
}

func (m *MockTaxRateRepository) FindByRateAndDirection(ctx context.Context, rate decimal.Decimal, direction catalog.TaxDirection) (*catalog.TaxRate, error) {
	args := m.Called(ctx, rate, direction)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.TaxRate), args.Error(1)
}

func (m *MockTaxRateRepository) Save(ctx context.Context, tax *catalog.TaxRate) error {
	args := m.Called(ctx, tax)
	return args.Error(0)
}

// MockSupplierRepository is a mock implementation of partner.SupplierRepository
type MockSupplierRepository struct {
	mock.Mock
}

func (m *MockSupplierRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Supplier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) FindByRef(ctx context.Context, ref string) (*partner.Supplier, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) Save(ctx context.Context, supplier *partner.Supplier) error {
	args := m.Called(ctx, supplier)
	return args.Error(0)
}

// MockSupplierLinkRepository is a mock implementation of partner.SupplierLinkRepository
type MockSupplierLinkRepository struct {
	mock.Mock
}

func (m *MockSupplierLinkRepository) FindByProductAndSupplier(ctx context.Context, productID, supplierID uuid.UUID) (*partner.SupplierLink, error) {
	args := m.Called(ctx, productID, supplierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.SupplierLink), args.Error(1)
}

func (m *MockSupplierLinkRepository) ExistsByProductAndSupplier(ctx context.Context, productID, supplierID uuid.UUID) (bool, error) {
	args := m.Called(ctx, productID, supplierID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSupplierLinkRepository) Save(ctx context.Context, link *partner.SupplierLink) error {
	args := m.Called(ctx, link)
	return args.Error(0)
}

// MockBatchWriter is a mock implementation of BatchWriter
type MockBatchWriter struct {
	mock.Mock
}

func (m *MockBatchWriter) SaveBatch(ctx context.Context, products []*catalog.Product, links []*partner.SupplierLink) error {
	args := m.Called(ctx, products, links)
	return args.Error(0)
}
