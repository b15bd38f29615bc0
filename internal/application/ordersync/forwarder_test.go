package ordersync

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/erp/connector/internal/domain/partner"
	"github.com/erp/connector/internal/domain/shared"
	"github.com/erp/connector/internal/domain/trade"
	"github.com/erp/connector/internal/infrastructure/esprinet"
)

type MockSalesOrderRepository struct {
	mock.Mock
}

func (m *MockSalesOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.SalesOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.SalesOrder), args.Error(1)
}

func (m *MockSalesOrderRepository) FindByNumber(ctx context.Context, number string) (*trade.SalesOrder, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.SalesOrder), args.Error(1)
}

func (m *MockSalesOrderRepository) Save(ctx context.Context, order *trade.SalesOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

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

type MockSender struct {
	mock.Mock
}

func (m *MockSender) Create(ctx context.Context, order esprinet.OrderSubmission) (*esprinet.OrderSubmissionResult, error) {
	args := m.Called(ctx, order)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*esprinet.OrderSubmissionResult), args.Error(1)
}

type forwarderFixture struct {
	orders    *MockSalesOrderRepository
	links     *MockSupplierLinkRepository
	suppliers *MockSupplierRepository
	sender    *MockSender
	forwarder *Forwarder
	supplier  *partner.Supplier
}

func newForwarderFixture(t *testing.T) *forwarderFixture {
	t.Helper()

	f := &forwarderFixture{
		orders:    new(MockSalesOrderRepository),
		links:     new(MockSupplierLinkRepository),
		suppliers: new(MockSupplierRepository),
		sender:    new(MockSender),
	}

	supplier, err := partner.NewSupplier(partner.EsprinetSupplierRef, "Esprinet")
	require.NoError(t, err)
	f.supplier = supplier

	f.forwarder = NewForwarder(f.orders, f.links, f.suppliers, f.sender, zap.NewNop())

	return f
}

func newConfirmedOrder(t *testing.T, productIDs ...uuid.UUID) *trade.SalesOrder {
	t.Helper()

	order, err := trade.NewSalesOrder("SO-1001")
	require.NoError(t, err)
	order.Delivery = trade.DeliveryAddress{
		Name:        "Mario Rossi",
		Street:      "Via Roma 1",
		City:        "Milano",
		Zip:         "20100",
		CountryCode: "IT",
	}
	for i, id := range productIDs {
		require.NoError(t, order.AddLine(id, "Product", "ESP-00"+string(rune('1'+i)),
			decimal.NewFromInt(2), decimal.RequireFromString("13.20")))
	}
	require.NoError(t, order.Confirm())
	return order
}

func TestForwarder_SendsDistributorOrder(t *testing.T) {
	f := newForwarderFixture(t)
	productID := uuid.New()
	order := newConfirmedOrder(t, productID)

	f.suppliers.On("FindByRef", mock.Anything, partner.EsprinetSupplierRef).Return(f.supplier, nil)
	f.links.On("ExistsByProductAndSupplier", mock.Anything, productID, f.supplier.ID).Return(true, nil)

	var sent esprinet.OrderSubmission
	f.sender.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { sent = args.Get(1).(esprinet.OrderSubmission) }).
		Return(&esprinet.OrderSubmissionResult{Success: true, OrderID: "EXT-42"}, nil)
	f.orders.On("Save", mock.Anything, order).Return(nil)

	result := f.forwarder.HandleConfirmed(context.Background(), order)

	assert.True(t, result.Attempted)
	assert.True(t, result.Sent)
	assert.Equal(t, "EXT-42", result.ExternalOrderID)
	assert.NoError(t, result.Err)

	assert.True(t, order.DistributorSent)
	assert.Equal(t, "EXT-42", order.DistributorOrderID)

	assert.Equal(t, "SO-1001", sent.CustomerReference)
	assert.Equal(t, "Mario Rossi", sent.DeliveryAddress.Name)
	assert.Equal(t, "IT", sent.DeliveryAddress.CountryCode)
	require.Len(t, sent.Lines, 1)
	assert.Equal(t, "ESP-001", sent.Lines[0].ProductCode)
	assert.Equal(t, 2.0, sent.Lines[0].Quantity)
	assert.Equal(t, 13.2, sent.Lines[0].Price)
}

func TestForwarder_SkipsLinesWithoutDistributorLink(t *testing.T) {
	f := newForwarderFixture(t)
	linked := uuid.New()
	unlinked := uuid.New()
	order := newConfirmedOrder(t, linked, unlinked)

	f.suppliers.On("FindByRef", mock.Anything, partner.EsprinetSupplierRef).Return(f.supplier, nil)
	f.links.On("ExistsByProductAndSupplier", mock.Anything, linked, f.supplier.ID).Return(true, nil)
	f.links.On("ExistsByProductAndSupplier", mock.Anything, unlinked, f.supplier.ID).Return(false, nil)

	var sent esprinet.OrderSubmission
	f.sender.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { sent = args.Get(1).(esprinet.OrderSubmission) }).
		Return(&esprinet.OrderSubmissionResult{Success: true, OrderID: "EXT-43"}, nil)
	f.orders.On("Save", mock.Anything, order).Return(nil)

	result := f.forwarder.HandleConfirmed(context.Background(), order)

	assert.True(t, result.Sent)
	require.Len(t, sent.Lines, 1)
	assert.Equal(t, "ESP-001", sent.Lines[0].ProductCode)
}

func TestForwarder_LeavesOrderWithoutDistributorProducts(t *testing.T) {
	f := newForwarderFixture(t)
	productID := uuid.New()
	order := newConfirmedOrder(t, productID)

	f.suppliers.On("FindByRef", mock.Anything, partner.EsprinetSupplierRef).Return(f.supplier, nil)
	f.links.On("ExistsByProductAndSupplier", mock.Anything, productID, f.supplier.ID).Return(false, nil)

	result := f.forwarder.HandleConfirmed(context.Background(), order)

	assert.False(t, result.Attempted)
	assert.False(t, result.Sent)
	f.sender.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestForwarder_NoSupplierMeansNothingToSend(t *testing.T) {
	f := newForwarderFixture(t)
	order := newConfirmedOrder(t, uuid.New())

	f.suppliers.On("FindByRef", mock.Anything, partner.EsprinetSupplierRef).
		Return(nil, shared.ErrNotFound)

	result := f.forwarder.HandleConfirmed(context.Background(), order)

	assert.False(t, result.Attempted)
	f.sender.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestForwarder_AlreadySentShortCircuits(t *testing.T) {
	f := newForwarderFixture(t)
	order := newConfirmedOrder(t, uuid.New())
	require.NoError(t, order.MarkDistributorSent("EXT-7"))

	result := f.forwarder.HandleConfirmed(context.Background(), order)

	assert.False(t, result.Attempted)
	assert.Equal(t, "EXT-7", result.ExternalOrderID)
	f.suppliers.AssertNotCalled(t, "FindByRef", mock.Anything, mock.Anything)
	f.sender.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestForwarder_RejectionLeavesOrderUnsent(t *testing.T) {
	f := newForwarderFixture(t)
	productID := uuid.New()
	order := newConfirmedOrder(t, productID)

	f.suppliers.On("FindByRef", mock.Anything, partner.EsprinetSupplierRef).Return(f.supplier, nil)
	f.links.On("ExistsByProductAndSupplier", mock.Anything, productID, f.supplier.ID).Return(true, nil)
	f.sender.On("Create", mock.Anything, mock.Anything).
		Return(&esprinet.OrderSubmissionResult{Success: false, Message: "out of stock"}, nil)

	result := f.forwarder.HandleConfirmed(context.Background(), order)

	assert.True(t, result.Attempted)
	assert.False(t, result.Sent)
	assert.ErrorContains(t, result.Err, "out of stock")

	assert.False(t, order.DistributorSent)
	f.orders.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestForwarder_SendFailureLeavesOrderUnsent(t *testing.T) {
	f := newForwarderFixture(t)
	productID := uuid.New()
	order := newConfirmedOrder(t, productID)

	f.suppliers.On("FindByRef", mock.Anything, partner.EsprinetSupplierRef).Return(f.supplier, nil)
	f.links.On("ExistsByProductAndSupplier", mock.Anything, productID, f.supplier.ID).Return(true, nil)
	f.sender.On("Create", mock.Anything, mock.Anything).
		Return(nil, errors.New("connection reset"))

	result := f.forwarder.HandleConfirmed(context.Background(), order)

	assert.True(t, result.Attempted)
	assert.False(t, result.Sent)
	assert.Error(t, result.Err)
	assert.False(t, order.DistributorSent)
	f.orders.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}
