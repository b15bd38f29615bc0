package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/erp/connector/internal/domain/shared"
)

// OrderStatus represents the status of a sales order
type OrderStatus string

const (
	OrderStatusDraft     OrderStatus = "DRAFT"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusDraft, OrderStatusConfirmed, OrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// SalesOrderLine represents a line item in a sales order
type SalesOrderLine struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName string          `gorm:"type:varchar(200)"`
	ProductCode string          `gorm:"type:varchar(50)"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName returns the table name for GORM
func (SalesOrderLine) TableName() string {
	return "sales_order_lines"
}

// NewSalesOrderLine creates a new sales order line
func NewSalesOrderLine(orderID, productID uuid.UUID, productName, productCode string, quantity, unitPrice decimal.Decimal) (*SalesOrderLine, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	now := time.Now()
	return &SalesOrderLine{
		ID:          uuid.New(),
		OrderID:     orderID,
		ProductID:   productID,
		ProductName: productName,
		ProductCode: productCode,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// DeliveryAddress holds the shipping destination of an order
type DeliveryAddress struct {
	Name        string `gorm:"column:ship_name;type:varchar(200)"`
	Street      string `gorm:"column:ship_street;type:varchar(200)"`
	Street2     string `gorm:"column:ship_street2;type:varchar(200)"`
	City        string `gorm:"column:ship_city;type:varchar(100)"`
	Zip         string `gorm:"column:ship_zip;type:varchar(20)"`
	CountryCode string `gorm:"column:ship_country_code;type:varchar(2)"`
	Phone       string `gorm:"column:ship_phone;type:varchar(50)"`
	Email       string `gorm:"column:ship_email;type:varchar(200)"`
}

// SalesOrder represents a customer order.
// It is extended with the distributor transmission state: DistributorSent
// and DistributorOrderID are set exactly once, when transmission
// succeeds, and are never reset by this system.
type SalesOrder struct {
	shared.BaseAggregateRoot
	Number             string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Status             OrderStatus     `gorm:"type:varchar(20);not null;default:'DRAFT'"`
	Delivery           DeliveryAddress `gorm:"embedded"`
	Note               string          `gorm:"type:text"`
	DistributorSent    bool            `gorm:"not null;default:false"`
	DistributorOrderID string          `gorm:"type:varchar(100)"`
	Lines              []SalesOrderLine `gorm:"foreignKey:OrderID"`
}

// TableName returns the table name for GORM
func (SalesOrder) TableName() string {
	return "sales_orders"
}

// NewSalesOrder creates a new draft sales order
func NewSalesOrder(number string) (*SalesOrder, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Order number cannot be empty")
	}

	return &SalesOrder{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Number:            number,
		Status:            OrderStatusDraft,
	}, nil
}

// AddLine appends a line to the order; only allowed while draft
func (o *SalesOrder) AddLine(productID uuid.UUID, productName, productCode string, quantity, unitPrice decimal.Decimal) error {
	if o.Status != OrderStatusDraft {
		return shared.ErrInvalidState
	}

	line, err := NewSalesOrderLine(o.ID, productID, productName, productCode, quantity, unitPrice)
	if err != nil {
		return err
	}

	o.Lines = append(o.Lines, *line)
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// Confirm moves the order from draft to confirmed
func (o *SalesOrder) Confirm() error {
	if o.Status != OrderStatusDraft {
		return shared.NewDomainError("INVALID_TRANSITION", "Only draft orders can be confirmed")
	}
	if len(o.Lines) == 0 {
		return shared.NewDomainError("EMPTY_ORDER", "Cannot confirm an order without lines")
	}

	o.Status = OrderStatusConfirmed
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// Cancel cancels a draft order
func (o *SalesOrder) Cancel() error {
	if o.Status != OrderStatusDraft {
		return shared.NewDomainError("INVALID_TRANSITION", "Only draft orders can be cancelled")
	}

	o.Status = OrderStatusCancelled
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// MarkDistributorSent records a successful transmission to the
// distributor. It is a one-way transition.
func (o *SalesOrder) MarkDistributorSent(externalOrderID string) error {
	if o.DistributorSent {
		return shared.NewDomainError("ALREADY_SENT", "Order has already been sent to the distributor")
	}

	o.DistributorSent = true
	o.DistributorOrderID = externalOrderID
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// IsConfirmed returns true if the order is confirmed
func (o *SalesOrder) IsConfirmed() bool {
	return o.Status == OrderStatusConfirmed
}
