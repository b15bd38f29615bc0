// Package ordersync forwards confirmed sales orders that carry
// distributor products to the distributor's order endpoint.
package ordersync

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/erp/connector/internal/domain/partner"
	"github.com/erp/connector/internal/domain/shared"
	"github.com/erp/connector/internal/domain/trade"
	"github.com/erp/connector/internal/infrastructure/esprinet"
)

// Sender is the slice of the distributor API the forwarder needs
type Sender interface {
	Create(ctx context.Context, order esprinet.OrderSubmission) (*esprinet.OrderSubmissionResult, error)
}

// SendResult reports what happened to one forwarding attempt. A failed
// send never blocks order confirmation, so failures travel in the
// result instead of an error return.
type SendResult struct {
	Attempted       bool
	Sent            bool
	ExternalOrderID string
	Err             error
}

// Forwarder sends confirmed orders to the distributor
type Forwarder struct {
	orders    trade.SalesOrderRepository
	links     partner.SupplierLinkRepository
	suppliers partner.SupplierRepository
	sender    Sender
	logger    *zap.Logger
}

// NewForwarder creates an order forwarder
func NewForwarder(
	orders trade.SalesOrderRepository,
	links partner.SupplierLinkRepository,
	suppliers partner.SupplierRepository,
	sender Sender,
	logger *zap.Logger,
) *Forwarder {
	return &Forwarder{
		orders:    orders,
		links:     links,
		suppliers: suppliers,
		sender:    sender,
		logger:    logger.Named("ordersync.forwarder"),
	}
}

// HandleConfirmed forwards an order after confirmation. Orders already
// sent and orders without distributor products are left alone. The sent
// flag and external id are persisted only when the distributor accepts
// the order, and exactly once.
func (f *Forwarder) HandleConfirmed(ctx context.Context, order *trade.SalesOrder) SendResult {
	if order.DistributorSent {
		return SendResult{ExternalOrderID: order.DistributorOrderID}
	}

	supplier, err := f.suppliers.FindByRef(ctx, partner.EsprinetSupplierRef)
	if errors.Is(err, shared.ErrNotFound) {
		return SendResult{}
	}
	if err != nil {
		return SendResult{Attempted: true, Err: err}
	}

	lines, err := f.distributorLines(ctx, order, supplier)
	if err != nil {
		return SendResult{Attempted: true, Err: err}
	}
	if len(lines) == 0 {
		return SendResult{}
	}

	submission := esprinet.OrderSubmission{
		CustomerReference: order.Number,
		DeliveryAddress: esprinet.OrderAddress{
			Name:        order.Delivery.Name,
			Street:      order.Delivery.Street,
			Street2:     order.Delivery.Street2,
			City:        order.Delivery.City,
			Zip:         order.Delivery.Zip,
			CountryCode: order.Delivery.CountryCode,
			Phone:       order.Delivery.Phone,
			Email:       order.Delivery.Email,
		},
		Lines: lines,
		Notes: order.Note,
	}

	result, err := f.sender.Create(ctx, submission)
	if err != nil {
		f.logger.Error("Failed to send order to distributor",
			zap.String("number", order.Number),
			zap.Error(err),
		)
		return SendResult{Attempted: true, Err: err}
	}
	if !result.Success {
		err := fmt.Errorf("ordersync: distributor rejected order %s: %s", order.Number, result.Message)
		f.logger.Error("Distributor rejected order",
			zap.String("number", order.Number),
			zap.String("message", result.Message),
		)
		return SendResult{Attempted: true, Err: err}
	}

	if err := order.MarkDistributorSent(result.OrderID); err != nil {
		return SendResult{Attempted: true, Err: err}
	}
	if err := f.orders.Save(ctx, order); err != nil {
		return SendResult{Attempted: true, Err: err}
	}

	f.logger.Info("Order sent to distributor",
		zap.String("number", order.Number),
		zap.String("external_order_id", result.OrderID),
	)

	return SendResult{Attempted: true, Sent: true, ExternalOrderID: result.OrderID}
}

// distributorLines selects the order lines whose product is linked to
// the distributor supplier. Quantities are truncated to whole units.
func (f *Forwarder) distributorLines(ctx context.Context, order *trade.SalesOrder, supplier *partner.Supplier) ([]esprinet.OrderLine, error) {
	var lines []esprinet.OrderLine
	for _, line := range order.Lines {
		linked, err := f.links.ExistsByProductAndSupplier(ctx, line.ProductID, supplier.ID)
		if err != nil {
			return nil, err
		}
		if !linked {
			continue
		}
		lines = append(lines, esprinet.OrderLine{
			ProductCode: line.ProductCode,
			Quantity:    float64(line.Quantity.IntPart()),
			Price:       line.UnitPrice.InexactFloat64(),
		})
	}
	return lines, nil
}
