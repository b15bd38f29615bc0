package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/erp/connector/internal/application/ordersync"
	"github.com/erp/connector/internal/domain/trade"
	"github.com/erp/connector/internal/interfaces/http/dto"
)

// OrderHandler manages sales orders and their distributor forwarding
type OrderHandler struct {
	BaseHandler
	orders    trade.SalesOrderRepository
	forwarder *ordersync.Forwarder
	logger    *zap.Logger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orders trade.SalesOrderRepository, forwarder *ordersync.Forwarder, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		orders:    orders,
		forwarder: forwarder,
		logger:    logger.Named("http.orders"),
	}
}

// CreateOrderLineRequest is one line of an order creation request
type CreateOrderLineRequest struct {
	ProductID   string          `json:"product_id" binding:"required,uuid"`
	ProductName string          `json:"product_name"`
	ProductCode string          `json:"product_code"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// CreateOrderRequest creates a draft sales order
type CreateOrderRequest struct {
	Number   string                   `json:"number" binding:"required"`
	Note     string                   `json:"note"`
	Delivery DeliveryAddressRequest   `json:"delivery"`
	Lines    []CreateOrderLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// DeliveryAddressRequest is the shipping destination of an order
type DeliveryAddressRequest struct {
	Name        string `json:"name"`
	Street      string `json:"street"`
	Street2     string `json:"street2"`
	City        string `json:"city"`
	Zip         string `json:"zip"`
	CountryCode string `json:"country_code"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
}

// OrderResponse represents a sales order
type OrderResponse struct {
	ID                 string              `json:"id"`
	Number             string              `json:"number"`
	Status             string              `json:"status"`
	Note               string              `json:"note,omitempty"`
	DistributorSent    bool                `json:"distributor_sent"`
	DistributorOrderID string              `json:"distributor_order_id,omitempty"`
	Lines              []OrderLineResponse `json:"lines"`
}

// OrderLineResponse represents one order line
type OrderLineResponse struct {
	ID          string `json:"id"`
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	ProductCode string `json:"product_code"`
	Quantity    string `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
}

func toOrderResponse(order *trade.SalesOrder) OrderResponse {
	lines := make([]OrderLineResponse, len(order.Lines))
	for i, line := range order.Lines {
		lines[i] = OrderLineResponse{
			ID:          line.ID.String(),
			ProductID:   line.ProductID.String(),
			ProductName: line.ProductName,
			ProductCode: line.ProductCode,
			Quantity:    line.Quantity.String(),
			UnitPrice:   line.UnitPrice.String(),
		}
	}
	return OrderResponse{
		ID:                 order.ID.String(),
		Number:             order.Number,
		Status:             order.Status.String(),
		Note:               order.Note,
		DistributorSent:    order.DistributorSent,
		DistributorOrderID: order.DistributorOrderID,
		Lines:              lines,
	}
}

// Create handles POST /api/v1/orders
func (h *OrderHandler) Create(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondInvalid(c, err)
		return
	}

	order, err := trade.NewSalesOrder(req.Number)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	order.Note = req.Note
	order.Delivery = trade.DeliveryAddress{
		Name:        req.Delivery.Name,
		Street:      req.Delivery.Street,
		Street2:     req.Delivery.Street2,
		City:        req.Delivery.City,
		Zip:         req.Delivery.Zip,
		CountryCode: req.Delivery.CountryCode,
		Phone:       req.Delivery.Phone,
		Email:       req.Delivery.Email,
	}

	for _, line := range req.Lines {
		productID, err := uuid.Parse(line.ProductID)
		if err != nil {
			h.RespondInvalid(c, err)
			return
		}
		if err := order.AddLine(productID, line.ProductName, line.ProductCode, line.Quantity, line.UnitPrice); err != nil {
			h.RespondError(c, err)
			return
		}
	}

	if err := h.orders.Save(c.Request.Context(), order); err != nil {
		h.RespondError(c, err)
		return
	}

	h.RespondSuccess(c, http.StatusCreated, toOrderResponse(order))
}

// Get handles GET /api/v1/orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	order, ok := h.load(c)
	if !ok {
		return
	}
	h.RespondSuccess(c, http.StatusOK, toOrderResponse(order))
}

// ConfirmResponse reports the order state plus the forwarding outcome
type ConfirmResponse struct {
	Order       OrderResponse `json:"order"`
	Transmitted bool          `json:"transmitted"`
	SendError   string        `json:"send_error,omitempty"`
}

// Confirm handles POST /api/v1/orders/:id/confirm. The order is
// confirmed first; forwarding to the distributor happens after and its
// failure never fails the request.
func (h *OrderHandler) Confirm(c *gin.Context) {
	order, ok := h.load(c)
	if !ok {
		return
	}

	if err := order.Confirm(); err != nil {
		h.RespondError(c, err)
		return
	}
	if err := h.orders.Save(c.Request.Context(), order); err != nil {
		h.RespondError(c, err)
		return
	}

	send := h.forwarder.HandleConfirmed(c.Request.Context(), order)

	resp := ConfirmResponse{
		Order:       toOrderResponse(order),
		Transmitted: send.Sent,
	}
	if send.Err != nil {
		resp.SendError = send.Err.Error()
	}

	h.RespondSuccess(c, http.StatusOK, resp)
}

func (h *OrderHandler) load(c *gin.Context) (*trade.SalesOrder, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("INVALID_REQUEST", "invalid order id"))
		return nil, false
	}

	order, err := h.orders.FindByID(c.Request.Context(), id)
	if err != nil {
		h.RespondError(c, err)
		return nil, false
	}
	return order, true
}
