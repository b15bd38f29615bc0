package esprinet

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// OrderAddress is the delivery address block of an order submission
type OrderAddress struct {
	Name        string `json:"name"`
	Street      string `json:"street"`
	Street2     string `json:"street2,omitempty"`
	City        string `json:"city"`
	Zip         string `json:"zip"`
	CountryCode string `json:"countryCode"`
	Phone       string `json:"phone,omitempty"`
	Email       string `json:"email,omitempty"`
}

// OrderLine is one line of an order submission
type OrderLine struct {
	ProductCode string  `json:"productCode"`
	Quantity    float64 `json:"quantity"`
	Price       float64 `json:"price"`
}

// OrderSubmission is the body of POST /orders
type OrderSubmission struct {
	CustomerReference string       `json:"customerReference"`
	DeliveryAddress   OrderAddress `json:"deliveryAddress"`
	Lines             []OrderLine  `json:"lines"`
	Notes             string       `json:"notes,omitempty"`
}

// OrderSubmissionResult is the response of POST /orders
type OrderSubmissionResult struct {
	Success bool   `json:"success"`
	OrderID string `json:"orderId"`
	Message string `json:"message"`
}

// OrdersService exposes the distributor's order endpoints
type OrdersService struct {
	client *Client
}

// NewOrdersService creates the orders binding
func NewOrdersService(client *Client) *OrdersService {
	return &OrdersService{client: client}
}

// List retrieves all orders visible to the account
func (s *OrdersService) List(ctx context.Context) (json.RawMessage, error) {
	return s.client.Get(ctx, "/orders", nil)
}

// Create submits a new order and returns the distributor's order reference
func (s *OrdersService) Create(ctx context.Context, order OrderSubmission) (*OrderSubmissionResult, error) {
	raw, err := s.client.Post(ctx, "/orders", order)
	if err != nil {
		return nil, err
	}

	var result OrderSubmissionResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("esprinet: undecodable order response: %w", err)
	}
	return &result, nil
}

// Get retrieves one order by distributor id
func (s *OrdersService) Get(ctx context.Context, orderID string) (json.RawMessage, error) {
	return s.client.Get(ctx, "/orders/"+orderID, nil)
}

// Update replaces an order
func (s *OrdersService) Update(ctx context.Context, orderID string, order any) (json.RawMessage, error) {
	return s.client.Put(ctx, "/orders/"+orderID, order)
}

// Patch partially updates an order
func (s *OrdersService) Patch(ctx context.Context, orderID string, order any) (json.RawMessage, error) {
	return s.client.Request(ctx, http.MethodPatch, "/orders/"+orderID, nil, order)
}

// Delete cancels an order at the distributor
func (s *OrdersService) Delete(ctx context.Context, orderID string) (json.RawMessage, error) {
	return s.client.Delete(ctx, "/orders/"+orderID)
}

// Summary retrieves the account's order summary
func (s *OrdersService) Summary(ctx context.Context) (json.RawMessage, error) {
	return s.client.Get(ctx, "/orders/summary", nil)
}

// Transaction retrieves one order transaction by id
func (s *OrdersService) Transaction(ctx context.Context, transactionID string) (json.RawMessage, error) {
	return s.client.Get(ctx, "/orders/transactions/"+transactionID, nil)
}

// DeleteLine removes one line from a pending order
func (s *OrdersService) DeleteLine(ctx context.Context, orderID, lineID string) (json.RawMessage, error) {
	return s.client.Delete(ctx, "/orders/"+orderID+"/lines/"+lineID)
}

// Shippers retrieves the available freight forwarders
func (s *OrdersService) Shippers(ctx context.Context) (json.RawMessage, error) {
	return s.client.Get(ctx, "/orders/freightForwading/Shippers", nil)
}

// ValidateAppleOrder runs the distributor-side validation for Apple DEP orders
func (s *OrdersService) ValidateAppleOrder(ctx context.Context, validation any) (json.RawMessage, error) {
	return s.client.Post(ctx, "/orders/apple-validate", validation)
}
