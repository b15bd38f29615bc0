package esprinet

import (
	"context"
	"encoding/json"
)

// CustomerDepotService exposes the customer depot endpoints (stock the
// distributor holds on the customer's behalf).
type CustomerDepotService struct {
	client *Client
}

// NewCustomerDepotService creates the customer depot binding
func NewCustomerDepotService(client *Client) *CustomerDepotService {
	return &CustomerDepotService{client: client}
}

// DeliveryNotes retrieves all depot delivery notes
func (s *CustomerDepotService) DeliveryNotes(ctx context.Context) (json.RawMessage, error) {
	return s.client.Get(ctx, "/customerDepot/deliverynotes", nil)
}

// DeliveryNote retrieves one depot delivery note by id
func (s *CustomerDepotService) DeliveryNote(ctx context.Context, noteID string) (json.RawMessage, error) {
	return s.client.Get(ctx, "/customerDepot/deliverynotes/"+noteID, nil)
}

// AllProducts retrieves every product held in the depot including empty stock
func (s *CustomerDepotService) AllProducts(ctx context.Context) (json.RawMessage, error) {
	return s.client.Get(ctx, "/customerDepot/products/all", nil)
}

// Products retrieves the products currently in stock at the depot
func (s *CustomerDepotService) Products(ctx context.Context) (json.RawMessage, error) {
	return s.client.Get(ctx, "/customerDepot/products", nil)
}

// Product retrieves one depot product by id
func (s *CustomerDepotService) Product(ctx context.Context, productID string) (json.RawMessage, error) {
	return s.client.Get(ctx, "/customerDepot/products/"+productID, nil)
}

// Orders retrieves all depot orders
func (s *CustomerDepotService) Orders(ctx context.Context) (json.RawMessage, error) {
	return s.client.Get(ctx, "/customerDepot/orders", nil)
}

// CreateOrder submits a depot fulfilment order
func (s *CustomerDepotService) CreateOrder(ctx context.Context, order any) (json.RawMessage, error) {
	return s.client.Post(ctx, "/customerDepot/orders", order)
}

// Order retrieves one depot order by id
func (s *CustomerDepotService) Order(ctx context.Context, orderID string) (json.RawMessage, error) {
	return s.client.Get(ctx, "/customerDepot/orders/"+orderID, nil)
}
