package esprinet

import (
	"context"
	"encoding/json"
)

// CustomerQuotationsService exposes the quotation endpoints
type CustomerQuotationsService struct {
	client *Client
}

// NewCustomerQuotationsService creates the quotations binding
func NewCustomerQuotationsService(client *Client) *CustomerQuotationsService {
	return &CustomerQuotationsService{client: client}
}

// Create submits a new quotation request
func (s *CustomerQuotationsService) Create(ctx context.Context, quotation any) (json.RawMessage, error) {
	return s.client.Post(ctx, "/customerQuotations", quotation)
}

// Get retrieves one quotation by id
func (s *CustomerQuotationsService) Get(ctx context.Context, quotationID string) (json.RawMessage, error) {
	return s.client.Get(ctx, "/customerQuotations/"+quotationID, nil)
}
