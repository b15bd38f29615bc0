package esprinet

import (
	"context"
	"encoding/json"
)

// DeliveryNotesService exposes the delivery note endpoints
type DeliveryNotesService struct {
	client *Client
}

// NewDeliveryNotesService creates the delivery notes binding
func NewDeliveryNotesService(client *Client) *DeliveryNotesService {
	return &DeliveryNotesService{client: client}
}

// List retrieves all delivery notes for the account
func (s *DeliveryNotesService) List(ctx context.Context) (json.RawMessage, error) {
	return s.client.Get(ctx, "/deliveryNotes", nil)
}

// Get retrieves one delivery note by id
func (s *DeliveryNotesService) Get(ctx context.Context, noteID string) (json.RawMessage, error) {
	return s.client.Get(ctx, "/deliveryNotes/"+noteID, nil)
}
