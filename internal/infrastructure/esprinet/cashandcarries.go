package esprinet

import (
	"context"
	"encoding/json"
)

// CashAndCarriesService exposes the cash-and-carry branch endpoints
type CashAndCarriesService struct {
	client *Client
}

// NewCashAndCarriesService creates the cash-and-carry binding
func NewCashAndCarriesService(client *Client) *CashAndCarriesService {
	return &CashAndCarriesService{client: client}
}

// Availability retrieves product availability across all branches
func (s *CashAndCarriesService) Availability(ctx context.Context) (json.RawMessage, error) {
	return s.client.Get(ctx, "/cashandcarries/products/availability", nil)
}

// BranchAvailability retrieves product availability for one branch
func (s *CashAndCarriesService) BranchAvailability(ctx context.Context, branchID string) (json.RawMessage, error) {
	return s.client.Get(ctx, "/cashandcarries/"+branchID+"/products/availability", nil)
}

// Pricing retrieves product pricing across all branches
func (s *CashAndCarriesService) Pricing(ctx context.Context) (json.RawMessage, error) {
	return s.client.Get(ctx, "/cashandcarries/products/pricing", nil)
}

// BranchPricing retrieves product pricing for one branch
func (s *CashAndCarriesService) BranchPricing(ctx context.Context, branchID string) (json.RawMessage, error) {
	return s.client.Get(ctx, "/cashandcarries/"+branchID+"/products/pricing", nil)
}
