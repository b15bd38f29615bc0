package esprinet

import (
	"context"
	"encoding/json"
)

// CloudService exposes the cloud marketplace endpoints (tenants,
// subscriptions and Microsoft CSP domain checks).
type CloudService struct {
	client *Client
}

// NewCloudService creates the cloud binding
func NewCloudService(client *Client) *CloudService {
	return &CloudService{client: client}
}

// Tenants retrieves all cloud tenants for the account
func (s *CloudService) Tenants(ctx context.Context) (json.RawMessage, error) {
	return s.client.Get(ctx, "/cloud/tenants", nil)
}

// CreateTenant provisions a new cloud tenant
func (s *CloudService) CreateTenant(ctx context.Context, tenant any) (json.RawMessage, error) {
	return s.client.Post(ctx, "/cloud/tenants", tenant)
}

// TenantSubscriptions retrieves the subscriptions of one tenant
func (s *CloudService) TenantSubscriptions(ctx context.Context, tenantID string) (json.RawMessage, error) {
	return s.client.Get(ctx, "/cloud/tenants/"+tenantID+"/subscriptions", nil)
}

// UpdateTenant replaces a tenant's details
func (s *CloudService) UpdateTenant(ctx context.Context, tenantID string, tenant any) (json.RawMessage, error) {
	return s.client.Put(ctx, "/cloud/tenants/"+tenantID, tenant)
}

// CheckDomain validates a CSP domain for the given Microsoft partner id
func (s *CloudService) CheckDomain(ctx context.Context, mpnID, domainID string) (json.RawMessage, error) {
	return s.client.Post(ctx, "/cloud/ms-csp/"+mpnID+"/domains/"+domainID, nil)
}

// Domains retrieves the CSP domains for the given Microsoft partner id
func (s *CloudService) Domains(ctx context.Context, mpnID string) (json.RawMessage, error) {
	return s.client.Get(ctx, "/cloud/ms-csp/"+mpnID+"/domains", nil)
}

// Delegations retrieves the CSP delegations for the given Microsoft partner id
func (s *CloudService) Delegations(ctx context.Context, mpnID string) (json.RawMessage, error) {
	return s.client.Get(ctx, "/cloud/ms-csp/"+mpnID+"/delegations", nil)
}

// ProductMetadata retrieves the cloud product metadata catalogue
func (s *CloudService) ProductMetadata(ctx context.Context) (json.RawMessage, error) {
	return s.client.Get(ctx, "/cloud/product-metadata", nil)
}

// ServiceProvidersInfo retrieves the available cloud service providers
func (s *CloudService) ServiceProvidersInfo(ctx context.Context) (json.RawMessage, error) {
	return s.client.Get(ctx, "/cloud/serviceprovidersinfo", nil)
}

// SearchSubscriptions searches the account's cloud subscriptions
func (s *CloudService) SearchSubscriptions(ctx context.Context) (json.RawMessage, error) {
	return s.client.Get(ctx, "/cloud/subscriptions/search", nil)
}

// Subscription retrieves one cloud subscription by id
func (s *CloudService) Subscription(ctx context.Context, subscriptionID string) (json.RawMessage, error) {
	return s.client.Get(ctx, "/cloud/subscriptions/"+subscriptionID, nil)
}
