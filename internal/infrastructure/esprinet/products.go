package esprinet

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/shopspring/decimal"
)

// ProductPricing is one entry of the GET /products/pricing response.
// Field names follow the distributor's catalogue conventions.
type ProductPricing struct {
	Sku                 string          `json:"Sku"`
	StandardDealerPrice decimal.Decimal `json:"StandardDealerPrice"`
	Fees                decimal.Decimal `json:"Fees"`
	ListPrice           decimal.Decimal `json:"ListPrice"`
}

// ProductAvailability is one entry of the GET /products/availability response
type ProductAvailability struct {
	Sku      string          `json:"Sku"`
	StockQty decimal.Decimal `json:"StockQty"`
}

type pricingResponse struct {
	Products []ProductPricing `json:"Products"`
}

type availabilityResponse struct {
	Products []ProductAvailability `json:"Products"`
}

// ProductsService exposes the distributor's product pricing and
// availability lookups.
type ProductsService struct {
	client *Client
}

// NewProductsService creates the products binding
func NewProductsService(client *Client) *ProductsService {
	return &ProductsService{client: client}
}

func productCodeParams(esprinetCode, customerCode string) url.Values {
	params := url.Values{}
	if esprinetCode != "" {
		params.Set("esprinetProductCode", esprinetCode)
	}
	if customerCode != "" {
		params.Set("customerProductCode", customerCode)
	}
	return params
}

// GetPricing looks up current dealer pricing for one product code.
// Returns shared.ErrNotFound when the distributor does not know the code.
func (s *ProductsService) GetPricing(ctx context.Context, esprinetCode, customerCode string) ([]ProductPricing, error) {
	raw, err := s.client.Get(ctx, "/products/pricing", productCodeParams(esprinetCode, customerCode))
	if err != nil {
		return nil, err
	}

	var resp pricingResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("esprinet: undecodable pricing response: %w", err)
	}
	return resp.Products, nil
}

// GetAvailability looks up current warehouse availability for one product code
func (s *ProductsService) GetAvailability(ctx context.Context, esprinetCode, customerCode string) ([]ProductAvailability, error) {
	raw, err := s.client.Get(ctx, "/products/availability", productCodeParams(esprinetCode, customerCode))
	if err != nil {
		return nil, err
	}

	var resp availabilityResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("esprinet: undecodable availability response: %w", err)
	}
	return resp.Products, nil
}
