// Package esprinet is the HTTP gateway to the Esprinet B2B API:
// token-based authentication plus one binding per endpoint family.
package esprinet

import (
	"go.uber.org/zap"

	"github.com/erp/connector/internal/infrastructure/config"
)

// API bundles the endpoint bindings behind a single shared gateway
type API struct {
	Client             *Client
	Products           *ProductsService
	Orders             *OrdersService
	CashAndCarries     *CashAndCarriesService
	Cloud              *CloudService
	CustomerDepot      *CustomerDepotService
	DeliveryNotes      *DeliveryNotesService
	CustomerQuotations *CustomerQuotationsService
}

// NewAPI wires the token store, the gateway and all endpoint bindings
// from the API section of the configuration.
func NewAPI(cfg config.APIConfig, logger *zap.Logger) *API {
	tokens := NewTokenStore(cfg.BaseURL, cfg.Username, cfg.Password, cfg.Timeout, logger)
	client := NewClient(cfg.BaseURL, tokens, cfg.Timeout, logger)

	return &API{
		Client:             client,
		Products:           NewProductsService(client),
		Orders:             NewOrdersService(client),
		CashAndCarries:     NewCashAndCarriesService(client),
		Cloud:              NewCloudService(client),
		CustomerDepot:      NewCustomerDepotService(client),
		DeliveryNotes:      NewDeliveryNotesService(client),
		CustomerQuotations: NewCustomerQuotationsService(client),
	}
}
