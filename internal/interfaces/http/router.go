// Package http wires the gin router for the connector's API surface.
package http

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/erp/connector/internal/interfaces/http/handler"
	"github.com/erp/connector/internal/interfaces/http/middleware"
)

// Handlers groups everything the router mounts
type Handlers struct {
	Catalogue *handler.CatalogueHandler
	Orders    *handler.OrderHandler
	Health    *handler.HealthHandler
}

// NewRouter builds the gin engine with all routes mounted
func NewRouter(h Handlers, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))

	router.GET("/healthz", h.Health.Health)

	v1 := router.Group("/api/v1")
	{
		v1.POST("/catalogue/sync", h.Catalogue.Sync)
		v1.POST("/pricing/refresh", h.Catalogue.RefreshPricing)

		v1.POST("/orders", h.Orders.Create)
		v1.GET("/orders/:id", h.Orders.Get)
		v1.POST("/orders/:id/confirm", h.Orders.Confirm)
	}

	return router
}
