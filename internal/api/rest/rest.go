package rest

import (
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler) {
	// Health check endpoint (no version prefix)
	router.GET("/health", handler.HealthCheck)

	// Stream provider callback
	router.POST("/webhook", handler.ReceiveWebhook)

	// Read-only API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.GET("/wallets", handler.ListWallets)
		v1.GET("/transactions", handler.ListTransactions)
	}
}
