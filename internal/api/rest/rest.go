package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/ecotrace/ecotrace-core/internal/api/middleware"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, authCfg middleware.AuthConfig) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// QR scan: view scans are open, event-recording scans authenticate
		v1.POST("/qr/scan", middleware.OptionalAuth(authCfg), handler.ScanToken)

		auth := v1.Group("", middleware.Auth(authCfg))
		{
			// Item submission and read access
			auth.POST("/items", handler.SubmitItem)
			auth.GET("/items", handler.ListMyItems)
			auth.GET("/items/:id", handler.GetItem)
			auth.GET("/items/:id/events", handler.GetItemHistory)

			// Lifecycle events and QR token issuance
			auth.POST("/items/:id/events", handler.RecordEvent)
			auth.POST("/items/:id/tokens", handler.IssueToken)

			// Assignments
			auth.POST("/items/:id/assignments", handler.AssignItem)
			auth.POST("/assignments/:id/respond", handler.RespondToAssignment)

			// Carbon credits
			auth.GET("/credits", handler.CreditHistory)
			auth.GET("/credits/balance", handler.CreditBalance)
			auth.POST("/credits/redeem", handler.RedeemCredits)

			// Admin gateway
			auth.POST("/admin/items/:id/approve", handler.ApproveItem)
			auth.POST("/admin/items/:id/reject", handler.RejectItem)
			auth.POST("/admin/users/:id/role", handler.UpdateUserRole)
			auth.POST("/admin/campaigns", handler.CreateCampaign)
		}
	}
}
