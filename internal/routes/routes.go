package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Meghana-05-02/RFP-System/internal/handlers"
)

func RegisterRoutes(router *gin.Engine, vendorHandler *handlers.VendorHandler, rfpHandler *handlers.RFPHandler) {
	api := router.Group("/api/v1")

	vendorRoutes := NewVendorRoutes(vendorHandler)
	vendorRoutes.RegisterRoutes(api)

	rfpRoutes := NewRFPRoutes(rfpHandler)
	rfpRoutes.RegisterRoutes(api)

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})
}
