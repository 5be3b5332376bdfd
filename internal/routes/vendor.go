package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Meghana-05-02/RFP-System/internal/handlers"
)

type VendorRoutes struct {
	handler *handlers.VendorHandler
}

func NewVendorRoutes(handler *handlers.VendorHandler) *VendorRoutes {
	return &VendorRoutes{handler: handler}
}

func (r *VendorRoutes) RegisterRoutes(router *gin.RouterGroup) {
	vendors := router.Group("/vendors")
	{
		vendors.POST("", r.handler.CreateVendor)
		vendors.GET("", r.handler.ListVendors)
		vendors.GET("/:id", r.handler.GetVendor)
		vendors.PUT("/:id", r.handler.UpdateVendor)
		vendors.DELETE("/:id", r.handler.DeleteVendor)
	}
}
