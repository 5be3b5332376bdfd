package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Meghana-05-02/RFP-System/internal/handlers"
)

type RFPRoutes struct {
	handler *handlers.RFPHandler
}

func NewRFPRoutes(handler *handlers.RFPHandler) *RFPRoutes {
	return &RFPRoutes{handler: handler}
}

func (r *RFPRoutes) RegisterRoutes(router *gin.RouterGroup) {
	rfps := router.Group("/rfps")
	{
		rfps.POST("", r.handler.CreateRFP)
		rfps.GET("", r.handler.ListRFPs)
		rfps.GET("/:id", r.handler.GetRFP)
		rfps.PUT("/:id", r.handler.UpdateRFP)
		rfps.DELETE("/:id", r.handler.DeleteRFP)
		rfps.POST("/:id/send-rfp-emails", r.handler.SendRFPEmails)
	}

	router.POST("/create-from-text", r.handler.CreateFromText)
	router.GET("/comparison/:rfp_id", r.handler.Comparison)
	router.POST("/ai-recommendation/:rfp_id", r.handler.Recommend)
}
