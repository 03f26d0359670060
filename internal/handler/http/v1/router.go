package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	// Маршрут Health-check доступен без ключа
	api.GET("/system/health", h.healthCheck)

	protected := api.Group("", APIKeyAuthMiddleware(h.cfg, h.logger))
	{
		protected.GET("/proximity", h.getProximity)
		protected.PUT("/zone/location", h.setZoneLocation)
	}

	sources := protected.Group("/sources")
	{
		sources.GET("", h.listSources)
		sources.POST("/:id/state", h.submitSourceState)
		sources.DELETE("/:id", h.deleteSource)
	}
}
