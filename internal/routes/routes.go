package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"walkaway/internal/handlers"
)

func SetupRoutes(
	r *gin.Engine,
	leadHandler *handlers.LeadHandler,
	estimateHandler *handlers.EstimateHandler,
) *gin.Engine {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// LEAD
	r.GET("/lead", leadHandler.Ping)
	r.POST("/lead", leadHandler.Submit)

	// the page historically posted to /api/lead
	api := r.Group("/api")
	{
		api.GET("/lead", leadHandler.Ping)
		api.POST("/lead", leadHandler.Submit)
		api.GET("/estimate", estimateHandler.Get)
	}

	r.GET("/estimate", estimateHandler.Get)
	return r
}
