package app

import (
	"github.com/gin-gonic/gin"
)

func wireRouter(handlerset Handlers, mw Middleware) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(mw.Trace)
	router.Use(mw.RequestLog)
	router.Use(mw.CORS)

	router.GET("/healthz", handlerset.Health.HealthCheck)
	router.GET("/metrics", handlerset.Metrics.Render)

	api := router.Group("/api")
	{
		leads := api.Group("/leads")
		{
			leads.POST("/capture", handlerset.Lead.Capture)
		}
	}

	return router
}
