package api

import (
	"github.com/gin-gonic/gin"
)

// SetupRoutes mounts every §6 read-API endpoint plus /health onto router.
// The POST /api/analyze path itself is fixed by the read-API contract;
// ANALYZE_PATH configures the default filesystem target the CLI's analyze
// command scans when invoked without an explicit path, not this route.
func SetupRoutes(router *gin.Engine, s *Server) {
	router.GET("/health", s.HealthCheck)

	api := router.Group("/api")
	{
		api.POST("/analyze", s.Analyze)
		api.GET("/summary", s.Summary)
		api.GET("/files", s.Files)
		api.GET("/graph", s.Graph)
		api.GET("/complexity", s.Complexity)
	}
}
