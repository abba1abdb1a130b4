package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/cjw6k/tidal-harmonics-visualizer-sub001/internal/usecase"
)

// SetupRouter creates and configures the Gin router.
func SetupRouter(predictionUC *usecase.PredictionUseCase, logger zerolog.Logger, allowedOrigins []string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(requestLogger(logger), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if len(allowedOrigins) > 0 {
		corsConfig.AllowOrigins = allowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	router.Use(cors.New(corsConfig))

	handler := NewHandler(predictionUC)

	v1 := router.Group("/v1")

	tides := v1.Group("/tides")
	tides.GET("/height", handler.GetHeight)
	tides.GET("/predictions", handler.GetPredictions)
	tides.GET("/decomposition", handler.GetDecomposition)

	v1.GET("/astro/springneap", handler.GetSpringNeap)
	v1.GET("/constituents", handler.GetConstituents)
	v1.GET("/stations", handler.GetStations)

	router.GET("/health", handler.HealthCheck)

	return router
}

// requestLogger emits one structured log line per request.
func requestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	}
}
