// internal/api/api.go
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/andresuchdata/shopkeeper/backend-go/internal/api/handlers"
	"github.com/andresuchdata/shopkeeper/backend-go/internal/api/middleware"
	"github.com/andresuchdata/shopkeeper/backend-go/internal/service"
	"github.com/andresuchdata/shopkeeper/backend-go/internal/session"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Services struct {
	ForecastService *service.ForecastService
	Sessions        *session.Store
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api/v1")

	if services != nil && services.Sessions != nil {
		salesHandler := handlers.NewSalesHandler(services.Sessions)
		apiGroup.GET("/products", salesHandler.GetProducts)
		apiGroup.POST("/sessions", salesHandler.CreateSession)

		sessionGroup := apiGroup.Group("/sessions/:id")
		{
			sessionGroup.POST("/sales", salesHandler.AddSale)
			sessionGroup.GET("/sales", salesHandler.GetSales)

			if services.ForecastService != nil {
				forecastHandler := handlers.NewForecastHandler(services.ForecastService, services.Sessions)
				sessionGroup.POST("/forecast", forecastHandler.ForecastAll)
				sessionGroup.GET("/forecast/:product", forecastHandler.ForecastProduct)
			}
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
