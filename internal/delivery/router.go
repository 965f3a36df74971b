package delivery

import (
	"context"
	"net/http"
	"time"

	"shop_service/internal/domain"
	"shop_service/internal/metrics"
	"shop_service/internal/middleware"
	"shop_service/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type RouterDeps struct {
	Storage  domain.Storage
	Auth     domain.UserUseCase
	Sessions session.Store
	Session  middleware.SessionConfig
	Metrics  *metrics.Metrics // optional
	Picker   Picker           // optional, defaults to math/rand
	Log      *logrus.Logger
}

func NewRouter(d RouterDeps) *gin.Engine {
	registerBindingValidators()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(d.Log))
	if d.Metrics != nil {
		router.Use(d.Metrics.Middleware())
		router.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}

	router.GET("/healthz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := d.Storage.Ping(ctx); err != nil {
			d.Log.Errorf("Health check failed: %v", err)
			ErrorResponse(c, http.StatusServiceUnavailable, "database unavailable")
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	api.Use(middleware.Session(d.Sessions, d.Storage, d.Session, d.Log))

	NewAuthHandler(d.Auth, d.Sessions, d.Session, d.Log).RegisterRoutes(api)
	NewProductHandler(d.Storage, d.Log).RegisterRoutes(api)
	NewReviewHandler(d.Storage, d.Log).RegisterRoutes(api)
	NewOrderHandler(d.Storage, d.Log).RegisterRoutes(api)
	NewPromoHandler(d.Storage, d.Picker, d.Log).RegisterRoutes(api)

	return router
}
