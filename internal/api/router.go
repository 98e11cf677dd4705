package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"milling-shop-backend/config"
	"milling-shop-backend/internal/mw"
	"milling-shop-backend/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(s store.Store, cfg config.ServerConfig, logger logrus.FieldLogger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), mw.RequestID(), mw.AccessLog(logger))

	handler := NewHandler(s, logger)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst, cfg.RequestIPHeader)

	// Cached reads are flushed by any successful write below.
	cacheStore := cache.New(cfg.CacheTTL, 2*cfg.CacheTTL+time.Minute)
	caching := mw.Cache(cacheStore, cfg.CacheTTL)

	api := r.Group("/api")
	api.Use(rateLimiter, mw.Invalidate(cacheStore))
	{
		api.GET("/blocks", handler.ListBlocks)
		api.POST("/blocks", handler.CreateBlock)
		api.GET("/blocks/:id", handler.GetBlock)
		api.PUT("/blocks/:id", handler.EditBlock)
		api.DELETE("/blocks/:id", handler.DeleteBlock)
		api.GET("/block-history", handler.ListBlockHistory)

		api.GET("/pending", handler.ListPending)
		api.POST("/pending", handler.AddPending)
		api.PUT("/pending/:id", handler.EditPending)
		api.DELETE("/pending/:ref", handler.DeletePending)

		api.GET("/orders", handler.ListOrders)
		api.POST("/orders/reconcile", handler.Reconcile)
		api.PUT("/orders/:id", handler.EditOrder)
		api.DELETE("/orders/:id", handler.DeleteOrder)

		api.GET("/tools/stock", handler.ListStock)
		api.POST("/tools/stock", handler.AddStock)
		api.PUT("/tools/stock/:id", handler.EditStock)
		api.POST("/tools/install", handler.Install)
		api.GET("/tools/installed", handler.ListInstalled)
		api.PUT("/tools/installed/:id", handler.EditInstalled)
		api.DELETE("/tools/installed/:id", handler.Uninstall)

		api.GET("/maintenance", handler.ListMaintenance)
		api.GET("/maintenance/upcoming", handler.UpcomingMaintenance)
		api.POST("/maintenance", handler.RecordActivity)
		api.PUT("/maintenance/:id", handler.EditMaintenance)
		api.DELETE("/maintenance/:id", handler.DeleteMaintenance)
		api.POST("/maintenance/:id/done", handler.MarkDone)

		api.GET("/machines/docs", caching, handler.GetMachineDocs)
		api.PUT("/machines/docs", handler.PutMachineDocs)

		api.GET("/settings", caching, handler.GetSettings)
		api.PUT("/settings", handler.PutSettings)
		api.GET("/settings/:key", caching, handler.GetSetting)
		api.PUT("/settings/:key", handler.PutSetting)

		api.GET("/stats/inventory", caching, handler.InventoryStats)
		api.GET("/export", handler.Export)
	}

	return r
}
