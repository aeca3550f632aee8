package query

import (
	"github.com/gin-gonic/gin"

	"github.com/stakecast/stakecast/app/registry"
	"github.com/stakecast/stakecast/internal/cache"
	"github.com/stakecast/stakecast/internal/logger"
)

// Dependencies represents the dependencies needed for the query module
type Dependencies struct {
	Registry  *registry.Registry
	OddsCache cache.Cache[OddsResponse]
	Logger    logger.Logger
}

// Init initializes the query module and mounts public read routes.
func Init(r *gin.RouterGroup, deps Dependencies) {
	srvs := NewService(deps.Registry, deps.OddsCache, deps.Logger)
	handler := NewHandler(srvs)

	marketsGroup := r.Group("/markets")
	marketsGroup.GET("/open", handler.ListOpenMarkets)
	marketsGroup.GET("/:id", handler.GetMarket)
	marketsGroup.GET("/:id/odds", handler.GetOdds)
	marketsGroup.GET("/:id/positions/:account", handler.GetPosition)

	r.GET("/groups/:key/markets", handler.ListGroupMarkets)
}
