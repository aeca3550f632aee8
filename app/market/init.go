package market

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/stakecast/stakecast/app/registry"
	"github.com/stakecast/stakecast/internal/logger"
	"github.com/stakecast/stakecast/internal/sanitizer"
)

// Dependencies represents the dependencies needed for the market module
type Dependencies struct {
	DB        *gorm.DB
	Registry  *registry.Registry
	Config    *Config
	Sanitizer sanitizer.HTMLStripperer
	Logger    logger.Logger
}

// Init initializes the market module and mounts routes. The router group
// must already carry authentication middleware.
func Init(r *gin.RouterGroup, deps Dependencies) {
	config := deps.Config
	if config == nil {
		config = GetDefaultConfig()
	}
	if err := config.Validate(); err != nil {
		panic("Invalid market configuration: " + err.Error())
	}

	repo := NewRepository(deps.DB)
	srvs := NewService(deps.Registry, repo, config, deps.Logger)
	handler := NewHandler(srvs, config, deps.Sanitizer)

	marketsGroup := r.Group("/markets")
	marketsGroup.POST("", handler.CreateMarket)
	marketsGroup.POST("/:id/bets", handler.PlaceBet)
	marketsGroup.POST("/:id/close", handler.CloseMarket)
	marketsGroup.POST("/:id/resolve", handler.ResolveMarket)
	marketsGroup.POST("/:id/claims", handler.Claim)
	marketsGroup.GET("/:id/claims", handler.Claimable)
}
