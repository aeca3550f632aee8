package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/stakecast/stakecast/app"
	"github.com/stakecast/stakecast/app/api"
	"github.com/stakecast/stakecast/app/database"
	"github.com/stakecast/stakecast/app/market"
	"github.com/stakecast/stakecast/app/query"
	"github.com/stakecast/stakecast/app/registry"
	"github.com/stakecast/stakecast/internal/cache"
	"github.com/stakecast/stakecast/internal/logger"
	"github.com/stakecast/stakecast/internal/sanitizer"
	"github.com/stakecast/stakecast/internal/security"
)

func main() {
	cfg, err := app.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	appLogger := logger.NewZeroLogger(os.Stdout, logger.LevelInfo, logger.Fields{
		"service": "stakecast",
		"env":     cfg.Env,
	})

	db, err := database.New(&cfg.DB)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to migrate journal tables:", err)
	}

	tokenMaker, err := security.NewPasetoMaker(cfg.TokenSymmetricKey)
	if err != nil {
		log.Fatal("cannot create token maker:", err)
	}

	if err := cfg.Registry.Validate(); err != nil {
		log.Fatal("Invalid registry configuration:", err)
	}
	marketRegistry := registry.New(cfg.Registry.Authorizer(), appLogger)

	htmlSanitizer := sanitizer.NewHTMLStripper()
	oddsCache := cache.New[query.OddsResponse](cfg.CacheBackend, cfg.RedisOptions())

	r := gin.Default()
	r.Use(api.CorsMiddleware())

	apiV1 := r.Group("/api/v1")
	apiV1.GET("/healthz", api.HealthCheck)

	query.Init(apiV1, query.Dependencies{
		Registry:  marketRegistry,
		OddsCache: oddsCache,
		Logger:    appLogger,
	})

	authGroup := apiV1.Group("/")
	authGroup.Use(api.AuthMiddleware(tokenMaker))
	market.Init(authGroup, market.Dependencies{
		DB:        db,
		Registry:  marketRegistry,
		Config:    &cfg.Market,
		Sanitizer: htmlSanitizer,
		Logger:    appLogger,
	})

	log.Printf("Starting stakecast API server on %s:%s", cfg.AppHost, cfg.AppPort)
	if err := r.Run(fmt.Sprintf("%s:%s", cfg.AppHost, cfg.AppPort)); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
