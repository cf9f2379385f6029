// cmd/api/main.go
package main

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/tireshop-backend/internal/config"
	"github.com/your-org/tireshop-backend/internal/domain/cart"
	"github.com/your-org/tireshop-backend/internal/domain/deal"
	"github.com/your-org/tireshop-backend/internal/domain/fleet"
	"github.com/your-org/tireshop-backend/internal/domain/order"
	"github.com/your-org/tireshop-backend/internal/domain/product"
	"github.com/your-org/tireshop-backend/internal/domain/user"
	"github.com/your-org/tireshop-backend/internal/domain/vehicle"
	"github.com/your-org/tireshop-backend/internal/domain/wishlist"
	"github.com/your-org/tireshop-backend/internal/infrastructure/cache"
	"github.com/your-org/tireshop-backend/internal/infrastructure/database/postgres"
	"github.com/your-org/tireshop-backend/internal/infrastructure/database/redis"
	"github.com/your-org/tireshop-backend/internal/interfaces/http"
	"github.com/your-org/tireshop-backend/internal/interfaces/http/handlers"
	"github.com/your-org/tireshop-backend/internal/interfaces/http/routes"
	"github.com/your-org/tireshop-backend/internal/pkg/maps"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	logger := newLogger(cfg)
	logger.WithFields(logrus.Fields{
		"name":        cfg.App.Name,
		"version":     cfg.App.Version,
		"environment": cfg.App.Environment,
	}).Info("Starting")

	// Connect to database
	db, err := postgres.NewConnection(cfg)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Connect to Redis
	redisClient, err := redis.NewConnection(cfg)
	if err != nil {
		logger.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	if err := db.Health(); err != nil {
		logger.Fatalf("Database health check failed: %v", err)
	}
	if err := redisClient.Health(); err != nil {
		logger.Fatalf("Redis health check failed: %v", err)
	}

	// Run database migrations
	migration := postgres.NewMigration(db.GetDB(), logger)
	if err := migration.RunAutoMigrations(); err != nil {
		logger.Fatalf("Database migration failed: %v", err)
	}
	if err := migration.CreateIndexes(); err != nil {
		logger.Warnf("Index creation failed: %v", err)
	}
	if cfg.IsDevelopment() {
		if err := migration.SeedInitialData(); err != nil {
			logger.Warnf("Data seeding failed: %v", err)
		}
	}

	// Shared infrastructure
	gormDB := db.GetDB()
	rdb := redisClient.GetClient()
	cacheStore := cache.NewRedisStore(rdb)
	vehicleBus := vehicle.NewRedisBus(rdb)
	mapsLoader := maps.NewLoader(mapsInit(cfg))

	// Domain services
	userService := user.NewService(gormDB, cfg)
	productService := product.NewService(gormDB, cfg)
	dealService := deal.NewService(gormDB, cacheStore, cfg, logger)
	cartService := cart.NewService(gormDB, rdb, cacheStore, cfg, logger)
	wishlistService := wishlist.NewService(gormDB, cacheStore, cfg, logger, cartService)
	orderService := order.NewService(gormDB, cacheStore, cfg, logger, cartService)
	vehicleService := vehicle.NewService(gormDB, cacheStore, vehicleBus, cfg, logger)
	fleetService := fleet.NewService(gormDB, fleet.NewAttachmentStore(cfg), cfg, logger)

	h := &routes.Handlers{
		Auth:     handlers.NewAuthHandler(userService, cfg),
		Product:  handlers.NewProductHandler(productService, cfg),
		Deal:     handlers.NewDealHandler(dealService, cfg),
		Cart:     handlers.NewCartHandler(cartService, cfg),
		Wishlist: handlers.NewWishlistHandler(wishlistService, cfg),
		Order:    handlers.NewOrderHandler(orderService, cfg),
		Vehicle:  handlers.NewVehicleHandler(vehicleService, cfg),
		Fleet:    handlers.NewFleetHandler(fleetService, cfg),
	}

	server := http.NewServer(cfg, gormDB, rdb, logger, h, mapsLoader)

	go func() {
		if err := server.Start(); err != nil {
			logger.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Stop(ctx); err != nil {
		logger.Errorf("Failed to shutdown HTTP server gracefully: %v", err)
	}

	logger.Info("Server shutdown completed")
}

// newLogger builds the process logger from config
func newLogger(cfg *config.Config) *logrus.Logger {
	logger := logrus.New()
	if cfg.Logging.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	if level, err := logrus.ParseLevel(cfg.Logging.Level); err == nil {
		logger.SetLevel(level)
	}
	return logger
}

// mapsInit validates the configured maps provider settings once, on the
// first request that needs them
func mapsInit(cfg *config.Config) maps.InitFunc {
	return func(ctx context.Context) error {
		if cfg.Maps.APIKey == "" {
			return fmt.Errorf("maps API key is not configured")
		}
		if _, err := url.ParseRequestURI(cfg.Maps.StaticMapURL); err != nil {
			return fmt.Errorf("invalid static map URL: %w", err)
		}
		return nil
	}
}
