package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"atelier-api/config"
	"atelier-api/controllers"
	"atelier-api/middleware"
	"atelier-api/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	db, err := config.Connect(cfg)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	store, err := services.NewCustomerStore(db, logger)
	if err != nil {
		logger.Fatal("failed to initialize store", zap.Error(err))
	}
	if err := store.Seed(cfg.SeedCustomers); err != nil {
		logger.Fatal("failed to seed store", zap.Error(err))
	}

	router := setupRouter(cfg, store, logger)

	addr := ":" + cfg.Port
	logger.Info("server starting", zap.String("addr", addr), zap.String("env", cfg.GoEnv))
	if err := router.Run(addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

// setupRouter builds the HTTP surface: the customer table, the
// per-customer order history and the health probe.
func setupRouter(cfg *config.Config, store *services.CustomerStore, logger *zap.Logger) *gin.Engine {
	if cfg.IsProduction() || cfg.IsTest() {
		gin.SetMode(gin.ReleaseMode)
	}

	querySvc := services.NewQueryService(store)
	mutationSvc := services.NewMutationService(store, logger)
	customerCtl := controllers.NewCustomerController(querySvc, mutationSvc, logger)
	orderCtl := controllers.NewOrderController(store, mutationSvc, cfg.AllowFallbackCreation, logger)

	router := gin.New()
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.RequestLogger(logger))
	router.Use(cors.Default()) // browser dashboard calls from another origin

	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		allow := "GET, PATCH"
		if c.Request.URL.Path == "/health" {
			allow = "GET"
		}
		c.Header("Allow", allow)
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed"})
	})

	router.GET("/health", healthCheck)

	router.GET("/customers", customerCtl.List)
	router.PATCH("/customers", customerCtl.UpdateStatus)
	router.GET("/customers/:id/orders", orderCtl.ListOrders)
	router.PATCH("/customers/:id/orders", orderCtl.UpdateItemSize)

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Atelier dashboard API is running",
	})
}

// newLogger builds the zap logger for the configured environment.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	zapCfg := zap.NewDevelopmentConfig()
	if cfg.IsProduction() {
		zapCfg = zap.NewProductionConfig()
	}
	if level, err := zapcore.ParseLevel(cfg.LogLevel); err == nil {
		zapCfg.Level = zap.NewAtomicLevelAt(level)
	}
	return zapCfg.Build()
}
