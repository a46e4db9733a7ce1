package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"providerhub/config"
	"providerhub/database"
	providerRepo "providerhub/database/repository/provider"
	"providerhub/handlers"
	"providerhub/middleware"
	"providerhub/routes"
	"providerhub/services/search"
	"providerhub/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	shutdownTelemetry, err := utils.InitTelemetry(context.Background())
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize telemetry: %v", err)
	}

	provRepo, checks := initProviderStore(logger)

	var cache search.ResultCache
	if config.AppConfig.SearchCacheTTL > 0 {
		client, err := utils.InitCache()
		if err != nil {
			logger.Warn("main: search cache disabled", zap.Error(err))
		} else {
			cache = search.NewRedisResultCache(client, config.AppConfig.SearchCacheTTL)
			checks = append(checks, utils.HealthCheck{
				Name: "redis",
				Ping: func(ctx context.Context) error { return client.Ping(ctx).Err() },
			})
		}
	}

	searchService, err := search.NewSearchService(provRepo, cache, logger)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize search service: %v", err)
	}
	searchHandler := handlers.NewSearchHandler(searchService)

	monitorCtx, stopMonitor := context.WithCancel(context.Background())
	defer stopMonitor()
	utils.StartHealthMonitor(monitorCtx, config.AppConfig.HealthCheckInterval, checks)

	// Create the Gin router.
	router := gin.New()
	router.Use(middleware.RequestLogger(logger))
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	handlerBundle := &handlers.HandlerBundle{
		SearchProvidersHandler: searchHandler.SearchProvidersHandler,
		HealthHandler:          handlers.HealthHandler,
	}
	routes.RegisterRoutes(router, handlerBundle)

	srv := &http.Server{
		Addr:    "0.0.0.0:" + config.AppConfig.AppPort,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), config.AppConfig.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	if utils.CacheClient != nil {
		utils.CacheClient.Close()
	}
	if err := database.Disconnect(ctx); err != nil {
		logger.Sugar().Errorf("main: failed to disconnect MongoDB: %v", err)
	}
	if err := shutdownTelemetry(ctx); err != nil {
		logger.Sugar().Errorf("main: failed to flush telemetry: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}

// initProviderStore builds the provider repository selected by STORE_DRIVER
// along with the health checks it contributes.
func initProviderStore(logger *zap.Logger) (providerRepo.ProviderRepository, []utils.HealthCheck) {
	switch config.AppConfig.StoreDriver {
	case config.StoreDriverMemory:
		if config.AppConfig.SeedFile == "" {
			logger.Sugar().Fatal("main: SEED_FILE is required for the memory store")
		}
		repo, err := providerRepo.LoadMemoryProviderRepo(config.AppConfig.SeedFile)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to load memory store: %v", err)
		}
		logger.Info("main: using in-memory provider store", zap.String("seedFile", config.AppConfig.SeedFile))
		return repo, []utils.HealthCheck{{Name: "store", Ping: repo.Ping}}

	case config.StoreDriverMongo:
		if err := database.InitDB(); err != nil {
			logger.Sugar().Fatalf("main: %v", err)
		}
		repo := providerRepo.NewMongoProviderRepo(database.Database())
		ctx, cancel := context.WithTimeout(context.Background(), config.AppConfig.ShutdownTimeout*2)
		defer cancel()
		if err := repo.EnsureIndexes(ctx); err != nil {
			logger.Sugar().Fatalf("main: failed to ensure provider indexes: %v", err)
		}
		return repo, []utils.HealthCheck{{Name: "mongodb", Ping: repo.Ping}}

	default:
		logger.Sugar().Fatalf("main: unknown STORE_DRIVER %q", config.AppConfig.StoreDriver)
		return nil, nil
	}
}
