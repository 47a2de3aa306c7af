package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/yourorg/shorted-service/internal/client"
	"github.com/yourorg/shorted-service/internal/config"
	"github.com/yourorg/shorted-service/internal/events"
	"github.com/yourorg/shorted-service/internal/handler"
	"github.com/yourorg/shorted-service/internal/metrics"
	"github.com/yourorg/shorted-service/internal/middleware"
	"github.com/yourorg/shorted-service/internal/repository"
	"github.com/yourorg/shorted-service/internal/service"

	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v4/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("config/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Set up logger
	logger, err := createLogger(cfg.Logging.Level)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	// Connect to database
	db, err := connectToDB(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Initialize repositories
	metricsRepo := repository.NewMetricsRepository(db, logger)
	stockRepo := repository.NewStockRepository(db, logger)
	timeSeriesRepo := repository.NewTimeSeriesRepository(db, logger)

	// Initialize the external quote fetcher
	var fetcher service.QuoteFetcher = client.NewYahooClient(
		cfg.Sync.YahooBaseURL,
		cfg.Sync.SymbolSuffix,
		cfg.Sync.YahooTimeout,
		logger,
	)
	if cfg.Sync.RetryTransient {
		fetcher = client.NewRetryingFetcher(fetcher, cfg.Sync.MaxRetries, logger)
	}

	// Initialize the sync event publisher (disabled without brokers)
	var publisher service.ReportPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaPublisher := events.NewPublisher(
			cfg.Kafka.Brokers,
			cfg.Kafka.Topics["syncEvents"],
			cfg.Kafka.ClientID,
			logger,
		)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
	}

	recorder := metrics.New()

	// One external call per interval, shared across the whole batch
	limiter := rate.NewLimiter(rate.Every(cfg.Sync.RateLimitInterval), 1)

	// Initialize services
	syncService := service.NewSyncService(
		metricsRepo,
		fetcher,
		limiter,
		cfg.Sync.StalenessThreshold,
		publisher,
		recorder,
		logger,
	)
	moversService := service.NewMoversService(
		timeSeriesRepo,
		cfg.Movers.Windows,
		cfg.Movers.MaxResults,
		logger,
	)
	stockService := service.NewStockService(stockRepo, metricsRepo, logger)

	// Initialize handlers
	syncHandler := handler.NewSyncHandler(syncService, logger)
	moversHandler := handler.NewMoversHandler(moversService, logger)
	stockHandler := handler.NewStockHandler(stockService, logger)

	// Set up HTTP server with Gin
	router := setupRouter(syncHandler, moversHandler, stockHandler, logger, cfg)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start the server in a goroutine
	go func() {
		logger.Info("Starting server", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Create a deadline for server shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited properly")
}

func createLogger(level string) (*zap.Logger, error) {
	// Parse log level
	var zapLevel zap.AtomicLevel
	switch level {
	case "debug":
		zapLevel = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapLevel = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapLevel = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapLevel = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		zapLevel = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	// Create logger config
	config := zap.Config{
		Level:            zapLevel,
		Development:      false,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	return config.Build()
}

func connectToDB(dbConfig config.DatabaseConfig) (*sqlx.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		dbConfig.Host,
		dbConfig.Port,
		dbConfig.User,
		dbConfig.Password,
		dbConfig.DBName,
		dbConfig.SSLMode,
	)

	db, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(dbConfig.MaxOpenConns)
	db.SetMaxIdleConns(dbConfig.MaxIdleConns)
	db.SetConnMaxLifetime(dbConfig.ConnMaxLifetime)

	return db, nil
}

func setupRouter(
	syncHandler *handler.SyncHandler,
	moversHandler *handler.MoversHandler,
	stockHandler *handler.StockHandler,
	logger *zap.Logger,
	cfg *config.Config,
) *gin.Engine {
	router := gin.New()

	// Use middlewares
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	// Prometheus scrape endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API routes
	v1 := router.Group("/api/v1")
	{
		stocks := v1.Group("/stocks")
		{
			stocks.GET("", stockHandler.GetStocks)
			stocks.GET("/top-shorts", stockHandler.GetTopShorts)
			stocks.GET("/movers", moversHandler.GetMovers)
			stocks.GET("/:code", stockHandler.GetStock)
		}
	}

	// RPC-shaped sync endpoint, admin role required
	rpc := router.Group("/shorted.v1.ShortedStocksService")
	rpc.Use(middleware.AdminAuth(cfg.Auth.JWTSecret, cfg.Auth.AdminRole, logger))
	{
		rpc.POST("/SyncKeyMetrics", syncHandler.SyncKeyMetrics)
	}

	return router
}
