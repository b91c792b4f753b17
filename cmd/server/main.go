package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/rasoihq/kitchen-service/config"
	"github.com/rasoihq/kitchen-service/internal/auth"
	"github.com/rasoihq/kitchen-service/internal/events"
	"github.com/rasoihq/kitchen-service/internal/server"
	"github.com/rasoihq/kitchen-service/pkg/broker"
	"github.com/rasoihq/kitchen-service/pkg/cache"
	"github.com/rasoihq/kitchen-service/pkg/database/migrations"
	"github.com/rasoihq/kitchen-service/pkg/database/postgres"
	"github.com/rasoihq/kitchen-service/pkg/i18n"
	"github.com/rasoihq/kitchen-service/pkg/logger"
	"github.com/rasoihq/kitchen-service/pkg/search"
	"github.com/rasoihq/kitchen-service/pkg/stream"

	brandH "github.com/rasoihq/kitchen-service/internal/brand/handler"
	brandRepoPkg "github.com/rasoihq/kitchen-service/internal/brand/repository"
	brandUCPkg "github.com/rasoihq/kitchen-service/internal/brand/usecase"

	invH "github.com/rasoihq/kitchen-service/internal/inventory/handler"
	invRepoPkg "github.com/rasoihq/kitchen-service/internal/inventory/repository"
	invUCPkg "github.com/rasoihq/kitchen-service/internal/inventory/usecase"

	recipeH "github.com/rasoihq/kitchen-service/internal/recipe/handler"
	recipeRepoPkg "github.com/rasoihq/kitchen-service/internal/recipe/repository"
	recipeUCPkg "github.com/rasoihq/kitchen-service/internal/recipe/usecase"

	planH "github.com/rasoihq/kitchen-service/internal/plan/handler"
	planRepoPkg "github.com/rasoihq/kitchen-service/internal/plan/repository"
	planUCPkg "github.com/rasoihq/kitchen-service/internal/plan/usecase"

	forecastH "github.com/rasoihq/kitchen-service/internal/forecast/handler"
	forecastUCPkg "github.com/rasoihq/kitchen-service/internal/forecast/usecase"

	procH "github.com/rasoihq/kitchen-service/internal/procurement/handler"
	procRepoPkg "github.com/rasoihq/kitchen-service/internal/procurement/repository"
	procUCPkg "github.com/rasoihq/kitchen-service/internal/procurement/usecase"

	vendorH "github.com/rasoihq/kitchen-service/internal/vendors/handler"
	vendorRepoPkg "github.com/rasoihq/kitchen-service/internal/vendors/repository"
	vendorUCPkg "github.com/rasoihq/kitchen-service/internal/vendors/usecase"

	userH "github.com/rasoihq/kitchen-service/internal/user/handler"
	userRepoPkg "github.com/rasoihq/kitchen-service/internal/user/repository"
	userUCPkg "github.com/rasoihq/kitchen-service/internal/user/usecase"

	extractionGemini "github.com/rasoihq/kitchen-service/internal/extraction/gemini"
	extractionH "github.com/rasoihq/kitchen-service/internal/extraction/handler"
	extractionUCPkg "github.com/rasoihq/kitchen-service/internal/extraction/usecase"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load()
	cfg := config.LoadEnv()

	// 1.5 Initialize i18n
	i18n.Init()
	if err := i18n.Load("locales/active.en.json"); err != nil {
		log.Printf("Failed to load en locales: %v", err)
	}

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          "json",
		Level:             "info",
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}
	if cfg.Server.AppEnv == "dev" || cfg.Server.AppEnv == "development" {
		logConfig.IsDevelopment = true
		logConfig.Encoding = cfg.Logger.Encoding
		logConfig.Level = cfg.Logger.Level
	}

	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	// 3. Connect to Database and run migrations
	db, err := postgres.NewPostgres(&postgres.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))

	if err := migrations.Up(db); err != nil {
		appLogger.Fatal("Could not run migrations", zap.Error(err))
	}

	// 4. Initialize Redis
	redisClient, err := cache.NewRedisClient(&cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))

	// 5. Initialize Kafka producer and consumer
	kafkaProducer := broker.NewProducer(&broker.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.Topic,
	})
	defer kafkaProducer.Close()
	kafkaConsumer := broker.NewConsumer(&broker.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.Topic,
		GroupID: cfg.Kafka.GroupID,
	})
	defer kafkaConsumer.Close()
	appLogger.Info("Connected to Kafka", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))

	// 6. Initialize Elasticsearch
	esClient, err := search.NewClient(&search.Config{
		Addresses: cfg.Elastic.Addresses,
		Username:  cfg.Elastic.Username,
		Password:  cfg.Elastic.Password,
	})
	if err != nil {
		appLogger.Warn("Could not connect to Elasticsearch (search features limited)", zap.Error(err))
		esClient = nil
	} else {
		appLogger.Info("Connected to Elasticsearch", zap.Strings("addresses", cfg.Elastic.Addresses))
	}

	// 7. Change feed: hub + notifier + cross-instance listener
	hub := stream.NewHub()
	instanceID := uuid.New().String()
	notifier := events.NewNotifier(hub, kafkaProducer, instanceID, appLogger)
	listener := events.NewListener(kafkaConsumer, hub, redisClient, instanceID, appLogger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go listener.Start(ctx)

	// 8. Repositories
	brandRepo := brandRepoPkg.NewPGRepository(db)
	invRepo := invRepoPkg.NewPGRepository(db)
	recipeRepo := recipeRepoPkg.NewPGRepository(db)
	planRepo := planRepoPkg.NewPGRepository(db)
	procRepo := procRepoPkg.NewPGRepository(db)
	vendorRepo := vendorRepoPkg.NewPGRepository(db)
	userRepo := userRepoPkg.NewPGRepository(db)

	// 9. Auth
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)

	// 10. UseCases
	brandUC := brandUCPkg.NewBrandUseCase(brandRepo, notifier, appLogger)
	invUC := invUCPkg.NewInventoryUseCase(invRepo, redisClient, esClient, notifier, appLogger)
	recipeUC := recipeUCPkg.NewRecipeUseCase(recipeRepo, planRepo, esClient, notifier, appLogger)
	planUC := planUCPkg.NewPlanUseCase(planRepo, recipeRepo, invRepo, redisClient, notifier, appLogger)
	forecastUC := forecastUCPkg.NewForecastUseCase(planRepo, recipeRepo, invRepo, redisClient, appLogger)
	procUC := procUCPkg.NewProcurementUseCase(procRepo, invRepo, redisClient, notifier, cfg.Procurement, appLogger)
	vendorUC := vendorUCPkg.NewVendorUseCase(vendorRepo, notifier, appLogger)
	userUC := userUCPkg.NewUserUseCase(userRepo, tokens, notifier, cfg.Auth.OwnerCap, appLogger)

	// 11. Gemini extraction (optional: requires an API key)
	var extractionHandler *extractionH.ExtractionHandler
	if cfg.Gemini.APIKey != "" {
		geminiClient, err := extractionGemini.NewClient(ctx, cfg.Gemini)
		if err != nil {
			appLogger.Fatal("Could not create Gemini client", zap.Error(err))
		}
		defer geminiClient.Close()
		extractionUC := extractionUCPkg.NewExtractionUseCase(geminiClient, vendorUC, recipeUC, appLogger)
		extractionHandler = extractionH.NewExtractionHandler(extractionUC, appLogger)
		appLogger.Info("Gemini extraction enabled", zap.String("model", cfg.Gemini.Model))
	} else {
		appLogger.Warn("GEMINI_API_KEY not set, document extraction disabled")
		extractionHandler = extractionH.NewExtractionHandler(nil, appLogger)
	}

	// 12. Handlers and router
	handlers := &server.Handlers{
		Brands:      brandH.NewBrandHandler(brandUC, appLogger),
		Inventory:   invH.NewInventoryHandler(invUC, appLogger),
		Recipes:     recipeH.NewRecipeHandler(recipeUC, appLogger),
		Plans:       planH.NewPlanHandler(planUC, appLogger),
		Forecast:    forecastH.NewForecastHandler(forecastUC, appLogger),
		Procurement: procH.NewProcurementHandler(procUC, appLogger),
		Vendors:     vendorH.NewVendorHandler(vendorUC, appLogger),
		Users:       userH.NewUserHandler(userUC, appLogger),
		Extraction:  extractionHandler,
		Events:      server.NewEventsHandler(hub, appLogger),
	}
	router := server.NewRouter(handlers, tokens, appLogger)

	// 13. HTTP server with graceful shutdown
	port := cfg.Server.HTTPPort
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}
	srv := &http.Server{
		Addr:         port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // SSE connections stay open
		IdleTimeout:  60 * time.Second,
	}

	appLogger.Info("Starting HTTP server", zap.String("port", port))
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("graceful shutdown failed", zap.Error(err))
	}
	appLogger.Info("Server stopped")
}
