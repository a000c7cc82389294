package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flightsnap-service/internal/domain/repository"
	"flightsnap-service/internal/infrastructure/config"
	"flightsnap-service/internal/infrastructure/persistence"
	gormRepo "flightsnap-service/internal/interface/repository"
	"flightsnap-service/internal/interface/searchapi"
	"flightsnap-service/internal/usecase"
	"flightsnap-service/pkg/logger"
	"flightsnap-service/pkg/metrics"
	"flightsnap-service/pkg/utils"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/mongo"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.NewLogger("info").Fatal("Failed to load config", "error", err)
	}

	// Create logger
	zapLog := logger.NewLogger(cfg.LogLevel)
	defer zapLog.Sync()
	var log logger.Logger = zapLog
	log.Info("Starting Flightsnap Service", "version", cfg.AppVersion, "driver", cfg.DBDriver)

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up the relational store
	db, err := persistence.NewGormDB(cfg)
	if err != nil {
		log.Fatal("Failed to open database", "error", err)
	}
	if err := gormRepo.AutoMigrate(db); err != nil {
		log.Fatal("Failed to migrate database", "error", err)
	}

	// Optional raw payload archive
	var mongoClient *mongo.Client
	var payloadRepo repository.PayloadRepository
	if cfg.MongoURI != "" {
		log.Info("Connecting to MongoDB")
		mongoClient, err = persistence.NewMongoClient(ctx, cfg.MongoURI)
		if err != nil {
			log.Fatal("Failed to connect to MongoDB", "error", err)
		}
		payloadRepo, err = gormRepo.NewMongoPayloadRepository(ctx, persistence.GetDatabase(mongoClient, cfg.MongoDB))
		if err != nil {
			log.Fatal("Failed to set up payload archive", "error", err)
		}
	} else {
		log.Warn("MONGODB_DSN not set, raw payloads will not be archived")
	}

	// Set up repositories
	searchRepo := gormRepo.NewGormSearchRepository(db)
	itineraryRepo := gormRepo.NewGormItineraryRepository(db)
	routeRepo := gormRepo.NewGormRouteRepository(db)
	routeChangeRepo := gormRepo.NewGormRouteChangeRepository(db)
	transactor := gormRepo.NewGormTransactor(db)

	m := metrics.NewMetrics(cfg.MetricsNamespace, prometheus.DefaultRegisterer)
	parser := utils.NewSearchResultParser(log)
	store := usecase.NewSearchStore(transactor, searchRepo, itineraryRepo, routeRepo, routeChangeRepo, parser, m, log)

	// Start snapshot polling in a goroutine
	if cfg.SearchAPIURL != "" {
		client := searchapi.NewClient(cfg.SearchAPIURL, cfg.SearchAPIKey, cfg.SearchRangeDays, log)
		retention := time.Duration(cfg.RetentionDays) * 24 * time.Hour
		collector := usecase.NewSnapshotCollector(client, store, payloadRepo, m, log, cfg.PollInterval, retention)
		go collector.StartPolling(ctx)
	} else {
		log.Warn("SEARCH_API_URL not set, snapshot polling disabled")
	}

	// Set up HTTP server for metrics
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(r.Context())
		}
		if err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("Database unavailable"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Healthy"))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel() // Cancel the context to stop all goroutines

	if mongoClient != nil {
		if err := mongoClient.Disconnect(shutdownCtx); err != nil {
			log.Error("MongoDB disconnect error", "error", err)
		}
	}

	if err := persistence.Close(db); err != nil {
		log.Error("Database close error", "error", err)
	}

	log.Info("Flightsnap Service stopped")
}
