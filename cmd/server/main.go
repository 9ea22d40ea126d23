package main

import (
	"context"
	"database/sql"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/RobMinister/Order-Processing-Inventory-Management-System/internal/adapter/handler"
	"github.com/RobMinister/Order-Processing-Inventory-Management-System/internal/adapter/notify"
	"github.com/RobMinister/Order-Processing-Inventory-Management-System/internal/adapter/storage"
	"github.com/RobMinister/Order-Processing-Inventory-Management-System/internal/config"
	"github.com/RobMinister/Order-Processing-Inventory-Management-System/internal/core/lock"
	"github.com/RobMinister/Order-Processing-Inventory-Management-System/internal/core/service"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize MySQL
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect mysql")
	}
	db.SetMaxOpenConns(50)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ping mysql")
	}
	log.Info().Msg("connected to mysql")

	// Initialize Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		PoolSize: 100,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatal().Err(err).Msg("failed to connect redis")
	}
	log.Info().Msg("connected to redis")

	// Initialize adapters and services
	dbAdapter := storage.NewMySQLAdapter(db)
	cacheAdapter := storage.NewRedisAdapter(rdb)
	locks := lock.NewRegistry()

	inventoryService := service.NewInventoryService(dbAdapter, locks)
	orderService := service.NewOrderService(dbAdapter, cacheAdapter, inventoryService)
	productService := service.NewProductService(dbAdapter, locks)

	notifier := notify.NewSimulated(cfg.Fulfillment.FailureRate)
	fulfillmentService := service.NewFulfillmentService(dbAdapter, notifier, service.FulfillmentConfig{
		ScanInterval:    time.Duration(cfg.Fulfillment.ScanInterval),
		ProcessingDelay: time.Duration(cfg.Fulfillment.ProcessingDelay),
		MaxAttempts:     cfg.Fulfillment.MaxAttempts,
		RetryDelay:      time.Duration(cfg.Fulfillment.RetryDelay),
	})

	// Start fulfillment loop
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		fulfillmentService.Run(ctx)
	}()

	// Initialize HTTP server
	httpHandler := handler.NewHTTPHandler(orderService, productService)
	mux := http.NewServeMux()
	httpHandler.Register(mux)
	mux.Handle("GET /metrics", promhttp.Handler())

	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: mux,
	}

	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("HTTP server listening")
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			log.Error().Err(err).Msg("HTTP server error")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	httpServer.Shutdown(shutdownCtx)
	log.Info().Msg("HTTP server stopped")

	// Stop the fulfillment loop and wait for it to finish the current step
	cancel()
	wg.Wait()

	rdb.Close()
	db.Close()
	log.Info().Msg("connections closed")
}
