package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dadopl/poc-flight-search/cfg"
	"github.com/dadopl/poc-flight-search/internal/airport"
	"github.com/dadopl/poc-flight-search/internal/capacity"
	"github.com/dadopl/poc-flight-search/internal/flight"
	"github.com/dadopl/poc-flight-search/internal/inventory"
	"github.com/dadopl/poc-flight-search/internal/pricing"
	"github.com/dadopl/poc-flight-search/internal/search"
	"github.com/dadopl/poc-flight-search/pkg/cache"
	"github.com/dadopl/poc-flight-search/pkg/db"
	"github.com/dadopl/poc-flight-search/pkg/idgen"
	"github.com/dadopl/poc-flight-search/pkg/logger"
)

func main() {
	// ============
	// config
	// ============
	config, errCfg := cfg.Load()
	if errCfg != nil {
		log.Fatal(errCfg)
	}

	// ============
	// logger
	// ============
	zlogger := logger.NewZeroLog(config.AppEnv)

	// ============
	// Cache
	// ============
	redisAddr := config.RedisConfig.Host + ":" + config.RedisConfig.Port
	resultsCacheBackend := cache.NewRedisCache(redisAddr, config.RedisConfig.Password)

	// ============
	// ID generation
	// ============
	idGenerator, err := idgen.NewSnowflakeGenerator(config.SnowflakeNodeID)
	if err != nil {
		log.Fatal(err)
	}

	// ============
	// Storage
	// ============
	var (
		airportRepo  airport.Repository
		flightRepo   flight.Repository
		seatRepo     inventory.Repository
		fareStore    pricing.FareStore
		limitStore   capacity.LimitStore
		sessionStore search.SessionStore
	)
	if config.DatabaseURL != "" {
		if err := db.RunMigrations(config.MigrationsPath, config.DatabaseURL); err != nil {
			log.Fatal(err)
		}
		pool, err := db.NewPool(context.Background(), config.DatabaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer pool.Close()

		airportRepo = airport.NewPostgresRepository(pool)
		flightRepo = flight.NewPostgresRepository(pool)
		seatRepo = inventory.NewPostgresRepository(pool)
		fareStore = pricing.NewPostgresFareStore(pool)
		limitStore = capacity.NewPostgresLimitStore(pool)
		sessionStore = search.NewPostgresSessionStore(pool)
	} else {
		zlogger.Warn("DATABASE_URL not set, running on in-memory storage")
		airportRepo = airport.NewMemoryRepository()
		flightRepo = flight.NewMemoryRepository()
		seatRepo = inventory.NewMemoryRepository()
		fareStore = pricing.NewMemoryFareStore()
		limitStore = capacity.NewMemoryLimitStore()
		sessionStore = search.NewMemorySessionStore()
	}

	// ============
	// Internal Services
	// ============
	airportSvc := airport.NewService(airportRepo, idGenerator, zlogger)
	flightSvc := flight.NewService(flightRepo, airportRepo, idGenerator, zlogger)
	inventorySvc := inventory.NewService(seatRepo, idGenerator, zlogger)
	pricingSvc := pricing.NewService(fareStore, pricing.NewCalculator(pricing.DefaultPolicies()), zlogger)
	limiter := capacity.NewLimiter(limitStore)

	resultsTTL := time.Duration(config.ResultsTTLSeconds) * time.Second
	orchestrator := search.NewOrchestrator(
		sessionStore,
		search.NewResultsCache(resultsCacheBackend, resultsTTL),
		airportRepo,
		flightRepo,
		seatRepo,
		pricingSvc,
		limiter,
		zlogger,
	)

	// ============
	// HTTP
	// ============
	r := gin.Default()

	airport.NewHandler(airportSvc).RegisterRoutes(r)
	flight.NewHandler(flightSvc).RegisterRoutes(r)
	inventory.NewHandler(inventorySvc).RegisterRoutes(r)
	pricing.NewHandler(pricingSvc).RegisterRoutes(r)
	search.NewHandler(orchestrator).RegisterRoutes(r)

	addr := fmt.Sprintf(":%s", config.AppPort)
	if err := r.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
