package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"net/http"
	_ "net/http/pprof" // Register pprof handlers
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/billyz31/slot_arcade/internal/config"
	authHttp "github.com/billyz31/slot_arcade/internal/modules/auth/adapter/http"
	authLocal "github.com/billyz31/slot_arcade/internal/modules/auth/adapter/local"
	authUseCase "github.com/billyz31/slot_arcade/internal/modules/auth/usecase"
	gatewayHttp "github.com/billyz31/slot_arcade/internal/modules/gateway/adapter/http"
	gatewayUseCase "github.com/billyz31/slot_arcade/internal/modules/gateway/usecase"
	"github.com/billyz31/slot_arcade/internal/modules/gateway/ws"
	opsHttp "github.com/billyz31/slot_arcade/internal/modules/ops/adapter/http"
	slotHttp "github.com/billyz31/slot_arcade/internal/modules/slot/adapter/http"
	slotLocal "github.com/billyz31/slot_arcade/internal/modules/slot/adapter/local"
	"github.com/billyz31/slot_arcade/internal/modules/slot/engine"
	slotUseCase "github.com/billyz31/slot_arcade/internal/modules/slot/usecase"
	walletHttp "github.com/billyz31/slot_arcade/internal/modules/wallet/adapter/http"
	walletLocal "github.com/billyz31/slot_arcade/internal/modules/wallet/adapter/local"
	walletDomain "github.com/billyz31/slot_arcade/internal/modules/wallet/domain"
	walletDB "github.com/billyz31/slot_arcade/internal/modules/wallet/repository/db"
	walletMemory "github.com/billyz31/slot_arcade/internal/modules/wallet/repository/memory"
	walletRedis "github.com/billyz31/slot_arcade/internal/modules/wallet/repository/redis"
	walletUseCase "github.com/billyz31/slot_arcade/internal/modules/wallet/usecase"
	"github.com/billyz31/slot_arcade/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func main() {
	// Parse command line flags
	pprofPort := flag.String("pprof-port", "", "Port to run pprof server on (e.g., 6060)")
	flag.Parse()

	// Initialize logger
	logger.InitWithFile("logs/slot_arcade/monolith.log", "info", "json")
	defer logger.Flush()

	// Start pprof server if requested
	if *pprofPort != "" {
		go func() {
			addr := "localhost:" + *pprofPort
			logger.InfoGlobal().Str("addr", addr).Msg("📈 Starting pprof server")
			if err := http.ListenAndServe(addr, nil); err != nil {
				logger.ErrorGlobal().Err(err).Msg("Failed to start pprof server")
			}
		}()
	}

	fmt.Println("🚀 Starting Slot Arcade Monolith... Logs are being written to logs/slot_arcade/monolith.log (rotating)")
	logger.InfoGlobal().Msg("🎰 Starting Slot Arcade Monolith...")

	// 1. Load Config
	cfg := config.LoadMonolithConfig()

	// 2. Initialize Infrastructure
	var (
		db    *gorm.DB
		sqlDB *sql.DB
		rdb   *redis.Client
	)

	if cfg.Wallet.RepoType == "db" {
		var err error
		db, err = openDatabase(cfg.API.Database)
		if err != nil {
			logger.FatalGlobal().Err(err).Msg("Failed to connect to database")
		}

		sqlDB, err = db.DB()
		if err != nil {
			logger.FatalGlobal().Err(err).Msg("Failed to get database instance")
		}

		// Connection Pool Configuration
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(50)
		sqlDB.SetConnMaxLifetime(time.Hour)

		defer sqlDB.Close()

		if err := sqlDB.Ping(); err != nil {
			logger.FatalGlobal().Err(err).Msg("Failed to ping database")
		}
		logger.InfoGlobal().Str("driver", cfg.API.Database.Driver).Msg("✅ Database connected")
	}

	if cfg.Wallet.CacheType == "redis" {
		rdb = redis.NewClient(&redis.Options{
			Addr: cfg.API.Redis.Addr(),
		})
		defer rdb.Close()
		logger.InfoGlobal().Msg("✅ Redis connected")
	}

	// 3. Initialize Modules

	// Wallet Module
	var balanceStore walletDomain.BalanceStore
	if cfg.Wallet.RepoType == "db" {
		dbRepo := walletDB.NewPlayerRepository(db)
		if err := dbRepo.AutoMigrate(); err != nil {
			logger.FatalGlobal().Err(err).Msg("Failed to migrate players table")
		}
		balanceStore = dbRepo
		logger.InfoGlobal().Msg("  ✅ Wallet store: DB")
	} else {
		balanceStore = walletMemory.NewPlayerRepository()
		logger.InfoGlobal().Msg("  ✅ Wallet store: Memory")
	}

	var balanceCache walletDomain.BalanceCache
	if cfg.Wallet.CacheType == "redis" {
		balanceCache = walletRedis.NewBalanceCache(rdb, cfg.Wallet.CacheTTL)
		logger.InfoGlobal().Msg("  ✅ Wallet cache: Redis")
	} else {
		balanceCache = walletMemory.NewBalanceCache(cfg.Wallet.CacheTTL)
		logger.InfoGlobal().Msg("  ✅ Wallet cache: Memory")
	}

	walletUC := walletUseCase.NewWalletUseCase(balanceStore, balanceCache, cfg.Wallet)
	walletSvc := walletLocal.NewHandler(walletUC)
	walletHttpHandler := walletHttp.NewHandler(walletUC)
	logger.InfoGlobal().Msg("✅ Wallet module initialized")

	// Slot Module
	slotEngine := engine.New(engine.DefaultConfig(cfg.Slot.MinBet, cfg.Slot.MaxBet))
	slotUC := slotUseCase.NewSlotUseCase(slotEngine, walletUC)
	slotSvc := slotLocal.NewHandler(slotUC)
	slotHttpHandler := slotHttp.NewHandler(slotUC)
	logger.InfoGlobal().Msg("✅ Slot module initialized")

	// Auth Module
	authUC := authUseCase.NewAuthUseCase(walletUC, cfg.Auth)
	authSvc := authLocal.NewHandler(authUC)
	authHttpHandler := authHttp.NewHandler(authUC)
	logger.InfoGlobal().Msg("✅ Auth module initialized")

	// Ops Module
	opsHandler := opsHttp.NewHandler(sqlDB, rdb)

	// Gateway Module
	wsManager := ws.NewManager()
	go wsManager.Run()

	gatewayUC := gatewayUseCase.NewGatewayUseCase(slotSvc, walletSvc)
	gatewayHttpHandler := gatewayHttp.NewHandler(gatewayUC, wsManager, authSvc)
	logger.InfoGlobal().Msg("✅ Gateway module initialized")

	// 4. Setup HTTP Servers

	// Gateway Server (WebSocket) on 8081
	gatewayRouter := gin.New()
	gatewayRouter.Use(gin.Recovery())
	gatewayRouter.Use(logger.GinMiddleware())

	gatewayRouter.GET("/ws", func(c *gin.Context) {
		gatewayHttpHandler.HandleWebSocket(c.Writer, c.Request)
	})

	// REST API Server on 8080
	apiRouter := gin.New()
	apiRouter.Use(gin.Recovery())
	apiRouter.Use(logger.GinMiddleware())

	opsHandler.RegisterRoutes(apiRouter)

	api := apiRouter.Group("/api")
	{
		opsHandler.RegisterAPIRoutes(api)
		authHttpHandler.RegisterRoutes(api)
		slotHttpHandler.RegisterPublicRoutes(api.Group("/slot"))

		protected := api.Group("")
		protected.Use(authHttp.AuthRequired(authSvc))
		{
			authHttpHandler.RegisterProtectedRoutes(protected)
			walletHttpHandler.RegisterRoutes(protected.Group("/wallet"))
			slotHttpHandler.RegisterRoutes(protected.Group("/slot"))
		}
	}

	// 5. Start Servers
	apiPort := cfg.API.Server.Port         // 8080
	gatewayPort := cfg.Gateway.Server.Port // 8081

	apiSrv := &http.Server{
		Addr:    ":" + apiPort,
		Handler: apiRouter,
	}

	gatewaySrv := &http.Server{
		Addr:    ":" + gatewayPort,
		Handler: gatewayRouter,
	}

	logger.InfoGlobal().
		Str("api_port", apiPort).
		Str("gateway_port", gatewayPort).
		Str("ws_url", fmt.Sprintf("ws://localhost:%s/ws?token=YOUR_TOKEN", gatewayPort)).
		Str("api_url", fmt.Sprintf("http://localhost:%s/api", apiPort)).
		Msg("🚀 Slot Arcade Monolith running")

	go func() {
		if err := apiSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.FatalGlobal().Err(err).Msg("API server failed")
		}
	}()

	go func() {
		if err := gatewaySrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.FatalGlobal().Err(err).Msg("Gateway server failed")
		}
	}()

	// 6. Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.InfoGlobal().Msg("🛑 Shutting down servers...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := apiSrv.Shutdown(ctx); err != nil {
		logger.ErrorGlobal().Err(err).Msg("API server forced to shutdown")
	}

	if err := gatewaySrv.Shutdown(ctx); err != nil {
		logger.ErrorGlobal().Err(err).Msg("Gateway server forced to shutdown")
	}

	logger.InfoGlobal().Msg("🔌 Closing all WebSocket connections...")
	wsManager.Shutdown()

	logger.InfoGlobal().Msg("👋 Server exited properly")
}

func openDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: logger.NewGormLogger(),
	}

	switch cfg.Driver {
	case "sqlite":
		return gorm.Open(sqlite.Open(cfg.Path), gormCfg)
	default:
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name)
		return gorm.Open(postgres.Open(dsn), gormCfg)
	}
}
