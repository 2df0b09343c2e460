package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"grants-governance/internal/auth"
	"grants-governance/internal/blockchain"
	"grants-governance/internal/config"
	"grants-governance/internal/database"
	"grants-governance/internal/handlers"
	"grants-governance/internal/ipfs"
	"grants-governance/internal/jobs"
	"grants-governance/internal/logger"
	"grants-governance/internal/repository"
	"grants-governance/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(cfg.App.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zlog.Sync()

	// Initialize JWT
	if err := auth.InitJWT(cfg.App.JWTSecret); err != nil {
		zlog.Fatal("Failed to initialize JWT", zap.Error(err))
	}

	// Connect to database
	db, err := database.Connect(cfg.Database, zlog)
	if err != nil {
		zlog.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Run migrations
	if err := database.AutoMigrate(db, zlog); err != nil {
		zlog.Fatal("Failed to run migrations", zap.Error(err))
	}

	startCtx, cancelStart := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelStart()

	// Connect to Redis (login nonces)
	rdb, err := auth.NewRedisClient(startCtx, cfg.Redis.URL)
	if err != nil {
		zlog.Fatal("Failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	// Connect to the EVM node and bind the governance contracts
	eth, err := blockchain.Dial(startCtx, cfg.Chain.RPCURL)
	if err != nil {
		zlog.Fatal("Failed to connect to chain", zap.Error(err))
	}
	defer eth.Close()

	governanceAddr, err := blockchain.ParseAddress(cfg.Chain.BeneficiaryGovernanceAddress)
	if err != nil {
		zlog.Fatal("Invalid BENEFICIARY_GOVERNANCE_ADDRESS", zap.Error(err))
	}
	registryAddr, err := blockchain.ParseAddress(cfg.Chain.BeneficiaryRegistryAddress)
	if err != nil {
		zlog.Fatal("Invalid BENEFICIARY_REGISTRY_ADDRESS", zap.Error(err))
	}
	governance := blockchain.NewGovernanceContract(governanceAddr, eth, zlog)
	registry := blockchain.NewRegistryContract(registryAddr, eth, zlog)

	content := ipfs.NewClient(cfg.IPFS.GatewayURL, cfg.IPFS.Timeout, cfg.IPFS.RetryAttempts, zlog)

	// Initialize repository and services
	repo := repository.NewRepository(db)
	proposalService := services.NewProposalService(governance, content, cfg.Chain.FetchConcurrency, zlog)
	beneficiaryService := services.NewBeneficiaryService(registry, content, cfg.Chain.FetchConcurrency, zlog)
	applicationService := services.NewApplicationService(repo, zlog)
	authService := services.NewAuthService(repo, auth.NewRedisNonceStore(rdb), zlog)

	// Start governance metrics job
	metricsJob := jobs.NewGovernanceMetricsJob(proposalService, beneficiaryService, cfg.App.MetricsRefreshInterval, zlog)
	go metricsJob.Start()
	defer metricsJob.Stop()

	gin.SetMode(gin.ReleaseMode)
	router := &handlers.Router{
		FrontendURL:   cfg.Server.FrontendURL,
		Proposals:     handlers.NewProposalHandler(proposalService, cfg.Chain.TokenDecimals, zlog),
		Beneficiaries: handlers.NewBeneficiaryHandler(beneficiaryService, zlog),
		Applications:  handlers.NewApplicationHandler(applicationService, zlog),
		Auth:          handlers.NewAuthHandler(authService, zlog),
		Chain: handlers.NewChainHandler(eth, map[string]common.Address{
			"beneficiary_governance": governanceAddr,
			"beneficiary_registry":   registryAddr,
		}, zlog),
		Logger: zlog,
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router.Engine(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		zlog.Info("Server starting",
			zap.String("port", cfg.Server.Port),
			zap.String("governance", governanceAddr.Hex()),
			zap.String("registry", registryAddr.Hex()))

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("Shutting down server...")

	// Graceful shutdown with 5 second timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zlog.Error("Server forced to shutdown", zap.Error(err))
		return
	}

	zlog.Info("Server exited")
}
