// Package app wires configuration, storage, clients, and services into one
// shared core used by cmd/aurum-server.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bobmcallan/aurum/internal/clients/gemini"
	"github.com/bobmcallan/aurum/internal/clients/goodreturns"
	"github.com/bobmcallan/aurum/internal/common"
	"github.com/bobmcallan/aurum/internal/interfaces"
	"github.com/bobmcallan/aurum/internal/services/bill"
	"github.com/bobmcallan/aurum/internal/services/investment"
	"github.com/bobmcallan/aurum/internal/services/rates"
	"github.com/bobmcallan/aurum/internal/services/reconcile"
	"github.com/bobmcallan/aurum/internal/services/valuation"
	"github.com/bobmcallan/aurum/internal/storage"
)

// App holds all initialized services and clients.
type App struct {
	Config            *common.Config
	Logger            *common.Logger
	Storage           interfaces.StorageManager
	RateClient        interfaces.GoldRateClient
	GeminiClient      interfaces.GeminiClient
	RateService       interfaces.RateService
	BillService       interfaces.BillService
	InvestmentService interfaces.InvestmentService
	StartupTime       time.Time

	schedulerCancel context.CancelFunc
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes storage, clients, and services. configPath may be
// empty, in which case the default resolution logic is used.
func NewApp(configPath string) (*App, error) {
	startupStart := time.Now()

	binDir := getBinaryDir()

	// Config resolution: explicit path, AURUM_CONFIG, binary dir, dev fallback
	if configPath == "" {
		configPath = os.Getenv("AURUM_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "aurum.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/aurum.toml"
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Resolve relative storage path to the binary directory
	if config.Storage.Path != "" && !filepath.IsAbs(config.Storage.Path) {
		config.Storage.Path = filepath.Join(binDir, config.Storage.Path)
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	storageManager, err := storage.NewStorageManager(logger, config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	rateOpts := []goodreturns.ClientOption{
		goodreturns.WithLogger(logger),
	}
	if config.Clients.GoodReturns.BaseURL != "" {
		rateOpts = append(rateOpts, goodreturns.WithBaseURL(config.Clients.GoodReturns.BaseURL))
	}
	if config.Clients.GoodReturns.RateLimit > 0 {
		rateOpts = append(rateOpts, goodreturns.WithRateLimit(config.Clients.GoodReturns.RateLimit))
	}
	if d, err := time.ParseDuration(config.Clients.GoodReturns.Timeout); err == nil && d > 0 {
		rateOpts = append(rateOpts, goodreturns.WithTimeout(d))
	}
	rateClient := goodreturns.NewClient(rateOpts...)

	ctx := context.Background()
	var geminiClient interfaces.GeminiClient
	if config.Clients.Gemini.APIKey != "" {
		client, err := gemini.NewClient(ctx, config.Clients.Gemini.APIKey,
			gemini.WithLogger(logger),
			gemini.WithModel(config.Clients.Gemini.Model),
		)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to initialize Gemini client - bill extraction will be unavailable")
		} else {
			geminiClient = client
		}
	} else {
		logger.Warn().Msg("Gemini API key not configured - bill extraction will be unavailable")
	}

	rateService := rates.NewService(rateClient, storageManager.RateStore(), logger)
	reconciler := reconcile.NewService(logger)
	valuator := valuation.NewService(logger)
	investmentService := investment.NewService(storageManager.InvestmentStore(), rateService, reconciler, valuator, logger)

	var billService interfaces.BillService
	if geminiClient != nil {
		billService = bill.NewService(geminiClient, storageManager, logger)
	}

	a := &App{
		Config:            config,
		Logger:            logger,
		Storage:           storageManager,
		RateClient:        rateClient,
		GeminiClient:      geminiClient,
		RateService:       rateService,
		BillService:       billService,
		InvestmentService: investmentService,
		StartupTime:       startupStart,
	}

	logger.Info().Dur("startup", time.Since(startupStart)).Msg("App initialized")

	return a, nil
}

// Close releases all resources held by the App. Shutdown order: cancel the
// scheduler, close storage.
func (a *App) Close() {
	if a.schedulerCancel != nil {
		a.schedulerCancel()
		a.schedulerCancel = nil
	}
	if a.GeminiClient != nil {
		a.GeminiClient.Close()
	}
	if a.Storage != nil {
		a.Storage.Close()
		a.Storage = nil
	}
}

// StartRateScheduler launches the daily rate capture goroutine.
func (a *App) StartRateScheduler() {
	ctx, cancel := context.WithCancel(context.Background())
	a.schedulerCancel = cancel
	go startRateScheduler(ctx, a.RateService, a.Config, a.Logger)
}
