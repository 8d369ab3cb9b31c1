// Package app wires configuration, storage, clients, and services into one
// shared core used by the server binary.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kimheonningg/KB-ai-challenge-BE/internal/clients/alphavantage"
	"github.com/kimheonningg/KB-ai-challenge-BE/internal/clients/gemini"
	"github.com/kimheonningg/KB-ai-challenge-BE/internal/common"
	"github.com/kimheonningg/KB-ai-challenge-BE/internal/interfaces"
	"github.com/kimheonningg/KB-ai-challenge-BE/internal/services/chatbot"
	"github.com/kimheonningg/KB-ai-challenge-BE/internal/services/favstocks"
	"github.com/kimheonningg/KB-ai-challenge-BE/internal/services/insight"
	"github.com/kimheonningg/KB-ai-challenge-BE/internal/services/portfolio"
	"github.com/kimheonningg/KB-ai-challenge-BE/internal/services/report"
	"github.com/kimheonningg/KB-ai-challenge-BE/internal/services/simulation"
	"github.com/kimheonningg/KB-ai-challenge-BE/internal/services/valuation"
	"github.com/kimheonningg/KB-ai-challenge-BE/internal/storage/badger"
)

// App holds all initialized services and clients.
type App struct {
	Config  *common.Config
	Logger  *common.Logger
	Storage interfaces.StorageManager

	MarketClient interfaces.MarketDataClient
	AIClient     interfaces.AIClient

	ValuationService  interfaces.ValuationService
	PortfolioService  interfaces.PortfolioService
	ReportService     interfaces.ReportService
	InsightService    interfaces.InsightService
	SimulationService interfaces.SimulationService
	ChatService       interfaces.ChatService
	FavoriteService   interfaces.FavoriteService

	StartupTime time.Time
}

// NewApp initializes all services, clients, and storage.
// configPath may be empty, in which case KB_CONFIG and then config/kb.toml
// are tried.
func NewApp(ctx context.Context, configPath string) (*App, error) {
	if configPath == "" {
		configPath = os.Getenv("KB_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join("config", "kb.toml")
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	storageManager, err := badger.NewManager(logger, config.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	av := config.Clients.AlphaVantage
	if av.APIKey == "" {
		logger.Warn().Msg("AlphaVantage API key not configured - stock pricing will degrade to cost basis")
	}
	marketClient := alphavantage.NewClient(av.APIKey,
		alphavantage.WithBaseURL(av.BaseURL),
		alphavantage.WithLogger(logger),
		alphavantage.WithMinInterval(av.GetMinInterval()),
		alphavantage.WithCacheWindow(av.GetCacheWindow()),
		alphavantage.WithTimeout(av.GetTimeout()),
	)

	aiClient, err := gemini.NewClient(ctx, config.Clients.Gemini.APIKey,
		gemini.WithModel(config.Clients.Gemini.Model),
		gemini.WithLogger(logger),
	)
	if err != nil {
		storageManager.Close()
		return nil, fmt.Errorf("failed to initialize AI client: %w", err)
	}

	valuationService := valuation.NewService(marketClient, config.Valuation, logger)

	app := &App{
		Config:  config,
		Logger:  logger,
		Storage: storageManager,

		MarketClient: marketClient,
		AIClient:     aiClient,

		ValuationService:  valuationService,
		PortfolioService:  portfolio.NewService(storageManager, valuationService, logger),
		ReportService:     report.NewService(storageManager, aiClient, logger),
		InsightService:    insight.NewService(storageManager, aiClient, marketClient, logger),
		SimulationService: simulation.NewService(storageManager, aiClient, marketClient, logger),
		ChatService:       chatbot.NewService(aiClient, logger),
		FavoriteService:   favstocks.NewService(storageManager, logger),

		StartupTime: time.Now(),
	}

	logger.Info().
		Str("environment", config.Environment).
		Str("version", common.GetVersion()).
		Msg("Application initialized")

	return app, nil
}

// Close releases held resources.
func (a *App) Close() error {
	if a.Storage != nil {
		return a.Storage.Close()
	}
	return nil
}
