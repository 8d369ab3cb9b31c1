package interfaces

import (
	"context"

	"github.com/kimheonningg/KB-ai-challenge-BE/internal/models"
)

// ValuationService aggregates holdings into a portfolio summary.
type ValuationService interface {
	// Aggregate values the holdings and returns a consolidated summary.
	// It never returns an error: individual pricing failures degrade to
	// cost-basis values, and an empty input produces a zeroed summary.
	Aggregate(ctx context.Context, holdings []models.Holding) *models.PortfolioSummary
}

// PortfolioService manages a user's holdings.
type PortfolioService interface {
	AddHolding(ctx context.Context, userID string, holding *models.Holding) error
	ListHoldings(ctx context.Context, userID string) ([]models.Holding, error)
	Summary(ctx context.Context, userID string) (*models.PortfolioSummary, error)
}

// ReportService generates and manages AI portfolio reports.
type ReportService interface {
	CreateReport(ctx context.Context, userID string) (*models.Report, error)
	ListReports(ctx context.Context, userID string) ([]*models.Report, error)
	DeleteReport(ctx context.Context, userID, reportID string) error
	RiskAnalysis(ctx context.Context, userID string) (*models.RiskAnalysis, error)
	RiskStatus(ctx context.Context, userID string) (*models.RiskStatus, error)
}

// InsightService produces daily briefings and time-machine comparisons.
type InsightService interface {
	DailyBriefing(ctx context.Context, userID string) (*models.Insight, error)
	History(ctx context.Context, userID string) ([]*models.Insight, error)
	TimeMachine(ctx context.Context, req *models.TimeMachineRequest) (*models.TimeMachineResult, error)
}

// SimulationService runs fake-news-driven price simulations.
type SimulationService interface {
	GenerateAndSimulate(ctx context.Context, userID string, req *models.FakeNewsRequest, days int, confidence float64) (*models.Simulation, error)
	History(ctx context.Context, userID string) (*models.SimulationHistory, error)
	Delete(ctx context.Context, userID, simulationID string) error
}

// ChatService answers chatbot conversations.
type ChatService interface {
	Reply(ctx context.Context, userID string, previous []models.ChatMessage) ([]models.ChatMessage, error)
}

// FavoriteService manages a user's starred tickers.
type FavoriteService interface {
	Add(ctx context.Context, userID, ticker string) error
	Remove(ctx context.Context, userID, ticker string) error
	List(ctx context.Context, userID string) ([]string, error)
}
