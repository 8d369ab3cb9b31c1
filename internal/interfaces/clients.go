// Package interfaces defines the service contracts for the backend
package interfaces

import (
	"context"

	"github.com/kimheonningg/KB-ai-challenge-BE/internal/models"
)

// MarketDataClient provides access to market data. Implementations own their
// own rate limiting and short-lived caching; callers never see either beyond
// latency.
type MarketDataClient interface {
	// GetQuote retrieves the current quote for a symbol
	GetQuote(ctx context.Context, symbol string) (*models.Quote, error)

	// GetDailySeries retrieves the end-of-day series, most recent day first
	GetDailySeries(ctx context.Context, symbol string) ([]models.DailyBar, error)

	// GetHistoricalPrice resolves the bar for the first trading day on or
	// after the target date ("2006-01-02"), falling back to the most recent
	// available day. Returns nil when no daily data exists at all.
	GetHistoricalPrice(ctx context.Context, symbol, targetDate string) (*models.HistoricalPrice, error)

	// SearchSymbols finds symbols matching a keyword
	SearchSymbols(ctx context.Context, keyword string) ([]models.SymbolMatch, error)
}

// AIClient provides access to the generative AI backend.
type AIClient interface {
	// GenerateContent generates text from a prompt
	GenerateContent(ctx context.Context, prompt string) (string, error)

	// GenerateJSON generates content and unmarshals the response into out.
	// Implementations strip Markdown code fences before decoding.
	GenerateJSON(ctx context.Context, prompt string, out interface{}) error
}
