// Package simulation runs fake-news-driven Monte Carlo price simulations.
package simulation

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kimheonningg/KB-ai-challenge-BE/internal/common"
	"github.com/kimheonningg/KB-ai-challenge-BE/internal/interfaces"
	"github.com/kimheonningg/KB-ai-challenge-BE/internal/models"
)

const (
	DefaultDays       = 30
	DefaultConfidence = 0.95
	MaxDays           = 365
)

// Service implements SimulationService. A run fabricates a news article with
// the AI client, scores its sentiment, then projects each symbol's price
// under that sentiment with a GBM Monte Carlo.
type Service struct {
	storage interfaces.StorageManager
	ai      interfaces.AIClient
	market  interfaces.MarketDataClient
	logger  *common.Logger

	newRand func() *rand.Rand
}

// NewService creates a new simulation service
func NewService(storage interfaces.StorageManager, ai interfaces.AIClient, market interfaces.MarketDataClient, logger *common.Logger) *Service {
	return &Service{
		storage: storage,
		ai:      ai,
		market:  market,
		logger:  logger,
		newRand: func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
	}
}

// GenerateAndSimulate fabricates the news, simulates every symbol, renders a
// chart for the first one, and stores the run.
func (s *Service) GenerateAndSimulate(ctx context.Context, userID string, req *models.FakeNewsRequest, days int, confidence float64) (*models.Simulation, error) {
	if req == nil || strings.TrimSpace(req.Prompt) == "" {
		return nil, fmt.Errorf("prompt is required")
	}
	if len(req.Symbols) == 0 {
		return nil, fmt.Errorf("at least one symbol is required")
	}
	if days <= 0 {
		days = DefaultDays
	}
	if days > MaxDays {
		days = MaxDays
	}
	if confidence <= 0 || confidence >= 1 {
		confidence = DefaultConfidence
	}

	var news models.FakeNews
	if err := s.ai.GenerateJSON(ctx, buildFakeNewsPrompt(req), &news); err != nil {
		return nil, fmt.Errorf("failed to generate news: %w", err)
	}
	news.Sentiment = clampSentiment(news.Sentiment)

	rng := s.newRand()
	results := make([]models.SymbolSimulation, 0, len(req.Symbols))
	for _, symbol := range req.Symbols {
		symbol = strings.ToUpper(strings.TrimSpace(symbol))
		quote, err := s.market.GetQuote(ctx, symbol)
		if err != nil || quote == nil || quote.Price <= 0 {
			return nil, fmt.Errorf("no base price for %s: %w", symbol, err)
		}
		results = append(results, simulateGBM(rng, symbol, quote.Price, news.Sentiment, days, confidence))
	}

	sim := &models.Simulation{
		SimulationID:    uuid.NewString(),
		UserID:          userID,
		SimulationDays:  days,
		ConfidenceLevel: confidence,
		FakeNews:        news,
		Results:         results,
		CreatedAt:       time.Now(),
	}

	if png, err := renderSimulationChart(results[0]); err != nil {
		// The run is still useful without the chart.
		s.logger.Warn().Err(err).Msg("Chart render failed")
	} else {
		key := sim.SimulationID + ".png"
		if err := s.storage.WriteRaw("charts", key, png); err != nil {
			s.logger.Warn().Err(err).Msg("Chart write failed")
		} else {
			sim.ChartKey = key
		}
	}

	if err := s.storage.Simulations().Save(ctx, sim); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("user_id", userID).
		Str("simulation_id", sim.SimulationID).
		Int("symbols", len(results)).
		Float64("sentiment", news.Sentiment).
		Msg("Simulation stored")
	return sim, nil
}

// History lists the user's stored simulations, newest first
func (s *Service) History(ctx context.Context, userID string) (*models.SimulationHistory, error) {
	sims, err := s.storage.Simulations().List(ctx, userID)
	if err != nil {
		return nil, err
	}
	if sims == nil {
		sims = []*models.Simulation{}
	}
	return &models.SimulationHistory{Simulations: sims}, nil
}

// Delete removes a stored simulation after checking ownership
func (s *Service) Delete(ctx context.Context, userID, simulationID string) error {
	sim, err := s.storage.Simulations().Get(ctx, simulationID)
	if err != nil {
		return err
	}
	if sim.UserID != userID {
		return fmt.Errorf("simulation '%s' not found", simulationID)
	}
	return s.storage.Simulations().Delete(ctx, simulationID)
}

func clampSentiment(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

func buildFakeNewsPrompt(req *models.FakeNewsRequest) string {
	return fmt.Sprintf(`Write a fictional financial news article based on this scenario: %s
The article concerns these symbols: %s.
Respond with JSON only, matching:
{"fake_news_title":"<headline in Korean>","fake_news_content":"<three paragraph article in Korean>","sentiment":<-1..1, how bullish the news is for these symbols>}`,
		req.Prompt, strings.Join(req.Symbols, ", "))
}

// Ensure Service implements SimulationService
var _ interfaces.SimulationService = (*Service)(nil)
