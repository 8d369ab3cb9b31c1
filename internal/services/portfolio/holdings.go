// Package portfolio manages user holdings and their consolidated valuation.
package portfolio

import (
	"context"
	"fmt"
	"time"

	"github.com/kimheonningg/KB-ai-challenge-BE/internal/common"
	"github.com/kimheonningg/KB-ai-challenge-BE/internal/interfaces"
	"github.com/kimheonningg/KB-ai-challenge-BE/internal/models"
)

// Service implements PortfolioService
type Service struct {
	storage   interfaces.StorageManager
	valuation interfaces.ValuationService
	logger    *common.Logger
}

// NewService creates a new portfolio service
func NewService(storage interfaces.StorageManager, valuation interfaces.ValuationService, logger *common.Logger) *Service {
	return &Service{
		storage:   storage,
		valuation: valuation,
		logger:    logger,
	}
}

// AddHolding validates and stores a new holding for the user
func (s *Service) AddHolding(ctx context.Context, userID string, holding *models.Holding) error {
	holding.UserID = userID
	if holding.Currency == "" {
		holding.Currency = "KRW"
	}
	if err := holding.Validate(time.Now()); err != nil {
		return fmt.Errorf("invalid holding: %w", err)
	}
	if err := s.storage.Portfolios().Add(ctx, holding); err != nil {
		return err
	}
	s.logger.Info().
		Str("user_id", userID).
		Str("asset_type", string(holding.AssetType)).
		Msg("Holding added")
	return nil
}

// ListHoldings returns all of the user's holdings
func (s *Service) ListHoldings(ctx context.Context, userID string) ([]models.Holding, error) {
	return s.storage.Portfolios().List(ctx, userID)
}

// Summary values the user's current holdings into one portfolio summary.
// Valuation itself never fails; only the storage read can.
func (s *Service) Summary(ctx context.Context, userID string) (*models.PortfolioSummary, error) {
	holdings, err := s.storage.Portfolios().List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load holdings: %w", err)
	}
	return s.valuation.Aggregate(ctx, holdings), nil
}

// Ensure Service implements PortfolioService
var _ interfaces.PortfolioService = (*Service)(nil)
