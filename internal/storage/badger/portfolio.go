package badger

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/timshannon/badgerhold/v4"

	"github.com/kimheonningg/KB-ai-challenge-BE/internal/common"
	"github.com/kimheonningg/KB-ai-challenge-BE/internal/interfaces"
	"github.com/kimheonningg/KB-ai-challenge-BE/internal/models"
)

type portfolioStore struct {
	db     *badgerhold.Store
	logger *common.Logger
}

// NewPortfolioStore creates a PortfolioStore backed by BadgerHold.
func NewPortfolioStore(db *badgerhold.Store, logger *common.Logger) interfaces.PortfolioStore {
	return &portfolioStore{db: db, logger: logger}
}

func (s *portfolioStore) Add(_ context.Context, holding *models.Holding) error {
	if holding.ID == "" {
		holding.ID = uuid.NewString()
	}
	if err := s.db.Insert(holding.ID, holding); err != nil {
		return fmt.Errorf("failed to add holding: %w", err)
	}
	s.logger.Debug().
		Str("user_id", holding.UserID).
		Str("holding_id", holding.ID).
		Str("asset_type", string(holding.AssetType)).
		Msg("Holding added")
	return nil
}

func (s *portfolioStore) List(_ context.Context, userID string) ([]models.Holding, error) {
	var holdings []models.Holding
	if err := s.db.Find(&holdings, badgerhold.Where("UserID").Eq(userID).Index("UserID")); err != nil {
		return nil, fmt.Errorf("failed to list holdings for user '%s': %w", userID, err)
	}
	sort.Slice(holdings, func(i, j int) bool {
		return holdings[i].PurchaseDate.Before(holdings[j].PurchaseDate)
	})
	return holdings, nil
}

func (s *portfolioStore) Delete(_ context.Context, userID, holdingID string) error {
	var holding models.Holding
	if err := s.db.Get(holdingID, &holding); err != nil {
		if err == badgerhold.ErrNotFound {
			return fmt.Errorf("holding '%s' not found: %w", holdingID, ErrNotFound)
		}
		return fmt.Errorf("failed to get holding '%s': %w", holdingID, err)
	}
	if holding.UserID != userID {
		return fmt.Errorf("holding '%s' not found: %w", holdingID, ErrNotFound)
	}
	if err := s.db.Delete(holdingID, models.Holding{}); err != nil {
		return fmt.Errorf("failed to delete holding '%s': %w", holdingID, err)
	}
	return nil
}

var _ interfaces.PortfolioStore = (*portfolioStore)(nil)
