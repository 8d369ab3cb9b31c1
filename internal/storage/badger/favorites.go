package badger

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/timshannon/badgerhold/v4"

	"github.com/kimheonningg/KB-ai-challenge-BE/internal/common"
	"github.com/kimheonningg/KB-ai-challenge-BE/internal/interfaces"
	"github.com/kimheonningg/KB-ai-challenge-BE/internal/models"
)

type favoriteStore struct {
	db     *badgerhold.Store
	logger *common.Logger
}

// NewFavoriteStore creates a FavoriteStore backed by BadgerHold.
func NewFavoriteStore(db *badgerhold.Store, logger *common.Logger) interfaces.FavoriteStore {
	return &favoriteStore{db: db, logger: logger}
}

func favoriteKey(userID, ticker string) string {
	return userID + "/" + ticker
}

func (s *favoriteStore) Add(_ context.Context, fav *models.FavoriteStock) error {
	fav.Key = favoriteKey(fav.UserID, fav.Ticker)
	if fav.AddedAt.IsZero() {
		fav.AddedAt = time.Now()
	}
	// Upsert keeps Add idempotent for the same user/ticker pair.
	if err := s.db.Upsert(fav.Key, fav); err != nil {
		return fmt.Errorf("failed to add favorite '%s': %w", fav.Ticker, err)
	}
	return nil
}

func (s *favoriteStore) Remove(_ context.Context, userID, ticker string) error {
	err := s.db.Delete(favoriteKey(userID, ticker), models.FavoriteStock{})
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return fmt.Errorf("favorite '%s' not found: %w", ticker, ErrNotFound)
		}
		return fmt.Errorf("failed to remove favorite '%s': %w", ticker, err)
	}
	return nil
}

func (s *favoriteStore) List(_ context.Context, userID string) ([]*models.FavoriteStock, error) {
	var favs []*models.FavoriteStock
	if err := s.db.Find(&favs, badgerhold.Where("UserID").Eq(userID).Index("UserID")); err != nil {
		return nil, fmt.Errorf("failed to list favorites for user '%s': %w", userID, err)
	}
	sort.Slice(favs, func(i, j int) bool {
		return favs[i].AddedAt.Before(favs[j].AddedAt)
	})
	return favs, nil
}

var _ interfaces.FavoriteStore = (*favoriteStore)(nil)
