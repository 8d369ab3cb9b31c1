// Package favstocks manages a user's starred tickers.
package favstocks

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kimheonningg/KB-ai-challenge-BE/internal/common"
	"github.com/kimheonningg/KB-ai-challenge-BE/internal/interfaces"
	"github.com/kimheonningg/KB-ai-challenge-BE/internal/models"
)

// Service implements FavoriteService
type Service struct {
	storage interfaces.StorageManager
	logger  *common.Logger
}

// NewService creates a new favorites service
func NewService(storage interfaces.StorageManager, logger *common.Logger) *Service {
	return &Service{storage: storage, logger: logger}
}

// Add stars a ticker for the user. Adding an existing favorite is a no-op.
func (s *Service) Add(ctx context.Context, userID, ticker string) error {
	ticker = normalizeTicker(ticker)
	if ticker == "" {
		return fmt.Errorf("ticker is required")
	}
	return s.storage.Favorites().Add(ctx, &models.FavoriteStock{
		UserID:  userID,
		Ticker:  ticker,
		AddedAt: time.Now(),
	})
}

// Remove unstars a ticker
func (s *Service) Remove(ctx context.Context, userID, ticker string) error {
	ticker = normalizeTicker(ticker)
	if ticker == "" {
		return fmt.Errorf("ticker is required")
	}
	return s.storage.Favorites().Remove(ctx, userID, ticker)
}

// List returns the user's starred tickers, oldest first
func (s *Service) List(ctx context.Context, userID string) ([]string, error) {
	favs, err := s.storage.Favorites().List(ctx, userID)
	if err != nil {
		return nil, err
	}
	tickers := make([]string, len(favs))
	for i, f := range favs {
		tickers[i] = f.Ticker
	}
	return tickers, nil
}

func normalizeTicker(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}

// Ensure Service implements FavoriteService
var _ interfaces.FavoriteService = (*Service)(nil)
