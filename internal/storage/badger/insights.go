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

type insightStore struct {
	db     *badgerhold.Store
	logger *common.Logger
}

// NewInsightStore creates an InsightStore backed by BadgerHold.
func NewInsightStore(db *badgerhold.Store, logger *common.Logger) interfaces.InsightStore {
	return &insightStore{db: db, logger: logger}
}

func (s *insightStore) Save(_ context.Context, insight *models.Insight) error {
	if insight.InsightID == "" {
		insight.InsightID = uuid.NewString()
	}
	if err := s.db.Upsert(insight.InsightID, insight); err != nil {
		return fmt.Errorf("failed to save insight: %w", err)
	}
	s.logger.Debug().Str("insight_id", insight.InsightID).Str("user_id", insight.UserID).Msg("Insight saved")
	return nil
}

func (s *insightStore) List(_ context.Context, userID string) ([]*models.Insight, error) {
	var insights []*models.Insight
	if err := s.db.Find(&insights, badgerhold.Where("UserID").Eq(userID).Index("UserID")); err != nil {
		return nil, fmt.Errorf("failed to list insights for user '%s': %w", userID, err)
	}
	sort.Slice(insights, func(i, j int) bool {
		return insights[i].SavedAt.After(insights[j].SavedAt)
	})
	return insights, nil
}

var _ interfaces.InsightStore = (*insightStore)(nil)
