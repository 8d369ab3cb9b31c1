package badger

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/timshannon/badgerhold/v4"

	"github.com/kimheonningg/KB-ai-challenge-BE/internal/common"
	"github.com/kimheonningg/KB-ai-challenge-BE/internal/interfaces"
	"github.com/kimheonningg/KB-ai-challenge-BE/internal/models"
)

type feedbackStore struct {
	db     *badgerhold.Store
	logger *common.Logger
}

// NewFeedbackStore creates a FeedbackStore backed by BadgerHold.
func NewFeedbackStore(db *badgerhold.Store, logger *common.Logger) interfaces.FeedbackStore {
	return &feedbackStore{db: db, logger: logger}
}

func (s *feedbackStore) Save(_ context.Context, fb *models.Feedback) error {
	if fb.FeedbackID == "" {
		fb.FeedbackID = uuid.NewString()
	}
	if fb.CreatedAt.IsZero() {
		fb.CreatedAt = time.Now()
	}
	if err := s.db.Insert(fb.FeedbackID, fb); err != nil {
		return fmt.Errorf("failed to save feedback: %w", err)
	}
	s.logger.Debug().Str("feedback_id", fb.FeedbackID).Msg("Feedback saved")
	return nil
}

func (s *feedbackStore) List(_ context.Context) ([]*models.Feedback, error) {
	var items []*models.Feedback
	if err := s.db.Find(&items, nil); err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

var _ interfaces.FeedbackStore = (*feedbackStore)(nil)
