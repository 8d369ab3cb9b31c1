package badger

import (
	"context"
	"fmt"

	"github.com/timshannon/badgerhold/v4"

	"github.com/kimheonningg/KB-ai-challenge-BE/internal/common"
	"github.com/kimheonningg/KB-ai-challenge-BE/internal/interfaces"
	"github.com/kimheonningg/KB-ai-challenge-BE/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = badgerhold.ErrNotFound

type userStore struct {
	db     *badgerhold.Store
	logger *common.Logger
}

// NewUserStore creates a UserStore backed by BadgerHold.
func NewUserStore(db *badgerhold.Store, logger *common.Logger) interfaces.UserStore {
	return &userStore{db: db, logger: logger}
}

func (s *userStore) Get(_ context.Context, userID string) (*models.User, error) {
	var user models.User
	if err := s.db.Get(userID, &user); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("user '%s' not found: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user '%s': %w", userID, err)
	}
	return &user, nil
}

func (s *userStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	var users []models.User
	if err := s.db.Find(&users, badgerhold.Where("Email").Eq(email)); err != nil {
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("user with email '%s' not found: %w", email, ErrNotFound)
	}
	return &users[0], nil
}

func (s *userStore) Save(_ context.Context, user *models.User) error {
	if err := s.db.Upsert(user.UserID, user); err != nil {
		return fmt.Errorf("failed to save user '%s': %w", user.UserID, err)
	}
	s.logger.Debug().Str("user_id", user.UserID).Msg("User saved")
	return nil
}

func (s *userStore) Delete(_ context.Context, userID string) error {
	err := s.db.Delete(userID, models.User{})
	if err != nil && err != badgerhold.ErrNotFound {
		return fmt.Errorf("failed to delete user '%s': %w", userID, err)
	}
	return nil
}

var _ interfaces.UserStore = (*userStore)(nil)
