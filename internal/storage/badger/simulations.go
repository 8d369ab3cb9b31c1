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

type simulationStore struct {
	db     *badgerhold.Store
	logger *common.Logger
}

// NewSimulationStore creates a SimulationStore backed by BadgerHold.
func NewSimulationStore(db *badgerhold.Store, logger *common.Logger) interfaces.SimulationStore {
	return &simulationStore{db: db, logger: logger}
}

func (s *simulationStore) Save(_ context.Context, sim *models.Simulation) error {
	if sim.SimulationID == "" {
		sim.SimulationID = uuid.NewString()
	}
	if err := s.db.Upsert(sim.SimulationID, sim); err != nil {
		return fmt.Errorf("failed to save simulation: %w", err)
	}
	s.logger.Debug().Str("simulation_id", sim.SimulationID).Str("user_id", sim.UserID).Msg("Simulation saved")
	return nil
}

func (s *simulationStore) Get(_ context.Context, simulationID string) (*models.Simulation, error) {
	var sim models.Simulation
	if err := s.db.Get(simulationID, &sim); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("simulation '%s' not found: %w", simulationID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get simulation '%s': %w", simulationID, err)
	}
	return &sim, nil
}

func (s *simulationStore) List(_ context.Context, userID string) ([]*models.Simulation, error) {
	var sims []*models.Simulation
	if err := s.db.Find(&sims, badgerhold.Where("UserID").Eq(userID).Index("UserID")); err != nil {
		return nil, fmt.Errorf("failed to list simulations for user '%s': %w", userID, err)
	}
	sort.Slice(sims, func(i, j int) bool {
		return sims[i].CreatedAt.After(sims[j].CreatedAt)
	})
	return sims, nil
}

func (s *simulationStore) Delete(_ context.Context, simulationID string) error {
	err := s.db.Delete(simulationID, models.Simulation{})
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return fmt.Errorf("simulation '%s' not found: %w", simulationID, ErrNotFound)
		}
		return fmt.Errorf("failed to delete simulation '%s': %w", simulationID, err)
	}
	return nil
}

var _ interfaces.SimulationStore = (*simulationStore)(nil)
