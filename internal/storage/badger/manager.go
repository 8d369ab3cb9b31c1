// Package badger provides BadgerHold-based storage for all user-domain data.
package badger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/timshannon/badgerhold/v4"

	"github.com/kimheonningg/KB-ai-challenge-BE/internal/common"
	"github.com/kimheonningg/KB-ai-challenge-BE/internal/interfaces"
)

// Manager owns the BadgerHold database and hands out the typed stores. All
// stores share the one database; blobs such as chart images are written as
// plain files next to it.
type Manager struct {
	db       *badgerhold.Store
	dataPath string
	logger   *common.Logger

	users       interfaces.UserStore
	portfolios  interfaces.PortfolioStore
	reports     interfaces.ReportStore
	insights    interfaces.InsightStore
	simulations interfaces.SimulationStore
	favorites   interfaces.FavoriteStore
	feedback    interfaces.FeedbackStore
}

// NewManager opens the database under dataPath/db and wires up the stores.
func NewManager(logger *common.Logger, dataPath string) (*Manager, error) {
	dbDir := filepath.Join(dataPath, "db")
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory %s: %w", dbDir, err)
	}

	options := badgerhold.DefaultOptions
	options.Dir = dbDir
	options.ValueDir = dbDir
	options.Logger = nil // badger's own logger is too chatty

	db, err := badgerhold.Open(options)
	if err != nil {
		return nil, fmt.Errorf("failed to open database at %s: %w", dbDir, err)
	}
	logger.Debug().Str("path", dbDir).Msg("Database opened")

	return &Manager{
		db:          db,
		dataPath:    dataPath,
		logger:      logger,
		users:       NewUserStore(db, logger),
		portfolios:  NewPortfolioStore(db, logger),
		reports:     NewReportStore(db, logger),
		insights:    NewInsightStore(db, logger),
		simulations: NewSimulationStore(db, logger),
		favorites:   NewFavoriteStore(db, logger),
		feedback:    NewFeedbackStore(db, logger),
	}, nil
}

func (m *Manager) Users() interfaces.UserStore { return m.users }
func (m *Manager) Portfolios() interfaces.PortfolioStore { return m.portfolios }
func (m *Manager) Reports() interfaces.ReportStore { return m.reports }
func (m *Manager) Insights() interfaces.InsightStore { return m.insights }
func (m *Manager) Simulations() interfaces.SimulationStore { return m.simulations }
func (m *Manager) Favorites() interfaces.FavoriteStore { return m.favorites }
func (m *Manager) Feedback() interfaces.FeedbackStore { return m.feedback }

// sanitizeKey makes a key safe to use as a filename.
func sanitizeKey(key string) string {
	replacer := strings.NewReplacer("/", "_", "\\", "_", "..", "_", " ", "_", ":", "_")
	return replacer.Replace(key)
}

// WriteRaw writes binary data under dataPath/subdir atomically via a temp
// file rename.
func (m *Manager) WriteRaw(subdir, key string, data []byte) error {
	dir := filepath.Join(m.dataPath, subdir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	target := filepath.Join(dir, sanitizeKey(key))
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", target, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	m.logger.Debug().Str("path", target).Int("bytes", len(data)).Msg("Raw file written")
	return nil
}

// Close closes the underlying database.
func (m *Manager) Close() error {
	if m.db == nil {
		return nil
	}
	return m.db.Close()
}

var _ interfaces.StorageManager = (*Manager)(nil)
