package interfaces

import (
	"context"

	"github.com/kimheonningg/KB-ai-challenge-BE/internal/models"
)

// StorageManager coordinates all persistence.
type StorageManager interface {
	Users() UserStore
	Portfolios() PortfolioStore
	Reports() ReportStore
	Insights() InsightStore
	Simulations() SimulationStore
	Favorites() FavoriteStore
	Feedback() FeedbackStore

	// WriteRaw writes arbitrary binary data (e.g. chart PNGs) under the data
	// directory atomically. The key is sanitized for safe filenames.
	WriteRaw(subdir, key string, data []byte) error

	Close() error
}

// UserStore manages user accounts.
type UserStore interface {
	Get(ctx context.Context, userID string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Save(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, userID string) error
}

// PortfolioStore manages holdings, keyed by user.
type PortfolioStore interface {
	Add(ctx context.Context, holding *models.Holding) error
	List(ctx context.Context, userID string) ([]models.Holding, error)
	Delete(ctx context.Context, userID, holdingID string) error
}

// ReportStore manages generated reports.
type ReportStore interface {
	Save(ctx context.Context, report *models.Report) error
	Get(ctx context.Context, reportID string) (*models.Report, error)
	List(ctx context.Context, userID string) ([]*models.Report, error)
	Delete(ctx context.Context, reportID string) error
}

// InsightStore manages saved daily briefings.
type InsightStore interface {
	Save(ctx context.Context, insight *models.Insight) error
	List(ctx context.Context, userID string) ([]*models.Insight, error)
}

// SimulationStore manages stored simulation runs.
type SimulationStore interface {
	Save(ctx context.Context, sim *models.Simulation) error
	Get(ctx context.Context, simulationID string) (*models.Simulation, error)
	List(ctx context.Context, userID string) ([]*models.Simulation, error)
	Delete(ctx context.Context, simulationID string) error
}

// FavoriteStore manages starred tickers.
type FavoriteStore interface {
	Add(ctx context.Context, fav *models.FavoriteStock) error
	Remove(ctx context.Context, userID, ticker string) error
	List(ctx context.Context, userID string) ([]*models.FavoriteStock, error)
}

// FeedbackStore persists user feedback.
type FeedbackStore interface {
	Save(ctx context.Context, fb *models.Feedback) error
	List(ctx context.Context) ([]*models.Feedback, error)
}
