package portfolio

import (
	"context"
	"testing"
	"time"

	"github.com/kimheonningg/KB-ai-challenge-BE/internal/common"
	"github.com/kimheonningg/KB-ai-challenge-BE/internal/interfaces"
	"github.com/kimheonningg/KB-ai-challenge-BE/internal/models"
)

// memPortfolioStore is an in-memory PortfolioStore.
type memPortfolioStore struct {
	holdings []models.Holding
}

func (m *memPortfolioStore) Add(_ context.Context, h *models.Holding) error {
	m.holdings = append(m.holdings, *h)
	return nil
}

func (m *memPortfolioStore) List(_ context.Context, userID string) ([]models.Holding, error) {
	var out []models.Holding
	for _, h := range m.holdings {
		if h.UserID == userID {
			out = append(out, h)
		}
	}
	return out, nil
}

func (m *memPortfolioStore) Delete(_ context.Context, userID, holdingID string) error {
	return nil
}

// stubStorage implements StorageManager over the single store the portfolio
// service touches.
type stubStorage struct {
	portfolios *memPortfolioStore
}

func (s *stubStorage) Users() interfaces.UserStore { return nil }
func (s *stubStorage) Portfolios() interfaces.PortfolioStore { return s.portfolios }
func (s *stubStorage) Reports() interfaces.ReportStore { return nil }
func (s *stubStorage) Insights() interfaces.InsightStore { return nil }
func (s *stubStorage) Simulations() interfaces.SimulationStore { return nil }
func (s *stubStorage) Favorites() interfaces.FavoriteStore { return nil }
func (s *stubStorage) Feedback() interfaces.FeedbackStore { return nil }
func (s *stubStorage) WriteRaw(subdir, key string, b []byte) error { return nil }
func (s *stubStorage) Close() error { return nil }

// stubValuation returns a fixed summary.
type stubValuation struct {
	lastHoldings []models.Holding
}

func (v *stubValuation) Aggregate(_ context.Context, holdings []models.Holding) *models.PortfolioSummary {
	v.lastHoldings = holdings
	return &models.PortfolioSummary{TotalAsset: "₩1.0M", TotalValue: 1000000}
}

func newTestService() (*Service, *stubStorage, *stubValuation) {
	storage := &stubStorage{portfolios: &memPortfolioStore{}}
	valuation := &stubValuation{}
	return NewService(storage, valuation, common.NewSilentLogger()), storage, valuation
}

func validStock() *models.Holding {
	return &models.Holding{
		AssetType:    models.AssetTypeStock,
		Amount:       1000000,
		PurchaseDate: time.Now().Add(-24 * time.Hour),
		Stock:        &models.StockDetails{Ticker: "AAPL", Quantity: 10, PurchasePrice: 100},
	}
}

func TestAddHolding_SetsUserAndDefaults(t *testing.T) {
	svc, storage, _ := newTestService()

	if err := svc.AddHolding(context.Background(), "alice", validStock()); err != nil {
		t.Fatalf("AddHolding: %v", err)
	}

	stored := storage.portfolios.holdings
	if len(stored) != 1 {
		t.Fatalf("stored = %d, want 1", len(stored))
	}
	if stored[0].UserID != "alice" {
		t.Errorf("UserID = %s, want alice", stored[0].UserID)
	}
	if stored[0].Currency != "KRW" {
		t.Errorf("Currency = %s, want KRW default", stored[0].Currency)
	}
}

func TestAddHolding_RejectsInvalid(t *testing.T) {
	svc, storage, _ := newTestService()

	holding := validStock()
	holding.PurchaseDate = time.Now().Add(24 * time.Hour) // future

	if err := svc.AddHolding(context.Background(), "alice", holding); err == nil {
		t.Fatal("expected validation error")
	}
	if len(storage.portfolios.holdings) != 0 {
		t.Error("invalid holding must not be stored")
	}
}

func TestSummary_PassesHoldingsToValuation(t *testing.T) {
	svc, _, valuation := newTestService()
	ctx := context.Background()

	if err := svc.AddHolding(ctx, "alice", validStock()); err != nil {
		t.Fatalf("AddHolding: %v", err)
	}

	summary, err := svc.Summary(ctx, "alice")
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if summary.TotalAsset != "₩1.0M" {
		t.Errorf("TotalAsset = %s", summary.TotalAsset)
	}
	if len(valuation.lastHoldings) != 1 {
		t.Errorf("valuation saw %d holdings, want 1", len(valuation.lastHoldings))
	}
}
