package insight

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"testing"

	"github.com/kimheonningg/KB-ai-challenge-BE/internal/common"
	"github.com/kimheonningg/KB-ai-challenge-BE/internal/interfaces"
	"github.com/kimheonningg/KB-ai-challenge-BE/internal/models"
)

type mockAI struct {
	generateJSON func(ctx context.Context, prompt string, out interface{}) error
}

func (m *mockAI) GenerateContent(ctx context.Context, prompt string) (string, error) {
	return "", fmt.Errorf("not configured")
}

func (m *mockAI) GenerateJSON(ctx context.Context, prompt string, out interface{}) error {
	if m.generateJSON != nil {
		return m.generateJSON(ctx, prompt, out)
	}
	return fmt.Errorf("not configured")
}

type mockMarket struct {
	series map[string][]models.DailyBar
}

func (m *mockMarket) GetQuote(ctx context.Context, symbol string) (*models.Quote, error) {
	return nil, fmt.Errorf("not configured")
}

func (m *mockMarket) GetDailySeries(ctx context.Context, symbol string) ([]models.DailyBar, error) {
	bars, ok := m.series[symbol]
	if !ok {
		return nil, fmt.Errorf("unknown symbol %s", symbol)
	}
	return bars, nil
}

func (m *mockMarket) GetHistoricalPrice(ctx context.Context, symbol, targetDate string) (*models.HistoricalPrice, error) {
	return nil, fmt.Errorf("not configured")
}

func (m *mockMarket) SearchSymbols(ctx context.Context, keyword string) ([]models.SymbolMatch, error) {
	return nil, fmt.Errorf("not configured")
}

type memInsightStore struct{ saved []*models.Insight }

func (m *memInsightStore) Save(_ context.Context, i *models.Insight) error {
	m.saved = append(m.saved, i)
	return nil
}

func (m *memInsightStore) List(_ context.Context, userID string) ([]*models.Insight, error) {
	var out []*models.Insight
	for _, i := range m.saved {
		if i.UserID == userID {
			out = append(out, i)
		}
	}
	return out, nil
}

type memPortfolioStore struct{ holdings []models.Holding }

func (m *memPortfolioStore) Add(_ context.Context, h *models.Holding) error {
	m.holdings = append(m.holdings, *h)
	return nil
}

func (m *memPortfolioStore) List(_ context.Context, userID string) ([]models.Holding, error) {
	return m.holdings, nil
}

func (m *memPortfolioStore) Delete(_ context.Context, userID, holdingID string) error { return nil }

type stubStorage struct {
	portfolios *memPortfolioStore
	insights   *memInsightStore
}

func (s *stubStorage) Users() interfaces.UserStore { return nil }
func (s *stubStorage) Portfolios() interfaces.PortfolioStore { return s.portfolios }
func (s *stubStorage) Reports() interfaces.ReportStore { return nil }
func (s *stubStorage) Insights() interfaces.InsightStore { return s.insights }
func (s *stubStorage) Simulations() interfaces.SimulationStore { return nil }
func (s *stubStorage) Favorites() interfaces.FavoriteStore { return nil }
func (s *stubStorage) Feedback() interfaces.FeedbackStore { return nil }
func (s *stubStorage) WriteRaw(subdir, key string, b []byte) error { return nil }
func (s *stubStorage) Close() error { return nil }

func newFixture() (*Service, *stubStorage, *mockAI, *mockMarket) {
	storage := &stubStorage{
		portfolios: &memPortfolioStore{},
		insights:   &memInsightStore{},
	}
	ai := &mockAI{}
	market := &mockMarket{series: map[string][]models.DailyBar{}}
	return NewService(storage, ai, market, common.NewSilentLogger()), storage, ai, market
}

func TestDailyBriefing_SavesGeneratedInsight(t *testing.T) {
	svc, storage, ai, _ := newFixture()

	ai.generateJSON = func(_ context.Context, _ string, out interface{}) error {
		raw := `{"economic_events":[{"event_name":"FOMC 회의","event_date":"2026-09-17","impact_analysis":"금리 영향"}],"market_summary":"보합세"}`
		return json.Unmarshal([]byte(raw), out)
	}

	insight, err := svc.DailyBriefing(context.Background(), "alice")
	if err != nil {
		t.Fatalf("DailyBriefing: %v", err)
	}
	if len(insight.EconomicEvents) != 1 {
		t.Fatalf("events = %d, want 1", len(insight.EconomicEvents))
	}
	if insight.EconomicEvents[0].EventName != "FOMC 회의" {
		t.Errorf("event = %q", insight.EconomicEvents[0].EventName)
	}
	if len(storage.insights.saved) != 1 {
		t.Errorf("saved = %d, want 1", len(storage.insights.saved))
	}
}

func TestDailyBriefing_NilEventsBecomesEmptySlice(t *testing.T) {
	svc, _, ai, _ := newFixture()

	ai.generateJSON = func(_ context.Context, _ string, out interface{}) error {
		return json.Unmarshal([]byte(`{"market_summary":"혼조세"}`), out)
	}

	insight, err := svc.DailyBriefing(context.Background(), "alice")
	if err != nil {
		t.Fatalf("DailyBriefing: %v", err)
	}
	if insight.EconomicEvents == nil {
		t.Error("EconomicEvents must not be nil")
	}
}

func bars(dates []string, closes []float64) []models.DailyBar {
	out := make([]models.DailyBar, len(dates))
	for i := range dates {
		out[i] = models.DailyBar{Date: dates[i], Close: closes[i]}
	}
	return out
}

func TestTimeMachine_ComparesInvestments(t *testing.T) {
	svc, _, _, market := newFixture()

	// AAPL doubles, MSFT gains 50%.
	market.series["AAPL"] = bars(
		[]string{"2023-01-16", "2023-01-17", "2023-06-01"},
		[]float64{100, 110, 200},
	)
	market.series["MSFT"] = bars(
		[]string{"2023-01-16", "2023-01-17", "2023-06-01"},
		[]float64{200, 210, 300},
	)

	result, err := svc.TimeMachine(context.Background(), &models.TimeMachineRequest{
		BaseTicker:       "aapl",
		ComparisonTicker: "MSFT",
		InvestmentAmount: 1000000,
		InvestmentDate:   "2023-01-15",
	})
	if err != nil {
		t.Fatalf("TimeMachine: %v", err)
	}

	if result.BaseTicker != "AAPL" {
		t.Errorf("BaseTicker = %s, want AAPL (upcased)", result.BaseTicker)
	}
	if math.Abs(result.BaseValue-2000000) > 0.01 {
		t.Errorf("BaseValue = %v, want 2000000", result.BaseValue)
	}
	if math.Abs(result.ComparisonValue-1500000) > 0.01 {
		t.Errorf("ComparisonValue = %v, want 1500000", result.ComparisonValue)
	}
	if math.Abs(result.BaseReturnPct-100) > 0.01 {
		t.Errorf("BaseReturnPct = %v, want 100", result.BaseReturnPct)
	}

	if len(result.GraphData) != 3 {
		t.Fatalf("graph rows = %d, want 3", len(result.GraphData))
	}
	first := result.GraphData[0]
	if first["date"] != "2023-01-16" {
		t.Errorf("first date = %v", first["date"])
	}
	if v, ok := first["AAPL"].(float64); !ok || math.Abs(v-1000000) > 0.01 {
		t.Errorf("first AAPL value = %v, want 1000000", first["AAPL"])
	}
}

func TestTimeMachine_SkipsDatesMissingFromOneSeries(t *testing.T) {
	svc, _, _, market := newFixture()

	market.series["AAPL"] = bars([]string{"2023-01-16", "2023-01-17"}, []float64{100, 110})
	market.series["MSFT"] = bars([]string{"2023-01-16"}, []float64{200})

	result, err := svc.TimeMachine(context.Background(), &models.TimeMachineRequest{
		BaseTicker:       "AAPL",
		ComparisonTicker: "MSFT",
		InvestmentAmount: 1000,
		InvestmentDate:   "2023-01-01",
	})
	if err != nil {
		t.Fatalf("TimeMachine: %v", err)
	}
	if len(result.GraphData) != 1 {
		t.Errorf("graph rows = %d, want 1 (only the shared date)", len(result.GraphData))
	}
}

func TestTimeMachine_RejectsBadRequests(t *testing.T) {
	svc, _, _, _ := newFixture()

	cases := []*models.TimeMachineRequest{
		{BaseTicker: "", ComparisonTicker: "MSFT", InvestmentAmount: 1000, InvestmentDate: "2023-01-01"},
		{BaseTicker: "AAPL", ComparisonTicker: "MSFT", InvestmentAmount: 0, InvestmentDate: "2023-01-01"},
	}
	for i, req := range cases {
		if _, err := svc.TimeMachine(context.Background(), req); err == nil {
			t.Errorf("case %d: expected error", i)
		}
	}
}
