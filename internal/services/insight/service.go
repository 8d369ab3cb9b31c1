// Package insight produces daily market briefings and time-machine
// investment comparisons.
package insight

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/kimheonningg/KB-ai-challenge-BE/internal/common"
	"github.com/kimheonningg/KB-ai-challenge-BE/internal/interfaces"
	"github.com/kimheonningg/KB-ai-challenge-BE/internal/models"
)

// Service implements InsightService
type Service struct {
	storage interfaces.StorageManager
	ai      interfaces.AIClient
	market  interfaces.MarketDataClient
	logger  *common.Logger
}

// NewService creates a new insight service
func NewService(storage interfaces.StorageManager, ai interfaces.AIClient, market interfaces.MarketDataClient, logger *common.Logger) *Service {
	return &Service{
		storage: storage,
		ai:      ai,
		market:  market,
		logger:  logger,
	}
}

// DailyBriefing generates today's briefing for the user's portfolio and
// stores it in the history.
func (s *Service) DailyBriefing(ctx context.Context, userID string) (*models.Insight, error) {
	holdings, err := s.storage.Portfolios().List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load holdings: %w", err)
	}

	today := time.Now().Format("2006-01-02")

	var out struct {
		EconomicEvents []models.EconomicEvent `json:"economic_events"`
		MarketSummary  string                 `json:"market_summary"`
	}
	if err := s.ai.GenerateJSON(ctx, buildBriefingPrompt(today, holdings), &out); err != nil {
		return nil, fmt.Errorf("failed to generate briefing: %w", err)
	}

	insight := &models.Insight{
		UserID:         userID,
		BriefingDate:   today,
		EconomicEvents: out.EconomicEvents,
		MarketSummary:  out.MarketSummary,
		SavedAt:        time.Now(),
	}
	if insight.EconomicEvents == nil {
		insight.EconomicEvents = []models.EconomicEvent{}
	}
	if err := s.storage.Insights().Save(ctx, insight); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", userID).Int("events", len(insight.EconomicEvents)).Msg("Daily briefing generated")
	return insight, nil
}

// History returns the user's saved briefings, newest first
func (s *Service) History(ctx context.Context, userID string) ([]*models.Insight, error) {
	return s.storage.Insights().List(ctx, userID)
}

// TimeMachine compares the outcome of investing the same amount on the same
// date in two different tickers. Each ticker's value series scales the
// invested amount by the close price relative to the entry close.
func (s *Service) TimeMachine(ctx context.Context, req *models.TimeMachineRequest) (*models.TimeMachineResult, error) {
	if req.BaseTicker == "" || req.ComparisonTicker == "" {
		return nil, fmt.Errorf("both tickers are required")
	}
	if req.InvestmentAmount <= 0 {
		return nil, fmt.Errorf("investment amount must be positive")
	}

	base := strings.ToUpper(strings.TrimSpace(req.BaseTicker))
	comparison := strings.ToUpper(strings.TrimSpace(req.ComparisonTicker))

	baseSeries, err := s.valueSeries(ctx, base, req.InvestmentDate, req.InvestmentAmount)
	if err != nil {
		return nil, err
	}
	compSeries, err := s.valueSeries(ctx, comparison, req.InvestmentDate, req.InvestmentAmount)
	if err != nil {
		return nil, err
	}

	result := &models.TimeMachineResult{
		BaseTicker:       base,
		ComparisonTicker: comparison,
		GraphData:        mergeSeries(base, baseSeries, comparison, compSeries),
	}

	if len(baseSeries) > 0 {
		result.BaseValue = baseSeries[len(baseSeries)-1].value
		result.BaseReturnPct = 100 * (result.BaseValue - req.InvestmentAmount) / req.InvestmentAmount
	}
	if len(compSeries) > 0 {
		result.ComparisonValue = compSeries[len(compSeries)-1].value
		result.ComparisonReturnPct = 100 * (result.ComparisonValue - req.InvestmentAmount) / req.InvestmentAmount
	}

	return result, nil
}

type valuePoint struct {
	date  string
	value float64
}

// valueSeries converts a ticker's daily closes from the investment date
// onward into hypothetical investment values, oldest first.
func (s *Service) valueSeries(ctx context.Context, ticker, fromDate string, amount float64) ([]valuePoint, error) {
	bars, err := s.market.GetDailySeries(ctx, ticker)
	if err != nil {
		return nil, fmt.Errorf("failed to load series for %s: %w", ticker, err)
	}

	var inRange []models.DailyBar
	for _, bar := range bars {
		if bar.Date >= fromDate && bar.Close > 0 {
			inRange = append(inRange, bar)
		}
	}
	if len(inRange) == 0 {
		return nil, fmt.Errorf("no trading data for %s on or after %s", ticker, fromDate)
	}
	sort.Slice(inRange, func(i, j int) bool { return inRange[i].Date < inRange[j].Date })

	entryClose := inRange[0].Close
	points := make([]valuePoint, len(inRange))
	for i, bar := range inRange {
		points[i] = valuePoint{date: bar.Date, value: amount * bar.Close / entryClose}
	}
	return points, nil
}

// mergeSeries joins the two value series on date, keeping only dates both
// tickers traded, with one column per ticker.
func mergeSeries(baseTicker string, base []valuePoint, compTicker string, comp []valuePoint) []map[string]interface{} {
	compByDate := make(map[string]float64, len(comp))
	for _, p := range comp {
		compByDate[p.date] = p.value
	}

	rows := []map[string]interface{}{}
	for _, p := range base {
		cv, ok := compByDate[p.date]
		if !ok {
			continue
		}
		rows = append(rows, map[string]interface{}{
			"date":      p.date,
			baseTicker: p.value,
			compTicker: cv,
		})
	}
	return rows
}

func buildBriefingPrompt(date string, holdings []models.Holding) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Today is %s. Produce a daily market briefing in Korean for a retail investor.\n", date))

	var tickers []string
	for _, h := range holdings {
		if h.AssetType == models.AssetTypeStock && h.Stock != nil && h.Stock.Ticker != "" {
			tickers = append(tickers, h.Stock.Ticker)
		}
	}
	if len(tickers) > 0 {
		sb.WriteString(fmt.Sprintf("The investor holds: %s.\n", strings.Join(tickers, ", ")))
	}

	sb.WriteString(`Respond with JSON only, matching:
{"economic_events":[{"event_name":"<name in Korean>","event_date":"<YYYY-MM-DD>","impact_analysis":"<impact on this portfolio, in Korean>"}],"market_summary":"<three sentence market summary in Korean>"}
List up to three upcoming economic or financial events.`)
	return sb.String()
}

// Ensure Service implements InsightService
var _ interfaces.InsightService = (*Service)(nil)
