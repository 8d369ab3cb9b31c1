// Package valuation aggregates portfolio holdings into a single summary.
package valuation

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/kimheonningg/KB-ai-challenge-BE/internal/common"
	"github.com/kimheonningg/KB-ai-challenge-BE/internal/interfaces"
	"github.com/kimheonningg/KB-ai-challenge-BE/internal/models"
)

// Display colors for the allocation bars, one per asset class.
const (
	colorStock = "#6678f4"
	colorBond  = "#45af79"
	colorFund  = "#d18e48"
)

// Service implements ValuationService. Stock holdings are priced from live
// market data; bond and fund holdings use flat assumed-return multipliers
// from configuration. Every pricing failure degrades that one holding to
// cost basis, so Aggregate always returns a usable summary.
type Service struct {
	market interfaces.MarketDataClient
	config common.ValuationConfig
	logger *common.Logger
}

// NewService creates a new valuation service
func NewService(market interfaces.MarketDataClient, config common.ValuationConfig, logger *common.Logger) *Service {
	return &Service{
		market: market,
		config: config,
		logger: logger,
	}
}

// holdingValue is one holding's resolved current value and cost basis.
type holdingValue struct {
	assetType models.AssetType
	value     float64
	cost      float64
}

// Aggregate values every holding and combines the results. Per-holding
// pricing runs concurrently; the shared market client serializes actual
// network calls on its rate gate. The accumulation is commutative, so
// completion order does not matter.
func (s *Service) Aggregate(ctx context.Context, holdings []models.Holding) *models.PortfolioSummary {
	results := make([]holdingValue, len(holdings))

	var wg sync.WaitGroup
	for i := range holdings {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = s.valueHolding(ctx, &holdings[i])
		}(i)
	}
	wg.Wait()

	var totalValue, totalCost float64
	classValue := map[models.AssetType]float64{}
	for _, r := range results {
		totalValue += r.value
		totalCost += r.cost
		classValue[r.assetType] += r.value
	}

	yearlyReturn := 0.0
	if totalCost > 0 {
		yearlyReturn = 100 * (totalValue - totalCost) / totalCost
	}
	// Simple non-compounding approximation, not a real daily rate.
	dailyReturn := yearlyReturn / 365

	return &models.PortfolioSummary{
		TotalAsset:   formatTotalAsset(totalValue),
		DailyReturn:  formatPercent(dailyReturn),
		YearlyReturn: formatPercent(yearlyReturn),
		Allocation:   buildAllocation(classValue),
		TotalValue:   totalValue,
		TotalCost:    totalCost,
		GeneratedAt:  time.Now(),
	}
}

// valueHolding resolves one holding's current value and cost. It never
// returns an error; any failure falls back to cost basis.
func (s *Service) valueHolding(ctx context.Context, h *models.Holding) holdingValue {
	switch h.AssetType {
	case models.AssetTypeStock:
		return s.valueStock(ctx, h)
	case models.AssetTypeBond:
		return holdingValue{
			assetType: models.AssetTypeBond,
			value:     h.Amount * s.config.BondReturnMultiplier,
			cost:      h.Amount,
		}
	case models.AssetTypeFund:
		return holdingValue{
			assetType: models.AssetTypeFund,
			value:     h.Amount * s.config.FundReturnMultiplier,
			cost:      h.Amount,
		}
	default:
		return holdingValue{assetType: h.AssetType, value: h.Amount, cost: h.Amount}
	}
}

func (s *Service) valueStock(ctx context.Context, h *models.Holding) holdingValue {
	degraded := holdingValue{assetType: models.AssetTypeStock, value: h.Amount, cost: h.Amount}

	if h.Stock == nil || h.Stock.Ticker == "" || h.Stock.Quantity <= 0 {
		return degraded
	}

	quote, err := s.market.GetQuote(ctx, h.Stock.Ticker)
	if err != nil || quote == nil || quote.Price <= 0 {
		s.logger.Debug().Str("ticker", h.Stock.Ticker).Err(err).Msg("Quote lookup failed, degrading to cost basis")
		return degraded
	}

	historical, err := s.market.GetHistoricalPrice(ctx, h.Stock.Ticker, h.PurchaseDate.Format("2006-01-02"))
	if err != nil || historical == nil || historical.Close <= 0 {
		s.logger.Debug().Str("ticker", h.Stock.Ticker).Err(err).Msg("Historical lookup failed, degrading to cost basis")
		return degraded
	}

	qty := float64(h.Stock.Quantity)
	return holdingValue{
		assetType: models.AssetTypeStock,
		value:     quote.Price * qty,
		cost:      historical.Close * qty,
	}
}

// buildAllocation returns the stock/bond/fund share of total current value,
// always in that order. All percents are zero when nothing is valued.
func buildAllocation(classValue map[models.AssetType]float64) []models.AllocationSlice {
	total := 0.0
	for _, v := range classValue {
		total += v
	}

	percent := func(t models.AssetType) int {
		if total <= 0 {
			return 0
		}
		return int(math.Round(100 * classValue[t] / total))
	}

	return []models.AllocationSlice{
		{Label: "주식", Percent: percent(models.AssetTypeStock), Color: colorStock},
		{Label: "채권", Percent: percent(models.AssetTypeBond), Color: colorBond},
		{Label: "펀드", Percent: percent(models.AssetTypeFund), Color: colorFund},
	}
}

// formatTotalAsset renders the total in millions of won with one decimal,
// e.g. "₩125.4M". A zero portfolio renders as "₩0".
func formatTotalAsset(totalValue float64) string {
	if totalValue == 0 {
		return "₩0"
	}
	return fmt.Sprintf("₩%.1fM", totalValue/1_000_000)
}

// formatPercent renders a percentage with one decimal and a sign prefix for
// positive values. Zero renders as "0%".
func formatPercent(p float64) string {
	if p == 0 {
		return "0%"
	}
	return fmt.Sprintf("%+.1f%%", p)
}

// Ensure Service implements ValuationService
var _ interfaces.ValuationService = (*Service)(nil)
