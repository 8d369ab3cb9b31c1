package simulation

import (
	"math"
	"math/rand"
	"sort"

	"github.com/kimheonningg/KB-ai-challenge-BE/internal/models"
)

const (
	defaultPaths = 1000

	// Annualized GBM parameters. Drift scales with the news sentiment;
	// volatility grows with its magnitude.
	driftPerSentiment = 0.40
	baseVolatility    = 0.25
	sentimentVolBoost = 0.15

	tradingDaysPerYear = 252
)

// simulateGBM runs a geometric Brownian motion Monte Carlo for one symbol.
// Sentiment in [-1, 1] tilts the drift. Returns and risk figures are
// percentages relative to the base price.
func simulateGBM(rng *rand.Rand, symbol string, basePrice, sentiment float64, days int, confidence float64) models.SymbolSimulation {
	mu := sentiment * driftPerSentiment
	sigma := baseVolatility + sentimentVolBoost*math.Abs(sentiment)
	dt := 1.0 / tradingDaysPerYear

	paths := make([][]float64, defaultPaths)
	finals := make([]float64, defaultPaths)
	for p := 0; p < defaultPaths; p++ {
		path := make([]float64, days)
		price := basePrice
		for d := 0; d < days; d++ {
			z := rng.NormFloat64()
			price *= math.Exp((mu-0.5*sigma*sigma)*dt + sigma*math.Sqrt(dt)*z)
			path[d] = price
		}
		paths[p] = path
		finals[p] = price
	}

	sortedFinals := append([]float64(nil), finals...)
	sort.Float64s(sortedFinals)

	meanFinal := mean(finals)
	returns := make([]float64, defaultPaths)
	for i, f := range finals {
		returns[i] = 100 * (f - basePrice) / basePrice
	}
	sortedReturns := append([]float64(nil), returns...)
	sort.Float64s(sortedReturns)

	// VaR is the loss at the (1 - confidence) return quantile; CVaR is the
	// mean of the tail beyond it.
	varReturn := percentile(sortedReturns, 1-confidence)
	cvar := tailMean(sortedReturns, varReturn)

	expectedPath := make([]float64, days)
	lowerBand := make([]float64, days)
	upperBand := make([]float64, days)
	dayPrices := make([]float64, defaultPaths)
	for d := 0; d < days; d++ {
		for p := 0; p < defaultPaths; p++ {
			dayPrices[p] = paths[p][d]
		}
		expectedPath[d] = mean(dayPrices)
		sorted := append([]float64(nil), dayPrices...)
		sort.Float64s(sorted)
		lowerBand[d] = percentile(sorted, 0.05)
		upperBand[d] = percentile(sorted, 0.95)
	}

	return models.SymbolSimulation{
		Symbol:         symbol,
		BasePrice:      basePrice,
		FinalPrice:     meanFinal,
		ExpectedReturn: 100 * (meanFinal - basePrice) / basePrice,
		Volatility:     stddev(returns),
		VaR:            varReturn,
		CVaR:           cvar,
		P5:             percentile(sortedFinals, 0.05),
		P95:            percentile(sortedFinals, 0.95),
		ExpectedPath:   expectedPath,
		LowerBand:      lowerBand,
		UpperBand:      upperBand,
	}
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func stddev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := mean(values)
	sum := 0.0
	for _, v := range values {
		sum += (v - m) * (v - m)
	}
	return math.Sqrt(sum / float64(len(values)-1))
}

// percentile reads the q-quantile from an ascending-sorted slice.
func percentile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(q * float64(len(sorted)-1))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

// tailMean averages the sorted returns at or below the cutoff.
func tailMean(sortedReturns []float64, cutoff float64) float64 {
	var tail []float64
	for _, r := range sortedReturns {
		if r > cutoff {
			break
		}
		tail = append(tail, r)
	}
	if len(tail) == 0 {
		return cutoff
	}
	return mean(tail)
}
