package simulation

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/kimheonningg/KB-ai-challenge-BE/internal/models"
)

// renderSimulationChart renders a PNG of one symbol's simulated price: the
// expected path (solid) between its 5th and 95th percentile bands (dashed).
func renderSimulationChart(result models.SymbolSimulation) ([]byte, error) {
	days := len(result.ExpectedPath)
	if days < 2 {
		return nil, fmt.Errorf("need at least 2 simulated days, got %d", days)
	}

	xValues := make([]float64, days)
	for i := range xValues {
		xValues[i] = float64(i + 1)
	}

	expectedSeries := chart.ContinuousSeries{
		Name: fmt.Sprintf("%s expected", result.Symbol),
		Style: chart.Style{
			StrokeColor: drawing.ColorFromHex("2563eb"),
			StrokeWidth: 2.5,
		},
		XValues: xValues,
		YValues: result.ExpectedPath,
	}

	bandStyle := chart.Style{
		StrokeColor:     drawing.ColorFromHex("9ca3af"),
		StrokeWidth:     1.5,
		StrokeDashArray: []float64{5.0, 3.0},
	}
	lowerSeries := chart.ContinuousSeries{
		Name:    "p5",
		Style:   bandStyle,
		XValues: xValues,
		YValues: result.LowerBand,
	}
	upperSeries := chart.ContinuousSeries{
		Name:    "p95",
		Style:   bandStyle,
		XValues: xValues,
		YValues: result.UpperBand,
	}

	graph := chart.Chart{
		Title:  fmt.Sprintf("%s simulation", result.Symbol),
		Width:  900,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("day %.0f", f)
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.1f", f)
				}
				return ""
			},
		},
		Series: []chart.Series{expectedSeries, lowerSeries, upperSeries},
	}

	graph.Elements = []chart.Renderable{
		chart.LegendLeft(&graph),
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}
	return buf.Bytes(), nil
}
