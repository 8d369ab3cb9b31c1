package models

import "time"

// FakeNewsRequest is the scenario the user wants simulated: a free-form
// prompt and the symbols it should affect.
type FakeNewsRequest struct {
	Prompt  string   `json:"prompt"`
	Symbols []string `json:"symbols"`
}

// FakeNews is the AI-fabricated news article driving a simulation.
type FakeNews struct {
	Title     string  `json:"fake_news_title"`
	Content   string  `json:"fake_news_content"`
	Sentiment float64 `json:"sentiment"` // -1 (very bearish) .. +1 (very bullish)
}

// SymbolSimulation holds the Monte-Carlo outcome for one symbol.
type SymbolSimulation struct {
	Symbol         string  `json:"symbol"`
	BasePrice      float64 `json:"base_price"`
	FinalPrice     float64 `json:"final_price"`
	ExpectedReturn float64 `json:"expected_return"`
	Volatility     float64 `json:"volatility"`
	VaR            float64 `json:"VaR"`
	CVaR           float64 `json:"CVaR"`
	P5             float64 `json:"p5"`
	P95            float64 `json:"p95"`

	// ExpectedPath is the mean simulated price per day, index 0 = day 1.
	ExpectedPath []float64 `json:"expected_path,omitempty"`
	LowerBand    []float64 `json:"lower_band,omitempty"`
	UpperBand    []float64 `json:"upper_band,omitempty"`
}

// Simulation is one stored fake-news simulation run.
type Simulation struct {
	SimulationID    string             `json:"simulation_id" badgerhold:"key"`
	UserID          string             `json:"-" badgerhold:"index"`
	SimulationDays  int                `json:"simulation_days"`
	ConfidenceLevel float64            `json:"confidence_level"`
	FakeNews        FakeNews           `json:"fake_news"`
	Results         []SymbolSimulation `json:"results"`
	ChartKey        string             `json:"chart_key,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
}

// SimulationHistory is the list response for stored simulations.
type SimulationHistory struct {
	Simulations []*Simulation `json:"simulations"`
}
