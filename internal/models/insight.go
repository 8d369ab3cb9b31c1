package models

import "time"

// EconomicEvent is one upcoming event in a daily briefing, with the AI's
// analysis of its impact on the user's portfolio.
type EconomicEvent struct {
	EventName      string `json:"event_name"`
	EventDate      string `json:"event_date,omitempty"`
	ImpactAnalysis string `json:"impact_analysis"`
}

// Insight is a saved daily briefing.
type Insight struct {
	InsightID      string          `json:"insight_id" badgerhold:"key"`
	UserID         string          `json:"-" badgerhold:"index"`
	BriefingDate   string          `json:"briefing_date"`
	EconomicEvents []EconomicEvent `json:"economic_events"`
	MarketSummary  string          `json:"market_summary,omitempty"`
	SavedAt        time.Time       `json:"saved_at"`
}

// TimeMachineRequest asks what an investment would be worth had it been made
// in a different stock on the same date.
type TimeMachineRequest struct {
	BaseTicker       string  `json:"base_ticker"`
	ComparisonTicker string  `json:"comparison_ticker"`
	InvestmentAmount float64 `json:"investment_amount"`
	InvestmentDate   string  `json:"investment_date"`
}

// TimeMachineResult compares the two hypothetical investments. GraphData rows
// are keyed by date plus one column per ticker so the client can chart both
// series directly.
type TimeMachineResult struct {
	BaseTicker          string                   `json:"base_ticker"`
	ComparisonTicker    string                   `json:"comparison_ticker"`
	BaseValue           float64                  `json:"base_value"`
	ComparisonValue     float64                  `json:"comparison_value"`
	BaseReturnPct       float64                  `json:"base_return_pct"`
	ComparisonReturnPct float64                  `json:"comparison_return_pct"`
	GraphData           []map[string]interface{} `json:"graph_data"`
}
