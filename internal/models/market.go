package models

import "time"

// Quote is a point-in-time price snapshot for a symbol.
type Quote struct {
	Symbol        string  `json:"symbol"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change,omitempty"`
	ChangePercent float64 `json:"changePercent,omitempty"`
	Volume        int64   `json:"volume,omitempty"`
	LatestDay     string  `json:"latestDay,omitempty"`
}

// HistoricalPrice is the OHLCV record resolved for the first trading day on
// or after a target date (or the most recent available day as a fallback).
type HistoricalPrice struct {
	Date   string  `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
}

// DailyBar is one day of an end-of-day price series, most recent first.
type DailyBar struct {
	Date   string  `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
}

// SymbolMatch is one result of a symbol search.
type SymbolMatch struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Type     string `json:"type,omitempty"`
	Region   string `json:"region,omitempty"`
	Currency string `json:"currency,omitempty"`
}

// PortfolioSummary is the consolidated valuation of a set of holdings.
// TotalAsset and the return fields are display-formatted; TotalValue and
// TotalCost carry the raw numbers for programmatic use.
type PortfolioSummary struct {
	TotalAsset   string            `json:"totalAsset"`
	DailyReturn  string            `json:"dailyReturn"`
	YearlyReturn string            `json:"yearlyReturn"`
	Allocation   []AllocationSlice `json:"allocation"`
	TotalValue   float64           `json:"totalValue"`
	TotalCost    float64           `json:"totalCost"`
	GeneratedAt  time.Time         `json:"generatedAt"`
}

// AllocationSlice is one asset class's share of total current value.
type AllocationSlice struct {
	Label   string `json:"label"`
	Percent int    `json:"percent"`
	Color   string `json:"color"`
}
