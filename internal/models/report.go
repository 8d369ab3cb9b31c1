package models

import "time"

// Report is an AI-generated portfolio report.
type Report struct {
	ReportID      string    `json:"report_id" badgerhold:"key"`
	UserID        string    `json:"-" badgerhold:"index"`
	ReportContent string    `json:"report_content"`
	GeneratedAt   time.Time `json:"generated_at"`
}

// RiskReport is the per-ticker risk assessment inside a risk analysis.
// RiskScore is negative for downside risk; RiskLevel is a display label.
type RiskReport struct {
	Stock        string   `json:"stock"`
	Ticker       string   `json:"ticker"`
	RiskScore    float64  `json:"risk_score"`
	RiskLevel    string   `json:"risk_level"`
	Report       string   `json:"report"`
	TopNewsLinks []string `json:"top_news_links"`
}

// RiskAnalysis is the response of a full portfolio risk scan.
type RiskAnalysis struct {
	RiskReports []RiskReport `json:"risk_reports"`
	GeneratedAt time.Time    `json:"generated_at"`
}

// RiskStatus summarises whether any holding currently trips the risk threshold.
type RiskStatus struct {
	HasRisk     bool      `json:"has_risk"`
	RiskyCount  int       `json:"risky_count"`
	TotalCount  int       `json:"total_count"`
	CheckedAt   time.Time `json:"checked_at"`
}
