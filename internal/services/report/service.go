// Package report generates AI portfolio reports and risk assessments.
package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kimheonningg/KB-ai-challenge-BE/internal/common"
	"github.com/kimheonningg/KB-ai-challenge-BE/internal/interfaces"
	"github.com/kimheonningg/KB-ai-challenge-BE/internal/models"
)

// riskScoreThreshold marks a holding as risky. Scores are integers from 0
// (stable) down to -10 (severe downside risk); the web client tiers its
// rebalance advice at -1, -3, and -5, so anything at or below -1 counts.
const riskScoreThreshold = -1

// Service implements ReportService
type Service struct {
	storage interfaces.StorageManager
	ai      interfaces.AIClient
	logger  *common.Logger
}

// NewService creates a new report service
func NewService(storage interfaces.StorageManager, ai interfaces.AIClient, logger *common.Logger) *Service {
	return &Service{
		storage: storage,
		ai:      ai,
		logger:  logger,
	}
}

// CreateReport generates a portfolio report from the user's current holdings
func (s *Service) CreateReport(ctx context.Context, userID string) (*models.Report, error) {
	holdings, err := s.storage.Portfolios().List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load holdings: %w", err)
	}
	if len(holdings) == 0 {
		return nil, fmt.Errorf("no holdings to report on")
	}

	content, err := s.ai.GenerateContent(ctx, buildReportPrompt(holdings))
	if err != nil {
		return nil, fmt.Errorf("failed to generate report: %w", err)
	}

	report := &models.Report{
		UserID:        userID,
		ReportContent: content,
		GeneratedAt:   time.Now(),
	}
	if err := s.storage.Reports().Save(ctx, report); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", userID).Str("report_id", report.ReportID).Msg("Report created")
	return report, nil
}

// ListReports returns the user's reports, newest first
func (s *Service) ListReports(ctx context.Context, userID string) ([]*models.Report, error) {
	return s.storage.Reports().List(ctx, userID)
}

// DeleteReport removes a report after checking ownership
func (s *Service) DeleteReport(ctx context.Context, userID, reportID string) error {
	report, err := s.storage.Reports().Get(ctx, reportID)
	if err != nil {
		return err
	}
	if report.UserID != userID {
		return fmt.Errorf("report '%s' not found", reportID)
	}
	return s.storage.Reports().Delete(ctx, reportID)
}

// RiskAnalysis asks the model to assess every stock holding in one pass
func (s *Service) RiskAnalysis(ctx context.Context, userID string) (*models.RiskAnalysis, error) {
	tickers, err := s.stockTickers(ctx, userID)
	if err != nil {
		return nil, err
	}

	analysis := &models.RiskAnalysis{
		RiskReports: []models.RiskReport{},
		GeneratedAt: time.Now(),
	}
	if len(tickers) == 0 {
		return analysis, nil
	}

	var out struct {
		RiskReports []models.RiskReport `json:"risk_reports"`
	}
	if err := s.ai.GenerateJSON(ctx, buildRiskPrompt(tickers), &out); err != nil {
		return nil, fmt.Errorf("failed to generate risk analysis: %w", err)
	}
	if out.RiskReports != nil {
		analysis.RiskReports = out.RiskReports
	}

	s.logger.Info().Str("user_id", userID).Int("tickers", len(tickers)).Msg("Risk analysis generated")
	return analysis, nil
}

// RiskStatus runs the risk analysis and reduces it to a has-risk flag
func (s *Service) RiskStatus(ctx context.Context, userID string) (*models.RiskStatus, error) {
	analysis, err := s.RiskAnalysis(ctx, userID)
	if err != nil {
		return nil, err
	}

	status := &models.RiskStatus{
		TotalCount: len(analysis.RiskReports),
		CheckedAt:  time.Now(),
	}
	for _, r := range analysis.RiskReports {
		if r.RiskScore <= riskScoreThreshold {
			status.RiskyCount++
		}
	}
	status.HasRisk = status.RiskyCount > 0
	return status, nil
}

func (s *Service) stockTickers(ctx context.Context, userID string) ([]string, error) {
	holdings, err := s.storage.Portfolios().List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load holdings: %w", err)
	}

	seen := map[string]bool{}
	var tickers []string
	for _, h := range holdings {
		if h.AssetType != models.AssetTypeStock || h.Stock == nil || h.Stock.Ticker == "" {
			continue
		}
		if !seen[h.Stock.Ticker] {
			seen[h.Stock.Ticker] = true
			tickers = append(tickers, h.Stock.Ticker)
		}
	}
	return tickers, nil
}

func buildReportPrompt(holdings []models.Holding) string {
	var sb strings.Builder
	sb.WriteString("You are a financial advisor for a Korean retail investor. ")
	sb.WriteString("Write a portfolio analysis report in Korean covering composition, diversification, and suggested rebalancing.\n\nHoldings:\n")
	for _, h := range holdings {
		switch {
		case h.AssetType == models.AssetTypeStock && h.Stock != nil:
			sb.WriteString(fmt.Sprintf("- stock %s x%d, invested %.0f %s, purchased %s\n",
				h.Stock.Ticker, h.Stock.Quantity, h.Amount, h.Currency, h.PurchaseDate.Format("2006-01-02")))
		case h.AssetType == models.AssetTypeBond && h.Bond != nil:
			sb.WriteString(fmt.Sprintf("- bond %s, face value %.0f, coupon %.2f%%, invested %.0f %s\n",
				h.Bond.Issuer, h.Bond.FaceValue, h.Bond.CouponRate, h.Amount, h.Currency))
		case h.AssetType == models.AssetTypeFund && h.Fund != nil:
			sb.WriteString(fmt.Sprintf("- fund %s (%s), %.1f units, invested %.0f %s\n",
				h.Fund.FundName, h.Fund.FundType, h.Fund.Units, h.Amount, h.Currency))
		default:
			sb.WriteString(fmt.Sprintf("- %s, invested %.0f %s\n", h.AssetType, h.Amount, h.Currency))
		}
	}
	return sb.String()
}

func buildRiskPrompt(tickers []string) string {
	return fmt.Sprintf(`Assess downside risk for these stock tickers: %s.
Respond with JSON only, matching:
{"risk_reports":[{"stock":"<company name>","ticker":"<ticker>","risk_score":<integer from 0 (stable) to -10 (severe downside risk)>,"risk_level":"<낮음|보통|높음|매우 높음|정보 부족>","report":"<two sentence assessment in Korean>","top_news_links":["<url>"]}]}
Use 정보 부족 with risk_score 0 when you cannot assess a ticker.
Include one entry per ticker.`, strings.Join(tickers, ", "))
}

// Ensure Service implements ReportService
var _ interfaces.ReportService = (*Service)(nil)
