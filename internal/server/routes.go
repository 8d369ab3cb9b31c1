package server

import (
	"net/http"
	"time"

	"github.com/kimheonningg/KB-ai-challenge-BE/internal/common"
)

// registerRoutes sets up all REST API routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/version", s.handleVersion)

	// Auth
	mux.HandleFunc("/auth/register", s.handleAuthRegister)
	mux.HandleFunc("/auth/login", s.handleAuthLogin)
	mux.HandleFunc("/auth/user_info", s.handleUserInfo)

	// Portfolio
	mux.HandleFunc("/portfolio/add", s.handlePortfolioAdd)
	mux.HandleFunc("/portfolio/all", s.handlePortfolioAll)
	mux.HandleFunc("/portfolio/summary", s.handlePortfolioSummary)

	// Market data
	mux.HandleFunc("/stock/quote/", s.handleStockQuote)
	mux.HandleFunc("/stock/search", s.handleStockSearch)

	// Reports
	mux.HandleFunc("/report/create", s.handleReportCreate)
	mux.HandleFunc("/report/all", s.handleReportAll)
	mux.HandleFunc("/report/risk_analysis", s.handleRiskAnalysis)
	mux.HandleFunc("/report/risk-status", s.handleRiskStatus)
	mux.HandleFunc("/report/", s.handleReportByID)

	// Insights
	mux.HandleFunc("/insight/daily-briefing", s.handleDailyBriefing)
	mux.HandleFunc("/insight/history", s.handleInsightHistory)
	mux.HandleFunc("/insight/time-machine", s.handleTimeMachine)

	// Simulations
	mux.HandleFunc("/stock-simulation/generate-and-simulate", s.handleSimulationGenerate)
	mux.HandleFunc("/stock-simulation/history", s.handleSimulationHistory)
	mux.HandleFunc("/stock-simulation/", s.handleSimulationByID)

	// Chatbot
	mux.HandleFunc("/chatbot/new", s.handleChatNew)

	// Favorites
	mux.HandleFunc("/fav_stocks/add/", s.handleFavoriteAdd)
	mux.HandleFunc("/fav_stocks/all", s.handleFavoriteAll)
	mux.HandleFunc("/fav_stocks/", s.handleFavoriteDelete)

	// Feedback
	mux.HandleFunc("/feedback/add", s.handleFeedbackAdd)
}

// handleHealth handles GET /health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"uptime": time.Since(s.app.StartupTime).String(),
	})
}

// handleVersion handles GET /version.
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"build":   common.GetFullVersion(),
	})
}
