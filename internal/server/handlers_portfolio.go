package server

import (
	"net/http"

	"github.com/kimheonningg/KB-ai-challenge-BE/internal/models"
)

// handlePortfolioAdd handles POST /portfolio/add.
func (s *Server) handlePortfolioAdd(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}

	var holding models.Holding
	if !DecodeJSON(w, r, &holding) {
		return
	}

	if err := s.app.PortfolioService.AddHolding(r.Context(), uid, &holding); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	WriteJSON(w, http.StatusCreated, holding)
}

// handlePortfolioAll handles GET /portfolio/all.
func (s *Server) handlePortfolioAll(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}

	holdings, err := s.app.PortfolioService.ListHoldings(r.Context(), uid)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "failed to list holdings")
		return
	}
	if holdings == nil {
		holdings = []models.Holding{}
	}
	WriteJSON(w, http.StatusOK, holdings)
}

// handlePortfolioSummary handles GET /portfolio/summary.
func (s *Server) handlePortfolioSummary(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}

	summary, err := s.app.PortfolioService.Summary(r.Context(), uid)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "failed to build portfolio summary")
		return
	}
	WriteJSON(w, http.StatusOK, summary)
}
