package server

import (
	"net/http"
	"strings"

	"github.com/kimheonningg/KB-ai-challenge-BE/internal/models"
)

// handleStockQuote handles GET /stock/quote/{symbol}.
func (s *Server) handleStockQuote(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	symbol := strings.ToUpper(PathParam(r, "/stock/quote/", ""))
	if symbol == "" {
		WriteError(w, http.StatusBadRequest, "symbol is required")
		return
	}

	quote, err := s.app.MarketClient.GetQuote(r.Context(), symbol)
	if err != nil {
		s.logger.Warn().Err(err).Str("symbol", symbol).Msg("Quote lookup failed")
		WriteError(w, http.StatusBadGateway, "quote lookup failed for "+symbol)
		return
	}
	WriteJSON(w, http.StatusOK, quote)
}

// handleStockSearch handles GET /stock/search?keywords=.
func (s *Server) handleStockSearch(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	keywords := strings.TrimSpace(r.URL.Query().Get("keywords"))
	if keywords == "" {
		WriteError(w, http.StatusBadRequest, "keywords query parameter is required")
		return
	}

	matches, err := s.app.MarketClient.SearchSymbols(r.Context(), keywords)
	if err != nil {
		s.logger.Warn().Err(err).Str("keywords", keywords).Msg("Symbol search failed")
		WriteError(w, http.StatusBadGateway, "symbol search failed")
		return
	}
	if matches == nil {
		matches = []models.SymbolMatch{}
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{"matches": matches})
}
