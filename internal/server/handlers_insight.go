package server

import (
	"net/http"

	"github.com/kimheonningg/KB-ai-challenge-BE/internal/models"
)

// handleDailyBriefing handles GET /insight/daily-briefing.
func (s *Server) handleDailyBriefing(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}

	insight, err := s.app.InsightService.DailyBriefing(r.Context(), uid)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", uid).Msg("Daily briefing failed")
		WriteError(w, http.StatusInternalServerError, "daily briefing failed")
		return
	}
	WriteJSON(w, http.StatusOK, insight)
}

// handleInsightHistory handles GET /insight/history.
func (s *Server) handleInsightHistory(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}

	insights, err := s.app.InsightService.History(r.Context(), uid)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "failed to list insights")
		return
	}
	if insights == nil {
		insights = []*models.Insight{}
	}
	WriteJSON(w, http.StatusOK, insights)
}

// handleTimeMachine handles POST /insight/time-machine.
func (s *Server) handleTimeMachine(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	if _, ok := requireUser(w, r); !ok {
		return
	}

	var req models.TimeMachineRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	result, err := s.app.InsightService.TimeMachine(r.Context(), &req)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, result)
}
