package server

import (
	"net/http"
	"strconv"

	"github.com/kimheonningg/KB-ai-challenge-BE/internal/models"
)

// handleSimulationGenerate handles
// POST /stock-simulation/generate-and-simulate?simulation_days=&confidence_level=.
func (s *Server) handleSimulationGenerate(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req models.FakeNewsRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	days := 0
	if raw := r.URL.Query().Get("simulation_days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "simulation_days must be an integer")
			return
		}
		days = parsed
	}

	confidence := 0.0
	if raw := r.URL.Query().Get("confidence_level"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "confidence_level must be a number")
			return
		}
		confidence = parsed
	}

	sim, err := s.app.SimulationService.GenerateAndSimulate(r.Context(), uid, &req, days, confidence)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", uid).Msg("Simulation failed")
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	WriteJSON(w, http.StatusCreated, sim)
}

// handleSimulationHistory handles GET /stock-simulation/history.
func (s *Server) handleSimulationHistory(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}

	history, err := s.app.SimulationService.History(r.Context(), uid)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "failed to list simulations")
		return
	}
	WriteJSON(w, http.StatusOK, history)
}

// handleSimulationByID handles DELETE /stock-simulation/{id}.
func (s *Server) handleSimulationByID(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodDelete) {
		return
	}
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}

	simID := PathParam(r, "/stock-simulation/", "")
	if simID == "" {
		WriteError(w, http.StatusBadRequest, "simulation id is required")
		return
	}

	if err := s.app.SimulationService.Delete(r.Context(), uid, simID); err != nil {
		WriteError(w, http.StatusNotFound, "simulation not found")
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"deleted": simID})
}
