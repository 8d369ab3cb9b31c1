package server

import (
	"net/http"

	"github.com/kimheonningg/KB-ai-challenge-BE/internal/models"
)

// handleReportCreate handles POST /report/create.
func (s *Server) handleReportCreate(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}

	report, err := s.app.ReportService.CreateReport(r.Context(), uid)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", uid).Msg("Report generation failed")
		WriteError(w, http.StatusInternalServerError, "report generation failed")
		return
	}
	WriteJSON(w, http.StatusCreated, report)
}

// handleReportAll handles GET /report/all.
func (s *Server) handleReportAll(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}

	reports, err := s.app.ReportService.ListReports(r.Context(), uid)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "failed to list reports")
		return
	}
	if reports == nil {
		reports = []*models.Report{}
	}
	WriteJSON(w, http.StatusOK, reports)
}

// handleReportByID handles DELETE /report/{id}.
func (s *Server) handleReportByID(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodDelete) {
		return
	}
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}

	reportID := PathParam(r, "/report/", "")
	if reportID == "" {
		WriteError(w, http.StatusBadRequest, "report id is required")
		return
	}

	if err := s.app.ReportService.DeleteReport(r.Context(), uid, reportID); err != nil {
		WriteError(w, http.StatusNotFound, "report not found")
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"deleted": reportID})
}

// handleRiskAnalysis handles GET /report/risk_analysis.
func (s *Server) handleRiskAnalysis(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}

	analysis, err := s.app.ReportService.RiskAnalysis(r.Context(), uid)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", uid).Msg("Risk analysis failed")
		WriteError(w, http.StatusInternalServerError, "risk analysis failed")
		return
	}
	WriteJSON(w, http.StatusOK, analysis)
}

// handleRiskStatus handles GET /report/risk-status.
func (s *Server) handleRiskStatus(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}

	status, err := s.app.ReportService.RiskStatus(r.Context(), uid)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "risk status failed")
		return
	}
	WriteJSON(w, http.StatusOK, status)
}
