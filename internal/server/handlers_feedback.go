package server

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kimheonningg/KB-ai-challenge-BE/internal/models"
)

// handleFeedbackAdd handles POST /feedback/add. The web client submits the
// feedback body as plain text, not JSON, and does not require a login.
func (s *Server) handleFeedbackAdd(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		WriteError(w, http.StatusBadRequest, "failed to read feedback body")
		return
	}

	text := strings.TrimSpace(string(body))
	if text == "" {
		WriteError(w, http.StatusBadRequest, "feedback text is required")
		return
	}

	fb := &models.Feedback{
		FeedbackID: uuid.New().String(),
		UserID:     userID(r),
		Text:       text,
		CreatedAt:  time.Now(),
	}
	if err := s.app.Storage.Feedback().Save(r.Context(), fb); err != nil {
		WriteError(w, http.StatusInternalServerError, "failed to save feedback")
		return
	}

	WriteJSON(w, http.StatusCreated, map[string]string{"feedback_id": fb.FeedbackID})
}
