package server

import (
	"net/http"

	"github.com/kimheonningg/KB-ai-challenge-BE/internal/models"
)

// handleChatNew handles POST /chatbot/new.
func (s *Server) handleChatNew(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req models.ChatRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	chatList, err := s.app.ChatService.Reply(r.Context(), uid, req.PreviousChat)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", uid).Msg("Chat reply failed")
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, models.ChatResponse{ChatList: chatList})
}
