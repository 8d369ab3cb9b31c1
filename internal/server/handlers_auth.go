package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/kimheonningg/KB-ai-challenge-BE/internal/models"
	"github.com/kimheonningg/KB-ai-challenge-BE/internal/storage/badger"
)

// handleAuthRegister handles POST /auth/register.
func (s *Server) handleAuthRegister(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req struct {
		UserID    string `json:"userId"`
		Email     string `json:"email"`
		PhoneNum  string `json:"phoneNum"`
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Password  string `json:"password"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	req.UserID = strings.TrimSpace(req.UserID)
	req.Email = strings.TrimSpace(req.Email)
	if req.UserID == "" || req.Email == "" || req.Password == "" {
		WriteError(w, http.StatusBadRequest, "userId, email, and password are required")
		return
	}
	if len(req.Password) < 8 {
		WriteError(w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}

	if _, err := s.app.Storage.Users().Get(r.Context(), req.UserID); err == nil {
		WriteError(w, http.StatusConflict, "user already exists")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "failed to hash password")
		return
	}

	user := &models.User{
		UserID:       req.UserID,
		Email:        req.Email,
		PhoneNum:     req.PhoneNum,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}
	if err := s.app.Storage.Users().Save(r.Context(), user); err != nil {
		WriteError(w, http.StatusInternalServerError, "failed to create user")
		return
	}

	s.logger.Info().Str("user_id", user.UserID).Msg("User registered")
	WriteJSON(w, http.StatusCreated, user.PublicProfile())
}

// handleAuthLogin handles POST /auth/login.
func (s *Server) handleAuthLogin(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req struct {
		UserID   string `json:"userId"`
		Password string `json:"password"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	user, err := s.app.Storage.Users().Get(r.Context(), strings.TrimSpace(req.UserID))
	if err != nil {
		if errors.Is(err, badger.ErrNotFound) {
			WriteError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		WriteError(w, http.StatusInternalServerError, "login failed")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		WriteError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := signJWT(user, &s.app.Config.Auth)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"access_token": token,
		"token_type":   "bearer",
	})
}

// handleUserInfo handles GET /auth/user_info.
func (s *Server) handleUserInfo(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}

	user, err := s.app.Storage.Users().Get(r.Context(), uid)
	if err != nil {
		WriteError(w, http.StatusNotFound, "user not found")
		return
	}
	WriteJSON(w, http.StatusOK, user.PublicProfile())
}
