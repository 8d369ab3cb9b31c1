package server

import (
	"net/http"
)

// handleFavoriteAdd handles POST /fav_stocks/add/{ticker}.
func (s *Server) handleFavoriteAdd(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}

	ticker := PathParam(r, "/fav_stocks/add/", "")
	if ticker == "" {
		WriteError(w, http.StatusBadRequest, "ticker is required")
		return
	}

	if err := s.app.FavoriteService.Add(r.Context(), uid, ticker); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	WriteJSON(w, http.StatusCreated, map[string]string{"added": ticker})
}

// handleFavoriteAll handles GET /fav_stocks/all.
func (s *Server) handleFavoriteAll(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}

	tickers, err := s.app.FavoriteService.List(r.Context(), uid)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "failed to list favorites")
		return
	}
	if tickers == nil {
		tickers = []string{}
	}
	WriteJSON(w, http.StatusOK, map[string][]string{"list": tickers})
}

// handleFavoriteDelete handles DELETE /fav_stocks/{ticker}.
func (s *Server) handleFavoriteDelete(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodDelete) {
		return
	}
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}

	ticker := PathParam(r, "/fav_stocks/", "")
	if ticker == "" {
		WriteError(w, http.StatusBadRequest, "ticker is required")
		return
	}

	if err := s.app.FavoriteService.Remove(r.Context(), uid, ticker); err != nil {
		WriteError(w, http.StatusNotFound, "favorite not found")
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"removed": ticker})
}
