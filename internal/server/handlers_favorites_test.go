package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFavoriteLifecycle(t *testing.T) {
	srv, _ := newTestServer(t)
	token := loginToken(t, srv)
	handler := srv.Handler()

	rec := doJSON(t, handler, http.MethodPost, "/fav_stocks/add/AAPL", token, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = doJSON(t, handler, http.MethodPost, "/fav_stocks/add/TSLA", token, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, handler, http.MethodGet, "/fav_stocks/all", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string][]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.ElementsMatch(t, []string{"AAPL", "TSLA"}, resp["list"])

	rec = doJSON(t, handler, http.MethodDelete, "/fav_stocks/AAPL", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, handler, http.MethodGet, "/fav_stocks/all", token, nil)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"TSLA"}, resp["list"])
}

func TestFavoriteDeleteUnknown(t *testing.T) {
	srv, _ := newTestServer(t)
	token := loginToken(t, srv)

	rec := doJSON(t, srv.Handler(), http.MethodDelete, "/fav_stocks/NOPE", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFeedbackAddPlainText(t *testing.T) {
	srv, storage := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/feedback/add", strings.NewReader("앱이 정말 유용해요"))
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	items, err := storage.feedback.List(t.Context())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "앱이 정말 유용해요", items[0].Text)
	assert.NotEmpty(t, items[0].FeedbackID)
}

func TestFeedbackRejectsEmptyBody(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/feedback/add", strings.NewReader("   "))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
