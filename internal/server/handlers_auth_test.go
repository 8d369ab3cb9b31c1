package server

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	srv, storage := newTestServer(t)
	token := loginToken(t, srv)
	require.NotEmpty(t, token)

	// Password is stored hashed, never in the clear.
	user, err := storage.users.Get(t.Context(), "heonjin")
	require.NoError(t, err)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "correct horse", user.PasswordHash)
}

func TestRegisterDuplicateUser(t *testing.T) {
	srv, _ := newTestServer(t)
	handler := srv.Handler()

	body := map[string]string{
		"userId":   "dupe",
		"email":    "dupe@example.com",
		"password": "longenough",
	}
	rec := doJSON(t, handler, http.MethodPost, "/auth/register", "", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, handler, http.MethodPost, "/auth/register", "", body)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	srv, _ := newTestServer(t)

	body := map[string]string{
		"userId":   "shorty",
		"email":    "shorty@example.com",
		"password": "short",
	}
	rec := doJSON(t, srv.Handler(), http.MethodPost, "/auth/register", "", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	srv, _ := newTestServer(t)
	loginToken(t, srv)

	body := map[string]string{"userId": "heonjin", "password": "wrong password"}
	rec := doJSON(t, srv.Handler(), http.MethodPost, "/auth/login", "", body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginUnknownUser(t *testing.T) {
	srv, _ := newTestServer(t)

	body := map[string]string{"userId": "nobody", "password": "whatever"}
	rec := doJSON(t, srv.Handler(), http.MethodPost, "/auth/login", "", body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUserInfo(t *testing.T) {
	srv, _ := newTestServer(t)
	token := loginToken(t, srv)

	rec := doJSON(t, srv.Handler(), http.MethodGet, "/auth/user_info", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var profile map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profile))
	assert.Equal(t, "heonjin", profile["userId"])
	assert.Equal(t, "heonjin@example.com", profile["email"])
	assert.NotContains(t, rec.Body.String(), "correct horse")
}

func TestUserInfoRequiresToken(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv.Handler(), http.MethodGet, "/auth/user_info", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
}

func TestInvalidTokenRejected(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv.Handler(), http.MethodGet, "/auth/user_info", "not.a.token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
