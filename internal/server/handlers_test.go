package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kimheonningg/KB-ai-challenge-BE/internal/app"
	"github.com/kimheonningg/KB-ai-challenge-BE/internal/common"
	"github.com/kimheonningg/KB-ai-challenge-BE/internal/interfaces"
	"github.com/kimheonningg/KB-ai-challenge-BE/internal/models"
	"github.com/kimheonningg/KB-ai-challenge-BE/internal/storage/badger"
)

// memUserStore is an in-memory UserStore for handler tests.
type memUserStore struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[string]*models.User)}
}

func (m *memUserStore) Get(_ context.Context, userID string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return nil, badger.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, badger.ErrNotFound
}

func (m *memUserStore) Save(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *user
	m.users[user.UserID] = &cp
	return nil
}

func (m *memUserStore) Delete(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.users, userID)
	return nil
}

// memFeedbackStore records saved feedback.
type memFeedbackStore struct {
	mu    sync.Mutex
	items []*models.Feedback
}

func (m *memFeedbackStore) Save(_ context.Context, fb *models.Feedback) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append(m.items, fb)
	return nil
}

func (m *memFeedbackStore) List(_ context.Context) ([]*models.Feedback, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*models.Feedback(nil), m.items...), nil
}

// stubStorage satisfies StorageManager with in-memory users and feedback.
// The remaining stores are unused by the handler tests.
type stubStorage struct {
	users    *memUserStore
	feedback *memFeedbackStore
}

func newStubStorage() *stubStorage {
	return &stubStorage{users: newMemUserStore(), feedback: &memFeedbackStore{}}
}

func (s *stubStorage) Users() interfaces.UserStore { return s.users }

func (s *stubStorage) Portfolios() interfaces.PortfolioStore { return nil }

func (s *stubStorage) Reports() interfaces.ReportStore { return nil }

func (s *stubStorage) Insights() interfaces.InsightStore { return nil }

func (s *stubStorage) Simulations() interfaces.SimulationStore { return nil }

func (s *stubStorage) Favorites() interfaces.FavoriteStore { return nil }

func (s *stubStorage) Feedback() interfaces.FeedbackStore { return s.feedback }

func (s *stubStorage) WriteRaw(string, string, []byte) error { return nil }

func (s *stubStorage) Close() error { return nil }

// stubPortfolio implements PortfolioService with function fields.
type stubPortfolio struct {
	addFunc     func(ctx context.Context, userID string, h *models.Holding) error
	listFunc    func(ctx context.Context, userID string) ([]models.Holding, error)
	summaryFunc func(ctx context.Context, userID string) (*models.PortfolioSummary, error)
}

func (s *stubPortfolio) AddHolding(ctx context.Context, userID string, h *models.Holding) error {
	if s.addFunc != nil {
		return s.addFunc(ctx, userID, h)
	}
	return nil
}

func (s *stubPortfolio) ListHoldings(ctx context.Context, userID string) ([]models.Holding, error) {
	if s.listFunc != nil {
		return s.listFunc(ctx, userID)
	}
	return nil, nil
}

func (s *stubPortfolio) Summary(ctx context.Context, userID string) (*models.PortfolioSummary, error) {
	if s.summaryFunc != nil {
		return s.summaryFunc(ctx, userID)
	}
	return &models.PortfolioSummary{}, nil
}

// stubFavorites implements FavoriteService over a map.
type stubFavorites struct {
	mu   sync.Mutex
	favs map[string][]string
}

func newStubFavorites() *stubFavorites {
	return &stubFavorites{favs: make(map[string][]string)}
}

func (s *stubFavorites) Add(_ context.Context, userID, ticker string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.favs[userID] = append(s.favs[userID], ticker)
	return nil
}

func (s *stubFavorites) Remove(_ context.Context, userID, ticker string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.favs[userID]
	for i, t := range list {
		if t == ticker {
			s.favs[userID] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return errors.New("not found")
}

func (s *stubFavorites) List(_ context.Context, userID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.favs[userID]...), nil
}

// newTestServer builds a Server backed by stub storage and services.
func newTestServer(t *testing.T) (*Server, *stubStorage) {
	t.Helper()

	config := common.NewDefaultConfig()
	config.Auth.JWTSecret = "test-secret"

	storage := newStubStorage()
	a := &app.App{
		Config:           config,
		Logger:           common.NewSilentLogger(),
		Storage:          storage,
		PortfolioService: &stubPortfolio{},
		FavoriteService:  newStubFavorites(),
	}
	return NewServer(a), storage
}

// doJSON performs a request with an optional JSON body and bearer token.
func doJSON(t *testing.T, handler http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

// loginToken registers a user and returns a valid access token.
func loginToken(t *testing.T, srv *Server) string {
	t.Helper()

	handler := srv.Handler()
	reg := map[string]string{
		"userId":   "heonjin",
		"email":    "heonjin@example.com",
		"password": "correct horse",
	}
	rec := doJSON(t, handler, http.MethodPost, "/auth/register", "", reg)
	require.Equal(t, http.StatusCreated, rec.Code)

	login := map[string]string{"userId": "heonjin", "password": "correct horse"}
	rec = doJSON(t, handler, http.MethodPost, "/auth/login", "", login)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp["access_token"])
	return resp["access_token"]
}
