package server

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kimheonningg/KB-ai-challenge-BE/internal/models"
)

func TestPortfolioAdd(t *testing.T) {
	srv, _ := newTestServer(t)
	token := loginToken(t, srv)

	var gotUser string
	var gotHolding *models.Holding
	srv.app.PortfolioService = &stubPortfolio{
		addFunc: func(_ context.Context, userID string, h *models.Holding) error {
			gotUser = userID
			gotHolding = h
			return nil
		},
	}

	body := map[string]interface{}{
		"assetType":    "stock",
		"amount":       1000000,
		"purchaseDate": "2024-01-02T00:00:00Z",
		"ticker":       "AAPL",
		"quantity":     10,
	}
	rec := doJSON(t, srv.Handler(), http.MethodPost, "/portfolio/add", token, body)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "heonjin", gotUser)
	require.NotNil(t, gotHolding)
	require.NotNil(t, gotHolding.Stock)
	assert.Equal(t, "AAPL", gotHolding.Stock.Ticker)
}

func TestPortfolioAllEmpty(t *testing.T) {
	srv, _ := newTestServer(t)
	token := loginToken(t, srv)

	rec := doJSON(t, srv.Handler(), http.MethodGet, "/portfolio/all", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	// nil slice still encodes as [], not null
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestPortfolioSummary(t *testing.T) {
	srv, _ := newTestServer(t)
	token := loginToken(t, srv)

	srv.app.PortfolioService = &stubPortfolio{
		summaryFunc: func(context.Context, string) (*models.PortfolioSummary, error) {
			return &models.PortfolioSummary{
				TotalAsset:   "₩1.5M",
				DailyReturn:  "+0.1%",
				YearlyReturn: "+36.5%",
			}, nil
		},
	}

	rec := doJSON(t, srv.Handler(), http.MethodGet, "/portfolio/summary", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var summary map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, "₩1.5M", summary["totalAsset"])
	assert.Equal(t, "+36.5%", summary["yearlyReturn"])
}

func TestPortfolioRequiresAuth(t *testing.T) {
	srv, _ := newTestServer(t)
	handler := srv.Handler()

	for _, path := range []string{"/portfolio/all", "/portfolio/summary"} {
		rec := doJSON(t, handler, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
	rec := doJSON(t, handler, http.MethodPost, "/portfolio/add", "", map[string]string{})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
