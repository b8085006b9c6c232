package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billyz31/slot_arcade/internal/config"
	"github.com/billyz31/slot_arcade/internal/modules/slot/engine"
	"github.com/billyz31/slot_arcade/internal/modules/slot/usecase"
	walletmemory "github.com/billyz31/slot_arcade/internal/modules/wallet/repository/memory"
	walletusecase "github.com/billyz31/slot_arcade/internal/modules/wallet/usecase"
)

type apiResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func setupRouter(t *testing.T) (*gin.Engine, *walletusecase.WalletUseCase) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.WalletConfig{
		CacheTTL:        30 * time.Second,
		StoreTimeout:    time.Second,
		StartingBalance: 10000,
	}
	walletUC := walletusecase.NewWalletUseCase(walletmemory.NewPlayerRepository(), walletmemory.NewBalanceCache(cfg.CacheTTL), cfg)
	_, err := walletUC.EnsurePlayer(context.Background(), "alice")
	require.NoError(t, err)

	slotUC := usecase.NewSlotUseCase(engine.New(engine.DefaultConfig(1, 1000)), walletUC)
	handler := NewHandler(slotUC)

	router := gin.New()
	// Stand-in for the auth middleware
	router.Use(func(c *gin.Context) {
		c.Set(PlayerIDKey, "alice")
	})
	handler.RegisterPublicRoutes(router.Group("/api/slot"))
	handler.RegisterRoutes(router.Group("/api/slot"))
	return router, walletUC
}

func doRequest(router *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, apiResponse) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp apiResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func balanceOf(t *testing.T, walletUC *walletusecase.WalletUseCase, playerID string) int64 {
	t.Helper()
	balance, _, err := walletUC.Balance(context.Background(), playerID)
	require.NoError(t, err)
	return balance
}

func TestSpinEndpoint(t *testing.T) {
	router, walletUC := setupRouter(t)

	w, resp := doRequest(router, http.MethodPost, "/api/slot/spin", `{"bet":100}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Success)

	var data spinData
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.Equal(t, int64(100), data.Bet)
	assert.Len(t, data.Reels, 3)
	assert.NotEmpty(t, data.RoundID)
	assert.Equal(t, balanceOf(t, walletUC, "alice"), data.Balance)
}

func TestSpinEndpointDefaultsOmittedBetToMinBet(t *testing.T) {
	router, _ := setupRouter(t)

	w, resp := doRequest(router, http.MethodPost, "/api/slot/spin", `{}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Success)

	var data spinData
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.Equal(t, int64(1), data.Bet)
}

func TestSpinEndpointRejectsOutOfBoundsBets(t *testing.T) {
	router, walletUC := setupRouter(t)

	// An explicit zero is not an omitted bet; it must fail, not default
	for _, body := range []string{`{"bet":0}`, `{"bet":-5}`, `{"bet":1001}`} {
		w, resp := doRequest(router, http.MethodPost, "/api/slot/spin", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body %s", body)
		assert.False(t, resp.Success)
		assert.Equal(t, "Bet must be between 1 and 1000", resp.Message)
	}

	assert.Equal(t, int64(10000), balanceOf(t, walletUC, "alice"), "rejected spins must not touch the balance")
}

func TestConfigEndpoint(t *testing.T) {
	router, _ := setupRouter(t)

	w, resp := doRequest(router, http.MethodGet, "/api/slot/config", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Success)

	var data configData
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.Equal(t, int64(1), data.MinBet)
	assert.Equal(t, int64(1000), data.MaxBet)
	assert.Len(t, data.Symbols, 5)
	assert.Equal(t, 5, data.Paylines)
	assert.Equal(t, 3, data.Reels)
}
