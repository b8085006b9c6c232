package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billyz31/slot_arcade/internal/modules/gateway/usecase"
	"github.com/billyz31/slot_arcade/internal/modules/gateway/ws"
	"github.com/billyz31/slot_arcade/pkg/service"
)

type fakeAuthService struct{}

func (fakeAuthService) ValidateToken(ctx context.Context, token string) (string, string, time.Time, error) {
	if token != "valid-token" {
		return "", "", time.Time{}, errors.New("invalid token")
	}
	return "alice", "player", time.Now().Add(time.Hour), nil
}

type fakeSlotService struct{}

func (fakeSlotService) Spin(ctx context.Context, playerID string, bet int64) (*service.SpinResult, error) {
	return &service.SpinResult{
		Reels:   []string{"🍒", "🍒", "🍒"},
		Bet:     bet,
		Win:     bet * 10,
		Balance: 10800,
		RoundID: "42",
	}, nil
}

func (fakeSlotService) Config() service.SlotConfig {
	return service.SlotConfig{MinBet: 1, MaxBet: 1000}
}

type fakeWalletService struct{}

func (fakeWalletService) Balance(ctx context.Context, playerID string) (*service.BalanceResult, error) {
	return &service.BalanceResult{PlayerID: playerID, Balance: 10800, Source: service.SourceStore}, nil
}

func (fakeWalletService) Credit(ctx context.Context, playerID string, amount int64, ref string) (*service.Receipt, error) {
	return nil, errors.New("not supported")
}

func (fakeWalletService) Debit(ctx context.Context, playerID string, amount int64, ref string) (*service.Receipt, error) {
	return nil, errors.New("not supported")
}

func setupServer(t *testing.T) (*httptest.Server, *ws.Manager) {
	t.Helper()

	manager := ws.NewManager()
	go manager.Run()
	t.Cleanup(manager.Shutdown)

	gatewayUC := usecase.NewGatewayUseCase(fakeSlotService{}, fakeWalletService{})
	handler := NewHandler(gatewayUC, manager, fakeAuthService{})

	srv := httptest.NewServer(http.HandlerFunc(handler.HandleWebSocket))
	t.Cleanup(srv.Close)
	return srv, manager
}

func wsURL(srv *httptest.Server, token string) string {
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	if token != "" {
		url += "?token=" + token
	}
	return url
}

func TestHandleWebSocketRejectsUnauthenticated(t *testing.T) {
	srv, _ := setupServer(t)

	_, resp, err := websocket.DefaultDialer.Dial(wsURL(srv, ""), nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	_, resp, err = websocket.DefaultDialer.Dial(wsURL(srv, "forged"), nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestHandleWebSocketSpinRoundTrip(t *testing.T) {
	srv, _ := setupServer(t)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, "valid-token"), nil)
	require.NoError(t, err)
	defer conn.Close()

	err = conn.WriteMessage(websocket.TextMessage, []byte(`{"event":"game_spin","data":{"bet":100}}`))
	require.NoError(t, err)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, message, err := conn.ReadMessage()
	require.NoError(t, err)

	var envelope usecase.ResultEnvelope
	require.NoError(t, json.Unmarshal(message, &envelope))
	assert.Equal(t, usecase.EventGameSpinResult, envelope.Event)
	assert.True(t, envelope.Success)
}

func TestHandleWebSocketReportsBadFrames(t *testing.T) {
	srv, _ := setupServer(t)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, "valid-token"), nil)
	require.NoError(t, err)
	defer conn.Close()

	err = conn.WriteMessage(websocket.TextMessage, []byte(`{"data":{"bet":100}}`))
	require.NoError(t, err)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, message, err := conn.ReadMessage()
	require.NoError(t, err)

	var reply map[string]string
	require.NoError(t, json.Unmarshal(message, &reply))
	assert.Equal(t, "no event specified", reply["error"])
}

func TestManagerReplacesReconnectingPlayer(t *testing.T) {
	srv, manager := setupServer(t)

	first, _, err := websocket.DefaultDialer.Dial(wsURL(srv, "valid-token"), nil)
	require.NoError(t, err)
	defer first.Close()

	second, _, err := websocket.DefaultDialer.Dial(wsURL(srv, "valid-token"), nil)
	require.NoError(t, err)
	defer second.Close()

	require.Eventually(t, func() bool {
		return manager.ConnectionCount() == 1
	}, 2*time.Second, 20*time.Millisecond)

	// The first connection was closed server-side by the replacement
	require.NoError(t, first.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err = first.ReadMessage()
	assert.Error(t, err)

	// The second connection still serves traffic
	err = second.WriteMessage(websocket.TextMessage, []byte(`{"event":"game_spin","data":{"bet":1}}`))
	require.NoError(t, err)
	require.NoError(t, second.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, message, err := second.ReadMessage()
	require.NoError(t, err)

	var envelope usecase.ResultEnvelope
	require.NoError(t, json.Unmarshal(message, &envelope))
	assert.True(t, envelope.Success)
}
