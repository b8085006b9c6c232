package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/billyz31/slot_arcade/internal/modules/gateway/usecase"
	"github.com/billyz31/slot_arcade/internal/modules/gateway/ws"
	"github.com/billyz31/slot_arcade/pkg/logger"
	"github.com/billyz31/slot_arcade/pkg/service"
	"github.com/gorilla/websocket"
)

// Handler serves WebSocket upgrade requests for the gateway
type Handler struct {
	useCase *usecase.GatewayUseCase
	manager *ws.Manager
	authSvc service.AuthService
}

// NewHandler creates a new gateway HTTP handler
func NewHandler(useCase *usecase.GatewayUseCase, manager *ws.Manager, authSvc service.AuthService) *Handler {
	return &Handler{
		useCase: useCase,
		manager: manager,
		authSvc: authSvc,
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for now
	},
}

// HandleWebSocket authenticates, upgrades, and relays events for one player
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WebSocketContext(r)

	token := r.URL.Query().Get("token")
	if token == "" {
		logger.Warn(ctx).Str("remote_addr", r.RemoteAddr).Msg("ws upgrade without token")
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	playerID, _, _, err := h.authSvc.ValidateToken(r.Context(), token)
	if err != nil {
		logger.Warn(ctx).Err(err).Msg("ws token rejected")
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error(ctx).Err(err).Msg("ws upgrade failed")
		return
	}

	logger.Info(ctx).
		Str("player_id", playerID).
		Str("remote_addr", r.RemoteAddr).
		Msg("ws connection established")

	client := h.manager.Register(conn, playerID)

	go client.WritePump()
	go client.ReadPump(func(playerID string, message []byte) {
		// Each inbound event gets its own request ID
		msgCtx := logger.WithRequestID(context.Background(), logger.GenerateRequestID())

		response, err := h.useCase.HandleMessage(msgCtx, playerID, message)
		if err != nil {
			logger.Warn(msgCtx).
				Err(err).
				Str("player_id", playerID).
				Msg("gateway message rejected")

			if resp, marshalErr := json.Marshal(map[string]string{"error": err.Error()}); marshalErr == nil {
				h.manager.SendToPlayer(playerID, resp)
			}
			return
		}
		if response != nil {
			h.manager.SendToPlayer(playerID, response)
		}
	})
}
