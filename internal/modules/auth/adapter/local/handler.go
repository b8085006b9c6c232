package local

import (
	"context"
	"time"

	"github.com/billyz31/slot_arcade/internal/modules/auth/usecase"
	"github.com/billyz31/slot_arcade/pkg/logger"
)

// Handler is the local adapter for the auth module (monolith mode). It
// implements service.AuthService.
type Handler struct {
	authUC *usecase.AuthUseCase
}

// NewHandler creates a new local auth handler
func NewHandler(authUC *usecase.AuthUseCase) *Handler {
	return &Handler{authUC: authUC}
}

// ValidateToken validates a token and returns the player identity it carries
func (h *Handler) ValidateToken(ctx context.Context, token string) (string, string, time.Time, error) {
	playerID, role, expiresAt, err := h.authUC.ValidateToken(ctx, token)
	if err != nil {
		logger.Debug(ctx).Err(err).Msg("token validation failed")
		return "", "", time.Time{}, err
	}

	logger.Debug(ctx).
		Str("player_id", playerID).
		Str("role", role).
		Msg("token validated")

	return playerID, role, expiresAt, nil
}
