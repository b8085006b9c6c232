package service

import (
	"context"
	"time"
)

// AuthService defines token operations exposed to other modules
type AuthService interface {
	// ValidateToken parses a token and returns the player ID and role it carries
	ValidateToken(ctx context.Context, token string) (string, string, time.Time, error)
}
