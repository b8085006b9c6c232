// Package usecase implements login and token validation. Login provisions
// the player lazily: unknown identifiers get a fresh record with the
// starting balance.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/billyz31/slot_arcade/internal/config"
	walletdomain "github.com/billyz31/slot_arcade/internal/modules/wallet/domain"
	"github.com/golang-jwt/jwt/v5"
)

// Auth errors
var (
	// ErrMissingCredentials means playerId or secret was empty
	ErrMissingCredentials = errors.New("missing playerId or secret")
	// ErrInvalidToken means the token failed to parse or verify
	ErrInvalidToken = errors.New("invalid token")
)

// Players is the wallet capability the auth flow needs
type Players interface {
	// EnsurePlayer returns the player, creating it on first login
	EnsurePlayer(ctx context.Context, playerID string) (*walletdomain.Player, error)
	// Player returns the player without creating it
	Player(ctx context.Context, playerID string) (*walletdomain.Player, error)
}

// AuthUseCase issues and validates player tokens
type AuthUseCase struct {
	players   Players
	jwtSecret []byte
	tokenTTL  time.Duration
}

// NewAuthUseCase creates a new auth use case
func NewAuthUseCase(players Players, cfg config.AuthConfig) *AuthUseCase {
	return &AuthUseCase{
		players:   players,
		jwtSecret: []byte(cfg.JWTSecret),
		tokenTTL:  cfg.TokenTTL,
	}
}

// Login provisions the player if needed and returns a signed token carrying
// the player identifier and role. The secret is opaque here; its verification
// belongs to an upstream identity provider.
func (uc *AuthUseCase) Login(ctx context.Context, playerID, secret string) (string, *walletdomain.Player, error) {
	if playerID == "" || secret == "" {
		return "", nil, ErrMissingCredentials
	}

	player, err := uc.players.EnsurePlayer(ctx, playerID)
	if err != nil {
		return "", nil, err
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"playerId": player.PlayerID,
		"role":     player.Role,
		"iat":      now.Unix(),
		"exp":      now.Add(uc.tokenTTL).Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(uc.jwtSecret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return token, player, nil
}

// ValidateToken parses a token and returns the player ID, role, and expiry
func (uc *AuthUseCase) ValidateToken(ctx context.Context, tokenString string) (string, string, time.Time, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return uc.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return "", "", time.Time{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", time.Time{}, ErrInvalidToken
	}

	playerID, ok := claims["playerId"].(string)
	if !ok || playerID == "" {
		return "", "", time.Time{}, ErrInvalidToken
	}
	role, _ := claims["role"].(string)

	var expiresAt time.Time
	if exp, ok := claims["exp"].(float64); ok {
		expiresAt = time.Unix(int64(exp), 0)
	}

	return playerID, role, expiresAt, nil
}

// Me returns the player's profile for an authenticated request
func (uc *AuthUseCase) Me(ctx context.Context, playerID string) (*walletdomain.Player, error) {
	return uc.players.Player(ctx, playerID)
}
