package config

import "time"

// WalletConfig holds wallet module configuration
type WalletConfig struct {
	// CacheTTL bounds how stale a cached balance read may be
	CacheTTL time.Duration
	// StoreTimeout is the per-operation deadline against the balance store
	StoreTimeout time.Duration
	// StartingBalance is granted to players created on first login
	StartingBalance int64
	// RepoType selects the balance store backend: "db" or "memory"
	RepoType string
	// CacheType selects the balance cache backend: "redis" or "memory"
	CacheType string
}

// LoadWalletConfig loads wallet configuration
func LoadWalletConfig() WalletConfig {
	return WalletConfig{
		CacheTTL:        getEnvDuration("WALLET_CACHE_TTL", 30*time.Second),
		StoreTimeout:    getEnvDuration("WALLET_STORE_TIMEOUT", 3*time.Second),
		StartingBalance: getEnvInt64("WALLET_STARTING_BALANCE", 10000),
		RepoType:        getEnv("WALLET_REPO_TYPE", "db"),
		CacheType:       getEnv("WALLET_CACHE_TYPE", "redis"),
	}
}

// SlotConfig holds slot module configuration
type SlotConfig struct {
	MinBet int64
	MaxBet int64
}

// LoadSlotConfig loads slot configuration
func LoadSlotConfig() SlotConfig {
	return SlotConfig{
		MinBet: getEnvInt64("SLOT_MIN_BET", 1),
		MaxBet: getEnvInt64("SLOT_MAX_BET", 1000),
	}
}

// AuthConfig holds auth module configuration
type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// LoadAuthConfig loads auth configuration
func LoadAuthConfig() AuthConfig {
	return AuthConfig{
		JWTSecret: getEnv("JWT_SECRET", "default-secret-change-me"),
		TokenTTL:  time.Duration(getEnvInt("JWT_TTL", 3600)) * time.Second,
	}
}
