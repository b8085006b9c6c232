// Package config loads process configuration from the environment into
// explicit structs that are constructed once and passed into module
// constructors.
package config

import (
	"os"
	"strconv"
	"time"
)

// MonolithConfig holds all configuration for monolith mode
type MonolithConfig struct {
	API     APIConfig
	Gateway GatewayConfig
	Wallet  WalletConfig
	Slot    SlotConfig
	Auth    AuthConfig
}

// LoadMonolithConfig loads all configurations for monolith mode
func LoadMonolithConfig() *MonolithConfig {
	return &MonolithConfig{
		API:     LoadAPIConfig(),
		Gateway: LoadGatewayConfig(),
		Wallet:  LoadWalletConfig(),
		Slot:    LoadSlotConfig(),
		Auth:    LoadAuthConfig(),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.ParseInt(value, 10, 64); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
