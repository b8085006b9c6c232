package config

// ServerConfig describes one HTTP listener
type ServerConfig struct {
	Port string
	Name string
}

// DatabaseConfig describes the relational database connection.
// Driver is "postgres" or "sqlite"; Path is only used by sqlite.
type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	Path     string
}

// RedisConfig describes the redis connection
type RedisConfig struct {
	Host string
	Port string
}

// Addr returns host:port
func (c RedisConfig) Addr() string {
	return c.Host + ":" + c.Port
}

// APIConfig holds configuration for the REST API server
type APIConfig struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
}

// LoadAPIConfig loads configuration for the REST API server
func LoadAPIConfig() APIConfig {
	return APIConfig{
		Server: ServerConfig{
			Port: getEnv("API_PORT", "8080"),
			Name: "slot-arcade-api",
		},
		Database: DatabaseConfig{
			Driver:   getEnv("DB_DRIVER", "postgres"),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "arcade_user"),
			Password: getEnv("DB_PASSWORD", "arcade_pass"),
			Name:     getEnv("DB_NAME", "arcade_db"),
			Path:     getEnv("DB_SQLITE_PATH", "data/arcade.db"),
		},
		Redis: RedisConfig{
			Host: getEnv("REDIS_HOST", "localhost"),
			Port: getEnv("REDIS_PORT", "6379"),
		},
	}
}

// GatewayConfig holds configuration for the WebSocket gateway server
type GatewayConfig struct {
	Server ServerConfig
}

// LoadGatewayConfig loads configuration for the WebSocket gateway
func LoadGatewayConfig() GatewayConfig {
	return GatewayConfig{
		Server: ServerConfig{
			Port: getEnv("GATEWAY_PORT", "8081"),
			Name: "slot-arcade-gateway",
		},
	}
}
