package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// minJWTSecretLength mirrors the HS256 key floor enforced by auth.InitJWT
const minJWTSecretLength = 32

// Config holds all application configuration
type Config struct {
	Database DatabaseConfig
	Redis    RedisConfig
	Server   ServerConfig
	App      AppConfig
	Chain    ChainConfig
	IPFS     IPFSConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Driver   string // postgres or sqlite
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	Path     string // sqlite file path
}

// RedisConfig holds the nonce store connection
type RedisConfig struct {
	URL string
}

// ServerConfig holds server settings
type ServerConfig struct {
	Port        string
	FrontendURL string
}

// AppConfig holds application-specific settings
type AppConfig struct {
	JWTSecret              string
	LogLevel               string
	MetricsRefreshInterval time.Duration
}

// ChainConfig holds the EVM node and governance contract settings
type ChainConfig struct {
	RPCURL                       string
	BeneficiaryGovernanceAddress string
	BeneficiaryRegistryAddress   string
	FetchConcurrency             int
	TokenDecimals                int32
}

// IPFSConfig holds the content-retrieval endpoint settings
type IPFSConfig struct {
	GatewayURL    string
	RetryAttempts int
	Timeout       time.Duration
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	config := read()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// LoadDatabase loads configuration but only requires the database settings
func LoadDatabase() (*Config, error) {
	config := read()
	if err := config.validateDatabase(); err != nil {
		return nil, err
	}
	return config, nil
}

func read() *Config {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	return &Config{
		Database: DatabaseConfig{
			Driver:   getEnv("DB_DRIVER", "postgres"),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "grants_governance"),
			Path:     getEnv("DB_PATH", "grants.db"),
		},
		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", "redis://localhost:6379/0"),
		},
		Server: ServerConfig{
			Port:        getEnv("SERVER_PORT", "8080"),
			FrontendURL: getEnv("FRONTEND_URL", ""),
		},
		App: AppConfig{
			JWTSecret:              getEnv("JWT_SECRET", ""),
			LogLevel:               getEnv("LOG_LEVEL", "info"),
			MetricsRefreshInterval: getEnvDuration("METRICS_REFRESH_INTERVAL", 5*time.Minute),
		},
		Chain: ChainConfig{
			RPCURL:                       getEnv("RPC_URL", "http://localhost:8545"),
			BeneficiaryGovernanceAddress: getEnv("BENEFICIARY_GOVERNANCE_ADDRESS", ""),
			BeneficiaryRegistryAddress:   getEnv("BENEFICIARY_REGISTRY_ADDRESS", ""),
			FetchConcurrency:             getEnvInt("FETCH_CONCURRENCY", 16),
			TokenDecimals:                int32(getEnvInt("TOKEN_DECIMALS", 18)),
		},
		IPFS: IPFSConfig{
			GatewayURL:    getEnv("IPFS_GATEWAY_URL", "https://gateway.pinata.cloud/ipfs"),
			RetryAttempts: getEnvInt("IPFS_RETRY_ATTEMPTS", 3),
			Timeout:       getEnvDuration("IPFS_TIMEOUT", 30*time.Second),
		},
	}
}

// Validate checks required fields
func (c *Config) Validate() error {
	if c.App.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if len(c.App.JWTSecret) < minJWTSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d bytes", minJWTSecretLength)
	}
	if c.App.MetricsRefreshInterval <= 0 {
		return fmt.Errorf("METRICS_REFRESH_INTERVAL must be positive, got %s", c.App.MetricsRefreshInterval)
	}
	if c.Chain.BeneficiaryGovernanceAddress == "" || c.Chain.BeneficiaryRegistryAddress == "" {
		return fmt.Errorf("BENEFICIARY_GOVERNANCE_ADDRESS and BENEFICIARY_REGISTRY_ADDRESS are required")
	}
	if c.IPFS.GatewayURL == "" {
		return fmt.Errorf("IPFS_GATEWAY_URL is required")
	}
	return c.validateDatabase()
}

func (c *Config) validateDatabase() error {
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}
	return nil
}

// GetDSN returns the connection string for the configured driver
func (c *Config) GetDSN() string {
	return c.Database.GetDSN()
}

// GetDSN returns the sqlite file path or the PostgreSQL connection string
func (d DatabaseConfig) GetDSN() string {
	if d.Driver == "sqlite" {
		return d.Path
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		d.Host,
		d.Port,
		d.User,
		d.Password,
		d.DBName,
	)
}

// getEnv gets an environment variable with a fallback default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}
