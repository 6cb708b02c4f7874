package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Redis    RedisConfig
	CORS     CORSConfig
	Forecast ForecastConfig
}

type ServerConfig struct {
	Port int
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

type JWTConfig struct {
	Secret             string
	ExpiryHours        int
	RefreshExpiryHours int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CORSConfig struct {
	AllowedOrigins []string
}

// AllowAll reports whether the origin list is the "*" wildcard.
func (c CORSConfig) AllowAll() bool {
	return len(c.AllowedOrigins) == 1 && c.AllowedOrigins[0] == "*"
}

// ForecastConfig holds the demand-model tuning knobs. The defaults mirror
// the values the service has always run with; they are plain configuration,
// not derived from any business rule.
type ForecastConfig struct {
	ModelPath       string
	LookbackDays    int
	MinObservations int
	DefaultHorizon  int
	MaxHorizon      int
}

func (d DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

func LoadConfig() (*Config, error) {
	serverPort, err := getIntEnv("SERVER_PORT", 8080)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	dbPort, err := getIntEnv("DB_PORT", 5432)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	jwtExpiry, err := getIntEnv("JWT_EXPIRY_HOURS", 24)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRY_HOURS: %w", err)
	}

	refreshExpiry, err := getIntEnv("JWT_REFRESH_EXPIRY_HOURS", 168)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_REFRESH_EXPIRY_HOURS: %w", err)
	}

	redisPort, err := getIntEnv("REDIS_PORT", 6379)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_PORT: %w", err)
	}

	redisDB, err := getIntEnv("REDIS_DB", 0)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	lookbackDays, err := getIntEnv("FORECAST_LOOKBACK_DAYS", 180)
	if err != nil {
		return nil, fmt.Errorf("invalid FORECAST_LOOKBACK_DAYS: %w", err)
	}

	minObs, err := getIntEnv("FORECAST_MIN_OBSERVATIONS", 10)
	if err != nil {
		return nil, fmt.Errorf("invalid FORECAST_MIN_OBSERVATIONS: %w", err)
	}

	defaultHorizon, err := getIntEnv("FORECAST_DEFAULT_HORIZON_HOURS", 24)
	if err != nil {
		return nil, fmt.Errorf("invalid FORECAST_DEFAULT_HORIZON_HOURS: %w", err)
	}

	maxHorizon, err := getIntEnv("FORECAST_MAX_HORIZON_HOURS", 168)
	if err != nil {
		return nil, fmt.Errorf("invalid FORECAST_MAX_HORIZON_HOURS: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: serverPort,
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     dbPort,
			User:     getEnv("DB_USER", "cybercafe"),
			Password: getEnv("DB_PASSWORD", "cybercafe_dev_password"),
			Name:     getEnv("DB_NAME", "cybercafe"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			Secret:             getEnv("JWT_SECRET", "dev-secret-change-me"),
			ExpiryHours:        jwtExpiry,
			RefreshExpiryHours: refreshExpiry,
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     redisPort,
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		CORS: CORSConfig{
			AllowedOrigins: splitOrigins(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		},
		Forecast: ForecastConfig{
			ModelPath:       getEnv("FORECAST_MODEL_PATH", "data/demand_model.json"),
			LookbackDays:    lookbackDays,
			MinObservations: minObs,
			DefaultHorizon:  defaultHorizon,
			MaxHorizon:      maxHorizon,
		},
	}

	return cfg, nil
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getIntEnv(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	return parsed, nil
}
