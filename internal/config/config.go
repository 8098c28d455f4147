package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"multi-city-planner/internal/database"
	"multi-city-planner/internal/planner"
)

// Config holds all configuration for the planner service
type Config struct {
	// Server
	ServerAddr         string
	CORSAllowedOrigins []string
	RateLimitRPS       float64
	RateLimitBurst     int

	// Storage
	DBPath string

	// Observability
	LogLevel         string
	MetricsNamespace string

	// Planner
	MaxTripDays              int
	LegSearchTimeout         time.Duration
	MaxConcurrentLegSearches int
	DepartureHour            int
}

// Load reads an optional .env file and then the environment
func Load() *Config {
	_ = godotenv.Load()

	defaults := planner.DefaultConfig()
	return &Config{
		ServerAddr:         getEnv("SERVER_ADDR", "127.0.0.1:8080"),
		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		RateLimitRPS:       getEnvAsFloat("RATE_LIMIT_RPS", 10),
		RateLimitBurst:     getEnvAsInt("RATE_LIMIT_BURST", 20),

		DBPath: getEnv("DB_PATH", database.GetDefaultDBPath()),

		LogLevel:         getEnv("LOG_LEVEL", "info"),
		MetricsNamespace: getEnv("METRICS_NAMESPACE", "tripplanner"),

		MaxTripDays:              getEnvAsInt("MAX_TRIP_DAYS", defaults.MaxTripDays),
		LegSearchTimeout:         time.Duration(getEnvAsInt("LEG_SEARCH_TIMEOUT_MS", int(defaults.LegSearchTimeout.Milliseconds()))) * time.Millisecond,
		MaxConcurrentLegSearches: getEnvAsInt("MAX_CONCURRENT_LEG_SEARCHES", defaults.MaxConcurrentLegSearches),
		DepartureHour:            getEnvAsInt("DEPARTURE_HOUR", *defaults.DepartureHour),
	}
}

// PlannerConfig projects the engine settings
func (c *Config) PlannerConfig() planner.Config {
	return planner.Config{
		MaxTripDays:              c.MaxTripDays,
		LegSearchTimeout:         c.LegSearchTimeout,
		MaxConcurrentLegSearches: c.MaxConcurrentLegSearches,
		DepartureHour:            planner.Hour(c.DepartureHour),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
