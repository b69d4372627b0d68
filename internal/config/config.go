package config

import (
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Log      LogConfig
	Forecast ForecastConfig
	Session  SessionConfig
}

type ServerConfig struct {
	Port           string
	Mode           string
	ReadTimeout    int
	WriteTimeout   int
	AllowedOrigins []string
}

type LogConfig struct {
	Level string
}

// ForecastConfig carries the replenishment constants and model settings.
// HorizonDays is informational: the forecast horizon is fixed.
type ForecastConfig struct {
	HorizonDays        int
	LeadTimeDays       float64
	AnnualDemandFactor float64
	OrderingCost       float64
	HoldingCost        float64
	Trees              int
	Seed               uint64
	Workers            int
}

type SessionConfig struct {
	IdleTTLMinutes int
}

var (
	once     sync.Once
	instance *Config
)

func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()
		instance = load(viper.GetViper())
	})

	return instance
}

func load(v *viper.Viper) *Config {
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SERVER_MODE", "debug")
	v.SetDefault("SERVER_READ_TIMEOUT", 15)
	v.SetDefault("SERVER_WRITE_TIMEOUT", 15)
	v.SetDefault("SERVER_ALLOWED_ORIGINS", []string{"*"})
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("FORECAST_LEAD_TIME_DAYS", 3)
	v.SetDefault("FORECAST_ANNUAL_DEMAND_FACTOR", 365)
	v.SetDefault("FORECAST_ORDERING_COST", 50)
	v.SetDefault("FORECAST_HOLDING_COST", 1)
	v.SetDefault("FORECAST_TREES", 100)
	v.SetDefault("FORECAST_SEED", 42)
	v.SetDefault("FORECAST_WORKERS", 4)
	v.SetDefault("SESSION_IDLE_TTL_MINUTES", 120)

	// Read from environment variables
	v.AutomaticEnv()

	return &Config{
		Server: ServerConfig{
			Port:           v.GetString("SERVER_PORT"),
			Mode:           v.GetString("SERVER_MODE"),
			ReadTimeout:    v.GetInt("SERVER_READ_TIMEOUT"),
			WriteTimeout:   v.GetInt("SERVER_WRITE_TIMEOUT"),
			AllowedOrigins: v.GetStringSlice("SERVER_ALLOWED_ORIGINS"),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Forecast: ForecastConfig{
			HorizonDays:        7,
			LeadTimeDays:       v.GetFloat64("FORECAST_LEAD_TIME_DAYS"),
			AnnualDemandFactor: v.GetFloat64("FORECAST_ANNUAL_DEMAND_FACTOR"),
			OrderingCost:       v.GetFloat64("FORECAST_ORDERING_COST"),
			HoldingCost:        v.GetFloat64("FORECAST_HOLDING_COST"),
			Trees:              v.GetInt("FORECAST_TREES"),
			Seed:               v.GetUint64("FORECAST_SEED"),
			Workers:            v.GetInt("FORECAST_WORKERS"),
		},
		Session: SessionConfig{
			IdleTTLMinutes: v.GetInt("SESSION_IDLE_TTL_MINUTES"),
		},
	}
}
