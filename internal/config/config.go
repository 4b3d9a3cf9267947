package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Match    MatchConfig
	Score    ScoreConfig
	Logging  LoggingConfig
}

type ServerConfig struct {
	Host         string
	Port         int
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	AccessSecret     string
	AccessExpiryMin  int
	RefreshExpiryDay int
}

// MatchConfig holds the filter-chain knobs. They are passed into the engine
// explicitly on every call; the engine itself reads no configuration.
type MatchConfig struct {
	EmergencyWindowSec   int
	ReceiveLimit         int
	ReciprocalPreference bool
}

// ScoreConfig holds the daily batch knobs. Caps and weights use the scoring
// package defaults; only the decay and schedule are tunable per deployment.
type ScoreConfig struct {
	HalfLifeHours int
	BatchHourKST  int
	RunScheduler  bool
}

type LoggingConfig struct {
	Level string
}

// Load loads configuration from environment variables or .env file
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("SERVER_PORT", 8080)
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("JWT_ACCESS_EXPIRY_MIN", 60)
	viper.SetDefault("JWT_REFRESH_EXPIRY_DAY", 30)
	viper.SetDefault("EMERGENCY_DURATION_SECONDS", 3600)
	viper.SetDefault("MATCH_RECEIVE_LIMIT", 19)
	viper.SetDefault("MATCH_RECIPROCAL_PREFERENCE", false)
	viper.SetDefault("SCORE_HALF_LIFE_HOURS", 12)
	viper.SetDefault("SCORE_BATCH_HOUR_KST", 11)
	viper.SetDefault("SCORE_RUN_SCHEDULER", true)
	viper.SetDefault("LOG_LEVEL", "info")

	// Try to read from .env file, but don't fail if it doesn't exist
	_ = viper.ReadInConfig()

	config := &Config{
		Server: ServerConfig{
			Host:         viper.GetString("SERVER_HOST"),
			Port:         viper.GetInt("SERVER_PORT"),
			Env:          viper.GetString("ENV"),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetInt("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			DBName:   viper.GetString("DB_NAME"),
			SSLMode:  viper.GetString("DB_SSL_MODE"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			AccessSecret:     viper.GetString("JWT_ACCESS_SECRET"),
			AccessExpiryMin:  viper.GetInt("JWT_ACCESS_EXPIRY_MIN"),
			RefreshExpiryDay: viper.GetInt("JWT_REFRESH_EXPIRY_DAY"),
		},
		Match: MatchConfig{
			EmergencyWindowSec:   viper.GetInt("EMERGENCY_DURATION_SECONDS"),
			ReceiveLimit:         viper.GetInt("MATCH_RECEIVE_LIMIT"),
			ReciprocalPreference: viper.GetBool("MATCH_RECIPROCAL_PREFERENCE"),
		},
		Score: ScoreConfig{
			HalfLifeHours: viper.GetInt("SCORE_HALF_LIFE_HOURS"),
			BatchHourKST:  viper.GetInt("SCORE_BATCH_HOUR_KST"),
			RunScheduler:  viper.GetBool("SCORE_RUN_SCHEDULER"),
		},
		Logging: LoggingConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
	}

	// Validate critical configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates critical configuration values
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("database name is required")
	}
	if c.JWT.AccessSecret == "" {
		return fmt.Errorf("JWT access secret is required")
	}
	if len(c.JWT.AccessSecret) < 32 {
		return fmt.Errorf("JWT access secret must be at least 32 characters")
	}
	if c.Match.EmergencyWindowSec <= 0 {
		return fmt.Errorf("emergency window must be positive")
	}
	if c.Score.HalfLifeHours <= 0 {
		return fmt.Errorf("score half-life must be positive")
	}
	if c.Score.BatchHourKST < 0 || c.Score.BatchHourKST > 23 {
		return fmt.Errorf("score batch hour must be within 0..23")
	}
	return nil
}

// HalfLife returns the recency half-life as a duration.
func (c *ScoreConfig) HalfLife() time.Duration {
	return time.Duration(c.HalfLifeHours) * time.Hour
}

// EmergencyWindow returns the emergency window as a duration.
func (c *MatchConfig) EmergencyWindow() time.Duration {
	return time.Duration(c.EmergencyWindowSec) * time.Second
}

// GetDSN returns PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// GetAddr returns Redis address
func (c *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
