package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the service
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Sensors    SensorConfig
	Retention  RetentionConfig
	Tasks      TaskConfig
	Monitoring MonitoringConfig
	API        APIConfig
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Host            string        `mapstructure:"host"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// SensorConfig holds thresholds applied to incoming readings
type SensorConfig struct {
	// BatteryLowVoltage is the voltage below which a tag reports battery low
	BatteryLowVoltage float64 `mapstructure:"battery_low_voltage"`
}

// RetentionConfig bounds how long raw readings are kept
type RetentionConfig struct {
	Days int `mapstructure:"days"`
}

// TaskConfig controls the periodic task schedules
type TaskConfig struct {
	// Cron expressions for the daily batch jobs
	AggregationSchedule string `mapstructure:"aggregation_schedule"`
	RetentionSchedule   string `mapstructure:"retention_schedule"`
}

type MonitoringConfig struct {
	LogLevel string `mapstructure:"log_level"`
}

type APIConfig struct {
	// IngestKey, when set, is required on reading ingestion requests
	IngestKey string `mapstructure:"ingest_key"`
	// StatusCacheTTL controls the redis cache lifetime of the tag status view
	StatusCacheTTL time.Duration `mapstructure:"status_cache_ttl"`
}

// Load initializes configuration from environment variables and config file
func Load() (*Config, error) {
	viper.SetEnvPrefix("TAGHUB")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "__"))
	viper.AutomaticEnv()

	// Set defaults
	setDefaults()

	// Load config file if exists
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation error: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	// Server defaults
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.read_timeout", "15s")
	viper.SetDefault("server.write_timeout", "15s")
	viper.SetDefault("server.shutdown_timeout", "30s")

	// Database defaults
	viper.SetDefault("database.postgres.port", 5432)
	viper.SetDefault("database.postgres.sslmode", "disable")

	// Redis defaults
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.db", 0)

	// Sensor defaults
	viper.SetDefault("sensors.battery_low_voltage", 2.5)

	// Retention defaults
	viper.SetDefault("retention.days", 7)

	// Task defaults: both batch jobs run once daily, shortly after midnight
	viper.SetDefault("tasks.aggregation_schedule", "10 0 * * *")
	viper.SetDefault("tasks.retention_schedule", "30 0 * * *")

	// Monitoring defaults
	viper.SetDefault("monitoring.log_level", "info")

	// API defaults
	viper.SetDefault("api.status_cache_ttl", "60s")
}

func validateConfig(config *Config) error {
	if config.Database.Postgres.Host == "" {
		return fmt.Errorf("postgres host is required")
	}
	if config.Retention.Days <= 0 {
		return fmt.Errorf("retention days must be positive")
	}
	if config.Sensors.BatteryLowVoltage <= 0 {
		return fmt.Errorf("battery low voltage threshold must be positive")
	}
	return nil
}

// RetentionHorizon returns the retention window as a duration
func (c *Config) RetentionHorizon() time.Duration {
	return time.Duration(c.Retention.Days) * 24 * time.Hour
}
