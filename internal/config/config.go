// Package config provides configuration management for the investment comparison engine.
package config

import (
	"fmt"
)

// Storage backends understood by the comparison store.
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// Config represents the complete application configuration
type Config struct {
	App     AppConfig     `mapstructure:"app" validate:"required"`
	Storage StorageConfig `mapstructure:"storage" validate:"required"`
	Tax     TaxConfig     `mapstructure:"tax" validate:"required"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Secrets SecretsConfig `mapstructure:"secrets"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// StorageConfig selects and configures the key-value backend for saved comparisons
type StorageConfig struct {
	Backend   string         `mapstructure:"backend" validate:"required,backend"`
	RecentMax int            `mapstructure:"recent_max" validate:"gte=0,lte=100"`
	Redis     RedisConfig    `mapstructure:"redis"`
	Database  DatabaseConfig `mapstructure:"database"`
}

// RedisConfig represents redis connection configuration
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db" validate:"gte=0"`
}

// DatabaseConfig represents database connection configuration
type DatabaseConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	Name           string `mapstructure:"name"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	SSLMode        string `mapstructure:"ssl_mode" validate:"omitempty,oneof=disable require verify-full"`
	MaxConnections int    `mapstructure:"max_connections" validate:"gte=0"`
}

// TaxConfig holds the fiscal defaults applied to scenarios that leave them unset
type TaxConfig struct {
	UVTValue        float64 `mapstructure:"uvt_value" validate:"gt=0"`
	WithholdingRate float64 `mapstructure:"withholding_rate" validate:"gte=0,lte=100"`
	InflationRate   float64 `mapstructure:"inflation_rate" validate:"gte=0,lte=100"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	Path    string `mapstructure:"path"`
}

// SecretsConfig points at an optional AWS Secrets Manager entry holding storage passwords
type SecretsConfig struct {
	Region     string `mapstructure:"region"`
	SecretName string `mapstructure:"secret_name"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsStaging checks if the application is running in staging mode
func (c *Config) IsStaging() bool {
	return c.App.Environment == "staging"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	return c.Storage.Database.DSN()
}

// DSN returns the connection string in keyword/value form
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host,
		d.Port,
		d.User,
		d.Password,
		d.Name,
		d.SSLMode,
	)
}

// MetricsAddress returns the listen address of the metrics and health server
func (c *Config) MetricsAddress() string {
	return fmt.Sprintf(":%d", c.Metrics.Port)
}
