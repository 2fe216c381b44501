package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"

	sharedConfig "caseflow/internal/shared/config"
)

type Config struct {
	Server       sharedConfig.ServerConfig       `mapstructure:"server"`
	Database     sharedConfig.DatabaseConfig     `mapstructure:"database"`
	Logger       sharedConfig.LoggerConfig       `mapstructure:"logger"`
	Redis        sharedConfig.RedisConfig        `mapstructure:"redis"`
	Auth         sharedConfig.AuthConfig         `mapstructure:"auth"`
	Notification sharedConfig.NotificationConfig `mapstructure:"notification"`
	SLA          sharedConfig.SLAConfig          `mapstructure:"sla"`
	Assignment   sharedConfig.AssignmentConfig   `mapstructure:"assignment"`
	Biztime      sharedConfig.BiztimeConfig      `mapstructure:"biztime"`
}

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// Load loads configuration from file and environment variables
func Load(env string) (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../configs")
	viper.AddConfigPath("../../configs")

	viper.SetEnvPrefix("CASEFLOW")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Allow env parameter to override server mode if provided
	if env != "" && env != "default" {
		viper.Set("server.mode", env)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	appConfigMu.Lock()
	appConfig = &config
	appConfigMu.Unlock()

	return &config, nil
}

// Get returns the loaded configuration
func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

// setDefaults sets default configuration values
func setDefaults() {
	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.mode", "debug")

	// Database defaults
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 3306)
	viper.SetDefault("database.username", "root")
	viper.SetDefault("database.password", "password")
	viper.SetDefault("database.database", "caseflow_dev")
	viper.SetDefault("database.max_idle_conns", 10)
	viper.SetDefault("database.max_open_conns", 100)
	viper.SetDefault("database.conn_max_lifetime", 60)

	// Logger defaults
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.format", "console")
	viper.SetDefault("logger.output_path", "stdout")

	// Redis defaults
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)

	// Auth defaults
	viper.SetDefault("auth.jwt.secret", "change-me-in-production")
	viper.SetDefault("auth.jwt.issuer", "caseflow")

	// Notification defaults
	viper.SetDefault("notification.host", "localhost")
	viper.SetDefault("notification.port", 587)
	viper.SetDefault("notification.from_address", "noreply@caseflow.local")
	viper.SetDefault("notification.from_name", "Caseflow")
	viper.SetDefault("notification.address_pattern", "staff-%d@caseflow.local")

	// SLA matrix defaults, in minutes. Priorities missing a type entry fall
	// back to sla.default_minutes for that priority.
	viper.SetDefault("sla.matrix.urgent.ticket", 4*60)
	viper.SetDefault("sla.matrix.urgent.dossier", 8*60)
	viper.SetDefault("sla.matrix.urgent.position", 8*60)
	viper.SetDefault("sla.matrix.urgent.task", 4*60)
	viper.SetDefault("sla.matrix.high.ticket", 24*60)
	viper.SetDefault("sla.matrix.high.dossier", 24*60)
	viper.SetDefault("sla.matrix.high.position", 24*60)
	viper.SetDefault("sla.matrix.high.task", 24*60)
	viper.SetDefault("sla.default_minutes.urgent", 8*60)
	viper.SetDefault("sla.default_minutes.high", 24*60)
	viper.SetDefault("sla.default_minutes.normal", 48*60)
	viper.SetDefault("sla.default_minutes.low", 5*24*60)
	viper.SetDefault("sla.sweep_interval_seconds", 60)

	// Assignment engine defaults
	viper.SetDefault("assignment.drain_batch_size", 10)
	viper.SetDefault("assignment.drain_debounce_seconds", 5)
	viper.SetDefault("assignment.drain_lease_seconds", 120)
	viper.SetDefault("assignment.default_individual_wip", 5)
	viper.SetDefault("assignment.default_unit_wip", 20)
	viper.SetDefault("assignment.view_cache_ttl_seconds", 30)
	viper.SetDefault("assignment.aging_refresh_cron_hour", 2)

	// Business timezone defaults
	viper.SetDefault("biztime.timezone", "UTC")
}
