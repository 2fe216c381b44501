// Package config defines the typed configuration structures shared across
// the application. Values are loaded by internal/infrastructure/config.
package config

import "fmt"

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

// GetAddr returns the listen address in host:port form
func (c *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

// LoggerConfig holds logging configuration
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

// RedisConfig holds redis connection configuration
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// GetAddr returns the redis address in host:port form
func (c *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWT JWTConfig `mapstructure:"jwt"`
}

// JWTConfig holds JWT verification configuration
type JWTConfig struct {
	Secret string `mapstructure:"secret"`
	Issuer string `mapstructure:"issuer"`
}

// NotificationConfig holds SMTP notification delivery configuration
type NotificationConfig struct {
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	Username    string `mapstructure:"username"`
	Password    string `mapstructure:"password"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
	// AddressPattern derives recipient addresses from a staff ID when no
	// directory integration is configured, e.g. "staff-%d@corp.example.com".
	AddressPattern string `mapstructure:"address_pattern"`
}

// SLAConfig holds the SLA duration matrix in minutes, keyed by priority and
// work item type. Defaults apply per priority when a type has no entry.
type SLAConfig struct {
	// Matrix maps priority -> work item type -> duration in minutes.
	Matrix map[string]map[string]int `mapstructure:"matrix"`
	// DefaultMinutes maps priority -> fallback duration in minutes.
	DefaultMinutes map[string]int `mapstructure:"default_minutes"`
	// SweepIntervalSeconds controls how often the SLA sweep runs.
	SweepIntervalSeconds int `mapstructure:"sweep_interval_seconds"`
}

// AssignmentConfig holds assignment engine tuning values
type AssignmentConfig struct {
	DrainBatchSize        int `mapstructure:"drain_batch_size"`
	DrainDebounceSeconds  int `mapstructure:"drain_debounce_seconds"`
	DrainLeaseSeconds     int `mapstructure:"drain_lease_seconds"`
	DefaultIndividualWIP  int `mapstructure:"default_individual_wip"`
	DefaultUnitWIP        int `mapstructure:"default_unit_wip"`
	ViewCacheTTLSeconds   int `mapstructure:"view_cache_ttl_seconds"`
	AgingRefreshCronHour  int `mapstructure:"aging_refresh_cron_hour"`
	EscalationRecipientID uint `mapstructure:"escalation_recipient_id"`
}

// BiztimeConfig holds business timezone configuration
type BiztimeConfig struct {
	Timezone string `mapstructure:"timezone"`
}
