package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Admin    AdminConfig    `mapstructure:"admin"`
}

type ServerConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Mode            string `mapstructure:"mode"`
	ReadTimeout     string `mapstructure:"read_timeout"`
	WriteTimeout    string `mapstructure:"write_timeout"`
	ShutdownTimeout string `mapstructure:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	Name            string `mapstructure:"name"`
	SSLMode         string `mapstructure:"sslmode"`
	Timezone        string `mapstructure:"timezone"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime string `mapstructure:"conn_max_lifetime"`
}

// AuthConfig carries the fixed security constants. Defaults match the
// documented policy; every value can be overridden from the config file.
type AuthConfig struct {
	MaxLoginAttempts      int `mapstructure:"max_login_attempts"`
	LockDurationMinutes   int `mapstructure:"lock_duration_minutes"`
	SessionDurationHours  int `mapstructure:"session_duration_hours"`
	ThrottleWindowMinutes int `mapstructure:"throttle_window_minutes"`
	ThrottleMaxAttempts   int `mapstructure:"throttle_max_attempts"`
	ThrottleBlockMinutes  int `mapstructure:"throttle_block_minutes"`
	BcryptCost            int `mapstructure:"bcrypt_cost"`
	MinPasswordLength     int `mapstructure:"min_password_length"`
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

type AdminConfig struct {
	Secret string `mapstructure:"secret"`
}

// Load loads configuration from file and environment variables
func Load() (*Config, error) {
	v := viper.New()

	// Set config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	// Read environment variables
	v.AutomaticEnv()

	setAuthDefaults(v)

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Override with environment variables
	if port := os.Getenv("PORT"); port != "" {
		v.Set("server.port", port)
	}
	if dbHost := os.Getenv("DB_HOST"); dbHost != "" {
		cfg.Database.Host = dbHost
	}
	if dbPass := os.Getenv("DB_PASSWORD"); dbPass != "" {
		cfg.Database.Password = dbPass
	}
	if adminSecret := os.Getenv("ADMIN_SECRET"); adminSecret != "" {
		cfg.Admin.Secret = adminSecret
	}

	return &cfg, nil
}

func setAuthDefaults(v *viper.Viper) {
	v.SetDefault("auth.max_login_attempts", 5)
	v.SetDefault("auth.lock_duration_minutes", 30)
	v.SetDefault("auth.session_duration_hours", 3)
	v.SetDefault("auth.throttle_window_minutes", 5)
	v.SetDefault("auth.throttle_max_attempts", 5)
	v.SetDefault("auth.throttle_block_minutes", 30)
	v.SetDefault("auth.bcrypt_cost", 12)
	v.SetDefault("auth.min_password_length", 8)
}

// GetDSN returns PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode, c.Timezone,
	)
}

// GetURL returns the postgres:// URL form used by golang-migrate.
func (c *DatabaseConfig) GetURL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode,
	)
}

func (c *AuthConfig) LockDuration() time.Duration {
	return time.Duration(c.LockDurationMinutes) * time.Minute
}

func (c *AuthConfig) SessionDuration() time.Duration {
	return time.Duration(c.SessionDurationHours) * time.Hour
}

func (c *AuthConfig) ThrottleWindow() time.Duration {
	return time.Duration(c.ThrottleWindowMinutes) * time.Minute
}

func (c *AuthConfig) ThrottleBlockDuration() time.Duration {
	return time.Duration(c.ThrottleBlockMinutes) * time.Minute
}

func (c *ServerConfig) GetReadTimeout() (time.Duration, error) {
	return parseDuration(c.ReadTimeout)
}

func (c *ServerConfig) GetWriteTimeout() (time.Duration, error) {
	return parseDuration(c.WriteTimeout)
}

func (c *ServerConfig) GetShutdownTimeout() (time.Duration, error) {
	return parseDuration(c.ShutdownTimeout)
}

func (c *DatabaseConfig) GetConnMaxLifetime() (time.Duration, error) {
	return parseDuration(c.ConnMaxLifetime)
}

// parseDuration parses duration strings like "7d", "24h", "30m"
func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}

	// Handle days (e.g., "7d")
	if len(s) > 1 && s[len(s)-1] == 'd' {
		days := s[:len(s)-1]
		var d int
		_, err := fmt.Sscanf(days, "%d", &d)
		if err != nil {
			return 0, fmt.Errorf("invalid duration format: %s", s)
		}
		return time.Duration(d) * 24 * time.Hour, nil
	}

	// Use standard time.ParseDuration for other formats
	return time.ParseDuration(s)
}
