package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Env         string `mapstructure:"app_env"`
	Port        string `mapstructure:"port"`
	DatabaseURL string `mapstructure:"database_url"`
	DBMaxConns  int32  `mapstructure:"db_max_conns"`

	RedisAddr     string `mapstructure:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`

	// SessionTTL bounds how long an abandoned wizard session survives.
	SessionTTL time.Duration `mapstructure:"session_ttl"`

	JWTSecret string `mapstructure:"jwt_secret"`
	JWTIssuer string `mapstructure:"jwt_issuer"`

	UploadDir string `mapstructure:"upload_dir"`

	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`

	SettingsDebounce time.Duration `mapstructure:"settings_debounce"`
	EventQueueSize   int           `mapstructure:"event_queue_size"`
}

var defaults = map[string]any{
	"app_env":           "development",
	"port":              "8080",
	"database_url":      "",
	"db_max_conns":      10,
	"redis_addr":        "",
	"redis_password":    "",
	"redis_db":          0,
	"session_ttl":       "24h",
	"jwt_secret":        "dev-secret-change",
	"jwt_issuer":        "microbridge",
	"upload_dir":        "uploads",
	"log_level":         "info",
	"log_format":        "json",
	"settings_debounce": "500ms",
	"event_queue_size":  256,
}

// Load reads environment variables, optionally from a .env file if present.
// An explicit config file (yaml, env, json) may be passed; empty means none.
func Load(file string) (Config, error) {
	// Try to load .env if it exists; ignore error if file not found
	_ = godotenv.Load()

	v := viper.New()
	for k, d := range defaults {
		v.SetDefault(k, d)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", file, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Port == "" {
		return fmt.Errorf("port is required")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("session_ttl must be positive")
	}
	if c.DBMaxConns <= 0 {
		return fmt.Errorf("db_max_conns must be positive")
	}
	if c.EventQueueSize <= 0 {
		return fmt.Errorf("event_queue_size must be positive")
	}
	if c.Env == "production" && c.JWTSecret == defaults["jwt_secret"] {
		return fmt.Errorf("jwt_secret must be set in production")
	}
	return nil
}

// Production reports whether the service runs with production settings.
func (c Config) Production() bool { return c.Env == "production" }
