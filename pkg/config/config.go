package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config groups the application settings, read through Viper from env vars and an optional file.
type Config struct {
	App       AppConfig
	Log       LogConfig
	DB        DBConfig
	JWT       JWTConfig
	HTTP      HTTPConfig
	Redis     RedisConfig
	Alerts    AlertsConfig
	Telemetry TelemetryConfig
	// SwaggerFile is served under /docs when the file exists.
	SwaggerFile string
}

// AppConfig general settings.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// LogConfig zerolog level (trace, debug, info, warn, error).
type LogConfig struct {
	Level string
}

// DBConfig PostgreSQL settings.
// A non-empty DatabaseURL is used as the full connection string.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	MaxConns    int32
}

// ConnectionString returns DATABASE_URL when set, otherwise the DSN built from the parts.
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN builds a postgres URL; the password is escaped.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// JWTConfig operator tokens. An empty Secret disables auth on mutating routes.
type JWTConfig struct {
	Secret     string
	Expiration int // minutes
	Issuer     string
}

// Enabled reports whether mutating routes require a bearer token.
func (c JWTConfig) Enabled() bool {
	return c.Secret != ""
}

// HTTPConfig listen address.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr returns host:port.
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// RedisConfig optional; an empty Addr means no Redis.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// AlertsConfig alert emitter settings.
type AlertsConfig struct {
	// DedupWindow 0 writes every triggered alert.
	DedupWindow time.Duration
}

// TelemetryConfig metrics and tracing.
type TelemetryConfig struct {
	OTLPEndpoint   string // empty = tracing off
	MetricsEnabled bool
}

// Load reads the configuration from env vars (and optionally .env / config.env).
// Env vars take precedence.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig()

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)

	window, err := time.ParseDuration(v.GetString("ALERT_DEDUP_WINDOW"))
	if err != nil {
		return nil, fmt.Errorf("config: ALERT_DEDUP_WINDOW: %w", err)
	}
	if window < 0 {
		return nil, fmt.Errorf("config: ALERT_DEDUP_WINDOW must not be negative")
	}

	cfg := &Config{
		App: AppConfig{
			Env:  v.GetString("APP_ENV"),
			Name: v.GetString("APP_NAME"),
		},
		Log: LogConfig{Level: v.GetString("LOG_LEVEL")},
		DB: DBConfig{
			DatabaseURL: v.GetString("DATABASE_URL"),
			Host:        v.GetString("DB_HOST"),
			Port:        getInt(v, "DB_PORT"),
			User:        v.GetString("DB_USER"),
			Password:    v.GetString("DB_PASSWORD"),
			DBName:      v.GetString("DB_NAME"),
			SSLMode:     v.GetString("DB_SSLMODE"),
			MaxConns:    int32(getInt(v, "DB_MAX_CONNS")),
		},
		JWT: JWTConfig{
			Secret:     v.GetString("JWT_SECRET"),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES"),
			Issuer:     v.GetString("JWT_ISSUER"),
		},
		HTTP: HTTPConfig{
			Host: v.GetString("HTTP_HOST"),
			Port: getInt(v, "HTTP_PORT"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       getInt(v, "REDIS_DB"),
		},
		Alerts: AlertsConfig{DedupWindow: window},
		Telemetry: TelemetryConfig{
			OTLPEndpoint:   v.GetString("OTEL_EXPORTER_OTLP_ENDPOINT"),
			MetricsEnabled: v.GetBool("METRICS_ENABLED"),
		},
		SwaggerFile: v.GetString("SWAGGER_FILE"),
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_NAME", "manufacturing-dashboard")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "manufacturing_dashboard")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 25)
	v.SetDefault("JWT_EXPIRATION_MINUTES", 60)
	v.SetDefault("JWT_ISSUER", "manufacturing-dashboard")
	v.SetDefault("HTTP_HOST", "0.0.0.0")
	v.SetDefault("HTTP_PORT", 8080)
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("ALERT_DEDUP_WINDOW", "0s")
	v.SetDefault("METRICS_ENABLED", true)
	v.SetDefault("SWAGGER_FILE", "./docs/swagger.json")
}

// getInt tolerates values that arrive as strings from the env file.
func getInt(v *viper.Viper, key string) int {
	switch raw := v.Get(key).(type) {
	case string:
		n, _ := strconv.Atoi(strings.TrimSpace(raw))
		return n
	default:
		return v.GetInt(key)
	}
}
