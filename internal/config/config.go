// AngelaMos | 2026
// config.go

package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	App       AppConfig       `koanf:"app"`
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Redis     RedisConfig     `koanf:"redis"`
	JWT       JWTConfig       `koanf:"jwt"`
	RateLimit RateLimitConfig `koanf:"rate_limit"`
	CORS      CORSConfig      `koanf:"cors"`
	Log       LogConfig       `koanf:"log"`
	Otel      OtelConfig      `koanf:"otel"`
	Profile   ProfileConfig   `koanf:"profile"`
	Email     EmailConfig     `koanf:"email"`
	I18n      I18nConfig      `koanf:"i18n"`
	Metrics   MetricsConfig   `koanf:"metrics"`
	Web       WebConfig       `koanf:"web"`
}

type AppConfig struct {
	Name        string `koanf:"name"`
	Version     string `koanf:"version"`
	Environment string `koanf:"environment"`
}

type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

type DatabaseConfig struct {
	URL             string        `koanf:"url"`
	MaxOpenConns    int           `koanf:"max_open_conns"`
	MaxIdleConns    int           `koanf:"max_idle_conns"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `koanf:"conn_max_idle_time"`
	AutoMigrate     bool          `koanf:"auto_migrate"`
}

type RedisConfig struct {
	URL          string `koanf:"url"`
	PoolSize     int    `koanf:"pool_size"`
	MinIdleConns int    `koanf:"min_idle_conns"`
}

type JWTConfig struct {
	PrivateKeyPath     string        `koanf:"private_key_path"`
	PublicKeyPath      string        `koanf:"public_key_path"`
	AccessTokenExpire  time.Duration `koanf:"access_token_expire"`
	RefreshTokenExpire time.Duration `koanf:"refresh_token_expire"`
	Issuer             string        `koanf:"issuer"`
	Audience           string        `koanf:"audience"`
}

type RateLimitConfig struct {
	Requests     int           `koanf:"requests"`
	Window       time.Duration `koanf:"window"`
	Burst        int           `koanf:"burst"`
	AuthRequests int           `koanf:"auth_requests"`
	AuthBurst    int           `koanf:"auth_burst"`
}

type CORSConfig struct {
	AllowedOrigins   []string `koanf:"allowed_origins"`
	AllowedMethods   []string `koanf:"allowed_methods"`
	AllowedHeaders   []string `koanf:"allowed_headers"`
	AllowCredentials bool     `koanf:"allow_credentials"`
	MaxAge           int      `koanf:"max_age"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

type OtelConfig struct {
	Endpoint    string  `koanf:"endpoint"`
	ServiceName string  `koanf:"service_name"`
	Enabled     bool    `koanf:"enabled"`
	Insecure    bool    `koanf:"insecure"`
	SampleRate  float64 `koanf:"sample_rate"`
}

type ProfileConfig struct {
	CacheTTL time.Duration `koanf:"cache_ttl"`
}

type EmailConfig struct {
	Enabled     bool   `koanf:"enabled"`
	ResendKey   string `koanf:"resend_api_key"`
	FromAddress string `koanf:"from_address"`
	SiteURL     string `koanf:"site_url"`
}

type I18nConfig struct {
	DefaultLanguage string `koanf:"default_language"`
	CookieName      string `koanf:"cookie_name"`
	CookieMaxAge    int    `koanf:"cookie_max_age"`
}

type MetricsConfig struct {
	Enabled bool   `koanf:"enabled"`
	Path    string `koanf:"path"`
}

type WebConfig struct {
	SessionCookie  string   `koanf:"session_cookie"`
	SecureCookies  bool     `koanf:"secure_cookies"`
	CSRFKey        string   `koanf:"csrf_key"`
	TrustedOrigins []string `koanf:"trusted_origins"`
}

// Load layers defaults, the optional YAML file and the environment, later
// layers winning. A missing file is not an error. Every validation failure is
// reported at once.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	for key, value := range defaults {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("set default %s: %w", key, err)
		}
	}

	if err := loadFile(k, configPath); err != nil {
		return nil, err
	}

	if err := k.Load(env.ProviderWithValue("", ".", fromEnv), nil); err != nil {
		return nil, fmt.Errorf("load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func loadFile(k *koanf.Koanf, path string) error {
	if path == "" {
		return nil
	}
	_, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil
	case err != nil:
		return fmt.Errorf("stat config file: %w", err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("load config file %s: %w", path, err)
	}
	return nil
}

var defaults = map[string]any{
	"app.name":        "RossoVerde Supporters",
	"app.version":     "1.0.0",
	"app.environment": "development",

	"server.host":             "0.0.0.0",
	"server.port":             8080,
	"server.read_timeout":     "30s",
	"server.write_timeout":    "30s",
	"server.idle_timeout":     "120s",
	"server.shutdown_timeout": "15s",

	"database.max_open_conns":     25,
	"database.max_idle_conns":     5,
	"database.conn_max_lifetime":  "1h",
	"database.conn_max_idle_time": "30m",

	"redis.pool_size":      10,
	"redis.min_idle_conns": 5,

	"jwt.access_token_expire":  "15m",
	"jwt.refresh_token_expire": "168h",
	"jwt.issuer":               "rossoverde",
	"jwt.audience":             "rossoverde-api",
	"jwt.private_key_path":     "keys/private.pem",
	"jwt.public_key_path":      "keys/public.pem",

	"rate_limit.requests":      100,
	"rate_limit.window":        "1m",
	"rate_limit.burst":         20,
	"rate_limit.auth_requests": 10,
	"rate_limit.auth_burst":    5,

	"cors.allowed_origins":   []string{"http://localhost:3000"},
	"cors.allowed_methods":   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
	"cors.allowed_headers":   []string{"Accept", "Accept-Language", "Authorization", "Content-Type", "X-Request-ID"},
	"cors.allow_credentials": true,
	"cors.max_age":           300,

	"log.level":  "info",
	"log.format": "json",

	"otel.insecure":     true,
	"otel.sample_rate":  0.1,
	"otel.service_name": "rossoverde-api",

	"profile.cache_ttl": "10m",

	"email.from_address": "RossoVerde <no-reply@rossoverde.ma>",
	"email.site_url":     "http://localhost:8080",

	"i18n.default_language": "en",
	"i18n.cookie_name":      "rossoverde-language",
	"i18n.cookie_max_age":   31536000,

	"metrics.enabled": true,
	"metrics.path":    "/metrics",

	"web.session_cookie":  "rossoverde-session",
	"web.trusted_origins": []string{"localhost:8080", "127.0.0.1:8080"},
}

// envKeys maps the deployment's environment variables onto config paths.
// Anything else in the environment is ignored.
var envKeys = map[string]string{
	"ENVIRONMENT": "app.environment",
	"HOST":        "server.host",
	"PORT":        "server.port",

	"DATABASE_URL":          "database.url",
	"DATABASE_AUTO_MIGRATE": "database.auto_migrate",
	"REDIS_URL":             "redis.url",

	"LOG_LEVEL":  "log.level",
	"LOG_FORMAT": "log.format",

	"JWT_PRIVATE_KEY_PATH":     "jwt.private_key_path",
	"JWT_PUBLIC_KEY_PATH":      "jwt.public_key_path",
	"JWT_ACCESS_TOKEN_EXPIRE":  "jwt.access_token_expire",
	"JWT_REFRESH_TOKEN_EXPIRE": "jwt.refresh_token_expire",
	"JWT_ISSUER":               "jwt.issuer",
	"JWT_AUDIENCE":             "jwt.audience",

	"RATE_LIMIT_REQUESTS":      "rate_limit.requests",
	"RATE_LIMIT_WINDOW":        "rate_limit.window",
	"RATE_LIMIT_BURST":         "rate_limit.burst",
	"RATE_LIMIT_AUTH_REQUESTS": "rate_limit.auth_requests",
	"RATE_LIMIT_AUTH_BURST":    "rate_limit.auth_burst",

	"CORS_ALLOWED_ORIGINS": "cors.allowed_origins",

	"OTEL_ENABLED":                "otel.enabled",
	"OTEL_ENDPOINT":               "otel.endpoint",
	"OTEL_EXPORTER_OTLP_ENDPOINT": "otel.endpoint",
	"OTEL_SERVICE_NAME":           "otel.service_name",
	"OTEL_INSECURE":               "otel.insecure",
	"OTEL_SAMPLE_RATE":            "otel.sample_rate",

	"PROFILE_CACHE_TTL": "profile.cache_ttl",

	"EMAIL_ENABLED":      "email.enabled",
	"RESEND_API_KEY":     "email.resend_api_key",
	"EMAIL_FROM_ADDRESS": "email.from_address",
	"SITE_URL":           "email.site_url",

	"DEFAULT_LANGUAGE": "i18n.default_language",
	"METRICS_ENABLED":  "metrics.enabled",

	"SECURE_COOKIES":  "web.secure_cookies",
	"CSRF_KEY":        "web.csrf_key",
	"TRUSTED_ORIGINS": "web.trusted_origins",
}

// listKeys are comma separated in the environment.
var listKeys = []string{"cors.allowed_origins", "web.trusted_origins"}

func fromEnv(name, value string) (string, any) {
	key, ok := envKeys[name]
	if !ok {
		return "", nil
	}
	if slices.Contains(listKeys, key) {
		var items []string
		for item := range strings.SplitSeq(value, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		return key, items
	}
	return key, value
}

var supportedLanguages = []string{"en", "fr", "ar"}

func (c *Config) validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Database.URL != "", "DATABASE_URL is required")
	check(c.Redis.URL != "", "REDIS_URL is required")
	check(c.JWT.PrivateKeyPath != "", "JWT_PRIVATE_KEY_PATH is required")
	check(c.JWT.PublicKeyPath != "", "JWT_PUBLIC_KEY_PATH is required")

	check(c.Server.ReadTimeout > 0, "server.read_timeout must be positive")
	check(c.Server.WriteTimeout > 0, "server.write_timeout must be positive")
	check(c.Profile.CacheTTL > 0, "profile.cache_ttl must be positive")
	check(c.RateLimit.Requests > 0 && c.RateLimit.AuthRequests > 0,
		"rate_limit.requests and rate_limit.auth_requests must be positive")

	check(!(c.CORS.AllowCredentials && slices.Contains(c.CORS.AllowedOrigins, "*")),
		"CORS wildcard '*' cannot be used with allow_credentials")

	check(slices.Contains(supportedLanguages, c.I18n.DefaultLanguage),
		"i18n.default_language must be one of %s, got %q",
		strings.Join(supportedLanguages, ", "), c.I18n.DefaultLanguage)

	check(!c.Email.Enabled || c.Email.ResendKey != "",
		"RESEND_API_KEY is required when email is enabled")

	if c.Web.CSRFKey != "" {
		key, err := hex.DecodeString(c.Web.CSRFKey)
		check(err == nil && len(key) == 32, "CSRF_KEY must be 64 hex characters")
	}

	if c.IsProduction() {
		check(!(c.Otel.Enabled && c.Otel.Insecure), "OTEL_INSECURE must be false in production")
		check(c.Web.SecureCookies, "SECURE_COOKIES must be true in production")
		check(c.Web.CSRFKey != "", "CSRF_KEY is required in production")
	}

	return errors.Join(errs...)
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

func (s *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
