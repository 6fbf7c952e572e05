package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// DatabaseConfig holds PostgreSQL database connection settings.
// Leaving Host empty runs the service without a database.
type DatabaseConfig struct {
	Host               string `env:"DB_HOST"`
	Port               string `env:"DB_PORT" env-default:"5432"`
	User               string `env:"DB_USER"`
	Password           string `env:"DB_PASSWORD"`
	Name               string `env:"DB_NAME"`
	SSLMode            string `env:"DB_SSLMODE" env-default:"disable"`
	MaxOpenConns       int    `env:"DB_MAX_OPEN_CONNS" env-default:"10"`
	MaxIdleConns       int    `env:"DB_MAX_IDLE_CONNS" env-default:"5"`
	ConnMaxLifetimeSec int    `env:"DB_CONN_MAX_LIFETIME_SEC" env-default:"300"`
	Migrate            bool   `env:"DB_MIGRATE" env-default:"true"`
}

func (c DatabaseConfig) Enabled() bool { return c.Host != "" }

// MinIOConfig holds object storage settings for MinIO.
// Leaving Endpoint empty disables attachment uploads.
type MinIOConfig struct {
	Endpoint   string        `env:"MINIO_ENDPOINT"`
	AccessKey  string        `env:"MINIO_ACCESS_KEY"`
	SecretKey  string        `env:"MINIO_SECRET_KEY"`
	Bucket     string        `env:"MINIO_BUCKET" env-default:"attachments"`
	UseSSL     bool          `env:"MINIO_USE_SSL" env-default:"false"`
	PresignTTL time.Duration `env:"MINIO_PRESIGN_TTL" env-default:"15m"`
}

func (c MinIOConfig) Enabled() bool { return c.Endpoint != "" }

// UpstreamConfig points Variant B collections at the back-office API.
// Without BaseURL they are served from the database instead.
type UpstreamConfig struct {
	BaseURL string        `env:"UPSTREAM_BASE_URL"`
	Token   string        `env:"UPSTREAM_TOKEN"`
	Timeout time.Duration `env:"UPSTREAM_TIMEOUT" env-default:"15s"`
}

// WorkspaceConfig sizes the per-session state.
type WorkspaceConfig struct {
	TTL            time.Duration `env:"WORKSPACE_TTL" env-default:"30m"`
	Max            int           `env:"WORKSPACE_MAX" env-default:"256"`
	PageSize       int           `env:"WORKSPACE_PAGE_SIZE" env-default:"10"`
	QueryCacheSize int           `env:"QUERY_CACHE_SIZE" env-default:"128"`
	QueryCacheTTL  time.Duration `env:"QUERY_CACHE_TTL" env-default:"30s"`
	PreviewMax     int           `env:"PREVIEW_MAX" env-default:"1024"`
	PreviewTTL     time.Duration `env:"PREVIEW_TTL" env-default:"30m"`
}

// AuthConfig controls how the acting user is resolved. Without JWTSecret
// only the actor header is read.
type AuthConfig struct {
	JWTSecret   string `env:"AUTH_JWT_SECRET"`
	ActorHeader string `env:"AUTH_ACTOR_HEADER" env-default:"X-Actor"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `env:"LOG_LEVEL" env-default:"info"`
	Format string `env:"LOG_FORMAT" env-default:"json"`
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost   string `env:"APP_HOST" env-default:"localhost:8080"`
	Port      string `env:"PORT" env-default:"8080"`
	PublicURL string `env:"PUBLIC_URL" env-default:"http://localhost:8080"`
	Log       LogConfig
	Database  DatabaseConfig
	MinIO     MinIOConfig
	Upstream  UpstreamConfig
	Workspace WorkspaceConfig
	Auth      AuthConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
func Load() (*AppConfig, error) {
	var cfg AppConfig
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

// Validate checks values cleanenv cannot.
func (c *AppConfig) Validate() error {
	var errs []error
	if c.Database.Enabled() && (c.Database.User == "" || c.Database.Name == "") {
		errs = append(errs, errors.New("DB_USER and DB_NAME are required when DB_HOST is set"))
	}
	if c.MinIO.Enabled() && (c.MinIO.AccessKey == "" || c.MinIO.SecretKey == "") {
		errs = append(errs, errors.New("MINIO_ACCESS_KEY and MINIO_SECRET_KEY are required when MINIO_ENDPOINT is set"))
	}
	if c.Upstream.BaseURL != "" {
		if u, err := url.Parse(c.Upstream.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Errorf("UPSTREAM_BASE_URL %q is not an absolute URL", c.Upstream.BaseURL))
		}
	}
	if c.Workspace.PageSize <= 0 {
		errs = append(errs, errors.New("WORKSPACE_PAGE_SIZE must be positive"))
	}
	if c.Workspace.Max <= 0 {
		errs = append(errs, errors.New("WORKSPACE_MAX must be positive"))
	}
	switch c.Log.Format {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT %q must be json or text", c.Log.Format))
	}
	return errors.Join(errs...)
}
