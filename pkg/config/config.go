package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "INVENTORY"

	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	StorageLocal = "local"
	StorageS3    = "s3"
)

// Config is the application context shared by every component at startup.
type Config struct {
	App       AppConfig
	DB        DBConfig
	JWT       JWTConfig
	Auth      AuthConfig
	QR        QRConfig
	Storage   StorageConfig
	Bootstrap BootstrapConfig
}

// Load reads the configuration from the environment. Call godotenv first if a
// .env file should be honoured.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.DB.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unsupported db driver %q", c.DB.Driver)
	}
	switch c.Storage.Driver {
	case StorageLocal:
	case StorageS3:
		if c.Storage.S3Bucket == "" {
			return fmt.Errorf("INVENTORY_S3_BUCKET is required for the s3 storage driver")
		}
	default:
		return fmt.Errorf("unsupported storage driver %q", c.Storage.Driver)
	}
	if c.JWT.ExpirationHours <= 0 {
		return fmt.Errorf("INVENTORY_JWT_EXPIRATION_HOURS must be positive")
	}
	return nil
}

type AppConfig struct {
	Name      string `envconfig:"INVENTORY_APP_NAME" default:"QR Inventory"`
	Port      string `envconfig:"INVENTORY_APP_PORT" default:"3000"`
	LogLevel  string `envconfig:"INVENTORY_LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"INVENTORY_LOG_FORMAT" default:"json"`
}

type DBConfig struct {
	Driver          string        `envconfig:"INVENTORY_DB_DRIVER" default:"sqlite"`
	DSN             string        `envconfig:"INVENTORY_DB_DSN" default:"inventory.db"`
	Debug           bool          `envconfig:"INVENTORY_DB_DEBUG" default:"false"`
	MaxOpenConns    int           `envconfig:"INVENTORY_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"INVENTORY_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"INVENTORY_DB_CONN_MAX_LIFETIME" default:"1h"`
}

type JWTConfig struct {
	Secret          string `envconfig:"INVENTORY_JWT_SECRET" default:"change-me-in-production"`
	Issuer          string `envconfig:"INVENTORY_JWT_ISSUER" default:"go-inventory-qr"`
	ExpirationHours int    `envconfig:"INVENTORY_JWT_EXPIRATION_HOURS" default:"24"`
}

// Expiration returns the session token lifetime.
func (j JWTConfig) Expiration() time.Duration {
	return time.Duration(j.ExpirationHours) * time.Hour
}

type AuthConfig struct {
	// Required gates every material and category route behind an approved session.
	Required     bool   `envconfig:"INVENTORY_AUTH_REQUIRED" default:"true"`
	CookieName   string `envconfig:"INVENTORY_SESSION_COOKIE" default:"session"`
	CookieSecure bool   `envconfig:"INVENTORY_SESSION_COOKIE_SECURE" default:"false"`
}

type QRConfig struct {
	BaseURL   string `envconfig:"INVENTORY_QR_BASE_URL" default:"http://192.168.0.100"`
	EditPath  string `envconfig:"INVENTORY_QR_EDIT_PATH" default:"editar"`
	ImageSize int    `envconfig:"INVENTORY_QR_IMAGE_SIZE" default:"290"`
}

type StorageConfig struct {
	Driver     string `envconfig:"INVENTORY_STORAGE_DRIVER" default:"local"`
	LocalRoot  string `envconfig:"INVENTORY_STORAGE_LOCAL_ROOT" default:"static/qr_codes"`
	PublicPath string `envconfig:"INVENTORY_STORAGE_PUBLIC_PATH" default:"/static/qr_codes"`

	S3Bucket   string `envconfig:"INVENTORY_S3_BUCKET"`
	S3Region   string `envconfig:"INVENTORY_S3_REGION" default:"us-east-1"`
	S3Endpoint string `envconfig:"INVENTORY_S3_ENDPOINT"`
	S3Key      string `envconfig:"INVENTORY_S3_KEY"`
	S3Secret   string `envconfig:"INVENTORY_S3_SECRET"`
	S3Prefix   string `envconfig:"INVENTORY_S3_PREFIX" default:"qr_codes"`
}

// IsLocal reports whether QR images live on the local filesystem.
func (s StorageConfig) IsLocal() bool {
	return strings.EqualFold(s.Driver, StorageLocal)
}

type BootstrapConfig struct {
	AdminUsername string `envconfig:"INVENTORY_BOOTSTRAP_ADMIN_USERNAME" default:"admin"`
	AdminPassword string `envconfig:"INVENTORY_BOOTSTRAP_ADMIN_PASSWORD" default:"senha123"`
}
