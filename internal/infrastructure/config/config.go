package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultAPIBaseURL is the distributor's UAT endpoint, used when no
// base URL is configured.
const DefaultAPIBaseURL = "https://ws-uat.esprinet.com/b2b/api/v2.0"

// CataloguePolicy decides what the reconciler does with feed records
// that match an existing product.
type CataloguePolicy string

const (
	// CataloguePolicyOverwrite refreshes matched products with freshly
	// computed values. This is the default: it keeps prices and stock
	// current across runs.
	CataloguePolicyOverwrite CataloguePolicy = "overwrite"
	// CataloguePolicySkip never touches matched products ("import once").
	CataloguePolicySkip CataloguePolicy = "skip"
)

// IsValid checks if the policy is a known value
func (p CataloguePolicy) IsValid() bool {
	return p == CataloguePolicyOverwrite || p == CataloguePolicySkip
}

// Config holds all application configuration
type Config struct {
	App      AppConfig
	API      APIConfig
	FTP      FTPConfig
	Sync     SyncConfig
	Database DatabaseConfig
	Log      LogConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// APIConfig holds the distributor REST API settings
type APIConfig struct {
	Username string
	Password string
	BaseURL  string
	Timeout  time.Duration
}

// FTPConfig holds the catalogue feed FTP settings
type FTPConfig struct {
	Host     string
	Username string
	Password string
	Path     string
	Timeout  time.Duration
}

// SyncConfig holds catalogue and pricing sync settings
type SyncConfig struct {
	SaleMargin        float64 // percentage applied to cost to derive sale price
	CataloguePolicy   CataloguePolicy
	PricingBatchSize  int
	CommitBatchSize   int
	CatalogueEnabled  bool
	CatalogueInterval time.Duration
	PricingEnabled    bool
	PricingInterval   time.Duration
	JobTimeout        time.Duration
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int // in minutes
	ConnMaxIdleTime int // in minutes
	LogLevel        string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with ESPRINET_ prefix (e.g. ESPRINET_API_PASSWORD)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix("ESPRINET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		API: APIConfig{
			Username: v.GetString("api.username"),
			Password: v.GetString("api.password"),
			BaseURL:  v.GetString("api.base_url"),
			Timeout:  v.GetDuration("api.timeout"),
		},
		FTP: FTPConfig{
			Host:     v.GetString("ftp.host"),
			Username: v.GetString("ftp.username"),
			Password: v.GetString("ftp.password"),
			Path:     v.GetString("ftp.path"),
			Timeout:  v.GetDuration("ftp.timeout"),
		},
		Sync: SyncConfig{
			SaleMargin:        v.GetFloat64("sync.sale_margin"),
			CataloguePolicy:   CataloguePolicy(v.GetString("sync.catalogue_policy")),
			PricingBatchSize:  v.GetInt("sync.pricing_batch_size"),
			CommitBatchSize:   v.GetInt("sync.commit_batch_size"),
			CatalogueEnabled:  v.GetBool("sync.catalogue_enabled"),
			CatalogueInterval: v.GetDuration("sync.catalogue_interval"),
			PricingEnabled:    v.GetBool("sync.pricing_enabled"),
			PricingInterval:   v.GetDuration("sync.pricing_interval"),
			JobTimeout:        v.GetDuration("sync.job_timeout"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("database.host"),
			Port:            v.GetInt("database.port"),
			User:            v.GetString("database.user"),
			Password:        v.GetString("database.password"),
			DBName:          v.GetString("database.dbname"),
			SSLMode:         v.GetString("database.sslmode"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			MaxIdleConns:    v.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: v.GetInt("database.conn_max_lifetime"),
			ConnMaxIdleTime: v.GetInt("database.conn_max_idle_time"),
			LogLevel:        v.GetString("database.log_level"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "esprinet-connector"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = DefaultAPIBaseURL
	}
	if cfg.API.Timeout == 0 {
		cfg.API.Timeout = 30 * time.Second
	}
	if cfg.FTP.Timeout == 0 {
		cfg.FTP.Timeout = 30 * time.Second
	}
	if cfg.Sync.SaleMargin == 0 {
		cfg.Sync.SaleMargin = 20.0
	}
	if cfg.Sync.CataloguePolicy == "" {
		cfg.Sync.CataloguePolicy = CataloguePolicyOverwrite
	}
	if cfg.Sync.PricingBatchSize == 0 {
		cfg.Sync.PricingBatchSize = 100
	}
	if cfg.Sync.CommitBatchSize == 0 {
		cfg.Sync.CommitBatchSize = 500
	}
	if cfg.Sync.CatalogueInterval == 0 {
		cfg.Sync.CatalogueInterval = 24 * time.Hour
	}
	if cfg.Sync.PricingInterval == 0 {
		cfg.Sync.PricingInterval = time.Hour
	}
	if cfg.Sync.JobTimeout == 0 {
		cfg.Sync.JobTimeout = 30 * time.Minute
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "postgres"
	}
	if cfg.Database.DBName == "" {
		cfg.Database.DBName = "esprinet"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 25
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 60
	}
	if cfg.Database.ConnMaxIdleTime == 0 {
		cfg.Database.ConnMaxIdleTime = 30
	}
	if cfg.Database.LogLevel == "" {
		cfg.Database.LogLevel = "warn"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	if !c.Sync.CataloguePolicy.IsValid() {
		return fmt.Errorf("sync.catalogue_policy must be %q or %q, got %q",
			CataloguePolicyOverwrite, CataloguePolicySkip, c.Sync.CataloguePolicy)
	}
	if c.Sync.SaleMargin < 0 {
		return fmt.Errorf("sync.sale_margin cannot be negative")
	}
	if c.Sync.PricingBatchSize <= 0 {
		return fmt.Errorf("sync.pricing_batch_size must be positive")
	}
	if c.Sync.CommitBatchSize <= 0 {
		return fmt.Errorf("sync.commit_batch_size must be positive")
	}
	if c.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("database.max_open_conns must be positive")
	}
	if c.Database.MaxIdleConns < 0 {
		return fmt.Errorf("database.max_idle_conns cannot be negative")
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("database.max_idle_conns (%d) cannot exceed database.max_open_conns (%d)",
			c.Database.MaxIdleConns, c.Database.MaxOpenConns)
	}

	if c.App.Env == "production" {
		if c.API.Username == "" || c.API.Password == "" {
			return fmt.Errorf("api.username and api.password are required in production")
		}
		if c.Database.Password == "" {
			return fmt.Errorf("database.password is required in production")
		}
		if c.Database.SSLMode == "disable" {
			return fmt.Errorf("database.sslmode cannot be 'disable' in production")
		}
	}

	return nil
}

// DSN returns the database connection string with properly escaped values
func (d *DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.DBName,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}
