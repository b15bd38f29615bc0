package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "esprinet-connector", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)

	assert.Equal(t, DefaultAPIBaseURL, cfg.API.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, 30*time.Second, cfg.FTP.Timeout)

	assert.Equal(t, 20.0, cfg.Sync.SaleMargin)
	assert.Equal(t, CataloguePolicyOverwrite, cfg.Sync.CataloguePolicy)
	assert.Equal(t, 100, cfg.Sync.PricingBatchSize)
	assert.Equal(t, 500, cfg.Sync.CommitBatchSize)
	assert.Equal(t, 24*time.Hour, cfg.Sync.CatalogueInterval)
	assert.Equal(t, time.Hour, cfg.Sync.PricingInterval)
	assert.Equal(t, 30*time.Minute, cfg.Sync.JobTimeout)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "warn", cfg.Database.LogLevel)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("ESPRINET_API_USERNAME", "b2b-user")
	t.Setenv("ESPRINET_API_PASSWORD", "b2b-pass")
	t.Setenv("ESPRINET_SYNC_SALE_MARGIN", "35")
	t.Setenv("ESPRINET_SYNC_CATALOGUE_POLICY", "skip")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "b2b-user", cfg.API.Username)
	assert.Equal(t, "b2b-pass", cfg.API.Password)
	assert.Equal(t, 35.0, cfg.Sync.SaleMargin)
	assert.Equal(t, CataloguePolicySkip, cfg.Sync.CataloguePolicy)
}

func TestLoad_RejectsUnknownCataloguePolicy(t *testing.T) {
	t.Setenv("ESPRINET_SYNC_CATALOGUE_POLICY", "merge")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "catalogue_policy")
}

func TestLoad_ProductionRequiresCredentials(t *testing.T) {
	t.Setenv("ESPRINET_APP_ENV", "production")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api.username")
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db.internal",
		Port:     5433,
		User:     "connector",
		Password: "p@ss/word",
		DBName:   "esprinet",
		SSLMode:  "require",
	}

	dsn := cfg.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "db.internal:5433")
	assert.Contains(t, dsn, "sslmode=require")
	// Special characters in the password must be escaped
	assert.NotContains(t, dsn, "p@ss/word")
}

func TestCataloguePolicy_IsValid(t *testing.T) {
	assert.True(t, CataloguePolicyOverwrite.IsValid())
	assert.True(t, CataloguePolicySkip.IsValid())
	assert.False(t, CataloguePolicy("merge").IsValid())
	assert.False(t, CataloguePolicy("").IsValid())
}
