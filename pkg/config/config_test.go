package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("FIREBASE_PROJECT_ID", "swapd-test")
	t.Setenv("FIREBASE_DATABASE_URL", "https://swapd-test.firebaseio.com")
	t.Setenv("FIREBASE_STORAGE_BUCKET", "swapd-test.appspot.com")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, 1000, cfg.CatalogLimit)
	assert.Equal(t, 48, cfg.CatalogPageSize)
	assert.Equal(t, 10, cfg.NotificationLimit)
	assert.Equal(t, 4000, cfg.NotificationDismissMs)
	assert.Equal(t, 10*time.Second, cfg.LogoFetchTimeout)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("CATALOG_PAGE_SIZE", "24")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://swapd.example, https://admin.swapd.example,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, 24, cfg.CatalogPageSize)
	assert.Equal(t, []string{"https://swapd.example", "https://admin.swapd.example"}, cfg.CORSAllowedOrigins)
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	setRequired(t)
	t.Setenv("ENVIRONMENT", "qa")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_RequiresFirebaseProject(t *testing.T) {
	setRequired(t)
	t.Setenv("FIREBASE_PROJECT_ID", "")

	_, err := Load()
	assert.Error(t, err)
}
