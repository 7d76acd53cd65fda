package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("POSTGRES_URI", "")
	t.Setenv("FRONTEND_URL", "")
	t.Setenv("HTTP_CLIENT_TIMEOUT", "")

	cfg := LoadConfig()

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "https://cominiti-frontend.vercel.app", cfg.FrontendURL)
	assert.Equal(t, "https://graph.instagram.com", cfg.InstagramGraphBase)
	assert.Equal(t, 15*time.Second, cfg.HTTPClientTimeout)
	assert.True(t, cfg.UseLocalDB())
	assert.False(t, cfg.R2Enabled())
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("POSTGRES_URI", "postgres://localhost/cominiti")
	t.Setenv("FRONTEND_URL", "http://localhost:5173/")
	t.Setenv("HTTP_CLIENT_TIMEOUT", "3s")

	cfg := LoadConfig()

	assert.Equal(t, "http://localhost:5173", cfg.FrontendURL)
	assert.Equal(t, 3*time.Second, cfg.HTTPClientTimeout)
	assert.False(t, cfg.UseLocalDB())
}

func TestLoadConfig_BadDurationFallsBack(t *testing.T) {
	t.Setenv("HTTP_CLIENT_TIMEOUT", "soon")

	cfg := LoadConfig()

	assert.Equal(t, 15*time.Second, cfg.HTTPClientTimeout)
}
