package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("BCRYPT_COST", "")
	t.Setenv("SALT", "")
	t.Setenv("EXPORT_SCALE", "")

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, 210.0, cfg.Export.PageWidth)
	assert.Equal(t, 297.0, cfg.Export.PageHeight)
	assert.Equal(t, 2.0, cfg.Export.Scale)
	assert.Equal(t, "CV.pdf", cfg.Export.Filename)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("BCRYPT_COST", "")
	t.Setenv("SALT", "12")
	t.Setenv("EXPORT_MARGIN_TOP_MM", "15.5")
	t.Setenv("EXPORT_TIMEOUT", "5s")
	t.Setenv("LOG_PRETTY", "true")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 12, cfg.BcryptCost, "legacy SALT is honoured when BCRYPT_COST is unset")
	assert.Equal(t, 15.5, cfg.Export.MarginTop)
	assert.Equal(t, 5*time.Second, cfg.Export.Timeout)
	assert.True(t, cfg.LogPretty)
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("JWT_TTL_MINUTES", "soon")
	t.Setenv("EXPORT_PAGE_WIDTH_MM", "wide")

	cfg := Load()

	assert.Equal(t, 60, cfg.JWTTTLMinutes)
	assert.Equal(t, 210.0, cfg.Export.PageWidth)
}
