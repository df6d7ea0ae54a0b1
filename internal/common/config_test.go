package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg := LoadConfig()

	assert.Equal(t, "./homekeeper.db", cfg.Database.Path)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "tesseract", cfg.OCR.Tesseract)
	assert.Equal(t, "eng", cfg.OCR.TesseractLang)
	assert.Equal(t, 1, cfg.Extract.WarrantyYears)
	assert.Equal(t, 0.5, cfg.Extract.MatchThreshold)
	assert.Empty(t, cfg.Ingest.InboxDirs)

	require.NoError(t, cfg.Validate())
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("DB_PATH", "/var/lib/homekeeper/items.db")
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("WARRANTY_YEARS", "3")
	t.Setenv("MATCH_THRESHOLD", "0.7")
	t.Setenv("OCR_TIMEOUT", "45s")
	t.Setenv("INBOX_DIRS", "/inbox/a, /inbox/b")

	cfg := LoadConfig()

	assert.Equal(t, "/var/lib/homekeeper/items.db", cfg.Database.Path)
	assert.Equal(t, ":9999", cfg.Server.Addr)
	assert.Equal(t, 3, cfg.Extract.WarrantyYears)
	assert.Equal(t, 0.7, cfg.Extract.MatchThreshold)
	assert.Equal(t, 45*time.Second, cfg.OCR.Timeout)
	assert.Equal(t, []string{"/inbox/a", "/inbox/b"}, cfg.Ingest.InboxDirs)
}

func TestLoadConfig_MalformedValuesFallBack(t *testing.T) {
	t.Setenv("WARRANTY_YEARS", "three")
	t.Setenv("MATCH_THRESHOLD", "not-a-number")

	cfg := LoadConfig()

	assert.Equal(t, 1, cfg.Extract.WarrantyYears)
	assert.Equal(t, 0.5, cfg.Extract.MatchThreshold)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty db path", func(c *Config) { c.Database.Path = "" }},
		{"empty addr", func(c *Config) { c.Server.Addr = "" }},
		{"zero warranty years", func(c *Config) { c.Extract.WarrantyYears = 0 }},
		{"threshold too low", func(c *Config) { c.Extract.MatchThreshold = 0 }},
		{"threshold too high", func(c *Config) { c.Extract.MatchThreshold = 1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := LoadConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
