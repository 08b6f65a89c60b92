package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/belakoo")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("PORT", "")
	t.Setenv("ACCESS_TTL_SECONDS", "not-a-number")
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS_JSON", "")
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "/etc/sa.json")

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "belakoo", cfg.JWTIssuer)
	assert.Equal(t, int64(14400), cfg.AccessTTLSeconds)
	assert.Equal(t, "c1", cfg.DefaultCampusCode)
	assert.Equal(t, "/etc/sa.json", cfg.GoogleCredentials)
}

func TestLoadPanicsWithoutSecrets(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/belakoo")
	t.Setenv("JWT_SECRET", "")
	assert.PanicsWithValue(t, "missing env var: JWT_SECRET", func() { Load() })
}

func TestParseCSV(t *testing.T) {
	assert.Nil(t, parseCSV("  "))
	assert.Equal(t, []string{"http://a", "http://b"}, parseCSV(" http://a, ,http://b "))
}
