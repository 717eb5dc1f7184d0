package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")

	c, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "8080", c.Port)
	assert.Equal(t, 15*time.Second, c.TurnDuration)
	assert.Equal(t, 1200*time.Millisecond, c.BotDelay)
	assert.Equal(t, 1500*time.Millisecond, c.ResolveDelay)
	assert.Equal(t, 3*time.Second, c.RematchDelay)
	assert.Equal(t, "info", c.LogLevel)
	assert.Empty(t, c.AllowedOrigins)
}

func TestLoadDotEnvDoesNotOverrideEnvironment(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("JWT_SECRET=fromfile\nTURN_SECONDS=30\nPORT=9000\n"), 0o600))

	t.Setenv("PORT", "7000")
	t.Setenv("JWT_SECRET", "")
	os.Unsetenv("JWT_SECRET")
	os.Unsetenv("TURN_SECONDS")
	t.Cleanup(func() { os.Unsetenv("TURN_SECONDS") })

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "7000", c.Port)
	assert.Equal(t, "fromfile", c.JWTSecret)
	assert.Equal(t, 30*time.Second, c.TurnDuration)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")

	t.Setenv("BOT_DELAY_MS", "soon")
	_, err := Load(filepath.Join(t.TempDir(), "none"))
	assert.Error(t, err)

	t.Setenv("BOT_DELAY_MS", "-5")
	_, err = Load(filepath.Join(t.TempDir(), "none"))
	assert.Error(t, err)
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := Load(filepath.Join(t.TempDir(), "none"))
	assert.Error(t, err)
}

func TestLoadOrigins(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("ALLOWED_ORIGINS", "example.com, *.example.org ,")

	c, err := Load(filepath.Join(t.TempDir(), "none"))
	require.NoError(t, err)
	assert.Equal(t, []string{"example.com", "*.example.org"}, c.AllowedOrigins)
}
