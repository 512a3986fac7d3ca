package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "paystack", cfg.Payout.Provider)
	assert.Equal(t, 10*time.Second, cfg.Payout.HTTPTimeout)
	assert.Equal(t, uint32(5), cfg.Breaker.ConsecutiveFailures)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoad_FromEnvFile(t *testing.T) {
	dir := t.TempDir()
	content := "PAYOUT_PROVIDER=flutterwave\nPAYOUT_HTTP_TIMEOUT=3s\nSERVER_PORT=8081\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.test"), []byte(content), 0o600))

	nested := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	t.Chdir(nested)
	for _, k := range []string{"PAYOUT_PROVIDER", "PAYOUT_HTTP_TIMEOUT", "SERVER_PORT"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}

	cfg, err := Load(".env.test")
	require.NoError(t, err)
	assert.Equal(t, "flutterwave", cfg.Payout.Provider)
	assert.Equal(t, 3*time.Second, cfg.Payout.HTTPTimeout)
	assert.Equal(t, 8081, cfg.Server.Port)
}

func TestLoad_EnvironmentWins(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PAYOUT_PROVIDER", "wise")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "wise", cfg.Payout.Provider)
}

func TestLoad_InvalidValue(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SERVER_PORT", "not-a-port")

	_, err := Load()
	require.Error(t, err)
}

func TestFindEnvFile_NotFound(t *testing.T) {
	t.Chdir(t.TempDir())
	_, err := FindEnvFile("definitely-missing.env")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestMaskValue(t *testing.T) {
	assert.Equal(t, "****", maskValue("short"))
	assert.Equal(t, "sk****cdef", maskValue("sk_live_abcdef"))
}
