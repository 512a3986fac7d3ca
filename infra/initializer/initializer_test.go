package initializer

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/amirasaad/paycore/infra/provider"
	"github.com/amirasaad/paycore/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.App {
	return &config.App{
		Log: &config.Log{Format: "json", Prefix: "[payment]", TimeFormat: time.RFC3339},
		Payout: &config.Payout{
			Provider:    "paystack",
			BaseURL:     "http://localhost:4010",
			HTTPTimeout: time.Second,
		},
		Breaker: &config.Breaker{MaxRequests: 1, Interval: time.Minute, Timeout: time.Minute, ConsecutiveFailures: 3},
		Metrics: &config.Metrics{Enabled: true, Namespace: "paycore"},
	}
}

func TestSetupLogger_JSON(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	logger := setupLogger(&config.Log{Format: "json", Prefix: "[payment]"}, &buf)
	logger.Info("payout_started", "correlationId", "op_1")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "payout_started", rec["msg"])
	assert.Equal(t, "op_1", rec["correlationId"])
	assert.Same(t, logger, slog.Default())
}

func TestSetupLogger_UnknownFormatFallsBackToText(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	setupLogger(&config.Log{Format: "yaml"}, &buf).Info("hello", "k", "v")
	assert.Contains(t, buf.String(), "hello")
	assert.False(t, json.Valid(bytes.TrimSpace(buf.Bytes())))
}

func TestInitializeDependencies(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	deps, err := InitializeDependencies(testConfig())
	require.NoError(t, err)
	require.NotNil(t, deps.Logger)
	require.NotNil(t, deps.PaymentLog)
	require.NotNil(t, deps.Classifier)
	require.NotNil(t, deps.Metrics)

	gw, ok := deps.Payout.(*provider.Gateway)
	require.True(t, ok)
	assert.Equal(t, "paystack", gw.Provider())
}

func TestInitializeDependencies_MetricsDisabled(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	cfg := testConfig()
	cfg.Metrics.Enabled = false
	deps, err := InitializeDependencies(cfg)
	require.NoError(t, err)
	assert.Nil(t, deps.Metrics)
}

func TestInitializeDependencies_Errors(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	_, err := InitializeDependencies(&config.App{})
	assert.Error(t, err)

	cfg := testConfig()
	cfg.Payout.Provider = "acme"
	_, err = InitializeDependencies(cfg)
	assert.ErrorContains(t, err, "unknown payout provider")
}
