package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		cfg, err := load(viper.New())

		require.NoError(t, err)
		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
		assert.Equal(t, 10*time.Second, cfg.Webhook.Timeout)
		assert.True(t, cfg.FanOut.SyncRequired)
		assert.False(t, cfg.FanOut.AnalyticsRequired)
		assert.Empty(t, cfg.Analytics.Streams)
		assert.True(t, cfg.IsLocalDevelopment())
	})

	t.Run("From Environment", func(t *testing.T) {
		t.Setenv("APP_ENV", "Production")
		t.Setenv("LOG_LEVEL", "debug")
		t.Setenv("HTTP_PORT", "9090")
		t.Setenv("DYNAMODB_TRANSACTIONS_TABLE_NAME", "transactions")
		t.Setenv("DYNAMODB_MERCHANTS_TABLE_NAME", "merchants")
		t.Setenv("DYNAMODB_PROCESSORS_TABLE_NAME", "processors")
		t.Setenv("WEBHOOK_QUEUE_URL", "https://sqs.local/webhooks")
		t.Setenv("SYNC_TOPIC_ARN", "arn:aws:sns:local:1:sync")
		t.Setenv("ANALYTICS_STREAMS", "es-mirror, billing-mirror,,warehouse ")
		t.Setenv("WEBCHECKOUT_WEBHOOK_URL", "https://checkout.local/hook")
		t.Setenv("WEBHOOK_TIMEOUT_MS", "2500")
		t.Setenv("FANOUT_SYNC_REQUIRED", "false")
		t.Setenv("FANOUT_ANALYTICS_REQUIRED", "true")

		cfg, err := load(viper.New())

		require.NoError(t, err)
		assert.Equal(t, "production", cfg.Environment)
		assert.False(t, cfg.IsLocalDevelopment())
		assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
		assert.Equal(t, 9090, cfg.Server.Port)
		assert.Equal(t, "merchants", cfg.Tables.Merchants)
		assert.Equal(t, []string{"es-mirror", "billing-mirror", "warehouse"}, cfg.Analytics.Streams)
		assert.Equal(t, "https://checkout.local/hook", cfg.Webhook.WebCheckoutURL)
		assert.Equal(t, 2500*time.Millisecond, cfg.Webhook.Timeout)
		assert.False(t, cfg.FanOut.SyncRequired)
		assert.True(t, cfg.FanOut.AnalyticsRequired)
		assert.NoError(t, cfg.Validate(NeedTables|NeedSignals|NeedAnalytics))
	})

	t.Run("Invalid Port", func(t *testing.T) {
		t.Setenv("HTTP_PORT", "70000")

		_, err := load(viper.New())

		assert.ErrorContains(t, err, "invalid HTTP_PORT")
	})

	t.Run("Invalid Log Level", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "chatty")

		_, err := load(viper.New())

		assert.ErrorContains(t, err, "invalid LOG_LEVEL")
	})
}

func TestValidate(t *testing.T) {
	cfg := Config{Tables: TablesConfig{Transactions: "transactions"}}

	err := cfg.Validate(NeedTables | NeedSignals)

	require.Error(t, err)
	assert.ErrorContains(t, err, "DYNAMODB_MERCHANTS_TABLE_NAME is not set")
	assert.ErrorContains(t, err, "SYNC_TOPIC_ARN is not set")
	assert.NotContains(t, err.Error(), "DYNAMODB_TRANSACTIONS_TABLE_NAME")

	assert.NoError(t, cfg.Validate(0))
}
