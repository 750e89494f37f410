package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper(overrides map[string]any) *viper.Viper {
	v := viper.New()
	setDefaults(v)
	for k, val := range overrides {
		v.Set(k, val)
	}
	return v
}

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(newViper(nil))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, IsolationRepeatableRead, cfg.TxIsolation)
	assert.Equal(t, 30*time.Second, cfg.RateCacheTTL)
	assert.True(t, decimal.NewFromInt(100).Equal(cfg.LowBalanceFloor))
	assert.True(t, decimal.RequireFromString("0.1").Equal(cfg.LowBalanceRatio))
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, "ledger.balance_recalculated", cfg.KafkaTopic)
	assert.Equal(t, 5*time.Second, cfg.EventPublishTimeout)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "file://migrations", cfg.MigrationsPath)
}

func TestFromViper_Overrides(t *testing.T) {
	cfg, err := fromViper(newViper(map[string]any{
		"TX_ISOLATION":   "SERIALIZABLE",
		"RATE_CACHE_TTL":        "0s",
		"KAFKA_BROKERS":         "kafka-1:9092, kafka-2:9092,",
		"JWT_SECRET":            "s3cret",
		"EVENT_PUBLISH_TIMEOUT": "750ms",
	}))
	require.NoError(t, err)

	assert.Equal(t, IsolationSerializable, cfg.TxIsolation)
	assert.Zero(t, cfg.RateCacheTTL)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, 750*time.Millisecond, cfg.EventPublishTimeout)
}

func TestFromViper_InvalidValues(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[string]any
	}{
		{"isolation", map[string]any{"TX_ISOLATION": "chaos"}},
		{"floor", map[string]any{"LOW_BALANCE_FLOOR": "lots"}},
		{"ratio", map[string]any{"LOW_BALANCE_RATIO": "ten percent"}},
		{"default secret in production", map[string]any{"IS_PRODUCTION": true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fromViper(newViper(tt.overrides))
			assert.Error(t, err)
		})
	}
}

func TestFromViper_BadTTLFallsBack(t *testing.T) {
	cfg, err := fromViper(newViper(map[string]any{"RATE_CACHE_TTL": "soon"}))
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, cfg.RateCacheTTL)
}
