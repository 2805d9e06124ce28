package config_test

import (
	"testing"

	"bistro/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("APP_TIMEZONE", "Asia/Kolkata")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")
	t.Setenv("EXTERNAL_RAZORPAY_KEY_ID", "rzp_test_key")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "Asia/Kolkata", cfg.App.Timezone)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "rzp_test_key", cfg.External.Razorpay.KeyID)
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 300, cfg.Cache.TTL)
	assert.Equal(t, 900, cfg.Auth.ResetTokenTTLSeconds)
	assert.Equal(t, "disable", cfg.DB.Postgres.Write.SSLMode)
	assert.Equal(t, "order.placed", cfg.Kafka.Topics.OrderPlaced)
	assert.Equal(t, "INR", cfg.External.Razorpay.Currency)
	assert.Equal(t, 50, cfg.External.S3.MaxUploadMB)
	assert.Contains(t, cfg.App.CORS.AllowedHeaders, "X-API-Key")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		access  string
		refresh string
		wantErr string
	}{
		{name: "distinct secrets", access: "access", refresh: "refresh"},
		{name: "missing access", refresh: "refresh", wantErr: "missing secret: JWT_ACCESS_SECRET"},
		{name: "missing both", wantErr: "missing secret: JWT_ACCESS_SECRET\nmissing secret: JWT_REFRESH_SECRET"},
		{name: "shared secret", access: "same", refresh: "same", wantErr: "JWT_ACCESS_SECRET and JWT_REFRESH_SECRET must differ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{}
			cfg.JWT.AccessSecret = tt.access
			cfg.JWT.RefreshSecret = tt.refresh

			err := cfg.Validate()

			if tt.wantErr == "" {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}

	err := (&config.Config{}).Validate()
	assert.ErrorIs(t, err, config.ErrMissingSecret)
}
