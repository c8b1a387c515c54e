package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("DB_USERNAME", "booker")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "bookings")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "3333", cfg.Port)
	assert.Equal(t, "booker:secret@tcp(localhost:3306)/bookings?charset=utf8mb4&parseTime=True&loc=UTC", cfg.Database.DSN)
	assert.Equal(t, 60*time.Minute, cfg.Redis.TTL)
	assert.Equal(t, int64(5<<20), cfg.Upload.MaxBytes)
	assert.Empty(t, cfg.Kafka.Brokers)
	assert.Equal(t, time.UTC, cfg.Location)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadConfigParsesLists(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", " kafka-1:9092, ,kafka-2:9092")
	t.Setenv("APP_URL", "https://api.example.com/")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "https://api.example.com", cfg.AppURL)
}

func TestLoadConfigRejectsBadNumbers(t *testing.T) {
	cases := map[string]string{
		"JWT_EXPIRATION_MINUTES": "soon",
		"REDIS_DB":               "first",
		"MAX_UPLOAD_MB":          "big",
		"RATE_LIMIT_RPS":         "fast",
		"TIMEZONE":               "Mars/Olympus",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := LoadConfig()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid "+key)
		})
	}
}
