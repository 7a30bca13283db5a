package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kostiantyn-povnych/weather-service/errors"
)

func TestLoadConfig(t *testing.T) {
	t.Run("RequiredFieldsMissing", func(t *testing.T) {
		os.Clearenv()

		config, err := LoadConfig()

		assert.Error(t, err)
		assert.Nil(t, config)
		assert.Contains(t, err.Error(), "required key WEATHER_API_KEY missing")
	})

	t.Run("DefaultValues", func(t *testing.T) {
		os.Clearenv()
		require.NoError(t, os.Setenv("WEATHER_API_KEY", "test-api-key"))

		config, err := LoadConfig()

		assert.NoError(t, err)
		require.NotNil(t, config)
		assert.Equal(t, 8080, config.Server.Port)
		assert.Equal(t, "https://api.openweathermap.org/geo/1.0", config.Weather.GeoBaseURL)
		assert.Equal(t, "https://api.openweathermap.org/data/2.5", config.Weather.WeatherBaseURL)
		assert.Equal(t, 10*time.Second, config.Weather.RequestTimeout())
		assert.Equal(t, CacheTypeDisabled, config.Cache.Type)
		assert.Equal(t, 5*time.Minute, config.Cache.TTL())
		assert.Equal(t, RateLimitTypeDisabled, config.RateLimit.Type)
		assert.Equal(t, 100, config.RateLimit.Requests)
		assert.Equal(t, 60*time.Second, config.RateLimit.Window())
		assert.Equal(t, EventStoreTypeLocal, config.Events.Type)
		assert.Equal(t, "events.log", config.Events.FilePath)
		assert.Equal(t, DataStoreTypeLocal, config.Storage.Type)
		assert.Equal(t, "data", config.Storage.Directory)
	})

	t.Run("CustomValues", func(t *testing.T) {
		os.Clearenv()
		require.NoError(t, os.Setenv("WEATHER_API_KEY", "test-api-key"))
		require.NoError(t, os.Setenv("SERVER_PORT", "9090"))
		require.NoError(t, os.Setenv("CACHE_TYPE", "redis"))
		require.NoError(t, os.Setenv("CACHE_TTL_MINUTES", "15"))
		require.NoError(t, os.Setenv("CACHE_REDIS_ADDR", "redis:6379"))
		require.NoError(t, os.Setenv("RATE_LIMIT_TYPE", "redis"))
		require.NoError(t, os.Setenv("RATE_LIMIT_REQUESTS", "10"))
		require.NoError(t, os.Setenv("RATE_LIMIT_WINDOW_SECONDS", "30"))
		require.NoError(t, os.Setenv("EVENT_STORE_TYPE", "dynamodb"))
		require.NoError(t, os.Setenv("EVENT_STORE_DYNAMODB_TABLE_NAME", "events-table"))
		require.NoError(t, os.Setenv("DATA_STORE_TYPE", "s3"))
		require.NoError(t, os.Setenv("DATA_STORE_S3_BUCKET_NAME", "snapshots"))

		config, err := LoadConfig()

		assert.NoError(t, err)
		require.NotNil(t, config)
		assert.Equal(t, 9090, config.Server.Port)
		assert.Equal(t, CacheTypeRedis, config.Cache.Type)
		assert.Equal(t, 15*time.Minute, config.Cache.TTL())
		assert.Equal(t, "redis:6379", config.Cache.Redis.Addr)
		assert.Equal(t, RateLimitTypeRedis, config.RateLimit.Type)
		assert.Equal(t, 10, config.RateLimit.Requests)
		assert.Equal(t, 30*time.Second, config.RateLimit.Window())
		assert.Equal(t, EventStoreTypeDynamoDB, config.Events.Type)
		assert.Equal(t, "events-table", config.Events.TableName)
		assert.Equal(t, DataStoreTypeS3, config.Storage.Type)
		assert.Equal(t, "snapshots", config.Storage.Bucket)
	})
}

func TestConfigValidation(t *testing.T) {
	setup := func(t *testing.T, key, value string) {
		os.Clearenv()
		require.NoError(t, os.Setenv("WEATHER_API_KEY", "test-api-key"))
		require.NoError(t, os.Setenv(key, value))
	}

	tests := []struct {
		name    string
		key     string
		value   string
		wantErr string
	}{
		{"InvalidPort", "SERVER_PORT", "70000", "SERVER_PORT"},
		{"InvalidGeoURL", "WEATHER_GEO_BASE_URL", "not-a-url", "WEATHER_GEO_BASE_URL"},
		{"InvalidCacheType", "CACHE_TYPE", "memcached", "CACHE_TYPE"},
		{"ZeroTTL", "CACHE_TTL_MINUTES", "0", "CACHE_TTL_MINUTES"},
		{"InvalidRateLimitType", "RATE_LIMIT_TYPE", "memory", "RATE_LIMIT_TYPE"},
		{"ZeroThreshold", "RATE_LIMIT_REQUESTS", "0", "RATE_LIMIT_REQUESTS"},
		{"ZeroWindow", "RATE_LIMIT_WINDOW_SECONDS", "0", "RATE_LIMIT_WINDOW_SECONDS"},
		{"InvalidEventStoreType", "EVENT_STORE_TYPE", "kafka", "EVENT_STORE_TYPE"},
		{"InvalidDataStoreType", "DATA_STORE_TYPE", "gcs", "DATA_STORE_TYPE"},
		{"ZeroTimeout", "WEATHER_REQUEST_TIMEOUT", "0", "WEATHER_REQUEST_TIMEOUT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setup(t, tt.key, tt.value)

			config, err := LoadConfig()

			assert.Error(t, err)
			assert.Nil(t, config)
			assert.True(t, errors.IsConfigurationError(err))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
