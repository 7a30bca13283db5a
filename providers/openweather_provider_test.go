package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kostiantyn-povnych/weather-service/config"
	apperrors "github.com/kostiantyn-povnych/weather-service/errors"
	"github.com/kostiantyn-povnych/weather-service/models"
)

var londonCoords = models.Coordinates{Latitude: 51.5073, Longitude: -0.1276}

func providerWithServer(t *testing.T, handler http.HandlerFunc) *OpenWeatherMapProvider {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.WeatherConfig{
		APIKey:                "test-api-key",
		WeatherBaseURL:        server.URL,
		RequestTimeoutSeconds: 5,
	}
	return NewOpenWeatherMapProvider(cfg)
}

func TestOpenWeatherMapProvider_FetchCurrent(t *testing.T) {
	t.Run("ValidResponse", func(t *testing.T) {
		provider := providerWithServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Contains(t, r.URL.String(), "/weather")
			assert.Equal(t, "metric", r.URL.Query().Get("units"))
			assert.NotEmpty(t, r.URL.Query().Get("lat"))
			assert.NotEmpty(t, r.URL.Query().Get("lon"))

			w.Header().Set("Content-Type", "application/json")
			_, err := w.Write([]byte(`{
				"main": {"temp": 15.0, "humidity": 76},
				"weather": [{"description": "overcast clouds"}],
				"dt": 1719000000
			}`))
			require.NoError(t, err)
		})

		snapshot, err := provider.FetchCurrent(context.Background(), londonCoords)

		assert.NoError(t, err)
		require.NotNil(t, snapshot)
		assert.Equal(t, 15.0, snapshot.Temperature)
		assert.Equal(t, 76.0, snapshot.Humidity)
		assert.Equal(t, "overcast clouds", snapshot.Description)
		assert.Equal(t, londonCoords, snapshot.Coordinates)
		assert.Equal(t, time.Unix(1719000000, 0).UTC(), snapshot.ObservedAt)
		assert.WithinDuration(t, time.Now().UTC(), snapshot.FetchedAt, time.Minute)
	})

	t.Run("MissingTemperature", func(t *testing.T) {
		provider := providerWithServer(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"weather": [{"description": "clear sky"}]}`))
		})

		snapshot, err := provider.FetchCurrent(context.Background(), londonCoords)

		assert.Error(t, err)
		assert.Nil(t, snapshot)
		assert.True(t, apperrors.IsMalformedResponseError(err))
	})

	t.Run("MissingConditions", func(t *testing.T) {
		provider := providerWithServer(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"main": {"temp": 21.5, "humidity": 40}, "weather": []}`))
		})

		snapshot, err := provider.FetchCurrent(context.Background(), londonCoords)

		assert.Error(t, err)
		assert.Nil(t, snapshot)
		assert.True(t, apperrors.IsMalformedResponseError(err))
	})

	t.Run("ServerError", func(t *testing.T) {
		provider := providerWithServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})

		snapshot, err := provider.FetchCurrent(context.Background(), londonCoords)

		assert.Error(t, err)
		assert.Nil(t, snapshot)
		assert.True(t, apperrors.IsExternalAPIError(err))
	})

	t.Run("ContextCancelled", func(t *testing.T) {
		provider := providerWithServer(t, func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		})

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		snapshot, err := provider.FetchCurrent(ctx, londonCoords)

		assert.Error(t, err)
		assert.Nil(t, snapshot)
		assert.True(t, apperrors.IsExternalAPIError(err))
	})
}
