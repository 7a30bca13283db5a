package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kostiantyn-povnych/weather-service/config"
	apperrors "github.com/kostiantyn-povnych/weather-service/errors"
	"github.com/kostiantyn-povnych/weather-service/models"
)

func geocoderWithServer(t *testing.T, handler http.HandlerFunc) (*OpenWeatherGeocoder, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.WeatherConfig{
		APIKey:                "test-api-key",
		GeoBaseURL:            server.URL,
		RequestTimeoutSeconds: 5,
	}
	return NewOpenWeatherGeocoder(cfg), server
}

func TestOpenWeatherGeocoder_Resolve(t *testing.T) {
	t.Run("ValidResponse", func(t *testing.T) {
		geocoder, _ := geocoderWithServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Contains(t, r.URL.String(), "/direct")
			assert.Equal(t, "london,gb", r.URL.Query().Get("q"))
			assert.Equal(t, "test-api-key", r.URL.Query().Get("appid"))

			w.Header().Set("Content-Type", "application/json")
			_, err := w.Write([]byte(`[
				{"name": "London", "lat": 51.5073, "lon": -0.1276, "country": "GB"},
				{"name": "London", "lat": 42.9836, "lon": -81.2497, "country": "CA"}
			]`))
			require.NoError(t, err)
		})

		coords, err := geocoder.Resolve(context.Background(), models.LocationQuery{City: "London", CountryCode: "GB"})

		assert.NoError(t, err)
		require.NotNil(t, coords)
		// First match as ranked by the provider wins.
		assert.InDelta(t, 51.5073, coords.Latitude, 0.001)
		assert.InDelta(t, -0.1276, coords.Longitude, 0.001)
	})

	t.Run("EmptyCity", func(t *testing.T) {
		called := false
		geocoder, _ := geocoderWithServer(t, func(w http.ResponseWriter, r *http.Request) {
			called = true
		})

		coords, err := geocoder.Resolve(context.Background(), models.LocationQuery{City: "   "})

		assert.Error(t, err)
		assert.Nil(t, coords)
		assert.True(t, apperrors.IsValidationError(err))
		assert.False(t, called, "no upstream call for invalid input")
	})

	t.Run("ZeroMatches", func(t *testing.T) {
		geocoder, _ := geocoderWithServer(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`[]`))
		})

		coords, err := geocoder.Resolve(context.Background(), models.LocationQuery{City: "Nowhereville"})

		assert.Error(t, err)
		assert.Nil(t, coords)
		assert.True(t, apperrors.IsNotFoundError(err))
	})

	t.Run("ServerError", func(t *testing.T) {
		geocoder, _ := geocoderWithServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		coords, err := geocoder.Resolve(context.Background(), models.LocationQuery{City: "London"})

		assert.Error(t, err)
		assert.Nil(t, coords)
		assert.True(t, apperrors.IsExternalAPIError(err))
	})

	t.Run("MalformedBody", func(t *testing.T) {
		geocoder, _ := geocoderWithServer(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"not": "a list"}`))
		})

		coords, err := geocoder.Resolve(context.Background(), models.LocationQuery{City: "London"})

		assert.Error(t, err)
		assert.Nil(t, coords)
		assert.True(t, apperrors.IsExternalAPIError(err))
	})

	t.Run("OutOfRangeCoordinates", func(t *testing.T) {
		geocoder, _ := geocoderWithServer(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`[{"name": "Broken", "lat": 123.0, "lon": 0.0, "country": "XX"}]`))
		})

		coords, err := geocoder.Resolve(context.Background(), models.LocationQuery{City: "Broken"})

		assert.Error(t, err)
		assert.Nil(t, coords)
		assert.True(t, apperrors.IsMalformedResponseError(err))
	})

	t.Run("NetworkFailure", func(t *testing.T) {
		geocoder, server := geocoderWithServer(t, func(w http.ResponseWriter, r *http.Request) {})
		server.Close()

		coords, err := geocoder.Resolve(context.Background(), models.LocationQuery{City: "London"})

		assert.Error(t, err)
		assert.Nil(t, coords)
		assert.True(t, apperrors.IsExternalAPIError(err))
	})
}
