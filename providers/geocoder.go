package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/kostiantyn-povnych/weather-service/config"
	"github.com/kostiantyn-povnych/weather-service/errors"
	"github.com/kostiantyn-povnych/weather-service/models"
)

// OpenWeatherGeocoder implements Geocoder using the OpenWeather geocoding API
type OpenWeatherGeocoder struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewOpenWeatherGeocoder creates a new OpenWeather geocoding provider
func NewOpenWeatherGeocoder(cfg *config.WeatherConfig) *OpenWeatherGeocoder {
	return &OpenWeatherGeocoder{
		apiKey:  cfg.APIKey,
		baseURL: cfg.GeoBaseURL,
		client:  &http.Client{Timeout: cfg.RequestTimeout()},
	}
}

type geoMatch struct {
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Country string  `json:"country"`
}

// Resolve turns a normalized location query into coordinates. When the
// upstream returns several matches for an ambiguous name, the first result
// as ranked by the provider wins.
func (g *OpenWeatherGeocoder) Resolve(ctx context.Context, query models.LocationQuery) (*models.Coordinates, error) {
	query = query.Normalized()
	if query.City == "" {
		return nil, errors.NewValidationError("city cannot be empty")
	}

	requestURL := fmt.Sprintf("%s/direct?q=%s&limit=5&appid=%s",
		g.baseURL, url.QueryEscape(query.QueryString()), g.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, errors.NewExternalAPIError("build geocoding request", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, errors.NewExternalAPIError("geocoding request failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewExternalAPIError(
			fmt.Sprintf("geocoding API returned status code %d", resp.StatusCode), nil)
	}

	var matches []geoMatch
	if err := json.NewDecoder(resp.Body).Decode(&matches); err != nil {
		return nil, errors.NewExternalAPIError("decode geocoding response", err)
	}

	if len(matches) == 0 {
		return nil, errors.NewNotFoundError(fmt.Sprintf("city %q not found", query.City))
	}

	coords := models.Coordinates{
		Latitude:  matches[0].Lat,
		Longitude: matches[0].Lon,
	}
	if err := coords.Validate(); err != nil {
		return nil, errors.NewMalformedResponseError("geocoding API returned invalid coordinates", err)
	}

	return &coords, nil
}
