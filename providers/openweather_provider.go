package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/kostiantyn-povnych/weather-service/config"
	"github.com/kostiantyn-povnych/weather-service/errors"
	"github.com/kostiantyn-povnych/weather-service/models"
)

// OpenWeatherMapProvider implements WeatherProvider for the OpenWeather
// current weather API
type OpenWeatherMapProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewOpenWeatherMapProvider creates a new OpenWeather current weather provider
func NewOpenWeatherMapProvider(cfg *config.WeatherConfig) *OpenWeatherMapProvider {
	return &OpenWeatherMapProvider{
		apiKey:  cfg.APIKey,
		baseURL: cfg.WeatherBaseURL,
		client:  &http.Client{Timeout: cfg.RequestTimeout()},
	}
}

type openWeatherMapResponse struct {
	Main *struct {
		Temp     *float64 `json:"temp"`
		Humidity float64  `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Dt int64 `json:"dt"`
}

// FetchCurrent retrieves the current conditions at the given coordinates.
func (p *OpenWeatherMapProvider) FetchCurrent(ctx context.Context, coords models.Coordinates) (*models.WeatherSnapshot, error) {
	requestURL := fmt.Sprintf("%s/weather?lat=%f&lon=%f&units=metric&appid=%s",
		p.baseURL, coords.Latitude, coords.Longitude, p.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, errors.NewExternalAPIError("build weather request", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, errors.NewExternalAPIError("weather request failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewExternalAPIError(
			fmt.Sprintf("weather API returned status code %d", resp.StatusCode), nil)
	}

	var apiResp openWeatherMapResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, errors.NewExternalAPIError("decode weather response", err)
	}

	// Temperature and conditions are required; a 200 without them is a
	// malformed response, not a usable reading.
	if apiResp.Main == nil || apiResp.Main.Temp == nil {
		return nil, errors.NewMalformedResponseError("weather response missing temperature", nil)
	}
	if len(apiResp.Weather) == 0 || apiResp.Weather[0].Description == "" {
		return nil, errors.NewMalformedResponseError("weather response missing conditions", nil)
	}

	observedAt := time.Unix(apiResp.Dt, 0).UTC()
	if apiResp.Dt == 0 {
		observedAt = time.Now().UTC()
	}

	return &models.WeatherSnapshot{
		Coordinates: coords,
		Temperature: *apiResp.Main.Temp,
		Humidity:    apiResp.Main.Humidity,
		Description: apiResp.Weather[0].Description,
		ObservedAt:  observedAt,
		FetchedAt:   time.Now().UTC(),
	}, nil
}
