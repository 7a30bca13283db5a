package providers

import (
	"context"

	"github.com/kostiantyn-povnych/weather-service/models"
)

// Geocoder resolves a city name (plus optional country code) to coordinates.
type Geocoder interface {
	Resolve(ctx context.Context, query models.LocationQuery) (*models.Coordinates, error)
}

// WeatherProvider fetches a current-conditions snapshot for a coordinate
// pair. The snapshot it returns is partial: coordinates and measurements
// only, no location or cache metadata.
type WeatherProvider interface {
	FetchCurrent(ctx context.Context, coords models.Coordinates) (*models.WeatherSnapshot, error)
}
