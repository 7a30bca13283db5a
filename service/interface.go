package service

import (
	"context"

	"github.com/kostiantyn-povnych/weather-service/models"
)

// WeatherServiceInterface is the contract the HTTP layer depends on.
type WeatherServiceInterface interface {
	GetWeather(ctx context.Context, clientKey string, query models.LocationQuery) (*models.WeatherSnapshot, error)
}
