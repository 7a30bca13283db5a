package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kostiantyn-povnych/weather-service/config"
	weathererr "github.com/kostiantyn-povnych/weather-service/errors"
	"github.com/kostiantyn-povnych/weather-service/models"
	"github.com/kostiantyn-povnych/weather-service/service"
)

// Server represents the HTTP server and API handler
type Server struct {
	router         *gin.Engine
	config         *config.Config
	weatherService service.WeatherServiceInterface
}

// NewServer creates and configures a new HTTP server
func NewServer(config *config.Config, weatherService service.WeatherServiceInterface) *Server {
	router := gin.Default()

	server := &Server{
		router:         router,
		config:         config,
		weatherService: weatherService,
	}

	server.setupRoutes()
	return server
}

func (s *Server) setupRoutes() {
	api := s.router.Group("/api")
	{
		api.GET("/weather", s.getWeather)
	}

	s.router.GET("/healthz", s.healthz)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// Start begins the HTTP server
func (s *Server) Start() error {
	return s.router.Run(fmt.Sprintf(":%d", s.config.Server.Port))
}

// GetRouter returns the router for testing purposes
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

// getWeather serves GET /api/weather?city=...&country_code=...
// The client key for rate limiting is the caller's IP; validation of the
// query happens in the service so rejected input is still audited.
func (s *Server) getWeather(c *gin.Context) {
	query := models.LocationQuery{
		City:        c.Query("city"),
		CountryCode: c.Query("country_code"),
	}
	clientKey := c.ClientIP()

	slog.Debug("Getting weather", "city", query.City, "countryCode", query.CountryCode, "clientKey", clientKey)
	weather, err := s.weatherService.GetWeather(c.Request.Context(), clientKey, query)
	if err != nil {
		slog.Error("Weather service error", "error", err, "city", query.City)
		s.handleError(c, err)
		return
	}

	slog.Debug("Weather result", "weather", weather, "city", query.City)
	c.JSON(http.StatusOK, weather)
}

func (s *Server) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleError handles different types of application errors
func (s *Server) handleError(c *gin.Context, err error) {
	var appErr *weathererr.AppError
	var statusCode int
	var message string

	if errors.As(err, &appErr) {
		switch appErr.Type {
		case weathererr.ErrorTypeValidation:
			statusCode = http.StatusBadRequest
			message = appErr.Message
		case weathererr.ErrorTypeNotFound:
			statusCode = http.StatusNotFound
			message = appErr.Message
		case weathererr.ErrorTypeRateLimited:
			statusCode = http.StatusTooManyRequests
			message = appErr.Message
		case weathererr.ErrorTypeExternalAPI, weathererr.ErrorTypeMalformedResponse:
			statusCode = http.StatusServiceUnavailable
			message = "Weather provider unavailable"
		default:
			statusCode = http.StatusInternalServerError
			message = "Internal server error"
		}
	} else {
		statusCode = http.StatusInternalServerError
		message = "Internal server error"
	}

	c.JSON(statusCode, models.ErrorResponse{Error: message})
}
