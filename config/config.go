package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/kostiantyn-povnych/weather-service/errors"
)

// Backend selectors. Each pluggable layer is chosen once at process start
// and held for the process lifetime.
const (
	CacheTypeDisabled = "disabled"
	CacheTypeMemory   = "memory"
	CacheTypeRedis    = "redis"

	RateLimitTypeDisabled = "disabled"
	RateLimitTypeRedis    = "redis"

	EventStoreTypeLocal    = "local"
	EventStoreTypeDynamoDB = "dynamodb"

	DataStoreTypeLocal = "local"
	DataStoreTypeS3    = "s3"
)

// Config represents the application configuration structure
type Config struct {
	Server    ServerConfig     `split_words:"true"`
	Weather   WeatherConfig    `split_words:"true"`
	Cache     CacheConfig      `split_words:"true"`
	RateLimit RateLimitConfig  `split_words:"true"`
	Events    EventStoreConfig `split_words:"true"`
	Storage   DataStoreConfig  `split_words:"true"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port int `envconfig:"SERVER_PORT" default:"8080"`
}

// WeatherConfig contains settings for the upstream weather and geocoding APIs
type WeatherConfig struct {
	APIKey                string `envconfig:"WEATHER_API_KEY" required:"true"`
	GeoBaseURL            string `envconfig:"WEATHER_GEO_BASE_URL" default:"https://api.openweathermap.org/geo/1.0"`
	WeatherBaseURL        string `envconfig:"WEATHER_API_BASE_URL" default:"https://api.openweathermap.org/data/2.5"`
	RequestTimeoutSeconds int    `envconfig:"WEATHER_REQUEST_TIMEOUT" default:"10"`
}

// RequestTimeout returns the outbound HTTP timeout for upstream API calls.
func (w WeatherConfig) RequestTimeout() time.Duration {
	return time.Duration(w.RequestTimeoutSeconds) * time.Second
}

// RedisConfig contains connection settings for the cache Redis instance
type RedisConfig struct {
	Addr         string `envconfig:"CACHE_REDIS_ADDR" default:"localhost:6379"`
	Password     string `envconfig:"CACHE_REDIS_PASSWORD" default:""`
	DB           int    `envconfig:"CACHE_REDIS_DB" default:"0"`
	DialTimeout  int    `envconfig:"CACHE_REDIS_DIAL_TIMEOUT" default:"5"`
	ReadTimeout  int    `envconfig:"CACHE_REDIS_READ_TIMEOUT" default:"3"`
	WriteTimeout int    `envconfig:"CACHE_REDIS_WRITE_TIMEOUT" default:"3"`
}

// CacheConfig selects and configures the snapshot cache backend
type CacheConfig struct {
	Type       string      `envconfig:"CACHE_TYPE" default:"disabled"`
	TTLMinutes int         `envconfig:"CACHE_TTL_MINUTES" default:"5"`
	Redis      RedisConfig `split_words:"true"`
}

// TTL returns the snapshot time-to-live.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLMinutes) * time.Minute
}

// RateLimitConfig selects and configures the admission-check backend
type RateLimitConfig struct {
	Type          string `envconfig:"RATE_LIMIT_TYPE" default:"disabled"`
	Requests      int    `envconfig:"RATE_LIMIT_REQUESTS" default:"100"`
	WindowSeconds int    `envconfig:"RATE_LIMIT_WINDOW_SECONDS" default:"60"`
	RedisAddr     string `envconfig:"RATE_LIMIT_REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string `envconfig:"RATE_LIMIT_REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"RATE_LIMIT_REDIS_DB" default:"0"`
}

// Window returns the fixed-window length.
func (r RateLimitConfig) Window() time.Duration {
	return time.Duration(r.WindowSeconds) * time.Second
}

// EventStoreConfig selects and configures the audit event backend
type EventStoreConfig struct {
	Type      string `envconfig:"EVENT_STORE_TYPE" default:"local"`
	FilePath  string `envconfig:"EVENT_STORE_LOCAL_FILE_PATH" default:"events.log"`
	TableName string `envconfig:"EVENT_STORE_DYNAMODB_TABLE_NAME" default:"weather-svc-events"`
	AWSRegion string `envconfig:"EVENT_STORE_AWS_REGION" default:"us-east-1"`
}

// DataStoreConfig selects and configures the snapshot object store backend
type DataStoreConfig struct {
	Type      string `envconfig:"DATA_STORE_TYPE" default:"local"`
	Directory string `envconfig:"DATA_STORE_LOCAL_DIRECTORY" default:"data"`
	Bucket    string `envconfig:"DATA_STORE_S3_BUCKET_NAME" default:"weather-svc-data"`
	Folder    string `envconfig:"DATA_STORE_S3_FOLDER_NAME" default:"weather"`
	AWSRegion string `envconfig:"DATA_STORE_AWS_REGION" default:"us-east-1"`
}

// LoadConfig loads and validates application configuration from environment variables
func LoadConfig() (*Config, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, errors.NewConfigurationError("error processing config", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Weather.Validate(); err != nil {
		return err
	}
	if err := c.Cache.Validate(); err != nil {
		return err
	}
	if err := c.RateLimit.Validate(); err != nil {
		return err
	}
	if err := c.Events.Validate(); err != nil {
		return err
	}
	if err := c.Storage.Validate(); err != nil {
		return err
	}
	return nil
}

// Validate checks server configuration
func (s *ServerConfig) Validate() error {
	if s.Port < 1 || s.Port > 65535 {
		return errors.NewConfigurationError("SERVER_PORT must be between 1 and 65535", nil)
	}
	return nil
}

// Validate checks upstream API configuration
func (w *WeatherConfig) Validate() error {
	if w.APIKey == "" {
		return errors.NewConfigurationError("WEATHER_API_KEY is required", nil)
	}
	if err := validateBaseURL("WEATHER_GEO_BASE_URL", w.GeoBaseURL); err != nil {
		return err
	}
	if err := validateBaseURL("WEATHER_API_BASE_URL", w.WeatherBaseURL); err != nil {
		return err
	}
	if w.RequestTimeoutSeconds < 1 {
		return errors.NewConfigurationError("WEATHER_REQUEST_TIMEOUT must be at least 1 second", nil)
	}
	return nil
}

func validateBaseURL(name, value string) error {
	if value == "" {
		return errors.NewConfigurationError(fmt.Sprintf("%s cannot be empty", name), nil)
	}
	if !strings.HasPrefix(value, "http://") && !strings.HasPrefix(value, "https://") {
		return errors.NewConfigurationError(fmt.Sprintf("%s must start with http:// or https://", name), nil)
	}
	return nil
}

// Validate checks cache configuration
func (c *CacheConfig) Validate() error {
	switch c.Type {
	case CacheTypeDisabled, CacheTypeMemory, CacheTypeRedis:
	default:
		return errors.NewConfigurationError(
			fmt.Sprintf("CACHE_TYPE must be one of: %s, %s, %s",
				CacheTypeDisabled, CacheTypeMemory, CacheTypeRedis), nil)
	}
	if c.TTLMinutes < 1 {
		return errors.NewConfigurationError("CACHE_TTL_MINUTES must be at least 1", nil)
	}
	if c.Type == CacheTypeRedis && c.Redis.Addr == "" {
		return errors.NewConfigurationError("CACHE_REDIS_ADDR cannot be empty", nil)
	}
	return nil
}

// Validate checks rate limiter configuration
func (r *RateLimitConfig) Validate() error {
	switch r.Type {
	case RateLimitTypeDisabled, RateLimitTypeRedis:
	default:
		return errors.NewConfigurationError(
			fmt.Sprintf("RATE_LIMIT_TYPE must be one of: %s, %s",
				RateLimitTypeDisabled, RateLimitTypeRedis), nil)
	}
	if r.Requests < 1 {
		return errors.NewConfigurationError("RATE_LIMIT_REQUESTS must be at least 1", nil)
	}
	if r.WindowSeconds < 1 {
		return errors.NewConfigurationError("RATE_LIMIT_WINDOW_SECONDS must be at least 1", nil)
	}
	if r.Type == RateLimitTypeRedis && r.RedisAddr == "" {
		return errors.NewConfigurationError("RATE_LIMIT_REDIS_ADDR cannot be empty", nil)
	}
	return nil
}

// Validate checks event store configuration
func (e *EventStoreConfig) Validate() error {
	switch e.Type {
	case EventStoreTypeLocal:
		if e.FilePath == "" {
			return errors.NewConfigurationError("EVENT_STORE_LOCAL_FILE_PATH cannot be empty", nil)
		}
	case EventStoreTypeDynamoDB:
		if e.TableName == "" {
			return errors.NewConfigurationError("EVENT_STORE_DYNAMODB_TABLE_NAME cannot be empty", nil)
		}
		if e.AWSRegion == "" {
			return errors.NewConfigurationError("EVENT_STORE_AWS_REGION cannot be empty", nil)
		}
	default:
		return errors.NewConfigurationError(
			fmt.Sprintf("EVENT_STORE_TYPE must be one of: %s, %s",
				EventStoreTypeLocal, EventStoreTypeDynamoDB), nil)
	}
	return nil
}

// Validate checks data store configuration
func (d *DataStoreConfig) Validate() error {
	switch d.Type {
	case DataStoreTypeLocal:
		if d.Directory == "" {
			return errors.NewConfigurationError("DATA_STORE_LOCAL_DIRECTORY cannot be empty", nil)
		}
	case DataStoreTypeS3:
		if d.Bucket == "" {
			return errors.NewConfigurationError("DATA_STORE_S3_BUCKET_NAME cannot be empty", nil)
		}
		if d.AWSRegion == "" {
			return errors.NewConfigurationError("DATA_STORE_AWS_REGION cannot be empty", nil)
		}
	default:
		return errors.NewConfigurationError(
			fmt.Sprintf("DATA_STORE_TYPE must be one of: %s, %s",
				DataStoreTypeLocal, DataStoreTypeS3), nil)
	}
	return nil
}
