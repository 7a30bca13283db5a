// Package models defines data structures used throughout the application
package models

import (
	"fmt"
	"strings"
	"time"
)

// LocationQuery identifies the place a caller asked about. Normalize before
// using it as a cache key or passing it to the geocoder, so that "London"
// and " london " address the same cache entry.
type LocationQuery struct {
	City        string `json:"city" form:"city"`
	CountryCode string `json:"country_code,omitempty" form:"country_code"`
}

// Normalized returns a copy with city and country code trimmed and case-folded.
func (q LocationQuery) Normalized() LocationQuery {
	return LocationQuery{
		City:        strings.ToLower(strings.TrimSpace(q.City)),
		CountryCode: strings.ToLower(strings.TrimSpace(q.CountryCode)),
	}
}

// CacheKey returns the canonical cache key for the query. Callers must
// normalize first; the key of a normalized query is stable across
// whitespace and case variants of the same input.
func (q LocationQuery) CacheKey() string {
	if q.CountryCode == "" {
		return fmt.Sprintf("weather:%s", q.City)
	}
	return fmt.Sprintf("weather:%s:%s", q.City, q.CountryCode)
}

// QueryString renders the query in the "city,CC" form the geocoding API expects.
func (q LocationQuery) QueryString() string {
	if q.CountryCode == "" {
		return q.City
	}
	return fmt.Sprintf("%s,%s", q.City, q.CountryCode)
}

// Coordinates is a latitude/longitude pair produced by the geocoder.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Validate checks the pair is within range.
func (c Coordinates) Validate() error {
	if c.Latitude < -90 || c.Latitude > 90 {
		return fmt.Errorf("latitude %f out of range [-90, 90]", c.Latitude)
	}
	if c.Longitude < -180 || c.Longitude > 180 {
		return fmt.Errorf("longitude %f out of range [-180, 180]", c.Longitude)
	}
	return nil
}

// WeatherSnapshot is a current-conditions reading for one location.
// Read-only once fetched; cached under the normalized location key.
type WeatherSnapshot struct {
	Location    LocationQuery `json:"location"`
	Coordinates Coordinates   `json:"coordinates"`
	Temperature float64       `json:"temperature"`
	Humidity    float64       `json:"humidity"`
	Description string        `json:"description"`
	ObservedAt  time.Time     `json:"observed_at"`
	FetchedAt   time.Time     `json:"fetched_at"`
}

// Outcome classifies how a request finished, for the audit trail.
type Outcome string

const (
	OutcomeServed        Outcome = "served"
	OutcomeCacheHit      Outcome = "cache_hit"
	OutcomeRateLimited   Outcome = "rate_limited"
	OutcomeUpstreamError Outcome = "upstream_error"
	OutcomeInvalidInput  Outcome = "invalid_input"
)

// EventRecord is one append-only audit entry, written exactly once per request.
type EventRecord struct {
	ID        string        `json:"id" dynamodbav:"id"`
	ClientKey string        `json:"client_key" dynamodbav:"client_key"`
	Location  LocationQuery `json:"location" dynamodbav:"location"`
	Outcome   Outcome       `json:"outcome" dynamodbav:"outcome"`
	ObjectURL string        `json:"object_url,omitempty" dynamodbav:"object_url,omitempty"`
	Timestamp time.Time     `json:"timestamp" dynamodbav:"timestamp"`
}

// ErrorResponse represents an error message structure for API responses
type ErrorResponse struct {
	Error string `json:"error"`
}
