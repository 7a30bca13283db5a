// Package events provides the append-only audit trail: one record per
// served request, written to a local file or a DynamoDB table. Recording is
// fire-and-forget from the orchestrator's perspective; failures are logged
// by the caller and never affect the response.
package events

import (
	"context"

	"github.com/kostiantyn-povnych/weather-service/models"
)

// Store appends audit records. Records are never read back, mutated, or
// deleted by this service; retention is the backend's policy.
type Store interface {
	Record(ctx context.Context, event *models.EventRecord) error
}
