// Package storage persists fetched snapshots as JSON objects, either on the
// local filesystem or in an S3 bucket. Persisting is best-effort and happens
// after the upstream fetch; the returned URL is carried on the audit record.
package storage

import "context"

// ObjectStore writes named objects and returns a URL (or path) where the
// object can be found.
type ObjectStore interface {
	Put(ctx context.Context, objectName string, data []byte) (string, error)
}
