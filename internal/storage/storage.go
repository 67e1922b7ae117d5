// Package storage uploads product images to an object store and hands back
// public URLs for the catalog.
package storage

import (
	"context"
)

// ObjectStore persists binary objects under a bucket/key and returns the
// public URL of the stored object.
type ObjectStore interface {
	Upload(ctx context.Context, bucket, key, contentType string, data []byte) (string, error)
}
