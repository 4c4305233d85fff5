// internal/app/system/objstore/objstore.go

// Package objstore stores uploaded blobs (project thumbnails) and hands
// back externally addressable URLs. Two backends: S3 for deployments,
// local disk for development (served by the waffle fileserver mount).
package objstore

import (
	"context"
	"io"
)

// PutOptions carries optional metadata for a stored object.
type PutOptions struct {
	ContentType string
}

// Store is the blob storage contract consumed by upload handlers.
type Store interface {
	// Put streams the object to storage under key.
	Put(ctx context.Context, key string, r io.Reader, opts *PutOptions) error
	// URL returns the externally addressable URL for a stored key.
	URL(key string) string
}
