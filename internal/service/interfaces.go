package service

import "context"

// ImageStore persists an uploaded recipe image and returns its public URL.
// The composer treats it as optional; without one, image references are
// stored as given.
type ImageStore interface {
	StoreImage(ctx context.Context, data []byte, contentType string) (string, error)
}
