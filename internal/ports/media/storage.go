package media

import (
	"context"
	"io"
)

// Storage keeps uploaded images as opaque files and hands back the path they
// are referenced by.
type Storage interface {
	Save(ctx context.Context, filename string, content io.Reader) (string, error)
	// Delete removes a file returned by Save. A missing file is not an error.
	Delete(ctx context.Context, path string) error
}
