package ports

import (
	"context"
	"io"
)

// PictureStore holds uploaded consultant pictures addressed by key.
type PictureStore interface {
	// Upload stores the object under key, replacing any previous object with
	// the same key.
	Upload(ctx context.Context, key string, r io.Reader) error
	// Open returns a reader over the stored object; the caller closes it.
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	// PublicURL maps a storage key to its public download URL.
	PublicURL(key string) string
}
