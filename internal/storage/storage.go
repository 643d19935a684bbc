package storage

import (
	"context"
	"io"
)

// Store persists uploaded image bytes under a name and returns a reference
// (a local path or a public URL) that gets recorded on the item.
type Store interface {
	Save(ctx context.Context, name string, contentType string, r io.Reader) (string, error)
}
