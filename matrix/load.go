package matrix

import (
	"context"
	"fmt"

	"github.com/hupe1980/kmedoids/blobstore"
)

// Load opens name in store and parses it with Read.
func Load(ctx context.Context, store blobstore.BlobStore, name string, opts ReadOptions) (*Dense, error) {
	blob, err := store.Open(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("matrix: open %s: %w", name, err)
	}
	defer func() { _ = blob.Close() }()

	rc, err := blobstore.NewReader(ctx, blob)
	if err != nil {
		return nil, fmt.Errorf("matrix: read %s: %w", name, err)
	}
	defer func() { _ = rc.Close() }()

	m, err := Read(rc, opts)
	if err != nil {
		return nil, fmt.Errorf("matrix: parse %s: %w", name, err)
	}
	return m, nil
}
