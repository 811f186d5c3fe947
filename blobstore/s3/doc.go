// Package s3 provides an S3 implementation of the blobstore.BlobStore interface.
//
// # Usage
//
//	cfg, err := config.LoadDefaultConfig(ctx)
//	client := s3.NewFromConfig(cfg)
//	store := s3store.NewStore(client, "my-bucket", "runs/")
//
//	m, err := matrix.Load(ctx, store, "dist.csv.zst", matrix.ReadOptions{Delimiter: ","})
//
// # Features
//
//   - Range reads for partial fetches
//   - Managed (multipart when large) uploads for results
//   - Configurable prefix for multi-tenant isolation
package s3
