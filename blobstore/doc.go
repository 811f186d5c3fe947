// Package blobstore abstracts where distance matrices are read from and
// where clustering results are written to.
//
// BlobStore is the interface for opening and writing named blobs.
// Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - LocalStore: local file system, reads through a read-only mmap
//   - MemoryStore: in-process map, for tests
//   - s3.Store: Amazon S3 with range reads and managed uploads
//   - minio.Store: MinIO and other S3-compatible services
//
// # Custom Implementations
//
//	type BlobStore interface {
//	    Open(ctx, name) (Blob, error)
//	    Put(ctx, name, data) error
//	}
package blobstore
