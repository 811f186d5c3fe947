// Package minio provides a BlobStore implementation using the MinIO client.
//
// Works with MinIO and other S3-compatible systems (Ceph, SeaweedFS, Garage)
// without pulling in the AWS SDK.
//
// # Basic Usage
//
//	store, err := minioblob.Dial("localhost:9000", minioblob.Credentials{
//	    AccessKey: "minioadmin",
//	    SecretKey: "minioadmin",
//	}, "my-bucket", "runs/")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	m, err := matrix.Load(ctx, store, "dist.txt", matrix.ReadOptions{})
package minio
