package main

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"path/filepath"
	"strings"
	"sync"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/hupe1980/kmedoids/blobstore"
	minioblob "github.com/hupe1980/kmedoids/blobstore/minio"
	s3store "github.com/hupe1980/kmedoids/blobstore/s3"
	"github.com/hupe1980/kmedoids/config"
)

// location is a parsed input or output reference.
type location struct {
	scheme string // "", "s3", "minio" or "-"
	bucket string
	key    string
}

func parseLocation(raw string) (location, error) {
	if raw == "-" {
		return location{scheme: "-"}, nil
	}
	if !strings.Contains(raw, "://") {
		return location{key: raw}, nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return location{}, fmt.Errorf("invalid location %q: %w", raw, err)
	}
	key := strings.TrimPrefix(u.Path, "/")
	switch u.Scheme {
	case "s3", "minio":
		if u.Host == "" || key == "" {
			return location{}, fmt.Errorf("invalid location %q: want %s://bucket/key", raw, u.Scheme)
		}
		return location{scheme: u.Scheme, bucket: u.Host, key: key}, nil
	case "file":
		return location{key: u.Path}, nil
	default:
		return location{}, fmt.Errorf("unsupported scheme %q in %q", u.Scheme, raw)
	}
}

// resolver maps locations to blob stores, creating remote clients lazily and
// at most once per run.
type resolver struct {
	minio  config.MinIOConfig
	stdout *writerStore

	mu       sync.Mutex
	s3Client *s3.Client
}

func newResolver(minio config.MinIOConfig, stdout io.Writer) *resolver {
	return &resolver{minio: minio, stdout: &writerStore{w: stdout}}
}

// resolve returns the store holding raw and the blob name inside it.
func (r *resolver) resolve(ctx context.Context, raw string) (blobstore.BlobStore, string, error) {
	loc, err := parseLocation(raw)
	if err != nil {
		return nil, "", err
	}

	switch loc.scheme {
	case "-":
		return r.stdout, "-", nil
	case "s3":
		client, err := r.s3(ctx)
		if err != nil {
			return nil, "", err
		}
		return s3store.NewStore(client, loc.bucket, path.Dir(loc.key)), path.Base(loc.key), nil
	case "minio":
		if r.minio.Endpoint == "" {
			return nil, "", fmt.Errorf("%s: minio endpoint is not configured", raw)
		}
		store, err := minioblob.Dial(r.minio.Endpoint, minioblob.Credentials{
			AccessKey: r.minio.AccessKey,
			SecretKey: r.minio.SecretKey,
			Secure:    r.minio.Secure,
		}, loc.bucket, path.Dir(loc.key))
		if err != nil {
			return nil, "", err
		}
		return store, path.Base(loc.key), nil
	default:
		return blobstore.NewLocalStore(filepath.Dir(loc.key)), filepath.Base(loc.key), nil
	}
}

func (r *resolver) s3(ctx context.Context) (*s3.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.s3Client == nil {
		cfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("load aws config: %w", err)
		}
		r.s3Client = s3.NewFromConfig(cfg)
	}
	return r.s3Client, nil
}

// writerStore is a write-only store that copies every Put to w. Concurrent
// Puts are serialized so outputs do not interleave.
type writerStore struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *writerStore) Open(context.Context, string) (blobstore.Blob, error) {
	return nil, fmt.Errorf("standard output cannot be read")
}

func (s *writerStore) Put(_ context.Context, _ string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.w.Write(data)
	return err
}
