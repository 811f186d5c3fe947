// Package output serializes clustering results.
//
// Medoids and labels are written as one integer per line. An optional run
// summary bundles both with the run statistics as JSON.
package output

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/hupe1980/kmedoids/blobstore"
	"github.com/hupe1980/kmedoids/codec"
	"golang.org/x/sync/errgroup"
)

// Ints renders values one per line.
func Ints(values []int) []byte {
	buf := make([]byte, 0, len(values)*4)
	for _, v := range values {
		buf = strconv.AppendInt(buf, int64(v), 10)
		buf = append(buf, '\n')
	}
	return buf
}

// Summary describes a finished run.
type Summary struct {
	N          int     `json:"n"`
	K          int     `json:"k"`
	Workers    int     `json:"workers"`
	Seed       uint64  `json:"seed"`
	Init       string  `json:"init"`
	Converged  bool    `json:"converged"`
	Iterations int     `json:"iterations"`
	Cost       float64 `json:"cost"`
	Elapsed    string  `json:"elapsed"`
	Medoids    []int   `json:"medoids"`
	Labels     []int   `json:"labels,omitempty"`
	Codec      string  `json:"codec"`
}

// SetElapsed stores d in a human-readable form.
func (s *Summary) SetElapsed(d time.Duration) {
	s.Elapsed = d.Round(time.Microsecond).String()
}

// EncodeSummary renders s as indented JSON with c (codec.Default if nil).
func EncodeSummary(c codec.Codec, s Summary) ([]byte, error) {
	if c == nil {
		c = codec.Default
	}
	s.Codec = c.Name()
	b, err := c.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("output: encode summary: %w", err)
	}
	return append(b, '\n'), nil
}

// DecodeSummary parses a summary written by EncodeSummary.
func DecodeSummary(data []byte) (Summary, error) {
	var s Summary
	if err := codec.Default.Unmarshal(data, &s); err != nil {
		return Summary{}, fmt.Errorf("output: decode summary: %w", err)
	}
	return s, nil
}

// Target is one blob to write.
type Target struct {
	Store blobstore.BlobStore
	Name  string
	Data  []byte
}

// WriteAll writes every target concurrently and returns the first error.
// Targets with an empty Name are skipped.
func WriteAll(ctx context.Context, targets ...Target) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, t := range targets {
		if t.Name == "" {
			continue
		}
		g.Go(func() error {
			if err := t.Store.Put(ctx, t.Name, t.Data); err != nil {
				return fmt.Errorf("output: write %s: %w", t.Name, err)
			}
			return nil
		})
	}
	return g.Wait()
}
