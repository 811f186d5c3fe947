package integration_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/hupe1980/kmedoids"
	"github.com/hupe1980/kmedoids/blobstore"
	"github.com/hupe1980/kmedoids/codec"
	"github.com/hupe1980/kmedoids/matrix"
	"github.com/hupe1980/kmedoids/output"
	"github.com/hupe1980/kmedoids/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeMatrix(t *testing.T, store blobstore.BlobStore, name string, dm *matrix.Dense, form matrix.Form, c matrix.Compression) {
	t.Helper()
	var text bytes.Buffer
	require.NoError(t, matrix.Write(&text, dm, form, ","))

	var blob bytes.Buffer
	require.NoError(t, matrix.Compress(&blob, text.Bytes(), c))
	require.NoError(t, store.Put(context.Background(), name, blob.Bytes()))
}

func parseInts(t *testing.T, data []byte) []int {
	t.Helper()
	var out []int
	for _, line := range strings.Fields(string(data)) {
		v, err := strconv.Atoi(line)
		require.NoError(t, err)
		out = append(out, v)
	}
	return out
}

func TestEndToEnd_LocalStore(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	store := blobstore.NewLocalStore(root)

	rng := testutil.NewRNG(11)
	rows := testutil.DistanceRows(rng.ClusteredPoints(120, 3, 4, 0.02), testutil.Euclidean)
	dm := testutil.Matrix(rows)

	cases := []struct {
		name string
		form matrix.Form
		comp matrix.Compression
	}{
		{"sym.csv", matrix.FormFull, matrix.CompressionNone},
		{"triu.csv.zst", matrix.FormUpper, matrix.CompressionZSTD},
		{"tril.csv.lz4", matrix.FormLower, matrix.CompressionLZ4},
	}

	var want *kmedoids.Result
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			writeMatrix(t, store, tc.name, dm, tc.form, tc.comp)

			loaded, err := matrix.Load(ctx, store, tc.name, matrix.ReadOptions{Form: tc.form, Delimiter: ","})
			require.NoError(t, err)
			require.Equal(t, dm.Len(), loaded.Len())

			res, err := kmedoids.Cluster(ctx, loaded, 4, kmedoids.WithWorkers(3), kmedoids.WithSeed(5))
			require.NoError(t, err)
			assert.True(t, res.Converged)
			assert.InDelta(t, testutil.Cost(rows, res.Medoids, res.Labels), res.Cost, 1e-6)

			if want == nil {
				want = res
			} else {
				assert.Equal(t, want.Medoids, res.Medoids)
				assert.Equal(t, want.Labels, res.Labels)
			}
		})
	}
}

func TestEndToEnd_Outputs(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	store := blobstore.NewLocalStore(root)

	rng := testutil.NewRNG(3)
	rows := testutil.DistanceRows(rng.SkewedPoints(200, 5, 1.2, 50), testutil.Manhattan)
	dm := testutil.Matrix(rows)

	res, err := kmedoids.Cluster(ctx, dm, 5, kmedoids.WithWorkers(8), kmedoids.WithSeed(9))
	require.NoError(t, err)

	s := output.Summary{
		N:          dm.Len(),
		K:          5,
		Workers:    8,
		Seed:       9,
		Init:       kmedoids.InitFarthestPoint.String(),
		Converged:  res.Converged,
		Iterations: res.Iterations,
		Cost:       res.Cost,
		Medoids:    res.Medoids,
	}
	summary, err := output.EncodeSummary(codec.Default, s)
	require.NoError(t, err)

	require.NoError(t, output.WriteAll(ctx,
		output.Target{Store: store, Name: "out/medoids.txt", Data: output.Ints(res.Medoids)},
		output.Target{Store: store, Name: "out/labels.txt", Data: output.Ints(res.Labels)},
		output.Target{Store: store, Name: "out/summary.json", Data: summary},
	))

	medoids, err := os.ReadFile(filepath.Join(root, "out", "medoids.txt"))
	require.NoError(t, err)
	assert.Equal(t, res.Medoids, parseInts(t, medoids))

	labels, err := os.ReadFile(filepath.Join(root, "out", "labels.txt"))
	require.NoError(t, err)
	got := parseInts(t, labels)
	require.Len(t, got, dm.Len())
	for c, m := range res.Medoids {
		assert.Equal(t, c, got[m], "medoid %d must label itself", m)
	}

	raw, err := os.ReadFile(filepath.Join(root, "out", "summary.json"))
	require.NoError(t, err)
	decoded, err := output.DecodeSummary(raw)
	require.NoError(t, err)
	assert.Equal(t, res.Medoids, decoded.Medoids)
	assert.Equal(t, res.Iterations, decoded.Iterations)
}

func TestEndToEnd_WorkerCountInvariance(t *testing.T) {
	ctx := context.Background()
	rng := testutil.NewRNG(21)
	dm := testutil.Matrix(testutil.DistanceRows(rng.UniformPoints(150, 4), testutil.Euclidean))

	base, err := kmedoids.Cluster(ctx, dm, 7, kmedoids.WithWorkers(1), kmedoids.WithInit(kmedoids.InitRandom), kmedoids.WithSeed(1))
	require.NoError(t, err)

	for _, workers := range []int{2, 7, 13, 64} {
		res, err := kmedoids.Cluster(ctx, dm, 7, kmedoids.WithWorkers(workers), kmedoids.WithInit(kmedoids.InitRandom), kmedoids.WithSeed(1))
		require.NoError(t, err)
		assert.Equal(t, base.Medoids, res.Medoids, "workers=%d", workers)
		assert.Equal(t, base.Labels, res.Labels, "workers=%d", workers)
		assert.Equal(t, base.Iterations, res.Iterations, "workers=%d", workers)
	}
}
