// Package matrix provides the dense, symmetric distance matrix consumed by
// the clustering engine, together with validation and loading from
// delimited text.
//
// # Forms
//
// Text input comes in one of three forms:
//
//   - FormFull: every row holds N values.
//   - FormUpper: row i holds the values for columns i..N-1, either as a
//     full-width row (the lower triangle is ignored) or as a ragged row of
//     N-i values.
//   - FormLower: row i holds the values for columns 0..i, either full-width
//     (the upper triangle is ignored) or ragged with i+1 values.
//
// Triangular input is mirrored into the symmetric form on load.
//
// # Compression
//
// Input compressed with zstd or LZ4 (frame format) is detected by its magic
// bytes and decompressed transparently.
//
// # Usage
//
//	m, err := matrix.Read(r, matrix.ReadOptions{Form: matrix.FormUpper, Delimiter: ","})
//	if err != nil { ... }
//	if err := m.Validate(); err != nil { ... }
package matrix
