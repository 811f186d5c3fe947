// Package conv provides checked integer conversions for point indices.
//
// Cluster membership is kept in 32-bit roaring bitmaps, so every point index
// has to fit a uint32. Inputs are checked once up front; hot loops then use
// direct casts.
package conv
