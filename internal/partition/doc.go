// Package partition decides how parallel work is split.
//
// Two shapes are supported:
//
//   - Ranges splits an index space [0,n) into contiguous, near-equal chunks.
//     The first n%parts chunks are one element longer than the rest.
//   - Allocate hands a fixed worker budget to clusters: every cluster gets one
//     worker, the surplus is shared in proportion to cluster size and the
//     rounding remainder goes to the largest clusters first.
package partition
