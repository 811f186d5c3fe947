// Package medoid implements the phases of k-medoids clustering over a
// precomputed distance matrix.
//
// Initialization is sequential and driven by a caller-supplied random
// generator. Assignment and medoid update are split into independent tasks
// and executed on a shared worker pool; every task reads the matrix and
// returns a value, nothing shared is mutated. Ties are always broken towards
// the lowest index so results do not depend on the number of workers.
package medoid
