// Package cpu reports the parallelism available to the process.
package cpu

import "runtime"

// Available returns the number of CPUs the process may run on. On Linux this
// is the size of the scheduler affinity mask, which honours taskset and
// cgroup cpusets; elsewhere it is runtime.NumCPU. The result is at least 1.
func Available() int {
	n := available()
	if n < 1 {
		n = runtime.NumCPU()
	}
	if n < 1 {
		n = 1
	}
	return n
}

// Workers returns the worker count to use for a request of n workers.
// Non-positive requests fall back to Available.
func Workers(n int) int {
	if n > 0 {
		return n
	}
	return Available()
}
