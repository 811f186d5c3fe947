//go:build !linux

package cpu

import "runtime"

func available() int {
	return runtime.NumCPU()
}
