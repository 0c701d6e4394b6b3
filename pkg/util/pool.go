package util

import "runtime"

// OptimalPoolSize returns the worker count for CPU-bound parallel work.
//
// Formula: min(max(runtime.NumCPU() * 2, 4), 32). The 2x factor keeps CPUs
// busy while goroutines are blocked inside CGO parse calls; the cap bounds
// parser memory on large machines.
func OptimalPoolSize() int {
	size := runtime.NumCPU() * 2
	if size < 4 {
		size = 4
	}
	if size > 32 {
		size = 32
	}
	return size
}
