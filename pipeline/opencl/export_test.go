//go:build cltest

package opencl

// these functions are only exported when running tests

var RoundUpKernelSize = roundUpKernelSize
