package libgl

import (
	"fmt"
	"unsafe"
)

// Pointer returns the address handed to GL for client memory: the first
// element of a slice, or a raw pointer as is. Empty slices yield nil.
func Pointer(data any) unsafe.Pointer {
	switch d := data.(type) {
	case nil:
		return nil
	case unsafe.Pointer:
		return d
	case *byte:
		return unsafe.Pointer(d)
	case []byte:
		return sliceData(d)
	case []uint16:
		return sliceData(d)
	case []uint32:
		return sliceData(d)
	case []float32:
		return sliceData(d)
	}
	panic(fmt.Errorf("cannot pass %T to GL; must be a numeric slice or a pointer", data))
}

func sliceData[T any](s []T) unsafe.Pointer {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Pointer(unsafe.SliceData(s))
}

// byteSize is the size in bytes of the data Pointer addresses, or -1 for raw pointers.
func byteSize(data any) int {
	switch d := data.(type) {
	case []byte:
		return len(d)
	case []uint16:
		return len(d) * 2
	case []uint32:
		return len(d) * 4
	case []float32:
		return len(d) * 4
	}
	return -1
}
