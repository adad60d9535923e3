package libutil

import (
	"math"
)

const (
	Rad2Deg = float32(180 / math.Pi)
	Deg2Rad = float32(math.Pi / 180)
)

type Deleter interface {
	Delete()
}

// DeleteAll deletes in reverse order of creation.
func DeleteAll(deleters []Deleter) {
	for i := len(deleters) - 1; i >= 0; i-- {
		if deleters[i] != nil {
			deleters[i].Delete()
		}
	}
}

func ClampI(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
