package libutil_test

import (
	"testing"

	"pingpong-gl/libutil"

	"github.com/stretchr/testify/assert"
)

type recorder struct {
	name string
	log  *[]string
}

func (r recorder) Delete() {
	*r.log = append(*r.log, r.name)
}

func TestDeleteAllReverse(t *testing.T) {
	var log []string
	libutil.DeleteAll([]libutil.Deleter{
		recorder{"texture", &log},
		nil,
		recorder{"framebuffer", &log},
	})
	assert.Equal(t, []string{"framebuffer", "texture"}, log)
}

func TestClampI(t *testing.T) {
	assert.Equal(t, 0, libutil.ClampI(-3, 0, 4))
	assert.Equal(t, 2, libutil.ClampI(2, 0, 4))
	assert.Equal(t, 4, libutil.ClampI(9, 0, 4))
}
