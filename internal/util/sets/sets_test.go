package sets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet(t *testing.T) {
	s := New("scss", "css")
	s.Add("less")
	s.Add("css")

	assert.True(t, s.Has("less"))
	assert.Len(t, s, 3)

	s.Delete("css")
	assert.False(t, s.Has("css"))
	assert.Equal(t, []string{"less", "scss"}, Sorted(s))
}
