package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_StringSet_Add_IgnoresDuplicates(t *testing.T) {
	assert := assert.New(t)
	s := NewStringSet()
	s.Add("a")
	s.Add("b")
	s.Add("a")
	assert.Equal([]string{"a", "b"}, s.Elements())
	assert.Equal(2, s.Len())
}

func Test_StringSet_Has_NilReceiver(t *testing.T) {
	assert := assert.New(t)
	var s *StringSet
	assert.False(s.Has("a"))
	assert.Equal(0, s.Len())
	assert.Nil(s.Elements())
}

func Test_StringSetOf_PreservesOrderAndDedups(t *testing.T) {
	assert := assert.New(t)
	s := StringSetOf("x", "y", "x", "z")
	assert.Equal([]string{"x", "y", "z"}, s.Elements())
}

func Test_StringSet_Elements_ReturnsOwnedCopy(t *testing.T) {
	assert := assert.New(t)
	s := StringSetOf("a")
	out := s.Elements()
	out[0] = "mutated"
	assert.Equal([]string{"a"}, s.Elements())
}
