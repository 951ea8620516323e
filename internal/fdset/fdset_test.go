//go:build unix

package fdset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCapacity(t *testing.T) {
	// FD_SETSIZE is 1024 on every supported platform.
	assert.Equal(t, 1024, Capacity)
	assert.True(t, Valid(0))
	assert.True(t, Valid(Capacity-1))
	assert.False(t, Valid(Capacity))
	assert.False(t, Valid(-1))
}

func TestSetMembership(t *testing.T) {
	var s Set
	s.Add(3)
	s.Add(64)
	s.Add(1023)
	s.Add(5000) // ignored
	assert.True(t, s.Has(3))
	assert.True(t, s.Has(64))
	assert.True(t, s.Has(1023))
	assert.False(t, s.Has(4))
	assert.False(t, s.Has(5000))

	// Fill starts from an empty set
	s.Fill([]int{64})
	assert.True(t, s.Has(64))
	assert.False(t, s.Has(3))
	assert.False(t, s.Has(1023))
}

func TestFilterPreservesInputOrder(t *testing.T) {
	var s Set
	s.Fill([]int{9, 7})

	assert.Equal(t, []int{9, 7}, s.Filter([]int{9, 2, 7}))
	assert.Equal(t, []int{7, 9}, s.Filter([]int{7, 5, 9}))
	// duplicates share one bit but are emitted once per input occurrence
	assert.Equal(t, []int{7, 7}, s.Filter([]int{7, 7}))

	empty := s.Filter(nil)
	assert.NotNil(t, empty)
	assert.Len(t, empty, 0)
}

func TestWidth(t *testing.T) {
	assert.Equal(t, 0, Width(nil, []int{}, nil))
	assert.Equal(t, 10, Width([]int{3}, []int{9, 1}, nil))
	assert.Equal(t, 1, Width(nil, nil, []int{0}))
}
