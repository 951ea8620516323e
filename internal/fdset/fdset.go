//go:build unix

// Package fdset is a fixed-capacity descriptor bit-set over unix.FdSet.
//
// Readiness results are decoded by walking the caller's ordered input and
// testing membership here, never by enumerating the bits.
package fdset

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// Capacity is the number of descriptors a Set can hold (FD_SETSIZE).
const Capacity = int(unsafe.Sizeof(unix.FdSet{})) * 8

// Set is one select(2) interest set.
type Set struct {
	raw unix.FdSet
}

// Valid reports whether fd fits in a Set.
func Valid(fd int) bool {
	return fd >= 0 && fd < Capacity
}

// Add marks fd. Callers check Valid first; out-of-range descriptors are ignored.
func (s *Set) Add(fd int) {
	if Valid(fd) {
		s.raw.Set(fd)
	}
}

// Has reports whether fd is marked.
func (s *Set) Has(fd int) bool {
	return Valid(fd) && s.raw.IsSet(fd)
}

// Raw exposes the OS representation for the syscall.
func (s *Set) Raw() *unix.FdSet {
	return &s.raw
}

// Fill resets s and marks every descriptor in fds.
func (s *Set) Fill(fds []int) {
	s.raw.Zero()
	for _, fd := range fds {
		s.Add(fd)
	}
}

// Filter returns the members of fds that are marked in s, in input order.
// The result is never nil.
func (s *Set) Filter(fds []int) []int {
	out := make([]int, 0, len(fds))
	for _, fd := range fds {
		if s.Has(fd) {
			out = append(out, fd)
		}
	}
	return out
}

// Width returns the highest descriptor in any of the lists plus one, or 0
// when every list is empty.
func Width(lists ...[]int) int {
	n := 0
	for _, l := range lists {
		for _, fd := range l {
			if fd+1 > n {
				n = fd + 1
			}
		}
	}
	return n
}
