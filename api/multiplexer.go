// Package api defines public API contracts for plugin-posix.
package api

import "time"

// Ready holds the descriptors reported ready by one Select call. Each list
// is an order-preserving subsequence of the corresponding input.
type Ready struct {
	Read   []int
	Write  []int
	Except []int
}

// Lists returns the three lists in the fixed (read, write, except) order.
func (r Ready) Lists() [][]int {
	return [][]int{r.Read, r.Write, r.Except}
}

// Empty reports whether nothing was ready.
func (r Ready) Empty() bool {
	return len(r.Read) == 0 && len(r.Write) == 0 && len(r.Except) == 0
}

// Multiplexer waits for readiness. A nil timeout blocks indefinitely.
type Multiplexer interface {
	Select(r, w, e []int, timeout *time.Duration) (Ready, error)
}
