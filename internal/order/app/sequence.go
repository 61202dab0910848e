package app

import "sync/atomic"

// FirstOrderID is the number given to the first order of a process.
const FirstOrderID = 1001

// Sequence hands out strictly increasing order ids. Ids are never reused.
type Sequence struct {
	next atomic.Int64
}

// NewSequence starts at first, or FirstOrderID when first is not positive.
func NewSequence(first int) *Sequence {
	if first <= 0 {
		first = FirstOrderID
	}
	s := &Sequence{}
	s.next.Store(int64(first))
	return s
}

func (s *Sequence) Next() int {
	return int(s.next.Add(1) - 1)
}

// Peek returns the id the next call to Next will return.
func (s *Sequence) Peek() int {
	return int(s.next.Load())
}
