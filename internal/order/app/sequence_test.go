package app

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSequence_StartsAtFirst(t *testing.T) {
	s := NewSequence(0)
	assert.Equal(t, FirstOrderID, s.Peek())
	assert.Equal(t, 1001, s.Next())
	assert.Equal(t, 1002, s.Next())
	assert.Equal(t, 1003, s.Peek())
}

func TestSequence_CustomStart(t *testing.T) {
	s := NewSequence(5000)
	assert.Equal(t, 5000, s.Next())
}

func TestSequence_ConcurrentIDsAreUnique(t *testing.T) {
	s := NewSequence(1)
	const n = 200

	var wg sync.WaitGroup
	ids := make(chan int, n)
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids <- s.Next()
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int]bool, n)
	for id := range ids {
		assert.False(t, seen[id], "id %d handed out twice", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
	assert.Equal(t, n+1, s.Peek())
}
