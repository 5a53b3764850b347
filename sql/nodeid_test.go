package sql

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIDAllocator(t *testing.T) {
	require := require.New(t)

	alloc := NewIDAllocator(5)
	require.Equal(NodeID(5), alloc.Next())
	require.Equal(NodeID(6), alloc.Next())
	require.Equal(NodeID(7), alloc.Next())
}

func TestIDAllocatorConcurrent(t *testing.T) {
	require := require.New(t)

	const (
		workers     = 8
		allocations = 100
	)

	alloc := NewIDAllocator(0)

	var (
		mu  sync.Mutex
		ids = make(map[NodeID]struct{})
		wg  sync.WaitGroup
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < allocations; j++ {
				id := alloc.Next()
				mu.Lock()
				ids[id] = struct{}{}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Len(ids, workers*allocations)
}
