package lnutils

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSyncMap(t *testing.T) {
	t.Parallel()

	var m SyncMap[int, string]

	_, ok := m.Load(1)
	require.False(t, ok)
	require.Zero(t, m.Len())

	value, loaded := m.LoadOrStore(1, "one")
	require.False(t, loaded)
	require.Equal(t, "one", value)

	value, loaded = m.LoadOrStore(1, "uno")
	require.True(t, loaded)
	require.Equal(t, "one", value)

	value, ok = m.Load(1)
	require.True(t, ok)
	require.Equal(t, "one", value)

	m.LoadOrStore(2, "two")
	m.LoadOrStore(3, "three")
	require.Equal(t, 3, m.Len())

	// Range stops once the visitor returns false.
	var visited int
	m.Range(func(int, string) bool {
		visited++
		return false
	})
	require.Equal(t, 1, visited)
}

// TestSyncMapConcurrentStore checks that concurrent writers agree on a
// single stored value.
func TestSyncMapConcurrentStore(t *testing.T) {
	t.Parallel()

	const numWriters = 16

	var (
		m       SyncMap[string, int]
		wg      sync.WaitGroup
		results = make([]int, numWriters)
	)
	for i := 0; i < numWriters; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			results[i], _ = m.LoadOrStore("key", i)
		}(i)
	}
	wg.Wait()

	stored, ok := m.Load("key")
	require.True(t, ok)
	for _, r := range results {
		require.Equal(t, stored, r)
	}
}
