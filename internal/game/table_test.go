package game

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_FirstWriterWins(t *testing.T) {
	table := NewTable()

	var wg sync.WaitGroup
	results := make([]*Room, 20)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = table.getOrCreate("ABCD", func() *Room {
				return newRoom("ABCD", DefaultWords, "admin", time.Now())
			})
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		assert.Same(t, results[0], r)
	}
	assert.Equal(t, 1, table.Len())
}

func TestTable_RemoveOnlySameRoom(t *testing.T) {
	table := NewTable()
	old, created := table.getOrCreate("ABCD", func() *Room { return newRoom("ABCD", nil, "a", time.Now()) })
	require.True(t, created)
	require.True(t, table.remove("ABCD", old))

	fresh, created := table.getOrCreate("ABCD", func() *Room { return newRoom("ABCD", nil, "b", time.Now()) })
	require.True(t, created)

	assert.False(t, table.remove("ABCD", old))
	got, ok := table.get("ABCD")
	require.True(t, ok)
	assert.Same(t, fresh, got)
	assert.Equal(t, []string{"ABCD"}, table.codes())
}
