package shard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundRobinTenAcrossThree(t *testing.T) {
	// Ten vertices over three workers cover {0..9} exactly once.
	seen := map[int]int{}
	sizes := []int{}
	for w := 0; w < 3; w++ {
		ws, err := RoundRobin(10, w, 3, 1.0)
		require.NoError(t, err)
		sizes = append(sizes, len(ws.VertexIDs))
		for _, id := range ws.VertexIDs {
			seen[id]++
		}
	}
	require.Len(t, seen, 10)
	for id := 0; id < 10; id++ {
		assert.Equal(t, 1, seen[id], "vertex %d must be assigned exactly once", id)
	}
	// Round-robin balance: sizes differ by at most one.
	assert.ElementsMatch(t, []int{4, 3, 3}, sizes)
}

func TestRoundRobinCompleteness(t *testing.T) {
	cases := []struct{ total, workers int }{
		{0, 1}, {1, 1}, {1, 5}, {7, 2}, {7, 7}, {7, 10}, {100, 3}, {100, 101},
	}
	for _, tc := range cases {
		seen := map[int]int{}
		for w := 0; w < tc.workers; w++ {
			ws, err := RoundRobin(tc.total, w, tc.workers, 1.0)
			require.NoError(t, err)
			for _, id := range ws.VertexIDs {
				require.GreaterOrEqual(t, id, 0)
				require.Less(t, id, tc.total)
				seen[id]++
			}
		}
		assert.Len(t, seen, tc.total, "total=%d workers=%d", tc.total, tc.workers)
		for id, n := range seen {
			assert.Equal(t, 1, n, "vertex %d total=%d workers=%d", id, tc.total, tc.workers)
		}
	}
}

func TestRoundRobinIndependence(t *testing.T) {
	// Recomputing one worker's shard in isolation matches computing all.
	first, err := RoundRobin(53, 4, 7, 1.0)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := RoundRobin(53, 4, 7, 1.0)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestRoundRobinOrdered(t *testing.T) {
	ws, err := RoundRobin(20, 1, 3, 1.0)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 4, 7, 10, 13, 16, 19}, ws.VertexIDs)
}

func TestRoundRobinInvalidRequests(t *testing.T) {
	cases := []struct{ total, idx, count int }{
		{10, 0, 0},
		{10, 0, -1},
		{10, -1, 3},
		{10, 3, 3},
		{10, 7, 3},
		{-1, 0, 1},
	}
	for _, tc := range cases {
		_, err := RoundRobin(tc.total, tc.idx, tc.count, 1.0)
		var invalid *InvalidShardRequestError
		require.ErrorAs(t, err, &invalid, "total=%d idx=%d count=%d", tc.total, tc.idx, tc.count)
	}
}

func TestRoundRobinScale(t *testing.T) {
	ws, err := RoundRobin(5, 0, 1, 2.5)
	require.NoError(t, err)
	assert.Equal(t, 2.5, ws.Scale)
	assert.False(t, ws.Explicit)
}

func TestExplicit(t *testing.T) {
	ids := []int{7, 2, 9}
	ws := Explicit(ids, 1.5)
	assert.Equal(t, []int{7, 2, 9}, ws.VertexIDs, "order is preserved as given")
	assert.True(t, ws.Explicit)
	assert.Equal(t, 1.5, ws.Scale)

	// The shard owns its copy of the id list.
	ids[0] = 0
	assert.Equal(t, 7, ws.VertexIDs[0])
}
