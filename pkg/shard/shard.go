// Package shard deterministically partitions a frame's vertex set into
// disjoint units of work so joint generation can run across independent
// workers without coordination.
//
// Assignment policy is round-robin: vertex i belongs to worker
// i mod workerCount. Every vertex lands on exactly one worker, membership
// is a pure function of the inputs, and shard sizes differ by at most one
// regardless of how workerCount compares to the vertex count. Remainders
// are therefore spread round-robin, not in contiguous blocks.
package shard

import "fmt"

// WorkShard is an ordered subset of vertex ids assigned to one worker,
// plus the uniform joint scale for the run. It is always recomputed, never
// persisted: the same inputs yield the same shard.
type WorkShard struct {
	WorkerIndex int
	WorkerCount int
	VertexIDs   []int
	Scale       float64

	// Explicit marks an ad-hoc allow-list shard that bypassed round-robin.
	Explicit bool
}

// InvalidShardRequestError reports a shard request with an out-of-range
// worker index or a non-positive worker count.
type InvalidShardRequestError struct {
	TotalVertexCount int
	WorkerIndex      int
	WorkerCount      int
}

func (e *InvalidShardRequestError) Error() string {
	return fmt.Sprintf("shard: invalid request: worker %d of %d over %d vertices",
		e.WorkerIndex, e.WorkerCount, e.TotalVertexCount)
}

// RoundRobin computes the shard for one worker over a frame of
// totalVertexCount vertices. It fails with InvalidShardRequestError when
// workerIndex is outside [0, workerCount) or workerCount is not positive.
func RoundRobin(totalVertexCount, workerIndex, workerCount int, scale float64) (WorkShard, error) {
	if workerCount <= 0 || workerIndex < 0 || workerIndex >= workerCount || totalVertexCount < 0 {
		return WorkShard{}, &InvalidShardRequestError{
			TotalVertexCount: totalVertexCount,
			WorkerIndex:      workerIndex,
			WorkerCount:      workerCount,
		}
	}
	ws := WorkShard{
		WorkerIndex: workerIndex,
		WorkerCount: workerCount,
		Scale:       scale,
	}
	for i := workerIndex; i < totalVertexCount; i += workerCount {
		ws.VertexIDs = append(ws.VertexIDs, i)
	}
	return ws, nil
}

// Explicit builds an allow-list shard from specific vertex ids, for ad-hoc
// re-runs of failed vertices. Order is preserved as given.
func Explicit(vertexIDs []int, scale float64) WorkShard {
	ids := make([]int, len(vertexIDs))
	copy(ids, vertexIDs)
	return WorkShard{
		WorkerIndex: 0,
		WorkerCount: 1,
		VertexIDs:   ids,
		Scale:       scale,
		Explicit:    true,
	}
}
