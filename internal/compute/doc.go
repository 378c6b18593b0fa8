// Package compute provides the CPU fork-join primitive used to fill frames.
//
// Work over a range [0, n) is split into contiguous chunks, one per worker:
//
//	cpu := compute.NewCPU(0) // 0 selects runtime.NumCPU()
//	cpu.ParallelFor(height, 1, func(start, end int) {
//		for row := start; row < end; row++ {
//			// write only rows in [start, end)
//		}
//	})
//
// Chunks never overlap, so callers that write only inside their own chunk
// need no further synchronization. ParallelFor returns after every chunk is done.
package compute
