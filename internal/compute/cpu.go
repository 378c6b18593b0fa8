package compute

import (
	"runtime"
	"sync"
)

type CPU struct {
	workers int
}

// NewCPU returns a backend with the given worker count; workers <= 0 means
// one worker per logical CPU.
func NewCPU(workers int) *CPU {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &CPU{workers: workers}
}

func (c *CPU) Name() string { return "cpu" }
func (c *CPU) Workers() int { return c.workers }

// ParallelFor executes fn over [0, n) split into at most Workers() chunks of at
// least minChunk items each.
func (c *CPU) ParallelFor(n, minChunk int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	if minChunk < 1 {
		minChunk = 1
	}
	if n <= minChunk || c.workers <= 1 {
		fn(0, n)
		return
	}

	workers := c.workers
	if n/minChunk < workers {
		workers = n / minChunk
	}
	if workers < 1 {
		workers = 1
	}

	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunkSize {
		end := start + chunkSize
		if end > n {
			end = n
		}

		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}

	wg.Wait()
}
