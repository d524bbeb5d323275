package analysis

import (
	"sync"
)

// runPool starts exactly n workers on work. Wait on the returned group for
// them to finish once work is closed.
func runPool(n int, work <-chan workItem, failures chan<- ItemError, cfg Config) *sync.WaitGroup {
	pool := &sync.WaitGroup{}
	for i := 0; i < n; i++ {
		pool.Add(1)
		go func() {
			defer pool.Done()
			worker(work, failures, cfg.Thresholds)
		}()
	}
	return pool
}
