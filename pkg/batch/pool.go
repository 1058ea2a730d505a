package batch

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Pool runs a batch of Query values across a fixed number of worker
// goroutines.
type Pool struct {
	NumWorkers int
	Results    *Table

	checked   atomic.Int64
	completed atomic.Int64
}

// NewPool creates a pool with the given number of workers. A non-positive
// count defaults to runtime.NumCPU.
func NewPool(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &Pool{NumWorkers: numWorkers, Results: NewTable()}
}

// Stats returns the number of queries checked and completed so far.
func (p *Pool) Stats() (checked, completed int64) {
	return p.checked.Load(), p.completed.Load()
}

// Seed preloads results and a completed count recovered from a prior
// Checkpoint, so a resumed Run's progress log and final checkpoint account
// for work done before the restart. Callers pass only the remaining,
// not-yet-processed queries to Run after seeding.
func (p *Pool) Seed(results []Result, completed int) {
	for _, r := range results {
		p.Results.Add(r)
	}
	p.completed.Store(int64(completed))
}

// Run distributes queries across the pool's workers and blocks until all
// complete. It logs periodic progress at info level. If checkpointPath is
// non-empty, it also writes a resumable Checkpoint there on the same
// 5-second tick, so a killed run can pick up where it left off via
// LoadCheckpoint.
func (p *Pool) Run(log zerolog.Logger, queries []Query, checkpointPath string) {
	total := int64(len(queries)) + p.completed.Load()

	ch := make(chan Query, len(queries))
	for _, q := range queries {
		ch <- q
	}
	close(ch)

	done := make(chan struct{})
	start := time.Now()
	go func() {
		ticker := time.NewTicker(5 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				comp := p.completed.Load()
				log.Info().
					Int64("completed", comp).
					Int64("total", total).
					Dur("elapsed", time.Since(start).Round(time.Second)).
					Msg("batch progress")
				if checkpointPath != "" {
					ckpt := &Checkpoint{Results: p.Results.Results(), Completed: int(comp)}
					if err := SaveCheckpoint(checkpointPath, ckpt); err != nil {
						log.Error().Err(err).Str("path", checkpointPath).Msg("checkpoint save failed")
					}
				}
			}
		}
	}()

	var wg sync.WaitGroup
	for i := 0; i < p.NumWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for q := range ch {
				p.checked.Add(1)
				p.Results.Add(q.run())
				p.completed.Add(1)
			}
		}()
	}
	wg.Wait()
	close(done)

	log.Info().
		Int64("completed", p.completed.Load()).
		Int64("total", total).
		Dur("elapsed", time.Since(start).Round(time.Second)).
		Msg("batch done")

	if checkpointPath != "" {
		ckpt := &Checkpoint{Results: p.Results.Results(), Completed: int(p.completed.Load())}
		if err := SaveCheckpoint(checkpointPath, ckpt); err != nil {
			log.Error().Err(err).Str("path", checkpointPath).Msg("final checkpoint save failed")
		}
	}
}
