package worker

import (
	"context"
	"sync"
)

// Pool runs batch analyses on a fixed set of workers. Results come back
// in completion order; AnalyzeJob carries an index so the batch layer can
// restore input order afterwards.
type Pool struct {
	workers   int
	jobs      chan *AnalyzeJob
	results   chan *AnalyzeResult
	wg        sync.WaitGroup
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

// NewPool creates a pool with the given number of workers
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Pool{
		workers: workers,
		jobs:    make(chan *AnalyzeJob, workers*2), // Buffered to prevent blocking
		results: make(chan *AnalyzeResult, workers*2),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start starts the workers
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case job, ok := <-p.jobs:
			if !ok {
				return
			}
			result := job.Execute(p.ctx)
			select {
			case p.results <- result:
			case <-p.ctx.Done():
				return
			}
		}
	}
}

// Submit queues one analysis. After Shutdown the job is silently dropped.
func (p *Pool) Submit(job *AnalyzeJob) {
	select {
	case <-p.ctx.Done():
		return
	case p.jobs <- job:
	}
}

// Wait blocks until all submitted analyses finish and returns their
// results in completion order.
func (p *Pool) Wait() []*AnalyzeResult {
	close(p.jobs)

	go func() {
		p.wg.Wait()
		p.closeResults()
	}()

	var results []*AnalyzeResult
	for result := range p.results {
		results = append(results, result)
	}

	return results
}

// Shutdown stops the pool immediately, abandoning queued analyses
func (p *Pool) Shutdown() {
	p.cancel()
	p.wg.Wait()
	p.closeResults()
}

func (p *Pool) closeResults() {
	p.closeOnce.Do(func() {
		close(p.results)
	})
}
