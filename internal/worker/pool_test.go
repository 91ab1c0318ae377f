package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ormolov/sway/internal/model"
)

// countingAnalyzer counts how many analyses actually ran
type countingAnalyzer struct {
	calls int32
}

func (a *countingAnalyzer) AnalyzeText(ctx context.Context, text string) (*model.Analysis, error) {
	atomic.AddInt32(&a.calls, 1)
	return &model.Analysis{}, nil
}

// trackingAnalyzer records the highest number of concurrent analyses
type trackingAnalyzer struct {
	current int32
	peak    int32
}

func (a *trackingAnalyzer) AnalyzeText(ctx context.Context, text string) (*model.Analysis, error) {
	curr := atomic.AddInt32(&a.current, 1)
	for {
		peak := atomic.LoadInt32(&a.peak)
		if curr <= peak || atomic.CompareAndSwapInt32(&a.peak, peak, curr) {
			break
		}
	}
	time.Sleep(10 * time.Millisecond)
	atomic.AddInt32(&a.current, -1)
	return &model.Analysis{}, nil
}

// blockingAnalyzer signals when an analysis starts and then sleeps
type blockingAnalyzer struct {
	started chan struct{}
}

func (a *blockingAnalyzer) AnalyzeText(ctx context.Context, text string) (*model.Analysis, error) {
	close(a.started)
	time.Sleep(200 * time.Millisecond)
	return &model.Analysis{}, nil
}

func TestNewPool_DefaultsToOneWorker(t *testing.T) {
	if p := NewPool(5); p.workers != 5 {
		t.Errorf("Expected 5 workers, got %d", p.workers)
	}
	if p := NewPool(0); p.workers != 1 {
		t.Errorf("Expected 1 worker for 0 input, got %d", p.workers)
	}
	if p := NewPool(-1); p.workers != 1 {
		t.Errorf("Expected 1 worker for negative input, got %d", p.workers)
	}
}

func TestPool_RunsAllJobs(t *testing.T) {
	pool := NewPool(2)
	pool.Start()

	analyzer := &countingAnalyzer{}
	count := 10
	for i := 0; i < count; i++ {
		pool.Submit(&AnalyzeJob{Index: i, Label: "job", Text: "act now", Analyzer: analyzer})
	}

	results := pool.Wait()

	if len(results) != count {
		t.Errorf("Expected %d results, got %d", count, len(results))
	}
	if got := atomic.LoadInt32(&analyzer.calls); got != int32(count) {
		t.Errorf("Expected %d analyses, got %d", count, got)
	}
}

func TestPool_ConcurrencyStaysWithinWorkers(t *testing.T) {
	workers := 4
	pool := NewPool(workers)
	pool.Start()

	analyzer := &trackingAnalyzer{}
	for i := 0; i < 20; i++ {
		pool.Submit(&AnalyzeJob{Index: i, Label: "job", Text: "hurry", Analyzer: analyzer})
	}

	results := pool.Wait()

	if len(results) != 20 {
		t.Fatalf("Expected 20 results, got %d", len(results))
	}
	if peak := atomic.LoadInt32(&analyzer.peak); peak > int32(workers) {
		t.Errorf("Expected at most %d concurrent analyses, got %d", workers, peak)
	}
}

func TestPool_SubmitAfterShutdown(t *testing.T) {
	pool := NewPool(2)
	pool.Start()
	pool.Shutdown()

	// Submit after shutdown must not panic or block
	done := make(chan struct{})
	go func() {
		pool.Submit(&AnalyzeJob{Label: "late", Text: "now", Analyzer: &countingAnalyzer{}})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(1 * time.Second):
		t.Fatal("Submit after shutdown blocked")
	}
}

func TestPool_ShutdownClosesResults(t *testing.T) {
	pool := NewPool(2)
	pool.Start()

	analyzer := &blockingAnalyzer{started: make(chan struct{})}
	pool.Submit(&AnalyzeJob{Label: "slow", Text: "today", Analyzer: analyzer})
	<-analyzer.started

	pool.Shutdown()

	done := make(chan struct{})
	go func() {
		for range pool.results {
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(1 * time.Second):
		t.Fatal("Shutdown did not close the results channel")
	}
}
