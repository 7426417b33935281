// Package worker runs independent jobs on a fixed number of goroutines.
package worker

import (
	"context"
	"sync"
)

// Job represents a unit of work to be executed
type Job interface {
	Execute(ctx context.Context) Result
}

// Result represents the result of a job execution
type Result interface {
	GetError() error
}

// canceledResult stands in for jobs that never ran because the pool was
// canceled first.
type canceledResult struct {
	err error
}

func (r *canceledResult) GetError() error {
	return r.err
}

type indexedJob struct {
	index int
	job   Job
}

type indexedResult struct {
	index  int
	result Result
}

// Pool manages a pool of workers that execute jobs concurrently. Results
// are returned in submission order.
type Pool struct {
	workers    int
	jobQueue   chan indexedJob
	results    chan indexedResult
	wg         sync.WaitGroup
	ctx        context.Context
	cancelFunc context.CancelFunc
	closeOnce  sync.Once

	mu        sync.Mutex
	submitted int
	collected map[int]Result
	done      chan struct{}
}

// NewPool creates a worker pool bound to ctx. Canceling ctx stops jobs that
// have not started yet.
func NewPool(ctx context.Context, workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}

	ctx, cancel := context.WithCancel(ctx)

	return &Pool{
		workers:    workers,
		jobQueue:   make(chan indexedJob, workers*2),
		results:    make(chan indexedResult, workers*2),
		ctx:        ctx,
		cancelFunc: cancel,
		collected:  make(map[int]Result),
		done:       make(chan struct{}),
	}
}

// Start starts the workers and the result collector.
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	go p.collect()
}

// collect drains results as they arrive so workers never block on a full
// results channel while Submit is still feeding the queue.
func (p *Pool) collect() {
	defer close(p.done)
	for ir := range p.results {
		p.mu.Lock()
		p.collected[ir.index] = ir.result
		p.mu.Unlock()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for ij := range p.jobQueue {
		var result Result
		if err := p.ctx.Err(); err != nil {
			result = &canceledResult{err: err}
		} else {
			result = ij.job.Execute(p.ctx)
		}
		p.results <- indexedResult{index: ij.index, result: result}
	}
}

// Submit queues a job. It blocks while the queue is full.
func (p *Pool) Submit(job Job) {
	p.mu.Lock()
	index := p.submitted
	p.submitted++
	p.mu.Unlock()

	p.jobQueue <- indexedJob{index: index, job: job}
}

// Wait closes the queue, waits for every submitted job and returns the
// results in submission order. Jobs skipped after cancellation report the
// context error.
func (p *Pool) Wait() []Result {
	close(p.jobQueue)
	p.wg.Wait()
	p.closeResults()
	<-p.done
	p.cancelFunc()

	p.mu.Lock()
	defer p.mu.Unlock()
	results := make([]Result, p.submitted)
	for i := range results {
		results[i] = p.collected[i]
	}
	return results
}

func (p *Pool) closeResults() {
	p.closeOnce.Do(func() {
		close(p.results)
	})
}
