// Package worker runs analysis jobs pulled from the queue.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/okian/talentscope/internal/domain/model"
	"github.com/okian/talentscope/pkg/logger"
	"github.com/okian/talentscope/pkg/metrics"
)

const defaultWorkerName = "worker"

// Job is what workers read off the queue.
type Job = model.Job

// Processor runs a single job.
type Processor interface {
	Process(ctx context.Context, j Job) error
}

// ProcessorFunc adapts a function to Processor.
type ProcessorFunc func(ctx context.Context, j Job) error

// Process calls f.
func (f ProcessorFunc) Process(ctx context.Context, j Job) error { return f(ctx, j) } //nolint:gocritic // hugeParam: Job is passed by value for channel semantics

// Queue defines how workers receive jobs.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Job
}

// Worker processes jobs until its queue is drained or it is told to stop.
type Worker interface {
	// Run starts the worker loop until ctx is canceled or the queue closes.
	Run(ctx context.Context)

	// Shutdown signals the worker to stop and waits for the current job.
	Shutdown(ctx context.Context) error
}

// InMemoryWorker implements Worker for processing jobs.
type InMemoryWorker struct {
	queue     Queue
	processor Processor
	name      string

	shutdown     chan struct{}
	shutdownOnce sync.Once
	done         chan struct{}

	logger logger.Logger
}

// NewInMemoryWorker creates a new worker with configuration options.
func NewInMemoryWorker(queue Queue, processor Processor, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:     queue,
		processor: processor,
		name:      defaultWorkerName,
		shutdown:  make(chan struct{}),
		done:      make(chan struct{}),
	}

	for _, opt := range opts {
		opt(w)
	}

	if w.logger == nil {
		w.logger = logger.Nop()
	}
	w.logger = w.logger.Named(w.name)

	return w
}

// Done is closed once Run has returned.
func (w *InMemoryWorker) Done() <-chan struct{} { return w.done }

// Run starts the worker loop.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer close(w.done)

	jobs := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case j, ok := <-jobs:
			if !ok {
				return
			}
			if err := w.processJob(ctx, j); err != nil {
				w.logger.Error(ctx, "error processing job",
					logger.String("job_id", j.ID),
					logger.String("child_id", j.ChildID),
					logger.String("kind", string(j.Kind)),
					logger.Error(err),
				)
			}
		}
	}
}

// Shutdown gracefully stops the worker.
func (w *InMemoryWorker) Shutdown(ctx context.Context) error {
	w.stop()

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("%w: %w", ErrShutdownTimeout, ctx.Err())
	}
}

func (w *InMemoryWorker) stop() {
	w.shutdownOnce.Do(func() { close(w.shutdown) })
}

// processJob handles a single job. A panicking processor is reported as an
// error so one bad job cannot take down the pool.
func (w *InMemoryWorker) processJob(ctx context.Context, j Job) (err error) { //nolint:gocritic // hugeParam: Job is passed by value for channel semantics
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("job %s: %w: %v", j.ID, ErrJobPanic, r)
		}
		metrics.RecordWorkerProcessingLatency(float64(time.Since(start).Milliseconds()))
		if err != nil {
			metrics.RecordWorkerError()
		}
	}()

	if err := w.processor.Process(ctx, j); err != nil {
		return fmt.Errorf("job %s: %w", j.ID, err)
	}
	return nil
}

// Pool manages multiple workers sharing one queue.
type Pool struct {
	workers []*InMemoryWorker
	queue   Queue
	logger  logger.Logger
}

// NewPool creates a pool of workerCount workers. A count below 1 uses one
// worker per CPU. opts are applied to every worker.
func NewPool(workerCount int, queue Queue, processor Processor, opts ...Option) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU()
	}

	// opts carry the logger shared with the workers.
	shared := &InMemoryWorker{}
	for _, opt := range opts {
		opt(shared)
	}
	if shared.logger == nil {
		shared.logger = logger.Nop()
	}

	pool := &Pool{
		workers: make([]*InMemoryWorker, workerCount),
		queue:   queue,
		logger:  shared.logger.Named("worker-pool"),
	}

	for i := 0; i < workerCount; i++ {
		workerOpts := append(append([]Option(nil), opts...), WithName(defaultWorkerName+"-"+strconv.Itoa(i)))
		pool.workers[i] = NewInMemoryWorker(queue, processor, workerOpts...)
	}

	return pool
}

// Size returns the number of workers in the pool.
func (p *Pool) Size() int { return len(p.workers) }

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	metrics.UpdateWorkerCount(len(p.workers))
	for _, w := range p.workers {
		go w.Run(ctx)
	}
}

// Wait blocks until every worker has returned.
func (p *Pool) Wait() {
	for _, w := range p.workers {
		<-w.done
	}
	metrics.UpdateWorkerCount(0)
}

// Stop signals every worker to stop after its current job and waits.
func (p *Pool) Stop() {
	for _, w := range p.workers {
		w.stop()
	}
	p.Wait()
}

// Shutdown closes the queue so workers drain what is already queued, then
// waits for them. When ctx ends first the remaining workers are told to stop
// and ErrShutdownTimeout is returned.
func (p *Pool) Shutdown(ctx context.Context) error {
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	for i, w := range p.workers {
		select {
		case <-w.done:
		case <-ctx.Done():
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
			for _, rest := range p.workers {
				rest.stop()
			}
			return fmt.Errorf("%w: %w", ErrShutdownTimeout, ctx.Err())
		}
	}

	metrics.UpdateWorkerCount(0)
	return nil
}
