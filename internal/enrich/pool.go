package enrich

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Pool runs enrichment tasks on a fixed set of workers instead of
// unstructured goroutine spawning. Submit never blocks the caller: when the
// queue is full the task is dropped and logged, since enrichment is
// best-effort by contract.
type Pool struct {
	enricher *Enricher
	logger   *zap.Logger

	jobs chan job
	wg   sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

type job struct {
	analysisID string
	input      Input
}

// NewPool starts workers goroutines consuming a queue of queueSize tasks.
func NewPool(ctx context.Context, enricher *Enricher, workers, queueSize int, logger *zap.Logger) *Pool {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = workers
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	p := &Pool{
		enricher: enricher,
		logger:   logger,
		jobs:     make(chan job, queueSize),
	}

	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for j := range p.jobs {
				p.enricher.Enrich(ctx, j.analysisID, j.input)
			}
		}()
	}

	return p
}

// Submit queues one enrichment task. Returns false when the queue is full
// or the pool is closed.
func (p *Pool) Submit(analysisID string, input Input) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		p.logger.Warn("enrichment pool closed, dropping task",
			zap.String("analysis_id", analysisID),
		)
		return false
	}

	select {
	case p.jobs <- job{analysisID: analysisID, input: input}:
		return true
	default:
		p.logger.Warn("enrichment queue full, dropping task",
			zap.String("analysis_id", analysisID),
		)
		return false
	}
}

// Close stops accepting tasks and waits for in-flight enrichments. Further
// Submit calls return false.
func (p *Pool) Close() {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.jobs)
	}
	p.mu.Unlock()

	p.wg.Wait()
}
