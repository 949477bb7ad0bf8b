package queue

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"rateit/internal/thumbnail"
)

const (
	// MaxRetries is the maximum number of attempts for one thumbnail.
	MaxRetries = 3
	// DefaultRetryDelay is the base delay between retries (exponential backoff).
	DefaultRetryDelay = 2 * time.Second
	// JobTimeout bounds a single generation attempt.
	JobTimeout = 30 * time.Second
)

// Processor processes thumbnail jobs from the queue.
type Processor struct {
	queue        *MemoryQueue
	generator    thumbnail.Service
	workerCount  int
	retryDelay   time.Duration
	wg           sync.WaitGroup
	shutdownOnce sync.Once
	shutdownCh   chan struct{}

	completed atomic.Int64
	failed    atomic.Int64
}

// NewProcessor creates a new thumbnail job processor.
func NewProcessor(queue *MemoryQueue, generator thumbnail.Service, workerCount int) *Processor {
	if workerCount < 1 {
		workerCount = 1
	}
	return &Processor{
		queue:       queue,
		generator:   generator,
		workerCount: workerCount,
		retryDelay:  DefaultRetryDelay,
		shutdownCh:  make(chan struct{}),
	}
}

// WithRetryDelay overrides the base retry delay.
func (p *Processor) WithRetryDelay(d time.Duration) *Processor {
	p.retryDelay = d
	return p
}

// Start begins processing jobs with the configured number of workers.
func (p *Processor) Start(ctx context.Context) {
	for i := 0; i < p.workerCount; i++ {
		p.wg.Add(1)
		go p.worker(ctx, i)
	}
	slog.Info("Thumbnail processor started", "workers", p.workerCount)
}

// Stop gracefully stops the processor, waiting for workers to finish.
func (p *Processor) Stop() {
	p.shutdownOnce.Do(func() {
		close(p.shutdownCh)
		p.queue.Close()
	})
	p.wg.Wait()
	slog.Info("Thumbnail processor stopped")
}

// Completed returns the number of thumbnails generated.
func (p *Processor) Completed() int64 { return p.completed.Load() }

// Failed returns the number of jobs given up on.
func (p *Processor) Failed() int64 { return p.failed.Load() }

func (p *Processor) worker(ctx context.Context, id int) {
	defer p.wg.Done()
	slog.Debug("Thumbnail worker started", "worker", id)

	for {
		job, err := p.queue.Dequeue(ctx)
		if err != nil {
			if errors.Is(err, ErrQueueClosed) || errors.Is(err, context.Canceled) {
				slog.Debug("Thumbnail worker shutting down", "worker", id)
				return
			}
			continue
		}
		p.processJob(ctx, job)
	}
}

func (p *Processor) processJob(ctx context.Context, job ThumbnailJob) {
	log := slog.With("review_id", job.ReviewID, "key", job.SourceKey, "attempt", job.RetryCount+1)

	jobCtx, cancel := context.WithTimeout(ctx, JobTimeout)
	defer cancel()

	if err := p.generator.Generate(jobCtx, job.SourceKey, job.TargetKey); err != nil {
		log.Warn("Thumbnail generation failed", "error", err)
		p.handleFailure(job)
		return
	}

	p.completed.Add(1)
	log.Debug("Thumbnail generated", "thumb", job.TargetKey)
}

func (p *Processor) handleFailure(job ThumbnailJob) {
	job.RetryCount++

	if job.RetryCount >= MaxRetries {
		p.failed.Add(1)
		slog.Error("Max retries reached, giving up on thumbnail", "review_id", job.ReviewID, "key", job.SourceKey)
		return
	}

	delay := p.retryDelay * time.Duration(1<<uint(job.RetryCount-1))

	// Uses shutdownCh instead of ctx so pending retries are dropped on shutdown.
	go func() {
		select {
		case <-p.shutdownCh:
			p.failed.Add(1)
			slog.Warn("Shutdown during retry delay, dropping thumbnail job", "review_id", job.ReviewID, "key", job.SourceKey)
		case <-time.After(delay):
			if err := p.queue.Enqueue(job); err != nil {
				p.failed.Add(1)
				slog.Error("Failed to re-enqueue thumbnail job", "review_id", job.ReviewID, "error", err)
			}
		}
	}()
}
