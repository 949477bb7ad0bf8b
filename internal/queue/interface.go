package queue

import "context"

// Queue defines the interface for job queue operations.
type Queue interface {
	// Enqueue adds a job to the queue.
	Enqueue(job ThumbnailJob) error
	// Dequeue removes and returns the next job from the queue.
	Dequeue(ctx context.Context) (ThumbnailJob, error)
	// Close closes the queue.
	Close()
	// Len returns the current number of jobs in the queue.
	Len() int
	// Capacity returns the queue capacity.
	Capacity() int
}

// Enqueuer is the producer side of a Queue.
type Enqueuer interface {
	Enqueue(job ThumbnailJob) error
}

var (
	_ Queue    = (*MemoryQueue)(nil)
	_ Enqueuer = Discard{}
)

// Discard drops every job. Used when thumbnail generation is disabled.
type Discard struct{}

// Enqueue does nothing.
func (Discard) Enqueue(ThumbnailJob) error { return nil }
