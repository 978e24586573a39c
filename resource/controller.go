// Package resource manages global resource budgets for the substrate:
// a hard memory limit for arenas, side buffers and caches, and an optional
// ingest rate limit for batch appends.
package resource

import (
	"context"
	"errors"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// ErrMemoryLimitExceeded is returned when a reservation would exceed the
// configured memory limit. Data is never silently truncated; the caller
// decides whether to retry, shed load or fail.
var ErrMemoryLimitExceeded = errors.New("resource: memory limit exceeded")

// Config holds resource limits.
type Config struct {
	// MemoryLimitBytes is the hard limit for managed memory.
	// If 0, no limit is enforced (only tracking).
	MemoryLimitBytes int64

	// IngestLimitBytesPerSec caps batch-append throughput.
	// If 0, ingest is unlimited.
	IngestLimitBytesPerSec int64
}

// Controller tracks and limits managed resources.
// A nil *Controller is valid and enforces nothing.
type Controller struct {
	memSem        *semaphore.Weighted // nil if unlimited
	memUsed       atomic.Int64
	ingestLimiter *rate.Limiter // nil if unlimited
}

// NewController creates a Controller from cfg.
func NewController(cfg Config) *Controller {
	c := &Controller{}
	if cfg.MemoryLimitBytes > 0 {
		c.memSem = semaphore.NewWeighted(cfg.MemoryLimitBytes)
	}
	if cfg.IngestLimitBytesPerSec > 0 {
		c.ingestLimiter = rate.NewLimiter(rate.Limit(cfg.IngestLimitBytesPerSec), int(cfg.IngestLimitBytesPerSec))
	}
	return c
}

// AcquireMemory reserves bytes. Non-blocking; returns
// ErrMemoryLimitExceeded when the reservation does not fit.
func (c *Controller) AcquireMemory(bytes int64) error {
	if c == nil || bytes <= 0 {
		return nil
	}
	if c.memSem != nil && !c.memSem.TryAcquire(bytes) {
		return ErrMemoryLimitExceeded
	}
	c.memUsed.Add(bytes)
	return nil
}

// ReleaseMemory returns a reservation.
func (c *Controller) ReleaseMemory(bytes int64) {
	if c == nil || bytes <= 0 {
		return
	}
	if c.memSem != nil {
		c.memSem.Release(bytes)
	}
	c.memUsed.Add(-bytes)
}

// MemoryUsed returns the current managed-memory reservation.
func (c *Controller) MemoryUsed() int64 {
	if c == nil {
		return 0
	}
	return c.memUsed.Load()
}

// AcquireIngest waits until the ingest limiter admits n bytes. With no
// limiter configured it returns immediately.
func (c *Controller) AcquireIngest(ctx context.Context, n int) error {
	if c == nil || c.ingestLimiter == nil || n <= 0 {
		return nil
	}
	burst := c.ingestLimiter.Burst()
	// Requests above the burst are admitted in burst-size installments.
	for n > 0 {
		chunk := n
		if chunk > burst {
			chunk = burst
		}
		if err := c.ingestLimiter.WaitN(ctx, chunk); err != nil {
			return err
		}
		n -= chunk
	}
	return nil
}
