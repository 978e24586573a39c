package resource

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLimit(t *testing.T) {
	c := NewController(Config{MemoryLimitBytes: 100})

	require.NoError(t, c.AcquireMemory(60))
	assert.Equal(t, int64(60), c.MemoryUsed())

	err := c.AcquireMemory(50)
	require.ErrorIs(t, err, ErrMemoryLimitExceeded)

	c.ReleaseMemory(60)
	assert.Equal(t, int64(0), c.MemoryUsed())
	require.NoError(t, c.AcquireMemory(100))
}

func TestUnlimitedTrackingOnly(t *testing.T) {
	c := NewController(Config{})
	require.NoError(t, c.AcquireMemory(1<<40))
	assert.Equal(t, int64(1<<40), c.MemoryUsed())
	c.ReleaseMemory(1 << 40)
}

func TestNilControllerIsNoop(t *testing.T) {
	var c *Controller
	require.NoError(t, c.AcquireMemory(10))
	c.ReleaseMemory(10)
	assert.Equal(t, int64(0), c.MemoryUsed())
	require.NoError(t, c.AcquireIngest(context.Background(), 1<<30))
}

func TestAcquireIngestUnlimited(t *testing.T) {
	c := NewController(Config{})
	start := time.Now()
	require.NoError(t, c.AcquireIngest(context.Background(), 1<<30))
	assert.Less(t, time.Since(start), time.Second)
}

func TestAcquireIngestCancellation(t *testing.T) {
	c := NewController(Config{IngestLimitBytesPerSec: 10})
	// Drain the burst so the next wait must block, then cancel.
	require.NoError(t, c.AcquireIngest(context.Background(), 10))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	err := c.AcquireIngest(ctx, 10)
	assert.Error(t, err)
}
