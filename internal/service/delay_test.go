package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNoDelay(t *testing.T) {
	assert.NoError(t, NoDelay().Delay(context.Background(), OpGetUser))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, NoDelay().Delay(ctx, OpGetUser), context.Canceled)
}

func TestFixedDelayer(t *testing.T) {
	latencies := map[Operation]time.Duration{
		OpGetUser:       40 * time.Millisecond,
		OpCreateVoucher: time.Hour,
	}

	t.Run("Waits the scaled latency", func(t *testing.T) {
		d := NewFixedDelayer(latencies, 0.5)

		start := time.Now()
		err := d.Delay(context.Background(), OpGetUser)

		assert.NoError(t, err)
		assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
	})

	t.Run("Unknown operation does not wait", func(t *testing.T) {
		d := NewFixedDelayer(latencies, 1)

		start := time.Now()
		assert.NoError(t, d.Delay(context.Background(), OpGetAddOns))
		assert.Less(t, time.Since(start), 20*time.Millisecond)
	})

	t.Run("Zero scale disables waiting", func(t *testing.T) {
		d := NewFixedDelayer(latencies, 0)
		assert.NoError(t, d.Delay(context.Background(), OpCreateVoucher))
	})

	t.Run("Context deadline interrupts the wait", func(t *testing.T) {
		d := NewFixedDelayer(latencies, 1)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		err := d.Delay(ctx, OpCreateVoucher)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestDefaultLatencies(t *testing.T) {
	latencies := DefaultLatencies()

	assert.Len(t, latencies, 7)
	assert.Equal(t, 500*time.Millisecond, latencies[OpGetUser])
	assert.Equal(t, 800*time.Millisecond, latencies[OpCreateVoucher])
	assert.Equal(t, time.Second, latencies[OpPurchaseAddOn])
}
