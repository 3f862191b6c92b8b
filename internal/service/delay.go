package service

import (
	"context"
	"time"
)

// Operation names a store operation for latency simulation.
type Operation string

const (
	OpGetUser             Operation = "getUser"
	OpGetUserRewards      Operation = "getUserRewards"
	OpGetAvailableRewards Operation = "getAvailableRewards"
	OpGetAddOns           Operation = "getAddOns"
	OpGetPurchaseHistory  Operation = "getPurchaseHistory"
	OpCreateVoucher       Operation = "createVoucher"
	OpPurchaseAddOn       Operation = "purchaseAddOn"
)

// Delayer simulates backend latency before an operation runs.
type Delayer interface {
	// Delay blocks for the operation's latency. It returns ctx.Err() if the
	// context ends first. Writes delay on a context that cannot be
	// cancelled, so only reads are abandoned this way.
	Delay(ctx context.Context, op Operation) error
}

type noDelay struct{}

// NoDelay returns a Delayer that never waits.
func NoDelay() Delayer {
	return noDelay{}
}

func (noDelay) Delay(ctx context.Context, _ Operation) error {
	return ctx.Err()
}

// DefaultLatencies are the simulated round-trip times of the demo backend.
func DefaultLatencies() map[Operation]time.Duration {
	return map[Operation]time.Duration{
		OpGetUser:             500 * time.Millisecond,
		OpGetUserRewards:      300 * time.Millisecond,
		OpGetAvailableRewards: 400 * time.Millisecond,
		OpGetAddOns:           600 * time.Millisecond,
		OpGetPurchaseHistory:  300 * time.Millisecond,
		OpCreateVoucher:       800 * time.Millisecond,
		OpPurchaseAddOn:       1000 * time.Millisecond,
	}
}

type fixedDelayer struct {
	latencies map[Operation]time.Duration
}

// NewFixedDelayer returns a Delayer that waits latencies[op] scaled by
// scale. Operations without an entry do not wait.
func NewFixedDelayer(latencies map[Operation]time.Duration, scale float64) Delayer {
	scaled := make(map[Operation]time.Duration, len(latencies))
	for op, d := range latencies {
		scaled[op] = time.Duration(float64(d) * scale)
	}
	return &fixedDelayer{latencies: scaled}
}

func (d *fixedDelayer) Delay(ctx context.Context, op Operation) error {
	wait := d.latencies[op]
	if wait <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
