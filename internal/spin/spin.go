// Package spin implements the cooperative wait a reader performs when
// its cached horizon is stale and writers are in flight. There is no
// timeout: the worst case is bounded by the longest in-flight memcpy
// plus scheduling delay, and the caller-supplied context is the only
// way to give up early.
package spin

import (
	"context"
	"runtime"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// pureSpins is how many times Wait yields with runtime.Gosched before
// it starts sleeping between probes. Most stalls are a single
// in-flight memcpy and resolve within a handful of scheduler turns.
const pureSpins = 64

// Wait polls probe until ready reports true for the returned value, or
// ctx is canceled. The backoff schedule is shaped like the
// reconnect loop in the control plane's BIRD adapter
// (backoff.ExponentialBackOff with Reset/NextBackOff), just rescaled
// from network-retry intervals down to the length of a buffer copy.
func Wait(ctx context.Context, probe func() uint64, ready func(uint64) bool) (uint64, error) {
	for i := 0; i < pureSpins; i++ {
		if v := probe(); ready(v) {
			return v, nil
		}
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		runtime.Gosched()
	}

	b := &backoff.ExponentialBackOff{
		InitialInterval:     time.Microsecond,
		RandomizationFactor: 0.2,
		Multiplier:          1.5,
		MaxInterval:         time.Millisecond,
	}
	b.Reset()

	for {
		if v := probe(); ready(v) {
			return v, nil
		}
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-time.After(b.NextBackOff()):
		}
	}
}
