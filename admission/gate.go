// (c) The grimdig authors
//
// SPDX-License-Identifier: MIT

package admission

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Gate is the shared admission controller: a token bucket holding up to
// its burst capacity in tokens, refilled at a fixed number of tokens per
// interval. Every probe attempt across the whole pipeline must take one
// token before opening an outbound connection, making the Gate the single
// source of backpressure on outbound probing.
//
// A Gate is safe for concurrent use and must not be copied after first
// use.
type Gate struct {
	limiter *rate.Limiter
}

// NewGate returns a gate admitting at most burst immediate probe starts,
// replenished with refill tokens per interval. A refill of 60 per minute
// thus sustains one probe start per second once the initial burst is
// spent.
func NewGate(burst int, refill int, interval time.Duration) *Gate {
	if burst < 1 {
		burst = 1
	}
	if refill < 1 {
		refill = 1
	}
	if interval <= 0 {
		interval = time.Minute
	}
	return &Gate{
		limiter: rate.NewLimiter(rate.Limit(float64(refill)/interval.Seconds()), burst),
	}
}

// Wait blocks until a token is available and consumes it, or until the
// context is done. Callers are only ever delayed, never rejected; the sole
// error condition is the context being cancelled while waiting.
func (g *Gate) Wait(ctx context.Context) error {
	return g.limiter.Wait(ctx)
}
