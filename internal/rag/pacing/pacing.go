// Package pacing spaces out sequential provider calls so batch jobs do
// not hammer the AI APIs. It is a courtesy delay, not backpressure: the
// providers enforce their own quotas.
package pacing

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Pacer admits one call per interval. The first call passes immediately;
// each subsequent call waits out the remainder of the interval.
type Pacer struct {
	limiter *rate.Limiter
}

func New(interval time.Duration) *Pacer {
	return &Pacer{limiter: rate.NewLimiter(rate.Every(interval), 1)}
}

// Wait blocks until the next call may proceed or ctx is done.
func (p *Pacer) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}
