package generic

import (
	"context"
	"fmt"
	"time"
)

// Backoff describes a bounded retry policy with exponential delays.
// The delay after the n:th failed attempt is Initial*2^(n-1), capped at Max
// unless Max is zero.
type Backoff struct {
	Attempts int
	Initial  time.Duration
	Max      time.Duration
	// Sleep waits for d or until ctx is done. Defaults to a timer based sleep.
	Sleep func(ctx context.Context, d time.Duration) error
}

// DefaultBackoff is 3 attempts, waiting 4s then 8s, never more than 10s.
var DefaultBackoff = Backoff{
	Attempts: 3,
	Initial:  4 * time.Second,
	Max:      10 * time.Second,
}

// Delay returns how long to wait after the failed attempt (1-based).
func (b Backoff) Delay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	d := b.Initial
	for i := 1; i < attempt; i++ {
		d *= 2
		if b.Max > 0 && d >= b.Max {
			return b.Max
		}
	}
	if b.Max > 0 && d > b.Max {
		return b.Max
	}
	return d
}

// Retry calls fn until it succeeds or the attempts are exhausted. The error
// of the last attempt is returned. A cancelled context stops the retrying.
func Retry(ctx context.Context, b Backoff, fn func(ctx context.Context, attempt int) error) error {
	attempts := b.Attempts
	if attempts < 1 {
		attempts = 1
	}
	sleep := b.Sleep
	if sleep == nil {
		sleep = timerSleep
	}
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		err = fn(ctx, attempt)
		if err == nil {
			return nil
		}
		if attempt == attempts {
			break
		}
		if sleepErr := sleep(ctx, b.Delay(attempt)); sleepErr != nil {
			return fmt.Errorf("%w (retry aborted: %v)", err, sleepErr)
		}
	}
	return err
}

func timerSleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
