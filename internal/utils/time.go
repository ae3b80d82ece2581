package util

import (
	"context"
	"time"
)

// Source is any random source; *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

// Sleeper blocks for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// RandomDuration returns a duration in [min, max] with millisecond
// granularity.
func RandomDuration(src Source, min, max time.Duration) time.Duration {
	lo, hi := min.Milliseconds(), max.Milliseconds()
	if hi <= lo {
		return min
	}
	return time.Duration(lo+int64(src.Intn(int(hi-lo+1)))) * time.Millisecond
}
