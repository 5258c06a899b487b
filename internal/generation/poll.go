package generation

import (
	"context"
	"time"
)

// SleepFunc waits for d or until ctx is done
type SleepFunc func(ctx context.Context, d time.Duration) error

// PollPolicy is a bounded fixed-delay retry policy
type PollPolicy struct {
	MaxAttempts int
	Delay       time.Duration
	// Sleep defaults to a timer bound to ctx
	Sleep SleepFunc
}

// DefaultPollPolicy allows 12 attempts, 5 s apart
func DefaultPollPolicy() PollPolicy {
	return PollPolicy{MaxAttempts: 12, Delay: 5 * time.Second}
}

// Run waits Delay before every attempt and stops at the first attempt that
// returns done. It returns the number of attempts made and whether one
// succeeded. A cancelled ctx stops the loop early without success.
func (p PollPolicy) Run(ctx context.Context, attempt func(ctx context.Context, n int) bool) (int, bool) {
	sleep := p.Sleep
	if sleep == nil {
		sleep = timerSleep
	}

	for n := 1; n <= p.MaxAttempts; n++ {
		if err := sleep(ctx, p.Delay); err != nil {
			return n - 1, false
		}
		if attempt(ctx, n) {
			return n, true
		}
	}
	return p.MaxAttempts, false
}

func timerSleep(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
