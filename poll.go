package ariasnap

import (
	"context"
	"fmt"
	"time"
)

// A CaptureFunc produces a fresh subject tree on every call. The matcher
// core never waits; all settle-and-retry policy lives in Poller.
type CaptureFunc func(ctx context.Context) (*AXNode, error)

// Poller repeatedly captures a subject tree and matches it against a
// reference until the match succeeds, the timeout expires or ctx is
// cancelled. Attempts run strictly sequentially, each against a fresh
// capture.
type Poller struct {
	// Interval between attempts; 100ms when zero.
	Interval time.Duration
	// Timeout for the whole wait; 5s when zero. The deadline of ctx applies
	// in addition.
	Timeout time.Duration
	// Sleep is the waiting function between attempts. Tests inject their
	// own; nil uses a context-aware time.Timer sleep.
	Sleep func(ctx context.Context, d time.Duration) error
}

// Wait runs the capture → match → sleep loop. It returns the first OK
// result, or the last failed result together with an error when the
// deadline passes. Capture and tree contract errors abort the wait
// immediately.
func (p Poller) Wait(ctx context.Context, ref *RefNode, capture CaptureFunc) (MatchResult, error) {
	interval := p.Interval
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	sleep := p.Sleep
	if sleep == nil {
		sleep = ctxSleep
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var last MatchResult
	for attempt := 1; ; attempt++ {
		subj, err := capture(ctx)
		if err != nil {
			return last, fmt.Errorf("capture attempt %d: %w", attempt, err)
		}
		last, err = Match(ref, subj)
		if err != nil {
			return last, err
		}
		if last.OK {
			return last, nil
		}
		if err = sleep(ctx, interval); err != nil {
			return last, fmt.Errorf("no match after %d attempts: %w", attempt, err)
		}
	}
}

func ctxSleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
