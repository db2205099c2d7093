package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

var errTransient = errors.New("transient")

func fastConfig(maxAttempts int, isRetryable func(error) bool) Config {
	return Config{
		MaxAttempts: maxAttempts,
		BaseDelay:   time.Millisecond,
		MaxDelay:    5 * time.Millisecond,
		IsRetryable: isRetryable,
	}
}

func TestDoSucceedsAfterTransientFailures(t *testing.T) {
	calls := 0
	err := Do(context.Background(), fastConfig(3, nil), func() error {
		calls++
		if calls < 3 {
			return errTransient
		}
		return nil
	})

	if err != nil {
		t.Fatalf("Do() error = %v, want nil", err)
	}
	if calls != 3 {
		t.Errorf("fn called %d times, want 3", calls)
	}
}

func TestDoStopsOnTerminalError(t *testing.T) {
	terminal := errors.New("terminal")
	calls := 0
	err := Do(context.Background(), fastConfig(5, func(err error) bool {
		return errors.Is(err, errTransient)
	}), func() error {
		calls++
		return terminal
	})

	if !errors.Is(err, terminal) {
		t.Fatalf("Do() error = %v, want %v", err, terminal)
	}
	if calls != 1 {
		t.Errorf("fn called %d times, want 1", calls)
	}
}

func TestDoExhaustsAttempts(t *testing.T) {
	calls := 0
	err := Do(context.Background(), fastConfig(3, nil), func() error {
		calls++
		return errTransient
	})

	if !errors.Is(err, ErrMaxAttemptsExceeded) {
		t.Fatalf("Do() error = %v, want ErrMaxAttemptsExceeded", err)
	}
	if !errors.Is(err, errTransient) {
		t.Errorf("Do() error should wrap the last failure, got %v", err)
	}
	if calls != 3 {
		t.Errorf("fn called %d times, want 3", calls)
	}
}

func TestDoHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := Do(ctx, fastConfig(3, nil), func() error {
		calls++
		return errTransient
	})

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Do() error = %v, want context.Canceled", err)
	}
	if calls != 0 {
		t.Errorf("fn called %d times, want 0", calls)
	}
}
