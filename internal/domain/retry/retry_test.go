package retry

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/opslake/subregops/internal/domain"
)

func transientErr(msg string) error {
	return fmt.Errorf("%w: %s", domain.ErrTransient, msg)
}

func TestDo_Success(t *testing.T) {
	callCount := 0
	err := Do(context.Background(), func() error {
		callCount++
		if callCount < 2 {
			return transientErr("flaky")
		}
		return nil
	}, WithMaxAttempts(3), WithInitialDelay(time.Millisecond))

	if err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
	if callCount != 2 {
		t.Errorf("expected 2 calls, got %d", callCount)
	}
}

func TestDo_MaxAttemptsExceeded(t *testing.T) {
	callCount := 0
	err := Do(context.Background(), func() error {
		callCount++
		return transientErr("persistent")
	}, WithMaxAttempts(3), WithInitialDelay(time.Millisecond))

	if !errors.Is(err, ErrMaxAttemptsExceeded) {
		t.Errorf("expected ErrMaxAttemptsExceeded, got %v", err)
	}
	if !errors.Is(err, domain.ErrTransient) {
		t.Errorf("expected the last error to be joined in, got %v", err)
	}
	if callCount != 3 {
		t.Errorf("expected 3 calls, got %d", callCount)
	}
}

func TestDo_NonRetryableError(t *testing.T) {
	callCount := 0
	err := Do(context.Background(), func() error {
		callCount++
		return domain.ErrAuthFailed
	}, WithMaxAttempts(3))

	if !errors.Is(err, domain.ErrAuthFailed) {
		t.Errorf("expected ErrAuthFailed, got %v", err)
	}
	if callCount != 1 {
		t.Errorf("auth errors must not retry, got %d calls", callCount)
	}
}

func TestDo_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	callCount := 0
	err := Do(ctx, func() error {
		callCount++
		return transientErr("never reached")
	}, WithMaxAttempts(3))

	if !errors.Is(err, ErrContextCanceled) {
		t.Errorf("expected ErrContextCanceled, got %v", err)
	}
	if callCount != 0 {
		t.Errorf("expected 0 calls, got %d", callCount)
	}
}

func TestDoWithResult_Success(t *testing.T) {
	callCount := 0
	result, err := DoWithResult(context.Background(), func() (string, error) {
		callCount++
		if callCount < 2 {
			return "", transientErr("flaky")
		}
		return "ssid-123", nil
	}, WithMaxAttempts(3), WithInitialDelay(time.Millisecond))

	if err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
	if result != "ssid-123" {
		t.Errorf("expected ssid-123, got %s", result)
	}
}

func TestDo_ExponentialBackoff(t *testing.T) {
	var delays []time.Duration

	_ = Do(context.Background(), func() error {
		return transientErr("always")
	}, WithMaxAttempts(4), WithInitialDelay(time.Millisecond), WithMultiplier(2.0),
		WithOnRetry(func(attempt int, delay time.Duration, err error) {
			delays = append(delays, delay)
		}))

	expected := []time.Duration{time.Millisecond, 2 * time.Millisecond, 4 * time.Millisecond}
	if len(delays) != len(expected) {
		t.Fatalf("expected %d delays, got %d", len(expected), len(delays))
	}
	for i, want := range expected {
		if delays[i] != want {
			t.Errorf("delay[%d]: expected %v, got %v", i, want, delays[i])
		}
	}
}

func TestDo_MaxDelayCap(t *testing.T) {
	var delays []time.Duration

	_ = Do(context.Background(), func() error {
		return transientErr("always")
	}, WithMaxAttempts(5), WithInitialDelay(time.Millisecond), WithMaxDelay(2*time.Millisecond),
		WithMultiplier(10.0), WithOnRetry(func(attempt int, delay time.Duration, err error) {
			delays = append(delays, delay)
		}))

	for _, delay := range delays {
		if delay > 2*time.Millisecond {
			t.Errorf("delay %v exceeded the cap", delay)
		}
	}
}

func TestDefaultIsRetryable(t *testing.T) {
	if !DefaultIsRetryable(transientErr("http 503")) {
		t.Error("transient errors must be retryable")
	}
	if DefaultIsRetryable(domain.ErrAuthFailed) {
		t.Error("auth errors must not be retryable")
	}
	if DefaultIsRetryable(domain.ErrDomainNotFound) {
		t.Error("not-found errors must not be retryable")
	}
}
