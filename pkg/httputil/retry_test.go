package httputil

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRetryableError(t *testing.T) {
	base := errors.New("boom")
	err := Retryable(base)

	if !IsRetryable(err) {
		t.Error("Retryable error should be retryable")
	}
	if !errors.Is(err, base) {
		t.Error("Retryable should unwrap to the cause")
	}
	if IsRetryable(base) {
		t.Error("plain errors are not retryable")
	}
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should be nil")
	}
}

func TestRetry(t *testing.T) {
	tests := []struct {
		name      string
		errs      []error
		wantCalls int
		wantErr   bool
	}{
		{"success first try", []error{nil}, 1, false},
		{"succeeds after retry", []error{Retryable(errors.New("x")), nil}, 2, false},
		{"permanent error stops", []error{errors.New("fatal"), nil}, 1, true},
		{"exhausts attempts", []error{Retryable(errors.New("a")), Retryable(errors.New("b")), Retryable(errors.New("c"))}, 3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := Retry(context.Background(), 3, time.Millisecond, func() error {
				e := tt.errs[calls]
				calls++
				return e
			})
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
		})
	}
}

func TestRetryContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := Retry(ctx, 5, time.Hour, func() error {
		calls++
		cancel()
		return Retryable(errors.New("transient"))
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRetryHonorsAfterHint(t *testing.T) {
	calls := 0
	start := time.Now()
	err := Retry(context.Background(), 2, time.Hour, func() error {
		calls++
		if calls == 1 {
			return RetryAfter(errors.New("busy"), 5*time.Millisecond)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Retry() = %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Minute {
		t.Errorf("waited %v, the After hint should replace the hour-long delay", elapsed)
	}
	if RetryAfter(nil, time.Second) != nil {
		t.Error("RetryAfter(nil) should be nil")
	}
}
