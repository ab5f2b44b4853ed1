package cache

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"
)

var errTransient = &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}

func TestRetry(t *testing.T) {
	always := func(error) bool { return true }
	never := func(error) bool { return false }

	tests := []struct {
		name      string
		failures  int
		transient func(error) bool
		wantCalls int
		wantErr   bool
	}{
		{"first try", 0, always, 1, false},
		{"recovers", 2, always, 3, false},
		{"gives up", 5, always, 3, true},
		{"permanent", 5, never, 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := retry(context.Background(), 3, time.Millisecond, tt.transient, func() error {
				calls++
				if calls <= tt.failures {
					return errTransient
				}
				return nil
			})
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRetryCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := retry(ctx, 5, time.Hour, isNetError, func() error {
		calls++
		return errTransient
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestIsNetError(t *testing.T) {
	if !isNetError(errTransient) {
		t.Error("dial error should be transient")
	}
	if isNetError(errors.New("NOAUTH Authentication required")) {
		t.Error("plain error should not be transient")
	}
}
