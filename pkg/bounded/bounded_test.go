package bounded

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRun_ReturnsValue(t *testing.T) {
	got, err := Run(context.Background(), time.Second, func(ctx context.Context) (int, error) {
		return 42, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}
}

func TestRun_PropagatesError(t *testing.T) {
	want := errors.New("boom")
	_, err := Run(context.Background(), time.Second, func(ctx context.Context) (int, error) {
		return 0, want
	})
	if !errors.Is(err, want) {
		t.Fatalf("expected wrapped fn error, got %v", err)
	}
}

func TestRun_TimeoutWhileInFlight(t *testing.T) {
	start := time.Now()
	_, err := Run(context.Background(), 20*time.Millisecond, func(ctx context.Context) (int, error) {
		select {
		case <-time.After(5 * time.Second):
			return 1, nil
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	})
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("timeout did not bound latency, took %v", elapsed)
	}
}

func TestRun_DeadlineExceededFromFn(t *testing.T) {
	_, err := Run(context.Background(), time.Second, func(ctx context.Context) (int, error) {
		return 0, context.DeadlineExceeded
	})
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
}

func TestRun_ParentCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, time.Second, func(ctx context.Context) (int, error) {
		<-ctx.Done()
		return 0, ctx.Err()
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
