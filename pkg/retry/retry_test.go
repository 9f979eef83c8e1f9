package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func fastConfig(maxRetries int) *Config {
	return &Config{
		MaxRetries:      maxRetries,
		InitialInterval: time.Millisecond,
		MaxInterval:     5 * time.Millisecond,
		Multiplier:      2.0,
	}
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d, want 3", config.MaxRetries)
	}
	if config.InitialInterval != 200*time.Millisecond {
		t.Errorf("InitialInterval = %v, want 200ms", config.InitialInterval)
	}
	if config.Multiplier != 2.0 {
		t.Errorf("Multiplier = %f, want 2.0", config.Multiplier)
	}
}

func TestDo_Success(t *testing.T) {
	attempts := 0
	err := Do(context.Background(), fastConfig(3), func(ctx context.Context) error {
		attempts++
		return nil
	}, nil)

	if err != nil {
		t.Errorf("Do() error = %v, want nil", err)
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1", attempts)
	}
}

func TestDo_SuccessAfterRetries(t *testing.T) {
	attempts := 0
	err := Do(context.Background(), fastConfig(5), func(ctx context.Context) error {
		attempts++
		if attempts < 3 {
			return errors.New("connection refused")
		}
		return nil
	}, nil)

	if err != nil {
		t.Errorf("Do() error = %v, want nil", err)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
}

func TestDo_MaxRetriesExceeded(t *testing.T) {
	cause := errors.New("broker unavailable")
	attempts := 0
	err := Do(context.Background(), fastConfig(2), func(ctx context.Context) error {
		attempts++
		return cause
	}, nil)

	if !errors.Is(err, ErrMaxRetriesExceeded) {
		t.Errorf("Do() error = %v, want ErrMaxRetriesExceeded", err)
	}
	if !errors.Is(err, cause) {
		t.Errorf("Do() error = %v, want it to wrap the last failure", err)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
}

func TestDo_PermanentError(t *testing.T) {
	cause := errors.New("invalid request")
	attempts := 0
	err := Do(context.Background(), fastConfig(5), func(ctx context.Context) error {
		attempts++
		return Permanent(cause)
	}, nil)

	if err != cause {
		t.Errorf("Do() error = %v, want %v", err, cause)
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1", attempts)
	}
}

func TestDo_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := &Config{MaxRetries: 10, InitialInterval: 50 * time.Millisecond, MaxInterval: time.Second, Multiplier: 1}

	attempts := 0
	err := Do(ctx, cfg, func(ctx context.Context) error {
		attempts++
		cancel()
		return errors.New("timeout")
	}, nil)

	if !errors.Is(err, context.Canceled) {
		t.Errorf("Do() error = %v, want context.Canceled", err)
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1", attempts)
	}
}

func TestDo_Notify(t *testing.T) {
	var notified []int
	_ = Do(context.Background(), fastConfig(2), func(ctx context.Context) error {
		return errors.New("fail")
	}, func(attempt int, err error, wait time.Duration) {
		notified = append(notified, attempt)
		if wait <= 0 {
			t.Errorf("wait = %v, want > 0", wait)
		}
	})

	if len(notified) != 2 || notified[0] != 1 || notified[1] != 2 {
		t.Errorf("notified = %v, want [1 2]", notified)
	}
}

func TestBackoff_Exponential(t *testing.T) {
	cfg := &Config{InitialInterval: 100 * time.Millisecond, MaxInterval: time.Second, Multiplier: 2.0}

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{0, 100 * time.Millisecond},
		{1, 200 * time.Millisecond},
		{2, 400 * time.Millisecond},
		{3, 800 * time.Millisecond},
		{4, time.Second},
	}

	for _, tt := range tests {
		if got := Backoff(cfg, tt.attempt); got != tt.want {
			t.Errorf("Backoff(%d) = %v, want %v", tt.attempt, got, tt.want)
		}
	}
}

func TestBackoff_Jitter(t *testing.T) {
	cfg := &Config{InitialInterval: 100 * time.Millisecond, MaxInterval: time.Second, Multiplier: 2.0, JitterFactor: 0.1}

	for i := 0; i < 50; i++ {
		got := Backoff(cfg, 0)
		if got < 90*time.Millisecond || got > 110*time.Millisecond {
			t.Fatalf("Backoff(0) = %v, want within ±10%% of 100ms", got)
		}
	}
}

func TestConnectConfig(t *testing.T) {
	cfg := ConnectConfig(3, 2*time.Second)
	for attempt := 0; attempt < 3; attempt++ {
		if got := Backoff(cfg, attempt); got != 2*time.Second {
			t.Errorf("Backoff(%d) = %v, want 2s", attempt, got)
		}
	}
}

func TestIsPermanent(t *testing.T) {
	if IsPermanent(errors.New("x")) {
		t.Error("plain error reported as permanent")
	}
	if !IsPermanent(Permanent(errors.New("x"))) {
		t.Error("Permanent() not detected")
	}
	if Permanent(nil) != nil {
		t.Error("Permanent(nil) should be nil")
	}
}
