package retry

import (
	"context"
	"errors"
	"fmt"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
)

func fastConfig(attempts int) Config {
	return Config{
		MaxAttempts:    attempts,
		InitialDelay:   5 * time.Millisecond,
		MaxDelay:       20 * time.Millisecond,
		Multiplier:     2.0,
		JitterFraction: 0.1,
	}
}

func TestWithBackoff(t *testing.T) {
	tests := []struct {
		name         string
		attempts     int
		failures     int
		err          error
		wantAttempts int
		wantErr      bool
	}{
		{name: "first attempt succeeds", attempts: 3, wantAttempts: 1},
		{name: "succeeds after transient failures", attempts: 3, failures: 2, err: syscall.ECONNREFUSED, wantAttempts: 3},
		{name: "gives up after max attempts", attempts: 3, failures: 10, err: syscall.ECONNRESET, wantAttempts: 3, wantErr: true},
		{name: "non-retryable aborts at once", attempts: 3, failures: 10, err: errors.New("auth failed"), wantAttempts: 1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := WithBackoff(context.Background(), fastConfig(tt.attempts), func() error {
				calls++
				if calls <= tt.failures {
					return tt.err
				}
				return nil
			})

			assert.Equal(t, tt.wantAttempts, calls)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestWithBackoff_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := fastConfig(10)
	cfg.InitialDelay = 50 * time.Millisecond

	calls := 0
	err := WithBackoff(ctx, cfg, func() error {
		calls++
		cancel()
		return syscall.ETIMEDOUT
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		retryable bool
	}{
		{name: "nil error"},
		{name: "context canceled", err: context.Canceled},
		{name: "context deadline exceeded", err: context.DeadlineExceeded},
		{name: "ECONNREFUSED", err: syscall.ECONNREFUSED, retryable: true},
		{name: "wrapped ECONNRESET", err: fmt.Errorf("dial: %w", syscall.ECONNRESET), retryable: true},
		{name: "ETIMEDOUT", err: syscall.ETIMEDOUT, retryable: true},
		{name: "ENETUNREACH", err: syscall.ENETUNREACH, retryable: true},
		{name: "store network error", err: mongodriver.CommandError{Labels: []string{"NetworkError"}}, retryable: true},
		{name: "generic error", err: errors.New("some error")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.retryable, IsRetryable(tt.err))
		})
	}
}

func TestConfigs(t *testing.T) {
	def := DefaultConfig()
	assert.Equal(t, 3, def.MaxAttempts)
	assert.Equal(t, time.Second, def.InitialDelay)

	conn := ConnectConfig()
	assert.Equal(t, 5, conn.MaxAttempts)
	assert.Equal(t, 500*time.Millisecond, conn.InitialDelay)
	assert.LessOrEqual(t, conn.MaxDelay, 5*time.Second)
}

func TestAddJitter(t *testing.T) {
	duration := 100 * time.Millisecond

	seen := make(map[time.Duration]bool)
	for i := 0; i < 20; i++ {
		got := addJitter(duration, 0.2)
		assert.GreaterOrEqual(t, got, duration)
		assert.LessOrEqual(t, got, time.Duration(float64(duration)*1.2))
		seen[got] = true
	}
	assert.Greater(t, len(seen), 1)

	assert.Equal(t, duration, addJitter(duration, 0))
}
