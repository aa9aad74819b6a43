package retry

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig(attempts int) Config {
	return Config{
		MaxAttempts:  attempts,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2.0,
	}
}

func TestDo_SuccessOnFirstAttempt(t *testing.T) {
	var attempts int32

	err := Do(context.Background(), func() error {
		atomic.AddInt32(&attempts, 1)
		return nil
	}, DefaultConfig)

	assert.NoError(t, err)
	assert.Equal(t, int32(1), attempts)
}

func TestDo_SuccessAfterRetries(t *testing.T) {
	var attempts int32

	err := Do(context.Background(), func() error {
		if atomic.AddInt32(&attempts, 1) < 3 {
			return errors.New("503")
		}
		return nil
	}, fastConfig(5))

	assert.NoError(t, err)
	assert.Equal(t, int32(3), attempts)
}

func TestDo_MaxAttemptsExceeded(t *testing.T) {
	var attempts int32
	expected := errors.New("connection reset")

	err := Do(context.Background(), func() error {
		atomic.AddInt32(&attempts, 1)
		return expected
	}, fastConfig(3))

	assert.Equal(t, expected, err)
	assert.Equal(t, int32(3), attempts)
}

func TestDo_ZeroMaxAttemptsRunsOnce(t *testing.T) {
	var attempts int32

	err := Do(context.Background(), func() error {
		atomic.AddInt32(&attempts, 1)
		return errors.New("fail")
	}, fastConfig(0))

	assert.Error(t, err)
	assert.Equal(t, int32(1), attempts)
}

func TestDo_ContextCancelledDuringWait(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var attempts int32

	err := Do(ctx, func() error {
		atomic.AddInt32(&attempts, 1)
		cancel()
		return errors.New("temporary")
	}, Config{MaxAttempts: 5, InitialDelay: time.Second, MaxDelay: time.Second})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int32(1), attempts)
}

func TestDo_ContextAlreadyCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := Do(ctx, func() error {
		called = true
		return nil
	}, DefaultConfig)

	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestDo_RetryIfPredicate(t *testing.T) {
	retryable := errors.New("retryable")
	fatal := errors.New("fatal")
	var attempts int32

	err := Do(context.Background(), func() error {
		if atomic.AddInt32(&attempts, 1) == 1 {
			return retryable
		}
		return fatal
	}, fastConfig(5).WithRetryIf(func(err error) bool { return errors.Is(err, retryable) }))

	assert.Equal(t, fatal, err)
	assert.Equal(t, int32(2), attempts)
}

func TestDo_PermanentStopsAndUnwraps(t *testing.T) {
	cause := errors.New("400 bad request")
	var attempts int32

	err := Do(context.Background(), func() error {
		atomic.AddInt32(&attempts, 1)
		return NewPermanent(cause)
	}, fastConfig(5))

	assert.Same(t, cause, err)
	assert.False(t, IsPermanent(err))
	assert.Equal(t, int32(1), attempts)
}

func TestDo_OnRetry(t *testing.T) {
	var seen []int

	_ = Do(context.Background(), func() error {
		return errors.New("fail")
	}, fastConfig(3).WithOnRetry(func(attempt int, err error, wait time.Duration) {
		seen = append(seen, attempt)
		assert.LessOrEqual(t, wait, 5*time.Millisecond)
	}))

	assert.Equal(t, []int{1, 2}, seen)
}

func TestDoWithResult_SuccessAfterRetries(t *testing.T) {
	var attempts int32

	got, err := DoWithResult(context.Background(), func() ([]string, error) {
		if atomic.AddInt32(&attempts, 1) < 2 {
			return nil, errors.New("timeout")
		}
		return []string{"EK 651"}, nil
	}, fastConfig(3))

	require.NoError(t, err)
	assert.Equal(t, []string{"EK 651"}, got)
}

func TestBackoff(t *testing.T) {
	assert.Equal(t, 10*time.Millisecond, backoff(10*time.Millisecond, time.Second, 0))
	assert.Equal(t, 50*time.Millisecond, backoff(time.Second, 50*time.Millisecond, 0.5))

	withJitter := backoff(100*time.Millisecond, time.Second, 0.5)
	assert.GreaterOrEqual(t, withJitter, 100*time.Millisecond)
	assert.LessOrEqual(t, withJitter, 150*time.Millisecond)
}

func TestPermanent(t *testing.T) {
	assert.Nil(t, NewPermanent(nil))
	assert.Equal(t, "permanent error", (&Permanent{}).Error())

	cause := errors.New("boom")
	err := NewPermanent(cause)
	assert.True(t, IsPermanent(err))
	assert.ErrorIs(t, err, cause)
	assert.False(t, SkipPermanent(err))
	assert.True(t, SkipPermanent(cause))
}

func TestConfig_Builders(t *testing.T) {
	cfg := SourceConfig.WithMaxAttempts(7).WithInitialDelay(time.Millisecond)

	assert.Equal(t, 7, cfg.MaxAttempts)
	assert.Equal(t, time.Millisecond, cfg.InitialDelay)
	assert.Equal(t, 3, SourceConfig.MaxAttempts, "presets are copied, not mutated")
}
