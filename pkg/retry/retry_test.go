package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errTransient = errors.New("storage unavailable")
var errPermanent = errors.New("out of stock")

// TestDo_RetriesTransientError 瞬时错误按次数上限重试
func TestDo_RetriesTransientError(t *testing.T) {
	calls := 0
	err := Do(context.Background(), Options{MaxAttempts: 3, InitialInterval: time.Millisecond},
		func() error {
			calls++
			return errTransient
		},
		func(err error) bool { return errors.Is(err, errTransient) })

	require.Error(t, err)
	assert.ErrorIs(t, err, errTransient)
	assert.Equal(t, 3, calls, "应该尝试3次")
}

// TestDo_StopsOnPermanentError 不可重试错误立即终止
func TestDo_StopsOnPermanentError(t *testing.T) {
	calls := 0
	err := Do(context.Background(), Options{MaxAttempts: 5, InitialInterval: time.Millisecond},
		func() error {
			calls++
			return errPermanent
		},
		func(err error) bool { return errors.Is(err, errTransient) })

	require.Error(t, err)
	assert.ErrorIs(t, err, errPermanent)
	assert.Equal(t, 1, calls, "业务错误不应该重试")
}

// TestDo_SucceedsAfterRetry 中途成功则停止重试
func TestDo_SucceedsAfterRetry(t *testing.T) {
	calls := 0
	err := Do(context.Background(), Options{MaxAttempts: 5, InitialInterval: time.Millisecond},
		func() error {
			calls++
			if calls < 3 {
				return errTransient
			}
			return nil
		},
		func(err error) bool { return true })

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

// TestDo_ContextCancelled 取消的context中断退避等待
func TestDo_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Do(ctx, Options{MaxAttempts: 10, InitialInterval: time.Second},
		func() error { return errTransient },
		func(err error) bool { return true })

	require.Error(t, err)
}
