// Package retry 提供有界指数退避重试
//
// 使用场景：存储层瞬时不可用（连接被重置、主从切换等）。
// 业务性失败（库存不足、参数错误）绝不自动重试，由retryable判定函数把关。
package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Options 重试配置
type Options struct {
	MaxAttempts     uint          // 最大尝试次数（含首次），0按1处理
	InitialInterval time.Duration // 首次退避间隔，0使用backoff默认值
	MaxInterval     time.Duration // 退避间隔上限，0使用backoff默认值
}

// Do 执行fn，失败且retryable(err)为真时按指数退避重试
// 约束：
// 1. 最多尝试opts.MaxAttempts次，超过后返回最后一次的错误
// 2. ctx取消/超时会中断退避等待并返回
// 3. retryable返回false的错误立即终止，原样返回
func Do(ctx context.Context, opts Options, fn func() error, retryable func(error) bool) error {
	attempts := opts.MaxAttempts
	if attempts == 0 {
		attempts = 1
	}

	bo := backoff.NewExponentialBackOff()
	if opts.InitialInterval > 0 {
		bo.InitialInterval = opts.InitialInterval
	}
	if opts.MaxInterval > 0 {
		bo.MaxInterval = opts.MaxInterval
	}

	operation := func() error {
		err := fn()
		if err == nil {
			return nil
		}
		if retryable != nil && !retryable(err) {
			// Permanent错误不再重试，backoff.Retry会解包后原样返回
			return backoff.Permanent(err)
		}
		return err
	}

	return backoff.Retry(operation,
		backoff.WithContext(backoff.WithMaxRetries(bo, uint64(attempts-1)), ctx))
}
