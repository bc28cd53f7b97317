// Package retry runs fallible calls to external capabilities with a fixed
// delay between attempts.
package retry

import (
	"context"
	"fmt"
	"time"

	"github.com/spigell/hr-screener/internal/utils"
	"go.uber.org/zap"
)

const (
	DefaultMaxAttempts = 3
	DefaultDelay       = 2 * time.Second
)

// Policy controls how many attempts are made and how long to wait between them.
type Policy struct {
	MaxAttempts int           `mapstructure:"max-attempts"`
	Delay       time.Duration `mapstructure:"delay"`
}

func DefaultPolicy() Policy {
	return Policy{MaxAttempts: DefaultMaxAttempts, Delay: DefaultDelay}
}

func (p Policy) normalized() Policy {
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = DefaultMaxAttempts
	}
	if p.Delay < 0 {
		p.Delay = 0
	}
	return p
}

// Do invokes op until it succeeds or the policy is exhausted. Every error is
// treated as retryable. After the last attempt the last error is returned
// unchanged. Waiting between attempts stops early when ctx is done; the
// returned error then wraps ctx.Err().
func Do[T any](ctx context.Context, policy Policy, logger *zap.Logger, name string, op func(context.Context) (T, error)) (T, error) {
	var zero T

	if logger == nil {
		logger = zap.NewNop()
	}
	policy = policy.normalized()

	var lastErr error
	for attempt := 1; attempt <= policy.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, interrupted(name, err, lastErr)
		}

		result, err := op(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if attempt == policy.MaxAttempts {
			logger.Error("all attempts failed",
				zap.String("operation", name),
				zap.Int("attempts", policy.MaxAttempts),
				zap.Error(err),
			)
			break
		}

		logger.Warn("attempt failed, retrying",
			zap.String("operation", name),
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", policy.MaxAttempts),
			zap.Duration("delay", policy.Delay),
			zap.Error(err),
		)

		if err := utils.WaitFor(ctx, policy.Delay); err != nil {
			return zero, interrupted(name, err, lastErr)
		}
	}

	return zero, lastErr
}

func interrupted(name string, ctxErr, lastErr error) error {
	if lastErr == nil {
		return fmt.Errorf("%s: %w", name, ctxErr)
	}
	return fmt.Errorf("%s: %w (last error: %v)", name, ctxErr, lastErr)
}
