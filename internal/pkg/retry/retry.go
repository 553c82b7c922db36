package retry

import (
	"context"
	"time"

	"github.com/avast/retry-go/v4"
)

const (
	defaultAttempts = 2
	defaultMaxDelay = 2 * time.Second
	defaultDelay    = 200 * time.Millisecond
)

type RetryConfig struct {
	Attempts uint          `env:"ATTEMPTS" envDefault:"2"`
	Delay    time.Duration `env:"DELAY" envDefault:"200ms"`
	MaxDelay time.Duration `env:"MAX_DELAY" envDefault:"2s"`
}

func (rc *RetryConfig) ToRetryOptions() []retry.Option {
	return []retry.Option{
		retry.Attempts(rc.Attempts),
		retry.MaxDelay(rc.MaxDelay),
		retry.Delay(rc.Delay),
		retry.LastErrorOnly(true),
	}
}

func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		Attempts: defaultAttempts,
		Delay:    defaultDelay,
		MaxDelay: defaultMaxDelay,
	}
}

// Do runs fn under the retry policy. Errors for which retryable returns false
// stop the loop immediately. A nil retryable retries every error.
func Do[T any](ctx context.Context, rc *RetryConfig, retryable func(error) bool, fn func() (T, error)) (T, error) {
	if rc == nil || rc.Attempts == 0 {
		rc = DefaultRetryConfig()
	}

	opts := append(rc.ToRetryOptions(), retry.Context(ctx))
	if retryable != nil {
		opts = append(opts, retry.RetryIf(retryable))
	}

	return retry.DoWithData(fn, opts...)
}
