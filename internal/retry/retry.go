// Package retry provides a small retry helper with exponential backoff for
// transient failures on external calls.
package retry

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrMaxAttemptsExceeded is returned when all attempts have failed.
var ErrMaxAttemptsExceeded = errors.New("max retry attempts exceeded")

// Config configures retry behavior.
type Config struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int
	// InitialDelay is the delay before the first retry.
	InitialDelay time.Duration
	// MaxDelay caps the exponential backoff.
	MaxDelay time.Duration
	// IsRetryable decides whether an error is worth retrying.
	// Defaults to IsTransient.
	IsRetryable func(error) bool
}

// DefaultConfig returns the retry configuration used for image provider calls.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:  3,
		InitialDelay: 200 * time.Millisecond,
		MaxDelay:     10 * time.Second,
		IsRetryable:  IsTransient,
	}
}

// IsTransient reports whether err looks like a transient network failure.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, pattern := range []string{
		"timeout",
		"deadline exceeded",
		"connection refused",
		"connection reset",
		"temporary failure",
		"i/o timeout",
	} {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}

// Do executes fn, retrying retryable errors with exponential backoff until
// the attempts are exhausted or ctx is done.
func Do(ctx context.Context, cfg Config, fn func() error) error {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}
	if cfg.IsRetryable == nil {
		cfg.IsRetryable = IsTransient
	}

	var lastErr error
	delay := cfg.InitialDelay

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if !cfg.IsRetryable(lastErr) {
			return lastErr
		}
		if attempt == cfg.MaxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}

		delay *= 2
		if cfg.MaxDelay > 0 && delay > cfg.MaxDelay {
			delay = cfg.MaxDelay
		}
	}

	return fmt.Errorf("%w after %d attempts: %w", ErrMaxAttemptsExceeded, cfg.MaxAttempts, lastErr)
}
