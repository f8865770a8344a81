package countrydata

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// RetryPolicy controls how Fetch retries transient upstream failures.
type RetryPolicy struct {
	MaxRetries     int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	BackoffFactor  float64
	Jitter         bool
}

// DefaultRetryPolicy retries twice with exponential backoff starting at 500ms.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries:     2,
		InitialBackoff: 500 * time.Millisecond,
		MaxBackoff:     5 * time.Second,
		BackoffFactor:  2.0,
		Jitter:         true,
	}
}

// retryableError marks a failure worth another attempt.
type retryableError struct {
	err        error
	retryAfter time.Duration
}

func (e *retryableError) Error() string { return e.err.Error() }

func (e *retryableError) Unwrap() error { return e.err }

// classify marks transport failures, 429 and 5xx answers as retryable.
// Anything else is returned unchanged.
func classify(err error, resp *http.Response) error {
	var upstream *Error
	if !errors.As(err, &upstream) {
		return err
	}

	var transport *url.Error
	switch {
	case upstream.StatusCode == 0 && errors.As(upstream.Err, &transport):
		return &retryableError{err: err}
	case upstream.StatusCode == http.StatusTooManyRequests, upstream.StatusCode >= 500:
		re := &retryableError{err: err}
		if resp != nil {
			if secs, convErr := strconv.Atoi(resp.Header.Get("Retry-After")); convErr == nil && secs > 0 {
				re.retryAfter = time.Duration(secs) * time.Second
			}
		}
		return re
	default:
		return err
	}
}

// retry runs fn until it succeeds, returns a non-retryable error or the
// policy is exhausted. The final error is unwrapped from its retry marker.
func retry(ctx context.Context, policy RetryPolicy, fn func() error) error {
	var lastErr error

	for attempt := 0; attempt <= policy.MaxRetries; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}

		var re *retryableError
		if !errors.As(err, &re) {
			return err
		}
		lastErr = re.err

		if attempt == policy.MaxRetries {
			break
		}

		wait := backoff(policy, attempt)
		if re.retryAfter > 0 {
			wait = min(re.retryAfter, policy.MaxBackoff)
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("retry cancelled: %w", errors.Join(ctx.Err(), lastErr))
		case <-timer.C:
		}
	}

	return lastErr
}

func backoff(policy RetryPolicy, attempt int) time.Duration {
	d := float64(policy.InitialBackoff) * math.Pow(policy.BackoffFactor, float64(attempt))
	if d > float64(policy.MaxBackoff) {
		d = float64(policy.MaxBackoff)
	}

	if policy.Jitter {
		d += d * 0.1 * (2*rand.Float64() - 1)
	}
	return time.Duration(d)
}
