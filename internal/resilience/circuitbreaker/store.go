package circuitbreaker

import (
	"context"
	"errors"
	"time"
)

// StoreConfig returns configuration tuned for document store calls.
// Opens after 5 consecutive failures, 30 second timeout. Cancelled requests
// and the errors accepted by benign are not counted against the store.
func StoreConfig(benign ...error) Config {
	return Config{
		Name:             "document-store",
		MaxRequests:      3, // Allow 3 test requests in half-open state
		Interval:         time.Minute,
		Timeout:          30 * time.Second,
		FailureThreshold: 1.0, // Open on 100% failure (5+ consecutive failures)
		MinRequests:      5,
		IsSuccessful: func(err error) bool {
			if err == nil || errors.Is(err, context.Canceled) {
				return true
			}
			for _, b := range benign {
				if errors.Is(err, b) {
					return true
				}
			}
			return false
		},
	}
}

// Call runs fn through cb and returns its typed result.
// A nil breaker calls fn directly. The store layer never retries; an open
// circuit surfaces as gobreaker.ErrOpenState.
func Call[T any](cb *CircuitBreaker, fn func() (T, error)) (T, error) {
	if cb == nil {
		return fn()
	}
	var zero T
	result, err := cb.Execute(func() (interface{}, error) {
		return fn()
	})
	if err != nil {
		return zero, err
	}
	v, ok := result.(T)
	if !ok {
		return zero, nil
	}
	return v, nil
}
