// Package breaker centralizes circuit breaker settings for outbound calls.
package breaker

import (
	"time"

	"github.com/sony/gobreaker/v2"
)

const (
	maxHalfOpenRequests = 3
	openTimeout         = 30 * time.Second
	failureThreshold    = 5
)

// New returns a circuit breaker named after the call it guards. The breaker
// opens after five consecutive failures and probes again after 30 seconds.
func New[T any](name string) *gobreaker.CircuitBreaker[T] {
	return gobreaker.NewCircuitBreaker[T](gobreaker.Settings{
		Name:        name,
		MaxRequests: maxHalfOpenRequests,
		Timeout:     openTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failureThreshold
		},
	})
}
