// Package resilient decorates an AnalyticsReaderPort with a circuit breaker
// and storage metrics.
package resilient

import (
	"context"
	"errors"
	"fmt"
	"time"

	"blog-analytics-service/internal/analytics/core/domain"
	"blog-analytics-service/internal/analytics/core/ports"
	"blog-analytics-service/internal/metrics"

	gobreaker "github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

type Config struct {
	// Name identifies the breaker in logs and metrics.
	Name string

	// MaxRequests is the number of requests allowed in half-open state.
	MaxRequests uint32

	// Interval is the cyclic reset period for counts in closed state.
	Interval time.Duration

	// Timeout is the time spent open before moving to half-open.
	Timeout time.Duration

	// FailureThreshold is the number of consecutive failures that opens the breaker.
	FailureThreshold uint32
}

func DefaultConfig() Config {
	return Config{
		Name:             "analytics-db",
		MaxRequests:      3,
		Interval:         time.Minute,
		Timeout:          30 * time.Second,
		FailureThreshold: 5,
	}
}

type Reader struct {
	next ports.AnalyticsReaderPort
	cb   *gobreaker.CircuitBreaker[any]
	name string
	log  *zap.Logger
}

func NewReader(next ports.AnalyticsReaderPort, cfg Config, log *zap.Logger) *Reader {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Reader{next: next, name: cfg.Name, log: log}

	metrics.CircuitBreakerState.WithLabelValues(cfg.Name).Set(0)

	r.cb = gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		// cancellations and rejected queries do not count as failures
		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, context.Canceled) ||
				domain.IsKnown(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			r.log.Warn("circuit breaker state change",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
	})

	return r
}

func (r *Reader) State() gobreaker.State {
	return r.cb.State()
}

// BreakerState is the state name for health reporting.
func (r *Reader) BreakerState() string {
	return r.cb.State().String()
}

func (r *Reader) ListViews(ctx context.Context, q ports.ViewQuery) ([]domain.ViewRecord, error) {
	return execute[[]domain.ViewRecord](r, "list_views", func() (any, error) {
		return r.next.ListViews(ctx, q)
	})
}

func (r *Reader) ListBlogs(ctx context.Context, q ports.BlogQuery) ([]domain.BlogRecord, error) {
	return execute[[]domain.BlogRecord](r, "list_blogs", func() (any, error) {
		return r.next.ListBlogs(ctx, q)
	})
}

func execute[T any](r *Reader, op string, fn func() (any, error)) (T, error) {
	var zero T

	start := time.Now()
	result, err := r.cb.Execute(fn)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(r.name, "rejected").Inc()
			r.log.Warn("storage call rejected", zap.String("operation", op), zap.Error(err))
			return zero, fmt.Errorf("%s: %w", op, err)
		}
		metrics.CircuitBreakerRequests.WithLabelValues(r.name, "failure").Inc()
		metrics.RecordDBQuery(op, time.Since(start), err)
		return zero, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(r.name, "success").Inc()
	metrics.RecordDBQuery(op, time.Since(start), nil)

	if result == nil {
		return zero, nil
	}
	typed, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

func stateToFloat(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
