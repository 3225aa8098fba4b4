package core

import (
	"context"
	"time"
)

// Logger receives service-level diagnostics. Implementations must be safe
// for reuse across operations.
type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// MetricsRecorder aggregates operation outcomes.
type MetricsRecorder interface {
	Observe(ctx context.Context, operation string, success bool, duration time.Duration)
}

// Tracer creates spans around service operations.
type Tracer interface {
	Start(ctx context.Context, operation string) (context.Context, TraceSpan)
}

// TraceSpan terminates a span started by a Tracer.
type TraceSpan interface {
	End(err error)
}

// Option customises service construction.
type Option func(*Service)

// WithLogger attaches a logger to the service.
func WithLogger(logger Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics attaches a metrics recorder to the service.
func WithMetrics(recorder MetricsRecorder) Option {
	return func(s *Service) { s.metrics = recorder }
}

// WithTracer attaches a tracer to the service.
func WithTracer(tracer Tracer) Option {
	return func(s *Service) { s.tracer = tracer }
}

// WithClock overrides the service clock (tests).
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.nowFn = now
		}
	}
}

type nopLogger struct{}

func (nopLogger) Infof(string, ...any)  {}
func (nopLogger) Warnf(string, ...any)  {}
func (nopLogger) Errorf(string, ...any) {}

// begin starts instrumentation for an operation and returns the context to
// use plus a completion callback.
func (s *Service) begin(ctx context.Context, operation string) (context.Context, func(error)) {
	started := s.nowFn()
	var span TraceSpan
	if s.tracer != nil {
		ctx, span = s.tracer.Start(ctx, operation)
	}
	return ctx, func(err error) {
		if span != nil {
			span.End(err)
		}
		if s.metrics != nil {
			s.metrics.Observe(ctx, operation, err == nil, s.nowFn().Sub(started))
		}
	}
}
