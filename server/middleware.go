package server

import (
	"time"

	"github.com/hsdfat8/diam-peer/codec"
	"github.com/hsdfat8/diam-peer/pkg/logger"
	"github.com/hsdfat8/diam-peer/pkg/metrics"
)

// Middleware wraps a Handler with cross-cutting behavior.
type Middleware func(next Handler) Handler

// ChainMiddleware chains multiple middlewares together
func ChainMiddleware(middlewares ...Middleware) Middleware {
	return func(next Handler) Handler {
		for i := len(middlewares) - 1; i >= 0; i-- {
			next = middlewares[i](next)
		}
		return next
	}
}

// LoggingMiddleware logs each request and its handling duration.
func LoggingMiddleware(log logger.Logger) Middleware {
	return func(next Handler) Handler {
		return func(req *codec.Message) (*codec.Message, error) {
			start := time.Now()

			log.Debugw("Request received",
				"code", req.Header.CommandCode,
				"app_id", req.Header.ApplicationID,
				"h2h", req.Header.HopByHopID,
				"e2e", req.Header.EndToEndID)

			answer, err := next(req)

			duration := time.Since(start)
			if err != nil {
				log.Warnw("Request failed",
					"code", req.Header.CommandCode,
					"duration_ms", duration.Milliseconds(),
					"error", err)
			} else {
				log.Debugw("Request processed",
					"code", req.Header.CommandCode,
					"duration_ms", duration.Milliseconds())
			}
			return answer, err
		}
	}
}

// RecoveryMiddleware converts handler panics into errors so the worker
// can answer with the generic failure instead of dying.
func RecoveryMiddleware(log logger.Logger) Middleware {
	return func(next Handler) Handler {
		return func(req *codec.Message) (answer *codec.Message, err error) {
			defer func() {
				if r := recover(); r != nil {
					log.Errorw("Panic recovered in handler",
						"code", req.Header.CommandCode,
						"error", r)
					answer = nil
					err = ErrHandlerPanic{Value: r}
				}
			}()
			return next(req)
		}
	}
}

// MetricsMiddleware counts handled requests per command code.
func MetricsMiddleware(m *metrics.MessageTypeMetrics) Middleware {
	return func(next Handler) Handler {
		return func(req *codec.Message) (*codec.Message, error) {
			m.Increment(req.Header.CommandCode)
			return next(req)
		}
	}
}
