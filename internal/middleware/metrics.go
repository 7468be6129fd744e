package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis command failures by command name. Incremented
	// by the cache package's client hook.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "campwild_redis_errors_total",
		Help: "Total number of Redis command errors by command",
	}, []string{"command"})

	// ExternalCalls counts outbound calls to third-party providers
	// (media storage, geocoding, mail) by provider and outcome.
	ExternalCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "campwild_external_calls_total",
		Help: "Total number of external provider calls by provider and outcome",
	}, []string{"provider", "outcome"})
)

// ObserveExternalCall records the outcome of a provider call.
func ObserveExternalCall(provider string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	ExternalCalls.WithLabelValues(provider, outcome).Inc()
}

// InitMetrics creates the Prometheus HTTP middleware for the given service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware wraps the Prometheus middleware as a Fiber handler.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
