package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "warbler_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// FollowMutations counts follow edge mutations by action and outcome.
	FollowMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "warbler_follow_mutations_total",
		Help: "Total number of follow/unfollow operations by action and outcome",
	}, []string{"action", "outcome"})

	// LikeMutations counts like edge mutations by action and outcome.
	LikeMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "warbler_like_mutations_total",
		Help: "Total number of like/unlike operations by action and outcome",
	}, []string{"action", "outcome"})
)

// InitMetrics creates the Prometheus HTTP middleware for the given service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware returns the Fiber handler that records per-request metrics.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
