package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "moodia_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"command"})

	// CacheHits counts cache-aside hits per key prefix.
	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "moodia_cache_hits_total",
		Help: "Total number of cache hits by key prefix",
	}, []string{"prefix"})

	// CacheMisses counts cache-aside misses per key prefix.
	CacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "moodia_cache_misses_total",
		Help: "Total number of cache misses by key prefix",
	}, []string{"prefix"})

	// ActiveWebSockets is the gauge of open feed websocket connections.
	ActiveWebSockets = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "moodia_websocket_connections",
		Help: "Number of active WebSocket connections",
	})

	// MoodSelections counts daily mood selections by mood id.
	MoodSelections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "moodia_mood_selections_total",
		Help: "Total number of daily mood selections by mood",
	}, []string{"mood"})

	// ReactionToggles counts reaction toggles by kind and direction.
	ReactionToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "moodia_reaction_toggles_total",
		Help: "Total number of reaction toggles by kind and direction",
	}, []string{"kind", "direction"})

	// WebSocketDrops counts messages dropped due to client backpressure.
	WebSocketDrops = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "moodia_websocket_dropped_messages_total",
		Help: "Total number of websocket messages dropped by reason",
	}, []string{"reason"})
)

// InitMetrics creates the fiberprometheus middleware for HTTP-level metrics.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware wraps the fiberprometheus handler as Fiber middleware.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
