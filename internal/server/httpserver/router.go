package httpserver

import (
	"net/http"

	"github.com/yndnr/sealslot-go/internal/core/service"
	"github.com/yndnr/sealslot-go/internal/server/config"
	"github.com/yndnr/sealslot-go/internal/server/httpserver/handler"
	"github.com/yndnr/sealslot-go/internal/telemetry/logger"
	"github.com/yndnr/sealslot-go/internal/telemetry/metric"
)

// RouterConfig holds configuration for the HTTP router.
type RouterConfig struct {
	// Protocol serves register, read, write and recover.
	Protocol *service.ProtocolService

	// Limiter applies per-IP rate limits. Nil disables rate limiting.
	Limiter *service.RateLimiterRegistry

	// Metrics records request metrics and serves /metrics. Nil disables both.
	Metrics *metric.Registry

	// Logger for request logging.
	Logger logger.Logger

	// HTTP holds body limit, CORS, audit and metrics settings.
	HTTP config.HTTPConfig

	// Ready reports readiness for GET /ready. Nil means always ready.
	Ready func() bool
}

// NewRouter creates and configures the HTTP router with all routes and middleware.
func NewRouter(cfg *RouterConfig) http.Handler {
	l := cfg.Logger
	if l == nil {
		l = logger.Default()
	}

	h := handler.New(cfg.Protocol, l, handler.WithReadiness(cfg.Ready))
	mux := http.NewServeMux()

	route := func(pattern, label string, mws ...Middleware) {
		if cfg.Metrics != nil {
			mws = append([]Middleware{Instrument(label, cfg.Metrics)}, mws...)
		}
		mux.Handle(pattern, Chain(h, mws...))
	}

	// Health endpoints are never limited.
	route("GET /health", "/health")
	route("GET /ready", "/ready")

	var limited []Middleware
	if cfg.Limiter != nil {
		var onReject func()
		if cfg.Metrics != nil {
			onReject = cfg.Metrics.IncRateLimited
		}
		limited = append(limited, RateLimit(cfg.Limiter, onReject))
	}
	if cfg.HTTP.MaxBodyBytes > 0 {
		limited = append(limited, MaxBytes(cfg.HTTP.MaxBodyBytes))
	}
	authed := append(append([]Middleware{}, limited...), ClientAuth(cfg.Protocol.Registry()))

	route("POST /init", "/init", limited...)
	route("GET /{$}", "/", authed...)
	route("POST /{$}", "/", authed...)
	route("GET /recover", "/recover", authed...)

	if cfg.Metrics != nil && cfg.HTTP.MetricsEnabled {
		mux.Handle("GET /metrics", Chain(cfg.Metrics.Handler(), MetricsAuth(cfg.HTTP.MetricsToken)))
	}

	// Order: Recover -> RequestID -> CORS -> Audit -> route chain.
	outer := []Middleware{Recover(l), RequestID(), CORS(cfg.HTTP.CORSAllowedOrigins)}
	if cfg.HTTP.Audit {
		outer = append(outer, Audit(l))
	}
	return Chain(mux, outer...)
}
