// Package httptransport assembles the chi router: global middleware, probes,
// the resident routes and the staff routes.
package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"gatehouse/internal/platform/health"
	"gatehouse/internal/platform/idempotency"
	"gatehouse/internal/ratelimit"
	adminmw "gatehouse/pkg/platform/middleware/admin"
	authmw "gatehouse/pkg/platform/middleware/auth"
	request "gatehouse/pkg/platform/middleware/request"
)

// ModuleRoutes is implemented by each domain handler.
type ModuleRoutes interface {
	RegisterAccount(r chi.Router)
	RegisterAdmin(r chi.Router)
}

// AdminRoutes is implemented by staff-only handlers such as the dashboard.
type AdminRoutes interface {
	Register(r chi.Router)
}

// StaffRoles may use the /admin routes.
var StaffRoles = []string{"STAFF", "ADMIN"}

type Deps struct {
	Logger         *slog.Logger
	Validator      authmw.JWTValidator
	Health         *health.Handler
	Metrics        http.Handler
	RequestMetrics *request.Metrics

	Idempotency    idempotency.Store
	IdempotencyTTL time.Duration

	// RateLimit applies to resident POST routes; nil disables it.
	RateLimit       ratelimit.Store
	RateLimitMax    int
	RateLimitWindow time.Duration

	CORSOrigins    []string
	RequestTimeout time.Duration
	MaxBodyBytes   int64

	Modules   []ModuleRoutes
	Dashboard AdminRoutes
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(request.Recovery(d.Logger))
	r.Use(request.RequestID)
	r.Use(request.RequestTime)
	r.Use(request.Logger(d.Logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID", idempotency.HeaderKey},
		ExposedHeaders:   []string{"X-Request-ID", idempotency.HeaderReplayed},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(request.LatencyMiddleware(d.RequestMetrics, routePattern))

	if d.Health != nil {
		d.Health.Register(r)
	}
	if d.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", d.Metrics)
	}

	r.Group(func(r chi.Router) {
		r.Use(request.Timeout(d.RequestTimeout))
		r.Use(request.BodyLimit(d.MaxBodyBytes))
		r.Use(request.ContentTypeJSON)
		r.Use(authmw.RequireAuth(d.Validator, d.Logger))
		if d.Idempotency != nil {
			r.Use(idempotency.Middleware(d.Idempotency, d.IdempotencyTTL, d.Logger))
		}

		r.Group(func(r chi.Router) {
			if d.RateLimit != nil {
				r.Use(ratelimit.PerAccount(d.RateLimit, d.RateLimitMax, d.RateLimitWindow, d.Logger))
			}
			for _, m := range d.Modules {
				m.RegisterAccount(r)
			}
		})

		r.Group(func(r chi.Router) {
			r.Use(adminmw.RequireRole(d.Logger, StaffRoles...))
			for _, m := range d.Modules {
				m.RegisterAdmin(r)
			}
			if d.Dashboard != nil {
				d.Dashboard.Register(r)
			}
		})
	})

	return r
}

// routePattern is read after the handler runs, when chi has filled in the
// matched pattern.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		return rctx.RoutePattern()
	}
	return ""
}
