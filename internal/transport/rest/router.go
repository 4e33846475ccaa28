package rest

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/interpolice/interpolice-backend/internal/config"
	"github.com/interpolice/interpolice-backend/internal/domain"
	"github.com/interpolice/interpolice-backend/internal/metrics"
	"github.com/interpolice/interpolice-backend/internal/transport/middleware"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth     *AuthHandler
	Citizens *CitizenHandler
	Citation *CitationHandler
	Records  *RecordHandler
	Planets  *PlanetHandler
	Stats    *StatsHandler
	Health   *HealthHandler
}

// RouterDeps carries the cross-cutting pieces the router needs.
type RouterDeps struct {
	Logger     *slog.Logger
	Metrics    *metrics.Metrics
	Validator  middleware.TokenValidator
	CORS       config.CORSConfig
	UploadsDir string
	RateLimit  *middleware.RateLimiter
}

// NewRouter builds the HTTP routing table. Every route names its method and
// role allow-list here, in one place.
func NewRouter(h Handlers, deps RouterDeps) http.Handler {
	mux := http.NewServeMux()

	authed := middleware.Auth(deps.Validator)
	anyRole := middleware.RequireRole(domain.RoleAdmin, domain.RoleOfficer, domain.RoleAuditor)
	writers := middleware.RequireRole(domain.RoleAdmin, domain.RoleOfficer)
	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	read := middleware.Chain(authed, anyRole)
	write := middleware.Chain(authed, writers)
	admin := middleware.Chain(authed, adminOnly)

	// Infrastructure
	mux.HandleFunc("GET /health", h.Health.Health)
	mux.HandleFunc("GET /health/live", h.Health.Live)
	mux.HandleFunc("GET /health/ready", h.Health.Ready)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(deps.UploadsDir))))

	// Auth
	loginLimit := deps.RateLimit.Limit(10)
	mux.Handle("POST /auth/login", loginLimit(http.HandlerFunc(h.Auth.Login)))
	mux.Handle("POST /auth/refresh", loginLimit(http.HandlerFunc(h.Auth.Refresh)))
	mux.HandleFunc("POST /auth/logout", h.Auth.Logout)
	mux.Handle("POST /auth/register", admin(http.HandlerFunc(h.Auth.Register)))

	// Citizens
	mux.Handle("POST /citizens", write(http.HandlerFunc(h.Citizens.Create)))
	mux.Handle("GET /citizens", read(http.HandlerFunc(h.Citizens.List)))
	mux.Handle("GET /citizens/{id}", read(http.HandlerFunc(h.Citizens.Get)))
	mux.Handle("PUT /citizens/{id}", write(http.HandlerFunc(h.Citizens.Update)))
	mux.Handle("DELETE /citizens/{id}", admin(http.HandlerFunc(h.Citizens.Delete)))
	mux.Handle("POST /citizens/{id}/avatar", write(http.HandlerFunc(h.Citizens.UploadAvatar)))
	mux.Handle("DELETE /citizens/{id}/avatar", write(http.HandlerFunc(h.Citizens.DeleteAvatar)))

	// Citations
	mux.Handle("POST /citizens/{id}/citations", write(http.HandlerFunc(h.Citation.File)))
	mux.Handle("GET /citizens/{id}/citations", read(http.HandlerFunc(h.Citation.ListByCitizen)))
	mux.Handle("GET /citations", read(http.HandlerFunc(h.Citation.List)))
	mux.Handle("GET /citations/{id}", read(http.HandlerFunc(h.Citation.Get)))
	mux.Handle("PUT /citations/{id}", admin(http.HandlerFunc(h.Citation.Update)))
	mux.Handle("DELETE /citations/{id}", admin(http.HandlerFunc(h.Citation.Delete)))

	// Criminal records
	mux.Handle("POST /records", admin(http.HandlerFunc(h.Records.Create)))
	mux.Handle("GET /records", read(http.HandlerFunc(h.Records.List)))
	mux.Handle("GET /records/{id}", read(http.HandlerFunc(h.Records.Get)))
	mux.Handle("GET /citizens/{id}/records", read(http.HandlerFunc(h.Records.ListByCitizen)))
	mux.Handle("PUT /records/{id}", admin(http.HandlerFunc(h.Records.Update)))
	mux.Handle("DELETE /records/{id}", admin(http.HandlerFunc(h.Records.Delete)))

	// Planets
	mux.Handle("POST /planets", admin(http.HandlerFunc(h.Planets.Create)))
	mux.Handle("GET /planets", read(http.HandlerFunc(h.Planets.List)))

	// Stats
	mux.Handle("GET /stats/overview", read(http.HandlerFunc(h.Stats.Overview)))
	mux.Handle("GET /stats/top-offenders", read(http.HandlerFunc(h.Stats.TopOffenders)))
	mux.Handle("GET /stats/records-by-planet", read(http.HandlerFunc(h.Stats.RecordsByPlanet)))

	outer := middleware.Chain(
		middleware.RequestID,
		middleware.Recovery(deps.Logger),
		middleware.Logger(deps.Logger),
		middleware.Metrics(deps.Metrics),
		middleware.CORS(deps.CORS),
	)

	return outer(mux)
}
