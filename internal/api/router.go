package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/devtrack/engine/internal/api/handlers"
	mw "github.com/devtrack/engine/internal/api/middleware"
	"github.com/devtrack/engine/internal/models"
)

type Dependencies struct {
	HMACSecret     []byte
	CORSOrigins    []string
	RateLimitRPS   float64
	RateLimitBurst int
	// TrustProxy makes X-Forwarded-For and X-Real-IP authoritative for the
	// client address. Enable only behind a proxy that overwrites them.
	TrustProxy bool
	// Ctx bounds background work started by middleware. Defaults to
	// context.Background.
	Ctx context.Context

	HealthHandler       *handlers.HealthHandler
	AuthHandler         *handlers.AuthHandler
	ProjectsHandler     *handlers.ProjectsHandler
	FeaturesHandler     *handlers.WorkItemsHandler[models.Feature]
	BugsHandler         *handlers.WorkItemsHandler[models.Bug]
	ImprovementsHandler *handlers.WorkItemsHandler[models.Improvement]
	ActivitiesHandler   *handlers.ActivitiesHandler
}

func NewRouter(dep Dependencies) http.Handler {
	r := chi.NewRouter()

	// Built-in middleware
	if dep.TrustProxy {
		r.Use(chimid.RealIP)
	}
	r.Use(mw.RequestID)
	r.Use(mw.Recovery)
	r.Use(mw.Logging)
	r.Use(mw.CORS(dep.CORSOrigins))
	if dep.RateLimitRPS > 0 {
		ctx := dep.Ctx
		if ctx == nil {
			ctx = context.Background()
		}
		r.Use(mw.RateLimit(ctx, dep.RateLimitRPS, dep.RateLimitBurst))
	}
	r.Use(chimid.Compress(5))

	// Health endpoints
	hh := dep.HealthHandler
	if hh == nil {
		hh = handlers.NewHealthHandler(nil)
	}
	r.Get("/healthz", hh.Liveness)
	r.Get("/readyz", hh.Readiness)

	// Swagger documentation
	r.Get("/docs/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/doc.json"),
	))

	r.Route("/api/v1", func(api chi.Router) {
		// Auth routes (public)
		api.Route("/auth", func(ar chi.Router) {
			ar.Post("/register", dep.AuthHandler.Register)
			ar.Post("/login", dep.AuthHandler.Login)
			ar.Post("/logout", dep.AuthHandler.Logout)
		})

		// Protected routes
		api.Group(func(protected chi.Router) {
			protected.Use(mw.Auth(dep.HMACSecret))

			protected.Get("/users/me", dep.AuthHandler.Me)

			// Projects
			protected.Route("/projects", func(pr chi.Router) {
				pr.Get("/", dep.ProjectsHandler.List)
				pr.Post("/", dep.ProjectsHandler.Create)
				pr.Get("/{projectId}", dep.ProjectsHandler.Get)
				pr.Put("/{projectId}", dep.ProjectsHandler.Update)
				pr.Patch("/{projectId}", dep.ProjectsHandler.Update)
				pr.Delete("/{projectId}", dep.ProjectsHandler.Delete)
				pr.Get("/{projectId}/activities", dep.ProjectsHandler.Activities)

				nestWorkItems(pr, "/{projectId}/features", dep.FeaturesHandler)
				nestWorkItems(pr, "/{projectId}/bugs", dep.BugsHandler)
				nestWorkItems(pr, "/{projectId}/improvements", dep.ImprovementsHandler)
			})

			mountWorkItems(protected, "/features", dep.FeaturesHandler)
			mountWorkItems(protected, "/bugs", dep.BugsHandler)
			mountWorkItems(protected, "/improvements", dep.ImprovementsHandler)

			// Activities
			protected.Route("/activities", func(ar chi.Router) {
				ar.Get("/", dep.ActivitiesHandler.List)
				ar.Get("/{id}", dep.ActivitiesHandler.Get)
			})
		})
	})

	return r
}

func mountWorkItems[T any](r chi.Router, path string, h *handlers.WorkItemsHandler[T]) {
	r.Route(path, func(wr chi.Router) {
		wr.Get("/", h.List)
		wr.Post("/", h.Create)
		wr.Get("/{id}", h.Get)
		wr.Put("/{id}", h.Update)
		wr.Patch("/{id}", h.Update)
		wr.Delete("/{id}", h.Delete)
		wr.Put("/{id}/update-status", h.UpdateStatus)
	})
}

func nestWorkItems[T any](r chi.Router, path string, h *handlers.WorkItemsHandler[T]) {
	r.Get(path, h.ListByProject)
	r.Post(path, h.Create)
}
