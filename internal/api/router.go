package api

import (
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/go-chi/chi/v5"

	"github.com/folioforge/folioforge/internal/api/handler"
	"github.com/folioforge/folioforge/internal/api/middleware"
	"github.com/folioforge/folioforge/internal/auth"
	"github.com/folioforge/folioforge/internal/portfolio"
)

// RouterDeps holds all dependencies needed by the router.
type RouterDeps struct {
	DBPinger      handler.DBPinger
	Version       string
	Verifier      *auth.Verifier
	AuthService   *auth.Service
	Users         auth.UserRepository
	Portfolios    portfolio.Repository
	SlugAllocator *portfolio.Allocator
}

// NewRouter creates and configures a Chi router with all middleware and routes.
func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery)
	r.Use(chimiddleware.Logger)

	healthHandler := handler.NewHealthHandler(deps.DBPinger, deps.Version)
	r.Get("/health", healthHandler.ServeHTTP)

	authHandler := handler.NewAuthHandler(deps.AuthService, deps.Users)
	r.Post("/auth/register", authHandler.Register)
	r.Post("/auth/login", authHandler.Login)

	portfolioHandler := handler.NewPortfolioHandler(deps.Portfolios, deps.SlugAllocator)
	r.Get("/slugs/{slug}/availability", portfolioHandler.CheckAvailability)
	r.Get("/p/{slug}", portfolioHandler.PublicBySlug)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(deps.Verifier))

		r.Get("/me", authHandler.Me)

		r.Route("/portfolios", func(r chi.Router) {
			r.Post("/", portfolioHandler.Create)
			r.Get("/", portfolioHandler.List)
			r.Get("/{id}", portfolioHandler.GetByID)
			r.Patch("/{id}", portfolioHandler.Update)
			r.Delete("/{id}", portfolioHandler.Delete)
			r.Post("/{id}/slug", portfolioHandler.ReserveSlug)
		})
	})

	return r
}
