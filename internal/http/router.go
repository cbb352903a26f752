package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Deps collects everything the router wires together.
type Deps struct {
	Sessions       SessionManager
	Cart           CartStore
	Catalog        CatalogSource
	Finder         PluginFinder
	Checkout       CheckoutFlow
	Account        AccountAPI
	Admin          AdminAPI
	RequestTimeout time.Duration
}

func NewRouter(deps Deps) http.Handler {
	authHandler := NewAuthHandler(deps.Sessions)
	cartHandler := NewCartHandler(deps.Cart, deps.Finder)
	checkoutHandler := NewCheckoutHandler(deps.Checkout)
	catalogHandler := NewCatalogHandler(deps.Catalog)
	accountHandler := NewAccountHandler(deps.Account, deps.Sessions)
	adminHandler := NewAdminHandler(deps.Admin)
	gate := NewGate(deps.Sessions)

	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(deps.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(WithSession)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/logout", authHandler.Logout)

		r.Get("/store/plugins", catalogHandler.List)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.Get)
			r.Delete("/", cartHandler.Clear)
			r.Post("/items", cartHandler.AddItem)
			r.Delete("/items/{id}", cartHandler.RemoveItem)
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Get("/", checkoutHandler.Get)
			r.Post("/", checkoutHandler.Submit)
			r.Delete("/", checkoutHandler.Cancel)
			r.Post("/verify", checkoutHandler.Verify)
		})

		r.Group(func(r chi.Router) {
			r.Use(gate.RequireAuth)
			r.Get("/client/me", authHandler.Me)
			r.Get("/client/license", accountHandler.License)
			r.Post("/client/license/reset", accountHandler.ResetLicense)
			r.Post("/client/license/ip", accountHandler.UpdateLicenseIP)
			r.Get("/client/sales", accountHandler.Sales)
			r.Get("/client/top-buyers", accountHandler.TopBuyers)
			r.Get("/client/activities", accountHandler.Activities)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(gate.RequireAuth)
			r.Use(gate.RequireAdmin)

			r.Get("/dashboard/stats", adminHandler.DashboardStats)

			r.Get("/plugins", adminHandler.ListPlugins)
			r.Post("/plugins", adminHandler.CreatePlugin)
			r.Put("/plugins/{id}", adminHandler.UpdatePlugin)
			r.Delete("/plugins/{id}", adminHandler.DeletePlugin)
			r.Get("/plugins/{id}/versions", adminHandler.ListPluginVersions)
			r.Post("/plugins/{id}/versions", adminHandler.CreatePluginVersion)
			r.Delete("/plugins/{id}/versions/{versionId}", adminHandler.DeletePluginVersion)

			r.Get("/partners", adminHandler.ListPartners)
			r.Post("/partners", adminHandler.CreatePartner)
			r.Delete("/partners/{id}", adminHandler.DeletePartner)

			r.Get("/coupons", adminHandler.ListCoupons)
			r.Post("/coupons", adminHandler.CreateCoupon)
			r.Delete("/coupons/{id}", adminHandler.DeleteCoupon)

			r.Get("/licenses", adminHandler.ListLicenses)
			r.Post("/licenses", adminHandler.CreateLicense)
			r.Post("/licenses/{key}/reset", adminHandler.ResetLicense)

			r.Get("/sales", adminHandler.ListSales)
			r.Delete("/sales/{id}", adminHandler.DeleteSale)

			r.Get("/users", adminHandler.ListUsers)
		})
	})

	return r
}
