package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Init builds the route tree. Authorization policy is applied per route
// group: public reads, authenticated writes, and admin-only management
// endpoints.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/login", h.login)

		r.Get("/api/products", h.listProducts)
		r.Get("/api/products/available", h.listAvailableProducts)
		r.Get("/api/products/{id}", h.getProduct)
	})

	// account routes: admin or the account owner
	router.Group(func(r chi.Router) {
		r.With(h.requireAdminOrOwner("id")).Get("/api/users/{id}", h.getUser)
		r.With(h.requireAdminOrOwner("id")).Put("/api/users/{id}", h.updateUser)
		r.With(h.requireAdmin).Delete("/api/users/{id}", h.deleteUser)
		r.With(h.requireAdmin).Get("/api/users", h.listUsers)
	})

	// catalog management: admin only
	router.Group(func(r chi.Router) {
		r.Use(h.requireAdmin)
		r.Post("/api/products", h.createProduct)
		r.Put("/api/products/{id}", h.updateProduct)
		r.Delete("/api/products/{id}", h.deleteProduct)
	})

	// orders
	router.Group(func(r chi.Router) {
		r.With(h.verifyIdentity).Post("/api/orders", h.createOrder)
		r.With(h.verifyIdentity).Get("/api/orders/{id}", h.getOrder)
		r.With(h.requireAdmin).Get("/api/orders", h.listOrders)
		r.With(h.requireAdmin).Put("/api/orders/{id}/status", h.updateOrderStatus)
		r.With(h.requireAdmin).Delete("/api/orders/{id}", h.deleteOrder)
	})

	return router
}
