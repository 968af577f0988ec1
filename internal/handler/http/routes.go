package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MKhiriev/go-repa/models"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(h.withTraceID, h.withLogging, middleware.Recoverer)
	router.Use(middleware.Compress(5, "application/json"))
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	router.Get("/healthz", h.healthz)
	router.Get("/api/version", h.getServerVersion)
	router.Method("GET", "/metrics", h.metrics.Handler())

	router.Route("/users", func(r chi.Router) {
		// routes without authorization
		r.Post("/register", h.register)
		r.Get("/confirm", h.confirm)
		r.Post("/confirm", h.confirm)
		r.Post("/login", h.login)
		r.Post("/refresh", h.refresh)

		r.Group(func(r chi.Router) {
			r.Use(h.auth)
			r.Get("/me", h.me)
			r.Put("/me", h.updateMe)
			r.Delete("/me", h.deactivateMe)
		})
	})

	// routes with authorization
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/training", func(r chi.Router) {
			r.Post("/create", h.createTraining)
			r.Put("/update/{id}", h.updateTraining)
			r.Get("/me/{id}", h.getTraining)
			r.Get("/list", h.listTrainings)
			r.Delete("/delete/{id}", h.deleteTraining)
		})

		r.Route("/work", func(r chi.Router) {
			r.Get("/", h.listWorks)
			r.Post("/", h.createWork)
			r.Get("/roles", h.listWorkRoles)
			r.Get("/tasks", h.listWorkTasks)
			r.Get("/{id}", h.getWork)
			r.Put("/{id}", h.updateWork)
			r.Delete("/{id}", h.deleteWork)
		})

		r.Route("/persons", func(r chi.Router) {
			r.With(h.requireRoles(models.RoleAdmin, models.RoleEditor)).Post("/", h.createPerson)
			r.With(h.requireRoles(models.RoleAdmin, models.RoleViewer)).Get("/{id}", h.getPerson)
			r.With(h.requireRoles(models.RoleAdmin, models.RoleEditor)).Put("/{id}", h.updatePerson)
			r.With(h.requireRoles(models.RoleAdmin)).Delete("/{id}", h.deletePerson)
		})

		r.Route("/admin_user", func(r chi.Router) {
			r.Use(h.requireRoles(models.RoleAdmin))
			r.Get("/users", h.listUsers)
			r.Get("/{id}", h.getUser)
			r.Put("/{id}", h.updateUser)
			r.Delete("/{id}", h.deactivateUser)
			r.Patch("/{id}/active", h.setUserActive)
			r.Post("/{id}/roles", h.setUserRoles)
		})

		r.With(h.requireRoles(models.RoleAdmin)).Get("/admin_training/training", h.listAllTrainings)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
