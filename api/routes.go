package api

import (
	"github.com/go-chi/chi/v5"
)

// setupPublicRoutes registers routes that need no token
func setupPublicRoutes(r chi.Router, handlers *routeHandlers, limiter *loginLimiter) {
	r.Get("/health", handlers.healthHandler.health())

	r.Post("/api/auth/register", handlers.authHandler.register())
	r.With(limiter.middleware).Post("/api/auth/login", handlers.authHandler.login())

	r.Get("/api/public/users/{userID}/projects", handlers.publicHandler.getVisibleProjects())
}

// setupAuthenticatedRoutes registers the owner-scoped resource routes
func setupAuthenticatedRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.authenticate)

		r.Get("/api/auth/me", handlers.authHandler.me())

		r.Route("/api/categories", func(r chi.Router) {
			r.Get("/", handlers.categoryHandler.getAllCategories())
			r.Post("/", handlers.categoryHandler.createCategory())
			r.Get("/{categoryID}", handlers.categoryHandler.getCategory())
			r.Put("/{categoryID}", handlers.categoryHandler.updateCategory())
			r.Delete("/{categoryID}", handlers.categoryHandler.deleteCategory())
		})

		r.Route("/api/technologies", func(r chi.Router) {
			r.Get("/", handlers.technologyHandler.getAllTechnologies())
			r.Post("/", handlers.technologyHandler.createTechnology())
			r.Get("/{technologyID}", handlers.technologyHandler.getTechnology())
			r.Put("/{technologyID}", handlers.technologyHandler.updateTechnology())
			r.Delete("/{technologyID}", handlers.technologyHandler.deleteTechnology())
		})

		r.Route("/api/technologygroups", func(r chi.Router) {
			r.Get("/", handlers.technologyGroupHandler.getAllTechnologyGroups())
			r.Post("/", handlers.technologyGroupHandler.createTechnologyGroup())
			r.Get("/{technologyGroupID}", handlers.technologyGroupHandler.getTechnologyGroup())
			r.Put("/{technologyGroupID}", handlers.technologyGroupHandler.updateTechnologyGroup())
			r.Delete("/{technologyGroupID}", handlers.technologyGroupHandler.deleteTechnologyGroup())
		})

		r.Route("/api/projects", func(r chi.Router) {
			r.Get("/", handlers.projectHandler.getAllProjects())
			r.Post("/", handlers.projectHandler.createProject())
			r.Get("/{projectID}", handlers.projectHandler.getProject())
			r.Put("/{projectID}", handlers.projectHandler.updateProject())
			r.Delete("/{projectID}", handlers.projectHandler.deleteProject())
		})
	})
}
