package api

import (
	"time"

	"github.com/p-miano/portfolio-api/database"
	"github.com/p-miano/portfolio-api/services"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(svcs services.Services, db database.Database, startupTime time.Time) *routeHandlers {
	return &routeHandlers{
		authHandler:            newAuthHandler(svcs.Users),
		categoryHandler:        newCategoryHandler(svcs.Categories),
		technologyHandler:      newTechnologyHandler(svcs.Technologies),
		technologyGroupHandler: newTechnologyGroupHandler(svcs.TechnologyGroups),
		projectHandler:         newProjectHandler(svcs.Projects),
		publicHandler:          newPublicHandler(svcs.Projects),
		healthHandler:          newHealthHandler(db, startupTime),
	}
}
