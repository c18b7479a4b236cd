// Package services holds the business rules: input normalization and
// validation, ownership checks and the find-or-create flow for shared
// reference data. Every mutating call runs in one database transaction.
package services

import (
	"github.com/p-miano/portfolio-api/auth"
	"github.com/p-miano/portfolio-api/database"
)

type Services struct {
	Users            UserService
	Categories       CategoryService
	TechnologyGroups TechnologyGroupService
	Technologies     TechnologyService
	Projects         ProjectService
}

func New(db database.Database, tokens *auth.Tokens) Services {
	return Services{
		Users:            NewUserService(db, tokens),
		Categories:       NewCategoryService(db),
		TechnologyGroups: NewTechnologyGroupService(db),
		Technologies:     NewTechnologyService(db),
		Projects:         NewProjectService(db),
	}
}
