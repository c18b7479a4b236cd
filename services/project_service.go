package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/p-miano/portfolio-api/database"
	"github.com/p-miano/portfolio-api/errs"
	"github.com/p-miano/portfolio-api/models"
)

// ProjectInput is the body for creating or updating a project.
type ProjectInput struct {
	Title         string  `json:"title" validate:"required,min=2,max=100,cleantext"`
	Description   string  `json:"description" validate:"required,max=4000,cleantext"`
	GithubLink    *string `json:"githubLink" validate:"omitempty,max=2048,absurl"`
	DeployedLink  *string `json:"deployedLink" validate:"omitempty,max=2048,absurl"`
	IsVisible     bool    `json:"isVisible"`
	StartDate     *Date   `json:"startDate"`
	EndDate       *Date   `json:"endDate"`
	Difficulty    string  `json:"difficulty" validate:"required,difficulty"`
	CategoryID    uint    `json:"categoryId" validate:"required"`
	TechnologyIDs []uint  `json:"technologyIds"`
}

// normalized trims text fields, title-cases the title and checks every
// rule that needs no database access.
func (in ProjectInput) normalized() (ProjectInput, models.Difficulty, error) {
	in.Title = NormalizeName(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.GithubLink = normalizeLink(in.GithubLink)
	in.DeployedLink = normalizeLink(in.DeployedLink)
	in.TechnologyIDs = uniqueIDs(in.TechnologyIDs)

	extra := map[string]string{}
	if in.StartDate.malformed() {
		extra["startDate"] = dateError("startDate")
	}
	if in.EndDate.malformed() {
		extra["endDate"] = dateError("endDate")
	}
	if start, end := in.StartDate.ptr(), in.EndDate.ptr(); start != nil && end != nil && end.Before(*start) {
		extra["endDate"] = "endDate cannot be before startDate"
	}
	if err := validationError(fieldErrors(in), extra); err != nil {
		return in, 0, err
	}

	difficulty, err := models.ParseDifficulty(in.Difficulty)
	if err != nil {
		return in, 0, errs.NewFieldError("difficulty", err.Error())
	}
	return in, difficulty, nil
}

func (in ProjectInput) apply(project *models.Project, difficulty models.Difficulty) {
	project.Title = in.Title
	project.Description = in.Description
	project.GithubLink = in.GithubLink
	project.DeployedLink = in.DeployedLink
	project.IsVisible = in.IsVisible
	project.StartDate = in.StartDate.ptr()
	project.EndDate = in.EndDate.ptr()
	project.Difficulty = difficulty
	project.CategoryID = in.CategoryID
}

type ProjectService struct {
	db database.Database
}

func NewProjectService(db database.Database) ProjectService {
	return ProjectService{db: db}
}

func (s ProjectService) List(ctx context.Context, userID uint) ([]models.Project, error) {
	projects, err := s.db.ProjectRepo().FindAllForUser(ctx, userID)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "projects", err)
	}
	return projects, nil
}

// ListVisible returns the projects userID has marked visible.
func (s ProjectService) ListVisible(ctx context.Context, userID uint) ([]models.Project, error) {
	projects, err := s.db.ProjectRepo().FindVisibleForUser(ctx, userID)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "projects", err)
	}
	return projects, nil
}

func (s ProjectService) Get(ctx context.Context, userID, id uint) (*models.Project, error) {
	project, err := s.db.ProjectRepo().FindForUser(ctx, userID, id)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "project", err)
	}
	if project == nil {
		return nil, errs.NewNotFoundError("project not found")
	}
	return project, nil
}

// checkReferences verifies the category and every technology belong to userID.
func checkReferences(ctx context.Context, uow database.Database, userID uint, in ProjectInput) error {
	linked, err := uow.Associations(models.CategoryAssociation).Exists(ctx, userID, in.CategoryID)
	if err != nil {
		return errs.NewDatabaseError("check ownership of", "category", err)
	}
	if !linked {
		return errs.NewFieldError("categoryId", "category not found for this user")
	}

	owned, err := uow.Associations(models.TechnologyAssociation).OwnedIDs(ctx, userID, in.TechnologyIDs)
	if err != nil {
		return errs.NewDatabaseError("check ownership of", "technologies", err)
	}
	if len(owned) != len(in.TechnologyIDs) {
		return errs.NewFieldError("technologyIds",
			fmt.Sprintf("%d of %d technologies not found for this user", len(in.TechnologyIDs)-len(owned), len(in.TechnologyIDs)))
	}
	return nil
}

// Create inserts the project and its technology rows in one unit of work.
func (s ProjectService) Create(ctx context.Context, userID uint, in ProjectInput) (*models.Project, error) {
	in, difficulty, err := in.normalized()
	if err != nil {
		return nil, err
	}

	var result *models.Project
	err = s.db.Transaction(ctx, func(uow database.Database) error {
		if err := checkReferences(ctx, uow, userID, in); err != nil {
			return err
		}

		project := &models.Project{UserID: userID}
		in.apply(project, difficulty)
		if err := uow.ProjectRepo().Add(ctx, project); err != nil {
			return errs.NewDatabaseError("create", "project", err)
		}
		if err := uow.ProjectRepo().ReplaceTechnologies(ctx, project.ID, in.TechnologyIDs); err != nil {
			return errs.NewDatabaseError("link technologies to", "project", err)
		}

		result, err = uow.ProjectRepo().FindForUser(ctx, userID, project.ID)
		if err != nil {
			return errs.NewDatabaseError("find", "project", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// loadOwned returns 404 for a missing project and 403 for one owned by someone else.
func loadOwned(ctx context.Context, uow database.Database, userID, id uint) (*models.Project, error) {
	project, err := uow.ProjectRepo().FindByID(ctx, id)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "project", err)
	}
	if project == nil {
		return nil, errs.NewNotFoundError("project not found")
	}
	if project.UserID != userID {
		return nil, errs.NewForbiddenError("you do not own this project")
	}
	return project, nil
}

// Update rewrites every field and replaces the technology set wholesale.
func (s ProjectService) Update(ctx context.Context, userID, id uint, in ProjectInput) error {
	in, difficulty, err := in.normalized()
	if err != nil {
		return err
	}

	return s.db.Transaction(ctx, func(uow database.Database) error {
		project, err := loadOwned(ctx, uow, userID, id)
		if err != nil {
			return err
		}
		if err := checkReferences(ctx, uow, userID, in); err != nil {
			return err
		}

		in.apply(project, difficulty)
		if err := uow.ProjectRepo().Update(ctx, project); err != nil {
			return errs.NewDatabaseError("update", "project", err)
		}
		if err := uow.ProjectRepo().ReplaceTechnologies(ctx, project.ID, in.TechnologyIDs); err != nil {
			return errs.NewDatabaseError("link technologies to", "project", err)
		}
		return nil
	})
}

func (s ProjectService) Delete(ctx context.Context, userID, id uint) error {
	return s.db.Transaction(ctx, func(uow database.Database) error {
		if _, err := loadOwned(ctx, uow, userID, id); err != nil {
			return err
		}
		if err := uow.ProjectRepo().Delete(ctx, id); err != nil {
			return errs.NewDatabaseError("delete", "project", err)
		}
		return nil
	})
}
