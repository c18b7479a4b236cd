package services

import (
	"context"

	"github.com/p-miano/portfolio-api/database"
	"github.com/p-miano/portfolio-api/errs"
	"github.com/p-miano/portfolio-api/models"
)

// TechnologyInput is the body for creating or updating a technology.
type TechnologyInput struct {
	Name              string `json:"name" validate:"required,min=2,max=50,cleantext"`
	TechnologyGroupID uint   `json:"technologyGroupId" validate:"required"`
}

type TechnologyService struct {
	db database.Database
}

func NewTechnologyService(db database.Database) TechnologyService {
	return TechnologyService{db: db}
}

func (s TechnologyService) List(ctx context.Context, userID uint) ([]models.Technology, error) {
	technologies, err := s.db.TechnologyRepo().FindAllForUser(ctx, userID)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "technologies", err)
	}
	return technologies, nil
}

func (s TechnologyService) Get(ctx context.Context, userID, id uint) (*models.Technology, error) {
	technology, err := s.db.TechnologyRepo().FindForUser(ctx, userID, id)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "technology", err)
	}
	if technology == nil {
		return nil, errs.NewNotFoundError("technology not found")
	}
	return technology, nil
}

// requireOwnedGroup rejects groups the caller has not added.
func requireOwnedGroup(ctx context.Context, uow database.Database, userID, groupID uint) error {
	linked, err := uow.Associations(models.TechnologyGroupAssociation).Exists(ctx, userID, groupID)
	if err != nil {
		return errs.NewDatabaseError("check ownership of", "technology group", err)
	}
	if !linked {
		return errs.NewFieldError("technologyGroupId", "technology group not found for this user")
	}
	return nil
}

// Create deduplicates by name within the chosen group.
func (s TechnologyService) Create(ctx context.Context, userID uint, in TechnologyInput) (*models.Technology, error) {
	in.Name = NormalizeName(in.Name)
	if err := validationError(fieldErrors(in), nil); err != nil {
		return nil, err
	}

	var result *models.Technology
	err := s.db.Transaction(ctx, func(uow database.Database) error {
		if err := requireOwnedGroup(ctx, uow, userID, in.TechnologyGroupID); err != nil {
			return err
		}

		technology, err := findOrCreate(ctx, uow, userID, referenceOps[models.Technology]{
			kind: models.TechnologyAssociation,
			find: func(ctx context.Context, uow database.Database) (*models.Technology, error) {
				return uow.TechnologyRepo().FindByNameInGroup(ctx, in.Name, in.TechnologyGroupID)
			},
			insert: func(ctx context.Context, uow database.Database) (*models.Technology, error) {
				technology := &models.Technology{Name: in.Name, TechnologyGroupID: in.TechnologyGroupID}
				return technology, uow.TechnologyRepo().Add(ctx, technology)
			},
			id: func(t *models.Technology) uint { return t.ID },
		})
		if err != nil {
			return err
		}

		result, err = uow.TechnologyRepo().FindByID(ctx, technology.ID)
		if err != nil {
			return errs.NewDatabaseError("find", "technology", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s TechnologyService) Update(ctx context.Context, userID, id uint, in TechnologyInput) error {
	in.Name = NormalizeName(in.Name)
	if err := validationError(fieldErrors(in), nil); err != nil {
		return err
	}

	return s.db.Transaction(ctx, func(uow database.Database) error {
		technology, err := uow.TechnologyRepo().FindByID(ctx, id)
		if err != nil {
			return errs.NewDatabaseError("find", "technology", err)
		}
		if err := requireLinked(ctx, uow, models.TechnologyAssociation, userID, id, technology != nil); err != nil {
			return err
		}
		if err := requireOwnedGroup(ctx, uow, userID, in.TechnologyGroupID); err != nil {
			return err
		}

		taken, err := uow.TechnologyRepo().NameTakenInGroup(ctx, in.Name, in.TechnologyGroupID, id)
		if err != nil {
			return errs.NewDatabaseError("check name of", "technology", err)
		}
		if taken {
			return errs.NewConflictError("a technology with this name already exists in the group")
		}

		technology.Name = in.Name
		technology.TechnologyGroupID = in.TechnologyGroupID
		if err := uow.TechnologyRepo().Update(ctx, technology); err != nil {
			return errs.NewDatabaseError("update", "technology", err)
		}
		return nil
	})
}

// Delete is rejected while the caller's projects use the technology.
func (s TechnologyService) Delete(ctx context.Context, userID, id uint) error {
	return s.db.Transaction(ctx, func(uow database.Database) error {
		technology, err := uow.TechnologyRepo().FindByID(ctx, id)
		if err != nil {
			return errs.NewDatabaseError("find", "technology", err)
		}
		if err := requireLinked(ctx, uow, models.TechnologyAssociation, userID, id, technology != nil); err != nil {
			return err
		}

		used, err := uow.ProjectRepo().CountByTechnologyForUser(ctx, id, userID)
		if err != nil {
			return errs.NewDatabaseError("count projects of", "technology", err)
		}
		if used > 0 {
			return errs.NewDependentsError("cannot delete technology because it is used by projects")
		}

		orphaned, err := unlinkAndCollect(ctx, uow, models.TechnologyAssociation, userID, id, func() (int64, error) {
			return uow.ProjectRepo().CountByTechnology(ctx, id)
		})
		if err != nil || !orphaned {
			return err
		}
		if err := uow.TechnologyRepo().Delete(ctx, id); err != nil {
			return errs.NewDatabaseError("delete", "technology", err)
		}
		return nil
	})
}
