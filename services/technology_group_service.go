package services

import (
	"context"

	"github.com/p-miano/portfolio-api/database"
	"github.com/p-miano/portfolio-api/errs"
	"github.com/p-miano/portfolio-api/models"
)

type TechnologyGroupService struct {
	db database.Database
}

func NewTechnologyGroupService(db database.Database) TechnologyGroupService {
	return TechnologyGroupService{db: db}
}

// List returns the caller's groups; each carries only the technologies the
// caller is associated with.
func (s TechnologyGroupService) List(ctx context.Context, userID uint) ([]models.TechnologyGroup, error) {
	groups, err := s.db.TechnologyGroupRepo().FindAllForUser(ctx, userID)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "technology groups", err)
	}
	return groups, nil
}

func (s TechnologyGroupService) Get(ctx context.Context, userID, id uint) (*models.TechnologyGroup, error) {
	group, err := s.db.TechnologyGroupRepo().FindForUser(ctx, userID, id)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "technology group", err)
	}
	if group == nil {
		return nil, errs.NewNotFoundError("technology group not found")
	}
	return group, nil
}

func (s TechnologyGroupService) Create(ctx context.Context, userID uint, in NameInput) (*models.TechnologyGroup, error) {
	in.Name = NormalizeName(in.Name)
	if err := validationError(fieldErrors(in), nil); err != nil {
		return nil, err
	}

	var result *models.TechnologyGroup
	err := s.db.Transaction(ctx, func(uow database.Database) error {
		var err error
		result, err = findOrCreate(ctx, uow, userID, referenceOps[models.TechnologyGroup]{
			kind: models.TechnologyGroupAssociation,
			find: func(ctx context.Context, uow database.Database) (*models.TechnologyGroup, error) {
				return uow.TechnologyGroupRepo().FindByName(ctx, in.Name)
			},
			insert: func(ctx context.Context, uow database.Database) (*models.TechnologyGroup, error) {
				group := &models.TechnologyGroup{Name: in.Name}
				return group, uow.TechnologyGroupRepo().Add(ctx, group)
			},
			id: func(g *models.TechnologyGroup) uint { return g.ID },
		})
		if err != nil {
			return err
		}

		// reload so the response lists the caller's technologies in the group
		result, err = uow.TechnologyGroupRepo().FindForUser(ctx, userID, result.ID)
		if err != nil {
			return errs.NewDatabaseError("find", "technology group", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s TechnologyGroupService) Update(ctx context.Context, userID, id uint, in NameInput) error {
	in.Name = NormalizeName(in.Name)
	if err := validationError(fieldErrors(in), nil); err != nil {
		return err
	}

	return s.db.Transaction(ctx, func(uow database.Database) error {
		group, err := uow.TechnologyGroupRepo().FindByID(ctx, id)
		if err != nil {
			return errs.NewDatabaseError("find", "technology group", err)
		}
		if err := requireLinked(ctx, uow, models.TechnologyGroupAssociation, userID, id, group != nil); err != nil {
			return err
		}

		taken, err := uow.TechnologyGroupRepo().NameTaken(ctx, in.Name, id)
		if err != nil {
			return errs.NewDatabaseError("check name of", "technology group", err)
		}
		if taken {
			return errs.NewConflictError("a technology group with this name already exists")
		}

		if err := uow.TechnologyGroupRepo().Rename(ctx, id, in.Name); err != nil {
			return errs.NewDatabaseError("update", "technology group", err)
		}
		return nil
	})
}

// Delete is rejected while the caller still has technologies in the group.
// The group row goes away once no user and no technology references it.
func (s TechnologyGroupService) Delete(ctx context.Context, userID, id uint) error {
	return s.db.Transaction(ctx, func(uow database.Database) error {
		group, err := uow.TechnologyGroupRepo().FindByID(ctx, id)
		if err != nil {
			return errs.NewDatabaseError("find", "technology group", err)
		}
		if err := requireLinked(ctx, uow, models.TechnologyGroupAssociation, userID, id, group != nil); err != nil {
			return err
		}

		owned, err := uow.TechnologyRepo().CountByGroupForUser(ctx, id, userID)
		if err != nil {
			return errs.NewDatabaseError("count technologies of", "technology group", err)
		}
		if owned > 0 {
			return errs.NewDependentsError("cannot delete technology group because it has associated technologies")
		}

		orphaned, err := unlinkAndCollect(ctx, uow, models.TechnologyGroupAssociation, userID, id, func() (int64, error) {
			return uow.TechnologyRepo().CountByGroup(ctx, id)
		})
		if err != nil || !orphaned {
			return err
		}
		if err := uow.TechnologyGroupRepo().Delete(ctx, id); err != nil {
			return errs.NewDatabaseError("delete", "technology group", err)
		}
		return nil
	})
}
