package services

import (
	"context"

	"github.com/p-miano/portfolio-api/database"
	"github.com/p-miano/portfolio-api/errs"
	"github.com/p-miano/portfolio-api/models"
)

type CategoryService struct {
	db database.Database
}

func NewCategoryService(db database.Database) CategoryService {
	return CategoryService{db: db}
}

func (s CategoryService) List(ctx context.Context, userID uint) ([]models.Category, error) {
	categories, err := s.db.CategoryRepo().FindAllForUser(ctx, userID)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "categories", err)
	}
	return categories, nil
}

// Get returns 404 for categories the caller is not associated with.
func (s CategoryService) Get(ctx context.Context, userID, id uint) (*models.Category, error) {
	category, err := s.db.CategoryRepo().FindForUser(ctx, userID, id)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "category", err)
	}
	if category == nil {
		return nil, errs.NewNotFoundError("category not found")
	}
	return category, nil
}

func (s CategoryService) Create(ctx context.Context, userID uint, in NameInput) (*models.Category, error) {
	in.Name = NormalizeName(in.Name)
	if err := validationError(fieldErrors(in), nil); err != nil {
		return nil, err
	}

	var result *models.Category
	err := s.db.Transaction(ctx, func(uow database.Database) error {
		var err error
		result, err = findOrCreate(ctx, uow, userID, referenceOps[models.Category]{
			kind: models.CategoryAssociation,
			find: func(ctx context.Context, uow database.Database) (*models.Category, error) {
				return uow.CategoryRepo().FindByName(ctx, in.Name)
			},
			insert: func(ctx context.Context, uow database.Database) (*models.Category, error) {
				category := &models.Category{Name: in.Name}
				return category, uow.CategoryRepo().Add(ctx, category)
			},
			id: func(c *models.Category) uint { return c.ID },
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s CategoryService) Update(ctx context.Context, userID, id uint, in NameInput) error {
	in.Name = NormalizeName(in.Name)
	if err := validationError(fieldErrors(in), nil); err != nil {
		return err
	}

	return s.db.Transaction(ctx, func(uow database.Database) error {
		category, err := uow.CategoryRepo().FindByID(ctx, id)
		if err != nil {
			return errs.NewDatabaseError("find", "category", err)
		}
		if err := requireLinked(ctx, uow, models.CategoryAssociation, userID, id, category != nil); err != nil {
			return err
		}

		taken, err := uow.CategoryRepo().NameTaken(ctx, in.Name, id)
		if err != nil {
			return errs.NewDatabaseError("check name of", "category", err)
		}
		if taken {
			return errs.NewConflictError("a category with this name already exists")
		}

		if err := uow.CategoryRepo().Rename(ctx, id, in.Name); err != nil {
			return errs.NewDatabaseError("update", "category", err)
		}
		return nil
	})
}

// Delete unlinks the caller and removes the category once nothing else
// references it. The caller's own projects in the category block the delete.
func (s CategoryService) Delete(ctx context.Context, userID, id uint) error {
	return s.db.Transaction(ctx, func(uow database.Database) error {
		category, err := uow.CategoryRepo().FindByID(ctx, id)
		if err != nil {
			return errs.NewDatabaseError("find", "category", err)
		}
		if err := requireLinked(ctx, uow, models.CategoryAssociation, userID, id, category != nil); err != nil {
			return err
		}

		owned, err := uow.ProjectRepo().CountByCategoryForUser(ctx, id, userID)
		if err != nil {
			return errs.NewDatabaseError("count projects of", "category", err)
		}
		if owned > 0 {
			return errs.NewDependentsError("cannot delete category because it has associated projects")
		}

		orphaned, err := unlinkAndCollect(ctx, uow, models.CategoryAssociation, userID, id, func() (int64, error) {
			return uow.ProjectRepo().CountByCategory(ctx, id)
		})
		if err != nil || !orphaned {
			return err
		}
		if err := uow.CategoryRepo().Delete(ctx, id); err != nil {
			return errs.NewDatabaseError("delete", "category", err)
		}
		return nil
	})
}
