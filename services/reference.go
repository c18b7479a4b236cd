package services

import (
	"context"
	"fmt"

	"github.com/p-miano/portfolio-api/database"
	"github.com/p-miano/portfolio-api/errs"
	"github.com/p-miano/portfolio-api/models"
)

// NameInput is the body for creating or renaming a category or technology group.
type NameInput struct {
	Name string `json:"name" validate:"required,min=2,max=50,cleantext"`
}

// referenceOps describes how to find and insert one kind of shared
// reference row inside a unit of work.
type referenceOps[T any] struct {
	kind   models.AssociationKind
	find   func(ctx context.Context, uow database.Database) (*T, error)
	insert func(ctx context.Context, uow database.Database) (*T, error)
	id     func(*T) uint
}

// findOrCreate links userID to the row named by ops, creating it when it
// does not exist yet. An insert that loses a race on the unique index is
// rolled back to its savepoint and the winner's row is linked instead.
// Returns a 409 when userID is already linked.
func findOrCreate[T any](ctx context.Context, uow database.Database, userID uint, ops referenceOps[T]) (*T, error) {
	assoc := uow.Associations(ops.kind)

	existing, err := ops.find(ctx, uow)
	if err != nil {
		return nil, errs.NewDatabaseError("find", ops.kind.Resource, err)
	}

	if existing == nil {
		var created *T
		err := uow.Transaction(ctx, func(sp database.Database) error {
			var err error
			created, err = ops.insert(ctx, sp)
			return err
		})
		switch {
		case err == nil:
			if err := assoc.Add(ctx, userID, ops.id(created)); err != nil {
				return nil, errs.NewDatabaseError("associate", ops.kind.Resource, err)
			}
			return created, nil
		case errs.IsUniqueViolation(err):
			existing, err = ops.find(ctx, uow)
			if err != nil {
				return nil, errs.NewDatabaseError("find", ops.kind.Resource, err)
			}
			if existing == nil {
				return nil, errs.NewInternalError(fmt.Sprintf("%s vanished after insert conflict", ops.kind.Resource))
			}
		default:
			return nil, errs.NewDatabaseError("create", ops.kind.Resource, err)
		}
	}

	linked, err := assoc.Exists(ctx, userID, ops.id(existing))
	if err != nil {
		return nil, errs.NewDatabaseError("check ownership of", ops.kind.Resource, err)
	}
	if linked {
		return nil, errs.NewConflictError(fmt.Sprintf("%s already exists", ops.kind.Resource))
	}
	if err := assoc.Add(ctx, userID, ops.id(existing)); err != nil {
		return nil, errs.NewDatabaseError("associate", ops.kind.Resource, err)
	}
	return existing, nil
}

// requireLinked returns 404 when the row is missing and 403 when userID
// is not associated with it.
func requireLinked(ctx context.Context, uow database.Database, kind models.AssociationKind, userID, resourceID uint, found bool) error {
	if !found {
		return errs.NewNotFoundError(kind.Resource + " not found")
	}
	linked, err := uow.Associations(kind).Exists(ctx, userID, resourceID)
	if err != nil {
		return errs.NewDatabaseError("check ownership of", kind.Resource, err)
	}
	if !linked {
		return errs.NewForbiddenError(fmt.Sprintf("you are not associated with this %s", kind.Resource))
	}
	return nil
}

// unlinkAndCollect removes userID's association and reports whether the
// global row is now unreferenced. otherDependents counts rows outside the
// association table that still point at the resource.
func unlinkAndCollect(ctx context.Context, uow database.Database, kind models.AssociationKind, userID, resourceID uint, otherDependents func() (int64, error)) (bool, error) {
	assoc := uow.Associations(kind)
	if err := assoc.Remove(ctx, userID, resourceID); err != nil {
		return false, errs.NewDatabaseError("unlink", kind.Resource, err)
	}

	remaining, err := assoc.Count(ctx, resourceID)
	if err != nil {
		return false, errs.NewDatabaseError("count associations of", kind.Resource, err)
	}
	if remaining > 0 {
		return false, nil
	}

	dependents, err := otherDependents()
	if err != nil {
		return false, errs.NewDatabaseError("count dependents of", kind.Resource, err)
	}
	return dependents == 0, nil
}
