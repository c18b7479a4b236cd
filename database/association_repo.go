package database

import (
	"context"

	"github.com/p-miano/portfolio-api/models"
	"gorm.io/gorm"
)

// AssociationRepo answers "is user U linked to resource R" for one join
// table. Every ownership check for reference data goes through it.
type AssociationRepo struct {
	db   *gorm.DB
	kind models.AssociationKind
}

func NewAssociationRepo(db *gorm.DB, kind models.AssociationKind) *AssociationRepo {
	return &AssociationRepo{db: db, kind: kind}
}

func (r *AssociationRepo) Kind() models.AssociationKind {
	return r.kind
}

func (r *AssociationRepo) table(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Table(r.kind.Table)
}

func (r *AssociationRepo) Exists(ctx context.Context, userID, resourceID uint) (bool, error) {
	var count int64
	err := r.table(ctx).
		Where("user_id = ? AND "+r.kind.Column+" = ?", userID, resourceID).
		Count(&count).Error
	return count > 0, err
}

func (r *AssociationRepo) Add(ctx context.Context, userID, resourceID uint) error {
	return r.db.WithContext(ctx).
		Exec("INSERT INTO "+r.kind.Table+" (user_id, "+r.kind.Column+") VALUES (?, ?)", userID, resourceID).
		Error
}

func (r *AssociationRepo) Remove(ctx context.Context, userID, resourceID uint) error {
	return r.db.WithContext(ctx).
		Exec("DELETE FROM "+r.kind.Table+" WHERE user_id = ? AND "+r.kind.Column+" = ?", userID, resourceID).
		Error
}

// Count returns how many users are linked to resourceID.
func (r *AssociationRepo) Count(ctx context.Context, resourceID uint) (int64, error) {
	var count int64
	err := r.table(ctx).
		Where(r.kind.Column+" = ?", resourceID).
		Count(&count).Error
	return count, err
}

// OwnedIDs filters ids down to the ones userID is linked to.
func (r *AssociationRepo) OwnedIDs(ctx context.Context, userID uint, ids []uint) ([]uint, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var owned []uint
	err := r.table(ctx).
		Where("user_id = ? AND "+r.kind.Column+" IN ?", userID, ids).
		Pluck(r.kind.Column, &owned).Error
	return owned, err
}
