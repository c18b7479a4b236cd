package database

import (
	"context"

	"github.com/p-miano/portfolio-api/models"
	"gorm.io/gorm"
)

type TechnologyGroupRepo struct {
	db *gorm.DB
}

func NewTechnologyGroupRepo(db *gorm.DB) *TechnologyGroupRepo {
	return &TechnologyGroupRepo{db}
}

// ownedTechnologies limits a Technologies preload to rows userID is associated with.
func ownedTechnologies(userID uint) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.
			Joins("JOIN user_technologies ON user_technologies.technology_id = technologies.id").
			Where("user_technologies.user_id = ?", userID).
			Order("technologies.name")
	}
}

func (r *TechnologyGroupRepo) FindByID(ctx context.Context, id uint) (*models.TechnologyGroup, error) {
	var group models.TechnologyGroup
	tx := r.db.WithContext(ctx).Where("id = ?", id).Limit(1).Find(&group)
	if tx.Error != nil || tx.RowsAffected == 0 {
		return nil, tx.Error
	}
	return &group, nil
}

func (r *TechnologyGroupRepo) FindByName(ctx context.Context, name string) (*models.TechnologyGroup, error) {
	var group models.TechnologyGroup
	tx := r.db.WithContext(ctx).Where("LOWER(name) = LOWER(?)", name).Limit(1).Find(&group)
	if tx.Error != nil || tx.RowsAffected == 0 {
		return nil, tx.Error
	}
	return &group, nil
}

// FindAllForUser returns userID's groups with only their owned technologies loaded.
func (r *TechnologyGroupRepo) FindAllForUser(ctx context.Context, userID uint) ([]models.TechnologyGroup, error) {
	var groups []models.TechnologyGroup
	err := r.db.WithContext(ctx).
		Preload("Technologies", ownedTechnologies(userID)).
		Joins("JOIN user_technology_groups ON user_technology_groups.technology_group_id = technology_groups.id").
		Where("user_technology_groups.user_id = ?", userID).
		Order("technology_groups.name").
		Find(&groups).Error
	return groups, err
}

func (r *TechnologyGroupRepo) FindForUser(ctx context.Context, userID, id uint) (*models.TechnologyGroup, error) {
	var group models.TechnologyGroup
	tx := r.db.WithContext(ctx).
		Preload("Technologies", ownedTechnologies(userID)).
		Joins("JOIN user_technology_groups ON user_technology_groups.technology_group_id = technology_groups.id").
		Where("user_technology_groups.user_id = ? AND technology_groups.id = ?", userID, id).
		Limit(1).
		Find(&group)
	if tx.Error != nil || tx.RowsAffected == 0 {
		return nil, tx.Error
	}
	return &group, nil
}

func (r *TechnologyGroupRepo) NameTaken(ctx context.Context, name string, excludeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.TechnologyGroup{}).
		Where("LOWER(name) = LOWER(?) AND id <> ?", name, excludeID).
		Count(&count).Error
	return count > 0, err
}

func (r *TechnologyGroupRepo) Add(ctx context.Context, group *models.TechnologyGroup) error {
	return r.db.WithContext(ctx).Omit("Technologies").Create(group).Error
}

func (r *TechnologyGroupRepo) Rename(ctx context.Context, id uint, name string) error {
	return r.db.WithContext(ctx).Model(&models.TechnologyGroup{ID: id}).Update("name", name).Error
}

func (r *TechnologyGroupRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.TechnologyGroup{}, id).Error
}
