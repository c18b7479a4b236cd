package database

import (
	"context"

	"github.com/p-miano/portfolio-api/models"
	"gorm.io/gorm"
)

type TechnologyRepo struct {
	db *gorm.DB
}

func NewTechnologyRepo(db *gorm.DB) *TechnologyRepo {
	return &TechnologyRepo{db}
}

func (r *TechnologyRepo) FindByID(ctx context.Context, id uint) (*models.Technology, error) {
	var technology models.Technology
	tx := r.db.WithContext(ctx).Preload("TechnologyGroup").Where("id = ?", id).Limit(1).Find(&technology)
	if tx.Error != nil || tx.RowsAffected == 0 {
		return nil, tx.Error
	}
	return &technology, nil
}

// FindByNameInGroup looks up a technology by name within one group.
func (r *TechnologyRepo) FindByNameInGroup(ctx context.Context, name string, groupID uint) (*models.Technology, error) {
	var technology models.Technology
	tx := r.db.WithContext(ctx).
		Preload("TechnologyGroup").
		Where("LOWER(name) = LOWER(?) AND technology_group_id = ?", name, groupID).
		Limit(1).
		Find(&technology)
	if tx.Error != nil || tx.RowsAffected == 0 {
		return nil, tx.Error
	}
	return &technology, nil
}

func (r *TechnologyRepo) FindAllForUser(ctx context.Context, userID uint) ([]models.Technology, error) {
	var technologies []models.Technology
	err := r.db.WithContext(ctx).
		Preload("TechnologyGroup").
		Joins("JOIN user_technologies ON user_technologies.technology_id = technologies.id").
		Where("user_technologies.user_id = ?", userID).
		Order("technologies.name").
		Find(&technologies).Error
	return technologies, err
}

func (r *TechnologyRepo) FindForUser(ctx context.Context, userID, id uint) (*models.Technology, error) {
	var technology models.Technology
	tx := r.db.WithContext(ctx).
		Preload("TechnologyGroup").
		Joins("JOIN user_technologies ON user_technologies.technology_id = technologies.id").
		Where("user_technologies.user_id = ? AND technologies.id = ?", userID, id).
		Limit(1).
		Find(&technology)
	if tx.Error != nil || tx.RowsAffected == 0 {
		return nil, tx.Error
	}
	return &technology, nil
}

// NameTakenInGroup reports whether a technology other than excludeID uses
// name inside groupID.
func (r *TechnologyRepo) NameTakenInGroup(ctx context.Context, name string, groupID, excludeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Technology{}).
		Where("LOWER(name) = LOWER(?) AND technology_group_id = ? AND id <> ?", name, groupID, excludeID).
		Count(&count).Error
	return count > 0, err
}

// CountByGroup counts every technology in groupID regardless of owner.
func (r *TechnologyRepo) CountByGroup(ctx context.Context, groupID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Technology{}).
		Where("technology_group_id = ?", groupID).
		Count(&count).Error
	return count, err
}

// CountByGroupForUser counts technologies in groupID that userID is associated with.
func (r *TechnologyRepo) CountByGroupForUser(ctx context.Context, groupID, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Technology{}).
		Joins("JOIN user_technologies ON user_technologies.technology_id = technologies.id").
		Where("technologies.technology_group_id = ? AND user_technologies.user_id = ?", groupID, userID).
		Count(&count).Error
	return count, err
}

func (r *TechnologyRepo) Add(ctx context.Context, technology *models.Technology) error {
	return r.db.WithContext(ctx).Omit("TechnologyGroup").Create(technology).Error
}

// Update persists the name and group of technology.
func (r *TechnologyRepo) Update(ctx context.Context, technology *models.Technology) error {
	return r.db.WithContext(ctx).Model(&models.Technology{ID: technology.ID}).
		Select("name", "technology_group_id").
		Updates(map[string]interface{}{
			"name":                technology.Name,
			"technology_group_id": technology.TechnologyGroupID,
		}).Error
}

func (r *TechnologyRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Technology{}, id).Error
}
