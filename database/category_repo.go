package database

import (
	"context"

	"github.com/p-miano/portfolio-api/models"
	"gorm.io/gorm"
)

type CategoryRepo struct {
	db *gorm.DB
}

func NewCategoryRepo(db *gorm.DB) *CategoryRepo {
	return &CategoryRepo{db}
}

// FindByID returns nil without error when the category does not exist.
func (r *CategoryRepo) FindByID(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	tx := r.db.WithContext(ctx).Where("id = ?", id).Limit(1).Find(&category)
	if tx.Error != nil || tx.RowsAffected == 0 {
		return nil, tx.Error
	}
	return &category, nil
}

// FindByName compares case-insensitively.
func (r *CategoryRepo) FindByName(ctx context.Context, name string) (*models.Category, error) {
	var category models.Category
	tx := r.db.WithContext(ctx).Where("LOWER(name) = LOWER(?)", name).Limit(1).Find(&category)
	if tx.Error != nil || tx.RowsAffected == 0 {
		return nil, tx.Error
	}
	return &category, nil
}

// FindAllForUser returns the categories userID is associated with, by name.
func (r *CategoryRepo) FindAllForUser(ctx context.Context, userID uint) ([]models.Category, error) {
	var categories []models.Category
	err := r.db.WithContext(ctx).
		Joins("JOIN user_categories ON user_categories.category_id = categories.id").
		Where("user_categories.user_id = ?", userID).
		Order("categories.name").
		Find(&categories).Error
	return categories, err
}

func (r *CategoryRepo) FindForUser(ctx context.Context, userID, id uint) (*models.Category, error) {
	var category models.Category
	tx := r.db.WithContext(ctx).
		Joins("JOIN user_categories ON user_categories.category_id = categories.id").
		Where("user_categories.user_id = ? AND categories.id = ?", userID, id).
		Limit(1).
		Find(&category)
	if tx.Error != nil || tx.RowsAffected == 0 {
		return nil, tx.Error
	}
	return &category, nil
}

// NameTaken reports whether a category other than excludeID uses name.
func (r *CategoryRepo) NameTaken(ctx context.Context, name string, excludeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Category{}).
		Where("LOWER(name) = LOWER(?) AND id <> ?", name, excludeID).
		Count(&count).Error
	return count > 0, err
}

func (r *CategoryRepo) Add(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *CategoryRepo) Rename(ctx context.Context, id uint, name string) error {
	return r.db.WithContext(ctx).Model(&models.Category{ID: id}).Update("name", name).Error
}

func (r *CategoryRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Category{}, id).Error
}
