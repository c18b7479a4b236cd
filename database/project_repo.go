package database

import (
	"context"

	"github.com/p-miano/portfolio-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// withReadView preloads everything the project read view renders.
func withReadView(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Category").
		Preload("ProjectTechnologies", func(db *gorm.DB) *gorm.DB {
			return db.Order("technology_id")
		}).
		Preload("ProjectTechnologies.Technology.TechnologyGroup")
}

// FindAllForUser returns projects owned by userID.
func (r *ProjectRepo) FindAllForUser(ctx context.Context, userID uint) ([]models.Project, error) {
	var projects []models.Project
	err := withReadView(r.db.WithContext(ctx)).
		Where("user_id = ?", userID).
		Order("id").
		Find(&projects).Error
	return projects, err
}

// FindVisibleForUser returns userID's projects flagged visible.
func (r *ProjectRepo) FindVisibleForUser(ctx context.Context, userID uint) ([]models.Project, error) {
	var projects []models.Project
	err := withReadView(r.db.WithContext(ctx)).
		Where("user_id = ? AND is_visible = ?", userID, true).
		Order("start_date DESC, id").
		Find(&projects).Error
	return projects, err
}

// FindForUser returns nil without error when the project is missing or owned by someone else.
func (r *ProjectRepo) FindForUser(ctx context.Context, userID, id uint) (*models.Project, error) {
	var project models.Project
	tx := withReadView(r.db.WithContext(ctx)).
		Where("id = ? AND user_id = ?", id, userID).
		Limit(1).
		Find(&project)
	if tx.Error != nil || tx.RowsAffected == 0 {
		return nil, tx.Error
	}
	return &project, nil
}

func (r *ProjectRepo) CountByCategory(ctx context.Context, categoryID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Project{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error
	return count, err
}

func (r *ProjectRepo) CountByCategoryForUser(ctx context.Context, categoryID, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Project{}).
		Where("category_id = ? AND user_id = ?", categoryID, userID).
		Count(&count).Error
	return count, err
}

func (r *ProjectRepo) CountByTechnology(ctx context.Context, technologyID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ProjectTechnology{}).
		Where("technology_id = ?", technologyID).
		Count(&count).Error
	return count, err
}

func (r *ProjectRepo) CountByTechnologyForUser(ctx context.Context, technologyID, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ProjectTechnology{}).
		Joins("JOIN projects ON projects.id = project_technologies.project_id").
		Where("project_technologies.technology_id = ? AND projects.user_id = ?", technologyID, userID).
		Count(&count).Error
	return count, err
}

// Add inserts the project row only; technologies go through ReplaceTechnologies.
func (r *ProjectRepo) Add(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(project).Error
}

// Update saves every column of project without touching associations.
func (r *ProjectRepo) Update(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(project).Error
}

// ReplaceTechnologies deletes all of the project's technology rows and
// inserts one per id.
func (r *ProjectRepo) ReplaceTechnologies(ctx context.Context, projectID uint, technologyIDs []uint) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("project_id = ?", projectID).Delete(&models.ProjectTechnology{}).Error; err != nil {
		return err
	}
	if len(technologyIDs) == 0 {
		return nil
	}

	rows := make([]models.ProjectTechnology, 0, len(technologyIDs))
	for _, id := range technologyIDs {
		rows = append(rows, models.ProjectTechnology{ProjectID: projectID, TechnologyID: id})
	}
	return db.Omit(clause.Associations).Create(&rows).Error
}

// Delete removes the project and its technology rows.
func (r *ProjectRepo) Delete(ctx context.Context, id uint) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("project_id = ?", id).Delete(&models.ProjectTechnology{}).Error; err != nil {
		return err
	}
	return db.Delete(&models.Project{}, id).Error
}

// FindByID loads the bare project row, or nil when it does not exist.
func (r *ProjectRepo) FindByID(ctx context.Context, id uint) (*models.Project, error) {
	var project models.Project
	tx := r.db.WithContext(ctx).Where("id = ?", id).Limit(1).Find(&project)
	if tx.Error != nil || tx.RowsAffected == 0 {
		return nil, tx.Error
	}
	return &project, nil
}
