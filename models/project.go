package models

import "time"

// Project is owned by exactly one user and links to technologies through
// ProjectTechnology rows.
type Project struct {
	ID                  uint                `json:"id" gorm:"primaryKey"`
	Title               string              `json:"title" gorm:"size:100;not null"`
	Description         string              `json:"description" gorm:"type:text;not null"`
	GithubLink          *string             `json:"githubLink,omitempty" gorm:"size:2048"`
	DeployedLink        *string             `json:"deployedLink,omitempty" gorm:"size:2048"`
	IsVisible           bool                `json:"isVisible" gorm:"not null;default:false"`
	StartDate           *time.Time          `json:"startDate,omitempty"`
	EndDate             *time.Time          `json:"endDate,omitempty"`
	Difficulty          Difficulty          `json:"difficulty" gorm:"not null"`
	CategoryID          uint                `json:"categoryId" gorm:"not null;index"`
	Category            Category            `json:"category" gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT"`
	UserID              uint                `json:"userId" gorm:"not null;index"`
	User                User                `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	ProjectTechnologies []ProjectTechnology `json:"projectTechnologies,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	CreatedAt           time.Time           `json:"createdAt"`
	UpdatedAt           time.Time           `json:"updatedAt"`
}

// TechnologyIDs lists the ids of the loaded ProjectTechnologies.
func (p Project) TechnologyIDs() []uint {
	ids := make([]uint, 0, len(p.ProjectTechnologies))
	for _, pt := range p.ProjectTechnologies {
		ids = append(ids, pt.TechnologyID)
	}
	return ids
}
