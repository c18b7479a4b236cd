package models

import "time"

// Technology names are unique within their group, not globally.
type Technology struct {
	ID                uint            `json:"id" gorm:"primaryKey"`
	Name              string          `json:"name" gorm:"size:50;not null;uniqueIndex:idx_technologies_name_group"`
	TechnologyGroupID uint            `json:"technologyGroupId" gorm:"not null;index;uniqueIndex:idx_technologies_name_group"`
	TechnologyGroup   TechnologyGroup `json:"technologyGroup" gorm:"foreignKey:TechnologyGroupID;constraint:OnDelete:RESTRICT"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}
