package models

import "time"

type TechnologyGroup struct {
	ID           uint         `json:"id" gorm:"primaryKey"`
	Name         string       `json:"name" gorm:"size:50;not null;uniqueIndex:idx_technology_groups_name"`
	Technologies []Technology `json:"technologies,omitempty" gorm:"foreignKey:TechnologyGroupID;constraint:OnDelete:RESTRICT"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}
