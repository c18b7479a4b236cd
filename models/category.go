package models

import "time"

// Category is shared reference data; users reach it through UserCategory rows.
// Name is stored title-cased so the unique index also covers case variants.
type Category struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:50;not null;uniqueIndex:idx_categories_name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
