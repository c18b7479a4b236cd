package models

// Association rows use composite primary keys and cascade from both sides.

type UserCategory struct {
	UserID     uint     `gorm:"primaryKey;autoIncrement:false"`
	CategoryID uint     `gorm:"primaryKey;autoIncrement:false;index"`
	User       User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Category   Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
}

type UserTechnology struct {
	UserID       uint       `gorm:"primaryKey;autoIncrement:false"`
	TechnologyID uint       `gorm:"primaryKey;autoIncrement:false;index"`
	User         User       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Technology   Technology `gorm:"foreignKey:TechnologyID;constraint:OnDelete:CASCADE"`
}

type UserTechnologyGroup struct {
	UserID            uint            `gorm:"primaryKey;autoIncrement:false"`
	TechnologyGroupID uint            `gorm:"primaryKey;autoIncrement:false;index"`
	User              User            `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	TechnologyGroup   TechnologyGroup `gorm:"foreignKey:TechnologyGroupID;constraint:OnDelete:CASCADE"`
}

type ProjectTechnology struct {
	ProjectID    uint       `json:"projectId" gorm:"primaryKey;autoIncrement:false"`
	TechnologyID uint       `json:"technologyId" gorm:"primaryKey;autoIncrement:false;index"`
	Technology   Technology `json:"technology" gorm:"foreignKey:TechnologyID;constraint:OnDelete:CASCADE"`
}

// AssociationKind names one user-to-resource join table and the column
// holding the resource id.
type AssociationKind struct {
	Table    string
	Column   string
	Resource string
}

var (
	CategoryAssociation = AssociationKind{
		Table:    "user_categories",
		Column:   "category_id",
		Resource: "category",
	}
	TechnologyAssociation = AssociationKind{
		Table:    "user_technologies",
		Column:   "technology_id",
		Resource: "technology",
	}
	TechnologyGroupAssociation = AssociationKind{
		Table:    "user_technology_groups",
		Column:   "technology_group_id",
		Resource: "technology group",
	}
)

// AllModels lists every persisted model in migration order.
func AllModels() []any {
	return []any{
		&User{},
		&Category{},
		&TechnologyGroup{},
		&Technology{},
		&Project{},
		&UserCategory{},
		&UserTechnology{},
		&UserTechnologyGroup{},
		&ProjectTechnology{},
	}
}
