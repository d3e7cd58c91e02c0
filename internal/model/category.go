package model

// Category groups materials. Names are unique with exact, case-sensitive matching.
type Category struct {
	BaseModel
	Name string `gorm:"type:varchar(50);uniqueIndex;not null" json:"name" validate:"max=50"`
}
