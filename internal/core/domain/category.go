package domain

// Category is reference data for projects. It has no publish workflow.
type Category struct {
	ID   int64  `json:"category_id" gorm:"column:category_id;primaryKey;autoIncrement"`
	Name string `json:"category_name" gorm:"column:category_name;uniqueIndex;size:128;not null"`
}

func (Category) TableName() string { return "category" }
