package models

type Category struct {
	ID   uint   `json:"-" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"size:256;not null"`
	Slug string `json:"slug" gorm:"size:50;uniqueIndex;not null"`
}

func (Category) TableName() string {
	return "categories"
}
