package models

type Title struct {
	ID          uint    `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string  `json:"name" gorm:"size:256;uniqueIndex;not null"`
	Year        int     `json:"year" gorm:"not null;index"`
	Description *string `json:"description" gorm:"type:text"`
	CategoryID  *uint   `json:"-" gorm:"index"`

	// Rating is filled from an AVG(score) subquery on read; never stored.
	Rating *float64 `json:"rating" gorm:"->;-:migration"`

	// associations
	Category *Category `json:"category" gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL;"`
	Genres   []Genre   `json:"genre" gorm:"many2many:title_genres;constraint:OnDelete:CASCADE;"`
}

func (Title) TableName() string {
	return "titles"
}
