package models

// explicit join model so the table keeps its own id, matching the CSV dumps
type TitleGenre struct {
	ID      uint `json:"id" gorm:"primaryKey;autoIncrement"`
	TitleID uint `json:"title_id" gorm:"not null;index;index:idx_title_genres_pair,unique"`
	GenreID uint `json:"genre_id" gorm:"not null;index;index:idx_title_genres_pair,unique"`

	Title *Title `json:"-" gorm:"foreignKey:TitleID;constraint:OnDelete:CASCADE;"`
	Genre *Genre `json:"-" gorm:"foreignKey:GenreID;constraint:OnDelete:CASCADE;"`
}

func (TitleGenre) TableName() string {
	return "title_genres"
}
