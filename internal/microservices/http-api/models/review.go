package models

import "time"

type Review struct {
	ID       uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	TitleID  uint      `json:"-" gorm:"not null;index;uniqueIndex:idx_reviews_title_author"`
	AuthorID uint      `json:"-" gorm:"not null;index;uniqueIndex:idx_reviews_title_author"`
	Text     string    `json:"text" gorm:"type:text;not null"`
	Score    int       `json:"score" gorm:"not null;check:score >= 1 AND score <= 10"`
	PubDate  time.Time `json:"pub_date" gorm:"column:pub_date;autoCreateTime"`

	// Associations
	Author User  `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE;"`
	Title  Title `json:"-" gorm:"foreignKey:TitleID;constraint:OnDelete:CASCADE;"`
}

func (Review) TableName() string {
	return "reviews"
}
