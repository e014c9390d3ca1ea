package models

import "time"

type Comment struct {
	ID       uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	ReviewID uint      `json:"-" gorm:"not null;index"`
	AuthorID uint      `json:"-" gorm:"not null;index"`
	Text     string    `json:"text" gorm:"not null;type:text"`
	PubDate  time.Time `json:"pub_date" gorm:"column:pub_date;autoCreateTime"`

	// Associations
	Author User   `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE;"`
	Review Review `json:"-" gorm:"foreignKey:ReviewID;constraint:OnDelete:CASCADE;"`
}

func (Comment) TableName() string {
	return "comments"
}
