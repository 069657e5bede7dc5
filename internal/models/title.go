package models

import "time"

type Title struct {
	ID          int64    `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string   `json:"name" gorm:"size:256;not null"`
	Year        int      `json:"year" gorm:"not null;index"`
	CategoryID  int64    `json:"-" gorm:"not null;index"`
	Category    Category `json:"category" gorm:"foreignKey:CategoryID"`
	Description *string  `json:"description,omitempty" gorm:"type:text"`
	// Rating is the average review score, filled by the aggregate listing
	// query; nil when the title has no reviews.
	Rating    *float64  `json:"rating" gorm:"->;-:migration"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	Genres []Genre `json:"genres,omitempty" gorm:"many2many:genre_titles;constraint:OnDelete:CASCADE;"`
}

func (Title) TableName() string {
	return "titles"
}

// explicit join model to keep the association table under migration control
type GenreTitle struct {
	ID      int64 `json:"id" gorm:"primaryKey;autoIncrement"`
	GenreID int64 `json:"genre_id" gorm:"index;not null"`
	TitleID int64 `json:"title_id" gorm:"index;not null"`
}

func (GenreTitle) TableName() string {
	return "genre_titles"
}
