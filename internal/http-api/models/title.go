package models

import "time"

type Title struct {
	ID          int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string  `json:"name" gorm:"not null;size:200"`
	Year        *int    `json:"year,omitempty"`
	Description *string `json:"description,omitempty" gorm:"type:text"`

	// Deleting a category clears the reference on its titles, it never
	// deletes the titles themselves.
	CategoryID *int64    `json:"category_id,omitempty" gorm:"index"`
	Category   *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL;"`

	Genres []Genre `json:"genres,omitempty" gorm:"many2many:title_genres;"`

	CreatedAt *time.Time `json:"created_at,omitempty" gorm:"autoCreateTime"`
}

func (Title) TableName() string {
	return "titles"
}
