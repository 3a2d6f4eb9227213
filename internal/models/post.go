// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Post is a published blog entry. Date is the human-readable publication
// date ("Month DD, YYYY") stamped at creation; it and AuthorID are immutable
// after creation.
type Post struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Title     string         `gorm:"unique;not null" json:"title"`
	Subtitle  string         `gorm:"not null" json:"subtitle"`
	Date      string         `gorm:"not null" json:"date"`
	Body      string         `gorm:"type:text;not null" json:"body"`
	ImageURL  string         `json:"image_url"`
	AuthorID  uint           `gorm:"not null;index" json:"author_id"`
	Author    User           `gorm:"foreignKey:AuthorID" json:"author"`
	Comments  []Comment      `gorm:"foreignKey:PostID" json:"comments,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
