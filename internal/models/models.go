package models

import "time"

// User is a registered author. Password never appears in JSON output;
// Avatar and Thumbnail hold bare filenames under the upload directory
// (weak references, the media layer owns the files).
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100" json:"name"`
	Email     string    `gorm:"size:255;uniqueIndex" json:"email"`
	Password  string    `gorm:"size:255" json:"-"`
	Avatar    string    `gorm:"size:255" json:"avatar"`
	Posts     int       `gorm:"default:0" json:"posts"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Post belongs to a category and points at its creator by id only.
type Post struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:255" json:"title"`
	Category    string    `gorm:"size:50;index" json:"category"`
	Description string    `gorm:"type:text" json:"description"`
	CreatorID   uint      `gorm:"index" json:"creator"`
	Thumbnail   string    `gorm:"size:255" json:"thumbnail"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Categories is the fixed set a post may belong to.
var Categories = []string{
	"Agriculture",
	"Business",
	"Education",
	"Entertainment",
	"Art",
	"Investment",
	"Uncategorized",
	"Weather",
}

func ValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}
