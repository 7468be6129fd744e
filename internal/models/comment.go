package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment is a review left on a campground.
//
// CampgroundID is deliberately not a DB-level foreign key: deleting a
// campground leaves its comments retrievable by id (dangling references are
// accepted, matching the listing lifecycle).
type Comment struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Text           string         `gorm:"not null" json:"text"`
	CampgroundID   uint           `gorm:"not null;index" json:"campground_id"`
	AuthorID       uint           `gorm:"not null" json:"author_id"`
	AuthorUsername string         `json:"author_username"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// OwnerID implements authz.Owned.
func (c *Comment) OwnerID() uint {
	return c.AuthorID
}
