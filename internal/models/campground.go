package models

import (
	"time"

	"gorm.io/gorm"
)

// Campground is a listed campground with a geocoded location and an
// externally hosted image.
//
// AuthorUsername and AuthorAvatar are a denormalized snapshot of the author
// taken at authorship time. They are not refreshed when the user edits their
// profile; AuthorID remains the canonical reference.
type Campground struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"not null;index" json:"name"`
	// Price is a display string, not a number, so form-entered formatting survives.
	Price          string         `json:"price"`
	Description    string         `gorm:"type:text" json:"description"`
	Image          string         `json:"image"`
	ImageID        string         `json:"-"`
	Location       string         `json:"location"`
	Lat            float64        `json:"lat"`
	Lng            float64        `json:"lng"`
	AuthorID       uint           `gorm:"not null;index" json:"author_id"`
	AuthorUsername string         `json:"author_username"`
	AuthorAvatar   string         `json:"author_avatar"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// OwnerID implements authz.Owned.
func (c *Campground) OwnerID() uint {
	return c.AuthorID
}
