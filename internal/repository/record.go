package repository

import (
	"time"

	"campwild/internal/models"
)

// Cached rows round-trip through JSON, and the API models hide credential and
// media-key fields from their JSON encoding. Caching the models directly would
// hand back those fields zeroed on a hit, and the full-struct Save in Update
// would then persist the zeroes. These records carry every column.

type userRecord struct {
	ID                   uint       `json:"id"`
	Username             string     `json:"username"`
	Email                string     `json:"email"`
	Password             string     `json:"password"`
	FirstName            string     `json:"first_name"`
	LastName             string     `json:"last_name"`
	Bio                  string     `json:"bio"`
	IsAdmin              bool       `json:"is_admin"`
	Avatar               string     `json:"avatar"`
	AvatarID             string     `json:"avatar_id"`
	ResetPasswordToken   *string    `json:"reset_password_token"`
	ResetPasswordExpires *time.Time `json:"reset_password_expires"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

func newUserRecord(u *models.User) userRecord {
	return userRecord{
		ID:                   u.ID,
		Username:             u.Username,
		Email:                u.Email,
		Password:             u.Password,
		FirstName:            u.FirstName,
		LastName:             u.LastName,
		Bio:                  u.Bio,
		IsAdmin:              u.IsAdmin,
		Avatar:               u.Avatar,
		AvatarID:             u.AvatarID,
		ResetPasswordToken:   u.ResetPasswordToken,
		ResetPasswordExpires: u.ResetPasswordExpires,
		CreatedAt:            u.CreatedAt,
		UpdatedAt:            u.UpdatedAt,
	}
}

func (r userRecord) user() *models.User {
	return &models.User{
		ID:                   r.ID,
		Username:             r.Username,
		Email:                r.Email,
		Password:             r.Password,
		FirstName:            r.FirstName,
		LastName:             r.LastName,
		Bio:                  r.Bio,
		IsAdmin:              r.IsAdmin,
		Avatar:               r.Avatar,
		AvatarID:             r.AvatarID,
		ResetPasswordToken:   r.ResetPasswordToken,
		ResetPasswordExpires: r.ResetPasswordExpires,
		CreatedAt:            r.CreatedAt,
		UpdatedAt:            r.UpdatedAt,
	}
}

type campgroundRecord struct {
	ID             uint      `json:"id"`
	Name           string    `json:"name"`
	Price          string    `json:"price"`
	Description    string    `json:"description"`
	Image          string    `json:"image"`
	ImageID        string    `json:"image_id"`
	Location       string    `json:"location"`
	Lat            float64   `json:"lat"`
	Lng            float64   `json:"lng"`
	AuthorID       uint      `json:"author_id"`
	AuthorUsername string    `json:"author_username"`
	AuthorAvatar   string    `json:"author_avatar"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func newCampgroundRecord(c *models.Campground) campgroundRecord {
	return campgroundRecord{
		ID:             c.ID,
		Name:           c.Name,
		Price:          c.Price,
		Description:    c.Description,
		Image:          c.Image,
		ImageID:        c.ImageID,
		Location:       c.Location,
		Lat:            c.Lat,
		Lng:            c.Lng,
		AuthorID:       c.AuthorID,
		AuthorUsername: c.AuthorUsername,
		AuthorAvatar:   c.AuthorAvatar,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

func (r campgroundRecord) campground() *models.Campground {
	return &models.Campground{
		ID:             r.ID,
		Name:           r.Name,
		Price:          r.Price,
		Description:    r.Description,
		Image:          r.Image,
		ImageID:        r.ImageID,
		Location:       r.Location,
		Lat:            r.Lat,
		Lng:            r.Lng,
		AuthorID:       r.AuthorID,
		AuthorUsername: r.AuthorUsername,
		AuthorAvatar:   r.AuthorAvatar,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

func newCampgroundRecords(campgrounds []models.Campground) []campgroundRecord {
	records := make([]campgroundRecord, len(campgrounds))
	for i := range campgrounds {
		records[i] = newCampgroundRecord(&campgrounds[i])
	}
	return records
}

func campgroundModels(records []campgroundRecord) []models.Campground {
	campgrounds := make([]models.Campground, len(records))
	for i := range records {
		campgrounds[i] = *records[i].campground()
	}
	return campgrounds
}
