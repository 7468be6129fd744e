// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a registered Campwild account.
//
// ResetPasswordToken and ResetPasswordExpires are a pair: both are set when a
// password reset is requested and both are cleared when the reset completes.
// One without the other is an invalid state.
type User struct {
	ID                   uint           `gorm:"primaryKey" json:"id"`
	Username             string         `gorm:"unique;not null" json:"username"`
	Email                string         `gorm:"unique;not null" json:"email"`
	Password             string         `gorm:"not null" json:"-"`
	FirstName            string         `json:"first_name"`
	LastName             string         `json:"last_name"`
	Bio                  string         `json:"bio"`
	IsAdmin              bool           `gorm:"default:false" json:"is_admin"`
	Avatar               string         `json:"avatar"`
	AvatarID             string         `json:"-"`
	ResetPasswordToken   *string        `gorm:"index" json:"-"`
	ResetPasswordExpires *time.Time     `json:"-"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
	DeletedAt            gorm.DeletedAt `gorm:"index" json:"-"`
}

// OwnerID implements authz.Owned: a user owns their own profile.
func (u *User) OwnerID() uint {
	return u.ID
}
