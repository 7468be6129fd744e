package database

import "campwild/internal/models"

// AllModels returns every model AutoMigrate manages, in dependency order.
// Comments intentionally carry no foreign key to campgrounds, so order only
// matters for users before campgrounds.
func AllModels() []any {
	return []any{
		&models.User{},
		&models.Campground{},
		&models.Comment{},
	}
}
