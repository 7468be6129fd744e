package seed

import (
	"fmt"
	"log"

	"campwild/internal/models"

	"gorm.io/gorm"
)

// Options controls how much data the seeder generates.
type Options struct {
	// Users is the number of accounts to create.
	Users int
	// Campgrounds is the number of listings to create, spread across users.
	Campgrounds int
	// MaxCommentsPer bounds how many comments each campground receives.
	MaxCommentsPer int
	// MaxDays bounds how far back created_at timestamps are scattered.
	MaxDays int
	// DryRun builds entities without touching the database.
	DryRun bool
}

// Seeder populates the database with demo data.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
	opts    Options
}

// NewSeeder creates a Seeder with the given options.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	if opts.Users <= 0 {
		opts.Users = 20
	}
	if opts.Campgrounds <= 0 {
		opts.Campgrounds = 50
	}
	if opts.MaxCommentsPer <= 0 {
		opts.MaxCommentsPer = 5
	}
	return &Seeder{db: db, factory: NewFactory(db, opts), opts: opts}
}

// ClearAll removes all seeded data. Comments go first since they reference
// campgrounds by ID only.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	for _, model := range []any{&models.Comment{}, &models.Campground{}, &models.User{}} {
		if err := s.db.Unscoped().Where("1 = 1").Delete(model).Error; err != nil {
			return fmt.Errorf("clearing %T: %w", model, err)
		}
	}
	return nil
}

// Run seeds users, campgrounds, and comments. One seeded user is always an
// admin so the moderation paths can be exercised out of the box.
func (s *Seeder) Run() error {
	log.Printf("Seeding %d users...", s.opts.Users)
	users := make([]*models.User, 0, s.opts.Users)

	admin, err := s.factory.CreateUser(func(u *models.User) {
		u.Username = "ranger"
		u.Email = "ranger@campwild.dev"
		u.IsAdmin = true
	})
	if err != nil {
		return fmt.Errorf("seeding admin: %w", err)
	}
	users = append(users, admin)

	for i := 1; i < s.opts.Users; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return fmt.Errorf("seeding user %d: %w", i, err)
		}
		users = append(users, user)
	}

	log.Printf("Seeding %d campgrounds...", s.opts.Campgrounds)
	for i := 0; i < s.opts.Campgrounds; i++ {
		author := users[s.factory.rng.Intn(len(users))]
		campground, err := s.factory.CreateCampground(author)
		if err != nil {
			return fmt.Errorf("seeding campground %d: %w", i, err)
		}

		for j := 0; j < s.factory.rng.Intn(s.opts.MaxCommentsPer+1); j++ {
			commenter := users[s.factory.rng.Intn(len(users))]
			if _, err := s.factory.CreateComment(commenter, campground); err != nil {
				return fmt.Errorf("seeding comment on campground %d: %w", campground.ID, err)
			}
		}
	}

	log.Println("Seeding complete")
	return nil
}
