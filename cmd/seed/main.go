// Command main runs the database seeder for Campwild.
package main

import (
	"flag"
	"log"

	"campwild/internal/config"
	"campwild/internal/database"
	"campwild/internal/seed"
)

func main() {
	// Parse command line flags
	numUsers := flag.Int("users", 20, "Number of users to create")
	numCampgrounds := flag.Int("campgrounds", 50, "Number of campgrounds to create")
	maxComments := flag.Int("max-comments", 5, "Maximum comments per campground")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("Database Seeder")
	log.Println("===============")
	log.Printf("Target: %d users, %d campgrounds, clean=%v\n", *numUsers, *numCampgrounds, *shouldClean)

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run seeder
	s := seed.NewSeeder(db, seed.Options{
		Users:          *numUsers,
		Campgrounds:    *numCampgrounds,
		MaxCommentsPer: *maxComments,
	})

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	if err := s.Run(); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("All done! Your database is now populated with demo data.")
	log.Println("All seeded users have the password: password123")
}
