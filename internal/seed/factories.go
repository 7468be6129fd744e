// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"campwild/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// park is a seed location with known coordinates so seeding never has to call
// a geocoding provider.
type park struct {
	name string
	lat  float64
	lng  float64
}

var parks = []park{
	{"Yellowstone National Park, WY, USA", 44.4280, -110.5885},
	{"Yosemite National Park, CA, USA", 37.8651, -119.5383},
	{"Grand Teton National Park, WY, USA", 43.7904, -110.6818},
	{"Zion National Park, UT, USA", 37.2982, -113.0263},
	{"Acadia National Park, ME, USA", 44.3386, -68.2733},
	{"Glacier National Park, MT, USA", 48.7596, -113.7870},
	{"Olympic National Park, WA, USA", 47.8021, -123.6044},
	{"Shenandoah National Park, VA, USA", 38.2928, -78.6796},
}

var campgroundAdjectives = []string{
	"Granite", "Cloud's", "Bear", "Silver", "Whispering", "Hidden", "Eagle", "Mossy",
}

var campgroundNouns = []string{
	"Flats", "Rest", "Hollow", "Creek", "Pines", "Meadow", "Ridge", "Springs",
}

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by seed presets and tests.
type Factory struct {
	db   *gorm.DB
	opts Options
	rng  *rand.Rand
	// synthetic ID counter when running in DryRun mode
	nextID uint
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	// seed gofakeit for richer content
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:     db,
		opts:   opts,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		nextID: 1000,
	}
}

// spreadCreatedAt returns a timestamp scattered over the last MaxDays days so
// seeded listings don't all appear at once.
func (f *Factory) spreadCreatedAt() time.Time {
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	daysBack := f.rng.Intn(maxDays)
	hoursBack := f.rng.Intn(24)
	minsBack := f.rng.Intn(60)
	return time.Now().Add(-time.Duration(daysBack)*24*time.Hour -
		time.Duration(hoursBack)*time.Hour - time.Duration(minsBack)*time.Minute)
}

func (f *Factory) claimID() uint {
	id := f.nextID
	f.nextID++
	return id
}

// CreateUser creates a user with fake but plausible profile data. All seeded
// users share the password "password123".
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	username := fmt.Sprintf("%s%d", gofakeit.Username(), f.rng.Intn(10000))
	user := &models.User{
		Username:  username,
		Email:     gofakeit.Email(),
		Password:  string(hash),
		FirstName: gofakeit.FirstName(),
		LastName:  gofakeit.LastName(),
		Bio:       gofakeit.Sentence(8),
		Avatar:    fmt.Sprintf("https://picsum.photos/seed/%s/200/200", gofakeit.UUID()),
		CreatedAt: f.spreadCreatedAt(),
	}
	for _, o := range overrides {
		o(user)
	}

	if f.opts.DryRun {
		user.ID = f.claimID()
		return user, nil
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// BuildCampground constructs a campground for the given author without
// persisting it. Useful for batching.
func (f *Factory) BuildCampground(author *models.User, overrides ...func(*models.Campground)) *models.Campground {
	p := parks[f.rng.Intn(len(parks))]
	name := fmt.Sprintf("%s %s",
		campgroundAdjectives[f.rng.Intn(len(campgroundAdjectives))],
		campgroundNouns[f.rng.Intn(len(campgroundNouns))])

	campground := &models.Campground{
		Name:           name,
		Price:          fmt.Sprintf("%d.00", 5+f.rng.Intn(45)),
		Description:    gofakeit.Paragraph(1, 3, 8, "\n"),
		Image:          fmt.Sprintf("https://picsum.photos/seed/%s/800/600", gofakeit.UUID()),
		Location:       p.name,
		Lat:            p.lat,
		Lng:            p.lng,
		AuthorID:       author.ID,
		AuthorUsername: author.Username,
		AuthorAvatar:   author.Avatar,
		CreatedAt:      f.spreadCreatedAt(),
	}
	for _, o := range overrides {
		o(campground)
	}
	return campground
}

// CreateCampground creates and persists a campground owned by the author.
func (f *Factory) CreateCampground(author *models.User, overrides ...func(*models.Campground)) (*models.Campground, error) {
	campground := f.BuildCampground(author, overrides...)
	if f.opts.DryRun {
		campground.ID = f.claimID()
		return campground, nil
	}
	if err := f.db.Create(campground).Error; err != nil {
		return nil, err
	}
	return campground, nil
}

// CreateComment creates a comment by the user on the campground.
func (f *Factory) CreateComment(author *models.User, campground *models.Campground, overrides ...func(*models.Comment)) (*models.Comment, error) {
	comment := &models.Comment{
		Text:           gofakeit.Sentence(10),
		CampgroundID:   campground.ID,
		AuthorID:       author.ID,
		AuthorUsername: author.Username,
		CreatedAt:      f.spreadCreatedAt(),
	}
	for _, o := range overrides {
		o(comment)
	}

	if f.opts.DryRun {
		comment.ID = f.claimID()
		return comment, nil
	}
	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}
