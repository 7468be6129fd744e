package server

import (
	"context"

	"campwild/internal/config"
	"campwild/internal/geocode"
	"campwild/internal/media"
	"campwild/internal/models"
	"campwild/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock of the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByResetToken(ctx context.Context, token string) (*models.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) SearchByUsername(ctx context.Context, query string, limit, offset int) ([]models.User, error) {
	args := m.Called(ctx, query, limit, offset)
	return args.Get(0).([]models.User), args.Error(1)
}

// MockCampgroundRepository is a mock of the CampgroundRepository interface
type MockCampgroundRepository struct {
	mock.Mock
}

func (m *MockCampgroundRepository) Create(ctx context.Context, campground *models.Campground) error {
	args := m.Called(ctx, campground)
	return args.Error(0)
}

func (m *MockCampgroundRepository) GetByID(ctx context.Context, id uint) (*models.Campground, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Campground), args.Error(1)
}

func (m *MockCampgroundRepository) List(ctx context.Context, limit, offset int) ([]models.Campground, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]models.Campground), args.Error(1)
}

func (m *MockCampgroundRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCampgroundRepository) ListByAuthor(ctx context.Context, authorID uint, limit, offset int) ([]models.Campground, error) {
	args := m.Called(ctx, authorID, limit, offset)
	return args.Get(0).([]models.Campground), args.Error(1)
}

func (m *MockCampgroundRepository) SearchByName(ctx context.Context, query string, limit, offset int) ([]models.Campground, error) {
	args := m.Called(ctx, query, limit, offset)
	return args.Get(0).([]models.Campground), args.Error(1)
}

func (m *MockCampgroundRepository) Update(ctx context.Context, campground *models.Campground) error {
	args := m.Called(ctx, campground)
	return args.Error(0)
}

func (m *MockCampgroundRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCommentRepository is a mock of the CommentRepository interface
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) ListByCampground(ctx context.Context, campgroundID uint) ([]models.Comment, error) {
	args := m.Called(ctx, campgroundID)
	return args.Get(0).([]models.Comment), args.Error(1)
}

func (m *MockCommentRepository) Update(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// stubStore is an in-memory media.Store for handler tests.
type stubStore struct {
	destroyed []string
}

func (s *stubStore) Upload(_ context.Context, _ []byte, filename, folder string) (*media.Resource, error) {
	id := folder + "/" + filename
	return &media.Resource{URL: "http://img.test/" + id, ID: id}, nil
}

func (s *stubStore) Destroy(_ context.Context, id string) error {
	s.destroyed = append(s.destroyed, id)
	return nil
}

// stubGeocoder resolves every address to a fixed point.
type stubGeocoder struct{}

func (stubGeocoder) Locate(_ context.Context, address string) (*geocode.Result, error) {
	return &geocode.Result{Lat: 44.4280, Lng: -110.5885, FormattedAddress: address}, nil
}

// stubMailer records outgoing mail.
type stubMailer struct {
	sent []string
}

func (m *stubMailer) Send(_ context.Context, to, _ string, _ string) error {
	m.sent = append(m.sent, to)
	return nil
}

func noAdmin(_ context.Context, _ uint) (bool, error) {
	return false, nil
}

// newTestServer wires a Server around mock repositories with no database or
// Redis behind it.
func newTestServer(users *MockUserRepository, campgrounds *MockCampgroundRepository, comments *MockCommentRepository) *Server {
	cfg := &config.Config{JWTSecret: "test_secret", AppBaseURL: "http://localhost:5173"}
	s := &Server{
		config:         cfg,
		userRepo:       users,
		campgroundRepo: campgrounds,
		commentRepo:    comments,
	}
	s.userService = service.NewUserService(users, &stubStore{}, noAdmin)
	s.campgroundService = service.NewCampgroundService(
		campgrounds, comments, users, &stubStore{}, stubGeocoder{}, noAdmin)
	s.commentService = service.NewCommentService(comments, campgrounds, users, noAdmin)
	s.passwordResetService = service.NewPasswordResetService(users, &stubMailer{}, cfg.AppBaseURL)
	s.searchService = service.NewSearchService(campgrounds, users)
	return s
}

// asUser simulates AuthRequired having stored the given user ID in locals.
func asUser(id uint) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("userID", id)
		return c.Next()
	}
}
