package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"campwild/internal/geocode"
	"campwild/internal/media"
	"campwild/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn          func(context.Context, uint) (*models.User, error)
	getByEmailFn       func(context.Context, string) (*models.User, error)
	getByUsernameFn    func(context.Context, string) (*models.User, error)
	getByResetTokenFn  func(context.Context, string) (*models.User, error)
	createFn           func(context.Context, *models.User) error
	updateFn           func(context.Context, *models.User) error
	deleteFn           func(context.Context, uint) error
	listFn             func(context.Context, int, int) ([]models.User, error)
	searchByUsernameFn func(context.Context, string, int, int) ([]models.User, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) GetByResetToken(ctx context.Context, token string) (*models.User, error) {
	return s.getByResetTokenFn(ctx, token)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *userRepoStub) SearchByUsername(ctx context.Context, query string, limit, offset int) ([]models.User, error) {
	return s.searchByUsernameFn(ctx, query, limit, offset)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Username: "hiker", Avatar: "http://img/avatar.png"}, nil
		},
		getByEmailFn:      func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		getByUsernameFn:   func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		getByResetTokenFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn:          func(_ context.Context, _ *models.User) error { return nil },
		updateFn:          func(_ context.Context, _ *models.User) error { return nil },
		deleteFn:          func(_ context.Context, _ uint) error { return nil },
		listFn:            func(_ context.Context, _, _ int) ([]models.User, error) { return nil, nil },
		searchByUsernameFn: func(_ context.Context, _ string, _, _ int) ([]models.User, error) {
			return nil, nil
		},
	}
}

// campgroundRepoStub is a stub for repository.CampgroundRepository.
type campgroundRepoStub struct {
	createFn       func(context.Context, *models.Campground) error
	getByIDFn      func(context.Context, uint) (*models.Campground, error)
	listFn         func(context.Context, int, int) ([]models.Campground, error)
	countFn        func(context.Context) (int64, error)
	listByAuthorFn func(context.Context, uint, int, int) ([]models.Campground, error)
	searchByNameFn func(context.Context, string, int, int) ([]models.Campground, error)
	updateFn       func(context.Context, *models.Campground) error
	deleteFn       func(context.Context, uint) error
}

func (s *campgroundRepoStub) Create(ctx context.Context, campground *models.Campground) error {
	return s.createFn(ctx, campground)
}
func (s *campgroundRepoStub) GetByID(ctx context.Context, id uint) (*models.Campground, error) {
	return s.getByIDFn(ctx, id)
}
func (s *campgroundRepoStub) List(ctx context.Context, limit, offset int) ([]models.Campground, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *campgroundRepoStub) Count(ctx context.Context) (int64, error) {
	return s.countFn(ctx)
}
func (s *campgroundRepoStub) ListByAuthor(ctx context.Context, authorID uint, limit, offset int) ([]models.Campground, error) {
	return s.listByAuthorFn(ctx, authorID, limit, offset)
}
func (s *campgroundRepoStub) SearchByName(ctx context.Context, query string, limit, offset int) ([]models.Campground, error) {
	return s.searchByNameFn(ctx, query, limit, offset)
}
func (s *campgroundRepoStub) Update(ctx context.Context, campground *models.Campground) error {
	return s.updateFn(ctx, campground)
}
func (s *campgroundRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopCampgroundRepo() *campgroundRepoStub {
	return &campgroundRepoStub{
		createFn: func(_ context.Context, _ *models.Campground) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Campground, error) {
			return &models.Campground{ID: id, Name: "Granite Flats", AuthorID: 1, ImageID: "campgrounds/old.jpg"}, nil
		},
		listFn:  func(_ context.Context, _, _ int) ([]models.Campground, error) { return nil, nil },
		countFn: func(_ context.Context) (int64, error) { return 0, nil },
		listByAuthorFn: func(_ context.Context, _ uint, _, _ int) ([]models.Campground, error) {
			return nil, nil
		},
		searchByNameFn: func(_ context.Context, _ string, _, _ int) ([]models.Campground, error) {
			return nil, nil
		},
		updateFn: func(_ context.Context, _ *models.Campground) error { return nil },
		deleteFn: func(_ context.Context, _ uint) error { return nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn           func(context.Context, *models.Comment) error
	getByIDFn          func(context.Context, uint) (*models.Comment, error)
	listByCampgroundFn func(context.Context, uint) ([]models.Comment, error)
	updateFn           func(context.Context, *models.Comment) error
	deleteFn           func(context.Context, uint) error
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByCampground(ctx context.Context, campgroundID uint) ([]models.Comment, error) {
	return s.listByCampgroundFn(ctx, campgroundID)
}
func (s *commentRepoStub) Update(ctx context.Context, comment *models.Comment) error {
	return s.updateFn(ctx, comment)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn: func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id, Text: "Great spot", CampgroundID: 1, AuthorID: 1}, nil
		},
		listByCampgroundFn: func(_ context.Context, _ uint) ([]models.Comment, error) { return nil, nil },
		updateFn:           func(_ context.Context, _ *models.Comment) error { return nil },
		deleteFn:           func(_ context.Context, _ uint) error { return nil },
	}
}

// mediaStub records Upload and Destroy calls.
type mediaStub struct {
	mu         sync.Mutex
	uploads    []string
	destroys   []string
	uploadErr  error
	destroyErr error
}

func (s *mediaStub) Upload(_ context.Context, _ []byte, filename, folder string) (*media.Resource, error) {
	if s.uploadErr != nil {
		return nil, s.uploadErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uploads = append(s.uploads, filename)
	key := folder + "/new-" + filename
	return &media.Resource{URL: "http://img/" + key, ID: key}, nil
}

func (s *mediaStub) Destroy(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.destroys = append(s.destroys, id)
	return s.destroyErr
}

func (s *mediaStub) destroyed() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.destroys...)
}

// geocoderStub is a stub for geocode.Geocoder. It counts Locate calls.
type geocoderStub struct {
	mu     sync.Mutex
	calls  int
	result *geocode.Result
	err    error
}

func (s *geocoderStub) Locate(_ context.Context, _ string) (*geocode.Result, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	return s.result, s.err
}

func (s *geocoderStub) locateCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func workingGeocoder() *geocoderStub {
	return &geocoderStub{result: &geocode.Result{Lat: 44.43, Lng: -110.59, FormattedAddress: "Yellowstone National Park, WY, USA"}}
}

// mailerStub records sent messages.
type mailerStub struct {
	mu      sync.Mutex
	sent    []sentMail
	sendErr error
}

type sentMail struct {
	to      string
	subject string
	body    string
}

func (s *mailerStub) Send(_ context.Context, to, subject, body string) error {
	if s.sendErr != nil {
		return s.sendErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

func (s *mailerStub) messages() []sentMail {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]sentMail(nil), s.sent...)
}

func noAdmin(_ context.Context, _ uint) (bool, error) { return false, nil }

func adminFor(adminID uint) func(context.Context, uint) (bool, error) {
	return func(_ context.Context, userID uint) (bool, error) {
		return userID == adminID, nil
	}
}

func assertAppError(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}

// assertValidationError asserts that err is an AppError with code VALIDATION_ERROR.
func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assertAppError(t, err, models.CodeValidation)
}

func validImage() *ImageUpload {
	return &ImageUpload{Data: []byte("fakejpegdata"), Filename: "site.jpg"}
}
