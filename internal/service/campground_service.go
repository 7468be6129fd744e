// Package service contains the application's business workflows.
package service

import (
	"context"
	"log/slog"
	"strings"

	"campwild/internal/authz"
	"campwild/internal/geocode"
	"campwild/internal/media"
	"campwild/internal/middleware"
	"campwild/internal/models"
	"campwild/internal/repository"
)

// ImageUpload is a raw uploaded file.
type ImageUpload struct {
	Data     []byte
	Filename string
}

type CampgroundService struct {
	campgroundRepo repository.CampgroundRepository
	commentRepo    repository.CommentRepository
	userRepo       repository.UserRepository
	media          media.Store
	geocoder       geocode.Geocoder
	isAdmin        func(ctx context.Context, userID uint) (bool, error)
}

type CreateCampgroundInput struct {
	UserID      uint
	Name        string
	Price       string
	Description string
	Location    string
	Image       *ImageUpload
}

type UpdateCampgroundInput struct {
	UserID       uint
	CampgroundID uint
	Name         string
	Price        string
	Description  string
	Location     string
	Image        *ImageUpload
}

type DeleteCampgroundInput struct {
	UserID       uint
	CampgroundID uint
}

func NewCampgroundService(
	campgroundRepo repository.CampgroundRepository,
	commentRepo repository.CommentRepository,
	userRepo repository.UserRepository,
	mediaStore media.Store,
	geocoder geocode.Geocoder,
	isAdmin func(ctx context.Context, userID uint) (bool, error),
) *CampgroundService {
	return &CampgroundService{
		campgroundRepo: campgroundRepo,
		commentRepo:    commentRepo,
		userRepo:       userRepo,
		media:          mediaStore,
		geocoder:       geocoder,
		isAdmin:        isAdmin,
	}
}

func (s *CampgroundService) requester(ctx context.Context, userID uint) authz.Requester {
	req := authz.Requester{Authenticated: userID != 0, UserID: userID}
	if req.Authenticated && s.isAdmin != nil {
		if admin, err := s.isAdmin(ctx, userID); err == nil && admin {
			req.IsAdmin = true
		}
	}
	return req
}

func (s *CampgroundService) lookup(id uint) authz.LookupFunc[*models.Campground] {
	return func(ctx context.Context) (*models.Campground, error) {
		return s.campgroundRepo.GetByID(ctx, id)
	}
}

const maxCampgroundNameLen = 100
const maxDescriptionLen = 5000

func (s *CampgroundService) validateFields(name, description string) error {
	if strings.TrimSpace(name) == "" {
		return models.NewValidationError("Name is required")
	}
	if len(name) > maxCampgroundNameLen {
		return models.NewValidationError("Name too long (max 100 characters)")
	}
	if len(description) > maxDescriptionLen {
		return models.NewValidationError("Description too long (max 5000 characters)")
	}
	return nil
}

// locate resolves the location string. Provider misses and provider failures
// both surface as the same validation message so the form shows one error.
func (s *CampgroundService) locate(ctx context.Context, location string) (*geocode.Result, error) {
	if strings.TrimSpace(location) == "" {
		return nil, models.NewValidationError("Location is required")
	}
	loc, err := s.geocoder.Locate(ctx, location)
	if err != nil || loc == nil {
		return nil, models.NewValidationError("That appears to be an invalid address!")
	}
	return loc, nil
}

func (s *CampgroundService) CreateCampground(ctx context.Context, in CreateCampgroundInput) (*models.Campground, error) {
	if !s.requester(ctx, in.UserID).Authenticated {
		return nil, models.NewUnauthenticatedError("You need to be logged in to do that!")
	}
	if err := s.validateFields(in.Name, in.Description); err != nil {
		return nil, err
	}
	if in.Image == nil {
		return nil, models.NewValidationError("An image is required")
	}
	if !media.AllowedExtension(in.Image.Filename) {
		return nil, models.NewValidationError("Only image files (jpg, jpeg, png) are allowed!")
	}

	loc, err := s.locate(ctx, in.Location)
	if err != nil {
		return nil, err
	}

	author, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	uploaded, err := s.media.Upload(ctx, in.Image.Data, in.Image.Filename, "campgrounds")
	if err != nil {
		return nil, models.NewExternalServiceError("media", err)
	}

	campground := &models.Campground{
		Name:           in.Name,
		Price:          in.Price,
		Description:    in.Description,
		Image:          uploaded.URL,
		ImageID:        uploaded.ID,
		Location:       loc.FormattedAddress,
		Lat:            loc.Lat,
		Lng:            loc.Lng,
		AuthorID:       author.ID,
		AuthorUsername: author.Username,
		AuthorAvatar:   author.Avatar,
	}

	if err := s.campgroundRepo.Create(ctx, campground); err != nil {
		// The image is orphaned otherwise.
		s.destroyQuietly(ctx, uploaded.ID)
		return nil, err
	}

	return campground, nil
}

// UpdateCampground replaces the image, if a new one is supplied, only after
// the record has been persisted. The old object is then removed best-effort;
// a failed removal leaves an orphan in storage but never a broken listing.
func (s *CampgroundService) UpdateCampground(ctx context.Context, in UpdateCampgroundInput) (*models.Campground, error) {
	campground, err := authz.Authorize(ctx, s.requester(ctx, in.UserID), s.lookup(in.CampgroundID))
	if err != nil {
		return nil, err
	}

	if in.Name != "" {
		if err := s.validateFields(in.Name, in.Description); err != nil {
			return nil, err
		}
		campground.Name = in.Name
	}
	if in.Price != "" {
		campground.Price = in.Price
	}
	if in.Description != "" {
		if len(in.Description) > maxDescriptionLen {
			return nil, models.NewValidationError("Description too long (max 5000 characters)")
		}
		campground.Description = in.Description
	}
	if in.Location != "" {
		loc, err := s.locate(ctx, in.Location)
		if err != nil {
			return nil, err
		}
		campground.Location = loc.FormattedAddress
		campground.Lat = loc.Lat
		campground.Lng = loc.Lng
	}

	oldImageID := ""
	if in.Image != nil {
		if !media.AllowedExtension(in.Image.Filename) {
			return nil, models.NewValidationError("Only image files (jpg, jpeg, png) are allowed!")
		}
		uploaded, err := s.media.Upload(ctx, in.Image.Data, in.Image.Filename, "campgrounds")
		if err != nil {
			return nil, models.NewExternalServiceError("media", err)
		}
		oldImageID = campground.ImageID
		campground.Image = uploaded.URL
		campground.ImageID = uploaded.ID
	}

	if err := s.campgroundRepo.Update(ctx, campground); err != nil {
		if in.Image != nil {
			s.destroyQuietly(ctx, campground.ImageID)
		}
		return nil, err
	}

	if oldImageID != "" {
		s.destroyQuietly(ctx, oldImageID)
	}

	return campground, nil
}

func (s *CampgroundService) DeleteCampground(ctx context.Context, in DeleteCampgroundInput) error {
	campground, err := authz.Authorize(ctx, s.requester(ctx, in.UserID), s.lookup(in.CampgroundID))
	if err != nil {
		return err
	}

	if err := s.campgroundRepo.Delete(ctx, in.CampgroundID); err != nil {
		return err
	}

	s.destroyQuietly(ctx, campground.ImageID)
	return nil
}

// destroyQuietly removes a stored object, logging instead of failing the
// calling workflow.
func (s *CampgroundService) destroyQuietly(ctx context.Context, imageID string) {
	if imageID == "" {
		return
	}
	if err := s.media.Destroy(ctx, imageID); err != nil {
		middleware.Logger.WarnContext(ctx, "failed to remove stored image",
			slog.String("image_id", imageID),
			slog.String("error", err.Error()),
		)
	}
}

func (s *CampgroundService) GetCampground(ctx context.Context, id uint) (*models.Campground, []models.Comment, error) {
	campground, err := s.campgroundRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	comments, err := s.commentRepo.ListByCampground(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return campground, comments, nil
}

func (s *CampgroundService) ListCampgrounds(ctx context.Context, limit, offset int) ([]models.Campground, int64, error) {
	campgrounds, err := s.campgroundRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.campgroundRepo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return campgrounds, total, nil
}

func (s *CampgroundService) GetUserCampgrounds(ctx context.Context, authorID uint, limit, offset int) ([]models.Campground, error) {
	return s.campgroundRepo.ListByAuthor(ctx, authorID, limit, offset)
}

func (s *CampgroundService) SearchCampgrounds(ctx context.Context, query string, limit, offset int) ([]models.Campground, error) {
	if strings.TrimSpace(query) == "" {
		return nil, models.NewValidationError("Search query is required")
	}
	return s.campgroundRepo.SearchByName(ctx, query, limit, offset)
}
