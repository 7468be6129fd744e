package service

import (
	"context"

	"campwild/internal/models"
	"campwild/internal/repository"
)

// SearchService queries campgrounds and users in one pass for the site-wide
// search box.
type SearchService struct {
	campgroundRepo repository.CampgroundRepository
	userRepo       repository.UserRepository
}

// SearchResults groups matches by kind.
type SearchResults struct {
	Campgrounds []models.Campground `json:"campgrounds"`
	Users       []models.User       `json:"users"`
}

func NewSearchService(campgroundRepo repository.CampgroundRepository, userRepo repository.UserRepository) *SearchService {
	return &SearchService{campgroundRepo: campgroundRepo, userRepo: userRepo}
}

func (s *SearchService) Search(ctx context.Context, query string, limit, offset int) (*SearchResults, error) {
	if query == "" {
		return nil, models.NewValidationError("Search query is required")
	}

	campgrounds, err := s.campgroundRepo.SearchByName(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	users, err := s.userRepo.SearchByUsername(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}

	return &SearchResults{Campgrounds: campgrounds, Users: users}, nil
}
