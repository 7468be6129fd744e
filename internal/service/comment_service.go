package service

import (
	"context"
	"strings"

	"campwild/internal/authz"
	"campwild/internal/models"
	"campwild/internal/repository"
)

type CommentService struct {
	commentRepo    repository.CommentRepository
	campgroundRepo repository.CampgroundRepository
	userRepo       repository.UserRepository
	isAdmin        func(ctx context.Context, userID uint) (bool, error)
}

type CreateCommentInput struct {
	UserID       uint
	CampgroundID uint
	Text         string
}

type UpdateCommentInput struct {
	UserID    uint
	CommentID uint
	Text      string
}

type DeleteCommentInput struct {
	UserID    uint
	CommentID uint
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	campgroundRepo repository.CampgroundRepository,
	userRepo repository.UserRepository,
	isAdmin func(ctx context.Context, userID uint) (bool, error),
) *CommentService {
	return &CommentService{
		commentRepo:    commentRepo,
		campgroundRepo: campgroundRepo,
		userRepo:       userRepo,
		isAdmin:        isAdmin,
	}
}

func (s *CommentService) requester(ctx context.Context, userID uint) authz.Requester {
	req := authz.Requester{Authenticated: userID != 0, UserID: userID}
	if req.Authenticated && s.isAdmin != nil {
		if admin, err := s.isAdmin(ctx, userID); err == nil && admin {
			req.IsAdmin = true
		}
	}
	return req
}

func (s *CommentService) lookup(id uint) authz.LookupFunc[*models.Comment] {
	return func(ctx context.Context) (*models.Comment, error) {
		return s.commentRepo.GetByID(ctx, id)
	}
}

const maxCommentLen = 2000

func validateCommentText(text string) error {
	if strings.TrimSpace(text) == "" {
		return models.NewValidationError("Comment text is required")
	}
	if len(text) > maxCommentLen {
		return models.NewValidationError("Comment too long (max 2000 characters)")
	}
	return nil
}

func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if !s.requester(ctx, in.UserID).Authenticated {
		return nil, models.NewUnauthenticatedError("You need to be logged in to do that!")
	}
	if err := validateCommentText(in.Text); err != nil {
		return nil, err
	}

	// The campground must exist; comments never attach to a missing listing.
	if _, err := s.campgroundRepo.GetByID(ctx, in.CampgroundID); err != nil {
		return nil, err
	}

	author, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Text:           in.Text,
		CampgroundID:   in.CampgroundID,
		AuthorID:       author.ID,
		AuthorUsername: author.Username,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) UpdateComment(ctx context.Context, in UpdateCommentInput) (*models.Comment, error) {
	comment, err := authz.Authorize(ctx, s.requester(ctx, in.UserID), s.lookup(in.CommentID))
	if err != nil {
		return nil, err
	}

	if err := validateCommentText(in.Text); err != nil {
		return nil, err
	}
	comment.Text = in.Text

	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) DeleteComment(ctx context.Context, in DeleteCommentInput) error {
	if _, err := authz.Authorize(ctx, s.requester(ctx, in.UserID), s.lookup(in.CommentID)); err != nil {
		return err
	}
	return s.commentRepo.Delete(ctx, in.CommentID)
}

func (s *CommentService) ListComments(ctx context.Context, campgroundID uint) ([]models.Comment, error) {
	if _, err := s.campgroundRepo.GetByID(ctx, campgroundID); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByCampground(ctx, campgroundID)
}
