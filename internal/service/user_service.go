package service

import (
	"context"

	"campwild/internal/authz"
	"campwild/internal/media"
	"campwild/internal/models"
	"campwild/internal/repository"
	"campwild/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	userRepo repository.UserRepository
	media    media.Store
	isAdmin  func(ctx context.Context, userID uint) (bool, error)
}

type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
	Bio       string
	Avatar    *ImageUpload
}

type UpdateProfileInput struct {
	UserID    uint
	TargetID  uint
	Email     string
	FirstName string
	LastName  string
	Bio       string
	Avatar    *ImageUpload
}

type DeleteUserInput struct {
	UserID   uint
	TargetID uint
}

func NewUserService(
	userRepo repository.UserRepository,
	mediaStore media.Store,
	isAdmin func(ctx context.Context, userID uint) (bool, error),
) *UserService {
	return &UserService{userRepo: userRepo, media: mediaStore, isAdmin: isAdmin}
}

func (s *UserService) requester(ctx context.Context, userID uint) authz.Requester {
	req := authz.Requester{Authenticated: userID != 0, UserID: userID}
	if req.Authenticated && s.isAdmin != nil {
		if admin, err := s.isAdmin(ctx, userID); err == nil && admin {
			req.IsAdmin = true
		}
	}
	return req
}

func (s *UserService) lookup(id uint) authz.LookupFunc[*models.User] {
	return func(ctx context.Context) (*models.User, error) {
		return s.userRepo.GetByID(ctx, id)
	}
}

const maxBioLen = 500

// Register creates a new account. The avatar, when supplied, is uploaded
// before the record is written; a failed write removes the upload again.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if err := validation.ValidateUsername(in.Username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if len(in.Bio) > maxBioLen {
		return nil, models.NewValidationError("Bio too long (max 500 characters)")
	}

	if existing, err := s.userRepo.GetByUsername(ctx, in.Username); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, models.NewValidationError("A user with the given username is already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username:  in.Username,
		Email:     in.Email,
		Password:  string(hash),
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Bio:       in.Bio,
	}

	if in.Avatar != nil {
		if !media.AllowedExtension(in.Avatar.Filename) {
			return nil, models.NewValidationError("Only image files (jpg, jpeg, png) are allowed!")
		}
		uploaded, err := s.media.Upload(ctx, in.Avatar.Data, in.Avatar.Filename, "avatars")
		if err != nil {
			return nil, models.NewExternalServiceError("media", err)
		}
		user.Avatar = uploaded.URL
		user.AvatarID = uploaded.ID
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if user.AvatarID != "" {
			_ = s.media.Destroy(ctx, user.AvatarID)
		}
		return nil, err
	}

	return user, nil
}

// Authenticate verifies credentials by username. The same error is returned
// for an unknown user and a wrong password.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUnauthenticatedError("Invalid username or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewUnauthenticatedError("Invalid username or password")
	}
	return user, nil
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.userRepo.List(ctx, limit, offset)
}

// UpdateProfile edits a profile. Only the owner or an admin may edit, and a
// replaced avatar is removed from storage only after the record persists.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := authz.Authorize(ctx, s.requester(ctx, in.UserID), s.lookup(in.TargetID))
	if err != nil {
		return nil, err
	}

	if in.Email != "" {
		if err := validation.ValidateEmail(in.Email); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Email = in.Email
	}
	if in.FirstName != "" {
		user.FirstName = in.FirstName
	}
	if in.LastName != "" {
		user.LastName = in.LastName
	}
	if in.Bio != "" {
		if len(in.Bio) > maxBioLen {
			return nil, models.NewValidationError("Bio too long (max 500 characters)")
		}
		user.Bio = in.Bio
	}

	oldAvatarID := ""
	if in.Avatar != nil {
		if !media.AllowedExtension(in.Avatar.Filename) {
			return nil, models.NewValidationError("Only image files (jpg, jpeg, png) are allowed!")
		}
		uploaded, err := s.media.Upload(ctx, in.Avatar.Data, in.Avatar.Filename, "avatars")
		if err != nil {
			return nil, models.NewExternalServiceError("media", err)
		}
		oldAvatarID = user.AvatarID
		user.Avatar = uploaded.URL
		user.AvatarID = uploaded.ID
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if in.Avatar != nil {
			_ = s.media.Destroy(ctx, user.AvatarID)
		}
		return nil, err
	}

	if oldAvatarID != "" {
		_ = s.media.Destroy(ctx, oldAvatarID)
	}

	return user, nil
}

func (s *UserService) DeleteUser(ctx context.Context, in DeleteUserInput) error {
	user, err := authz.Authorize(ctx, s.requester(ctx, in.UserID), s.lookup(in.TargetID))
	if err != nil {
		return err
	}

	if err := s.userRepo.Delete(ctx, in.TargetID); err != nil {
		return err
	}

	if user.AvatarID != "" {
		_ = s.media.Destroy(ctx, user.AvatarID)
	}
	return nil
}

// SetAdmin grants or revokes admin rights. Only admins may call it.
func (s *UserService) SetAdmin(ctx context.Context, callerID, targetID uint, isAdmin bool) (*models.User, error) {
	req := s.requester(ctx, callerID)
	if !req.Authenticated {
		return nil, models.NewUnauthenticatedError("You need to be logged in to do that!")
	}
	if !req.IsAdmin {
		return nil, models.NewForbiddenError("You don't have permission to do that!")
	}

	user, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	user.IsAdmin = isAdmin
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
