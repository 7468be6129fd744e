package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"campwild/internal/mail"
	"campwild/internal/middleware"
	"campwild/internal/models"
	"campwild/internal/repository"
	"campwild/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// resetTokenTTL bounds how long a reset link stays usable.
const resetTokenTTL = time.Hour

type PasswordResetService struct {
	userRepo repository.UserRepository
	mailer   mail.Mailer
	baseURL  string
}

func NewPasswordResetService(userRepo repository.UserRepository, mailer mail.Mailer, baseURL string) *PasswordResetService {
	return &PasswordResetService{userRepo: userRepo, mailer: mailer, baseURL: baseURL}
}

func generateResetToken() (string, error) {
	buf := make([]byte, 20)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// RequestReset issues a reset token for the account behind the email and
// mails a link. Requesting again replaces any earlier token.
func (s *PasswordResetService) RequestReset(ctx context.Context, email string) error {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return &models.AppError{
			Code:    models.CodeNotFound,
			Message: "No account with that email address exists.",
		}
	}

	token, err := generateResetToken()
	if err != nil {
		return models.NewInternalError(err)
	}
	expires := time.Now().Add(resetTokenTTL)
	user.ResetPasswordToken = &token
	user.ResetPasswordExpires = &expires

	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	body := fmt.Sprintf(
		"You are receiving this because you (or someone else) requested a password reset for your account.\n\n"+
			"Click the following link, or paste it into your browser, to complete the process:\n\n"+
			"%s/reset/%s\n\n"+
			"If you did not request this, ignore this email and your password will remain unchanged.\n",
		s.baseURL, token,
	)
	if err := s.mailer.Send(ctx, user.Email, "Password Reset", body); err != nil {
		return models.NewExternalServiceError("mail", err)
	}

	return nil
}

// ResetPassword consumes a token and sets the new password. A confirmation
// mismatch leaves the token valid so the user can retry from the same link.
func (s *PasswordResetService) ResetPassword(ctx context.Context, token, password, confirm string) (*models.User, error) {
	user, err := s.userRepo.GetByResetToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewValidationError("Password reset token is invalid or has expired.")
	}

	if password != confirm {
		return nil, models.NewValidationError("Passwords do not match.")
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user.Password = string(hash)
	user.ResetPasswordToken = nil
	user.ResetPasswordExpires = nil

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	// Confirmation mail is best-effort; the password is already changed.
	body := fmt.Sprintf(
		"Hello,\n\nThis is a confirmation that the password for your account %s has just been changed.\n",
		user.Email,
	)
	if err := s.mailer.Send(ctx, user.Email, "Your password has been changed", body); err != nil {
		middleware.Logger.WarnContext(ctx, "failed to send password change confirmation",
			slog.Any("user_id", user.ID),
			slog.String("error", err.Error()),
		)
	}

	return user, nil
}
