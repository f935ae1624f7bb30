package services

//go:generate mockgen -source=account.go -destination=account_mock.go -package=services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sbilibin2017/gw-movie-streaming/internal/apperrors"
	"github.com/sbilibin2017/gw-movie-streaming/internal/logger"
	"github.com/sbilibin2017/gw-movie-streaming/internal/models"
)

var (
	// ErrIncorrectPassword is returned by ChangePassword when the current password does not match.
	ErrIncorrectPassword = apperrors.New(apperrors.KindInvalidCredentials, "Current password is incorrect")
	// ErrInvalidResetToken is returned when no active user holds an unexpired matching token.
	ErrInvalidResetToken = apperrors.New(apperrors.KindInvalidResetToken, "Invalid or expired reset token")
	// ErrNothingToUpdate is returned for a profile update without fields.
	ErrNothingToUpdate = apperrors.Validation(map[string]string{"profile": "at least one field must be provided"})
)

const resetTokenBytes = 32

// MovieListReader lists the populated entries of a user's movie list.
type MovieListReader interface {
	List(ctx context.Context, userID uuid.UUID) ([]models.MovieSummary, error)
}

// AccountService handles profile and password management.
type AccountService struct {
	reader    UserReader
	writer    UserWriter
	hasher    PasswordHasher
	watchlist MovieListReader
	favorites MovieListReader
	events    eventPublisher
	resetTTL  time.Duration
	newToken  func() (string, error)
	now       func() time.Time
}

// NewAccountService creates a new AccountService.
func NewAccountService(
	reader UserReader,
	writer UserWriter,
	hasher PasswordHasher,
	watchlist MovieListReader,
	favorites MovieListReader,
	kafkaWriter KafkaWriter,
	resetTTL time.Duration,
) *AccountService {
	return &AccountService{
		reader:    reader,
		writer:    writer,
		hasher:    hasher,
		watchlist: watchlist,
		favorites: favorites,
		events:    newEventPublisher(kafkaWriter),
		resetTTL:  resetTTL,
		newToken:  randomToken,
		now:       time.Now,
	}
}

// GetProfile returns the user with populated watchlist and favorites.
func (svc *AccountService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	user, err := svc.reader.GetByID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get user", "user_id", userID, "err", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	watchlist, err := svc.watchlist.List(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to list watchlist", "user_id", userID, "err", err)
		return nil, err
	}
	favorites, err := svc.favorites.List(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to list favorites", "user_id", userID, "err", err)
		return nil, err
	}

	return &models.Profile{
		User:      user.Public(),
		Watchlist: watchlist,
		Favorites: favorites,
	}, nil
}

// UpdateProfile changes name fields and subscription type. Credentials and
// identity fields are never touched here.
func (svc *AccountService) UpdateProfile(ctx context.Context, userID uuid.UUID, upd models.ProfileUpdate) (*models.UserDB, error) {
	if upd.Empty() {
		return nil, ErrNothingToUpdate
	}
	if upd.SubscriptionType != nil && !upd.SubscriptionType.Valid() {
		return nil, apperrors.Validation(map[string]string{"subscriptionType": "must be one of free, basic, premium"})
	}

	user, err := svc.writer.UpdateProfile(ctx, userID, upd)
	if err != nil {
		logger.Log.Errorw("failed to update profile", "user_id", userID, "err", err)
		return nil, err
	}
	return user, nil
}

// ChangePassword replaces the password after checking the current one.
// Sessions issued before the change stay valid until they expire.
func (svc *AccountService) ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	user, err := svc.reader.GetByID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get user", "user_id", userID, "err", err)
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	ok, err := svc.hasher.Verify(ctx, currentPassword, user.PasswordHash)
	if err != nil {
		logger.Log.Errorw("failed to verify password", "user_id", userID, "err", err)
		return err
	}
	if !ok {
		logger.Log.Infow("current password mismatch", "user_id", userID)
		return ErrIncorrectPassword
	}

	hash, err := svc.hasher.Hash(ctx, newPassword)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "user_id", userID, "err", err)
		return err
	}

	if err := svc.writer.UpdatePassword(ctx, userID, hash); err != nil {
		logger.Log.Errorw("failed to update password", "user_id", userID, "err", err)
		return err
	}

	svc.events.publish(ctx, models.EventPasswordChanged, userID, nil)
	return nil
}

// ForgotPassword issues a reset token for an active account and hands it to
// the mailer through an event. Unknown or inactive emails are silently ignored.
func (svc *AccountService) ForgotPassword(ctx context.Context, email string) error {
	email = normalizeEmail(email)

	user, err := svc.reader.GetByEmail(ctx, email)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return err
	}
	if user == nil || !user.IsActive {
		logger.Log.Infow("password reset requested for unknown or inactive email")
		return nil
	}

	token, err := svc.newToken()
	if err != nil {
		return fmt.Errorf("generate reset token: %w", err)
	}
	expiresAt := svc.now().Add(svc.resetTTL).UTC()

	if err := svc.writer.SetResetToken(ctx, user.ID, hashToken(token), expiresAt); err != nil {
		logger.Log.Errorw("failed to store reset token", "user_id", user.ID, "err", err)
		return err
	}

	svc.events.publish(ctx, models.EventPasswordResetRequested, user.ID, map[string]any{
		"email":      user.Email,
		"resetToken": token,
		"expiresAt":  expiresAt,
	})
	return nil
}

// ResetPassword sets a new password for the holder of a valid reset token and
// consumes the token.
func (svc *AccountService) ResetPassword(ctx context.Context, email, token, newPassword string) error {
	if token == "" {
		return ErrInvalidResetToken
	}
	email = normalizeEmail(email)
	tokenHash := hashToken(token)

	// token is checked before the new password is hashed
	valid, err := svc.reader.HasResetToken(ctx, email, tokenHash)
	if err != nil {
		logger.Log.Errorw("failed to check reset token", "err", err)
		return err
	}
	if !valid {
		logger.Log.Infow("invalid or expired reset token")
		return ErrInvalidResetToken
	}

	hash, err := svc.hasher.Hash(ctx, newPassword)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return err
	}

	userID, ok, err := svc.writer.ResetPassword(ctx, email, tokenHash, hash)
	if err != nil {
		logger.Log.Errorw("failed to reset password", "err", err)
		return err
	}
	if !ok {
		logger.Log.Infow("invalid or expired reset token")
		return ErrInvalidResetToken
	}

	svc.events.publish(ctx, models.EventPasswordReset, userID, nil)
	return nil
}

// randomToken returns a URL-safe random token.
func randomToken() (string, error) {
	b := make([]byte, resetTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// hashToken returns the stored form of a reset token.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
