package services

//go:generate mockgen -source=auth.go -destination=auth_mock.go -package=services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sbilibin2017/gw-movie-streaming/internal/apperrors"
	"github.com/sbilibin2017/gw-movie-streaming/internal/logger"
	"github.com/sbilibin2017/gw-movie-streaming/internal/metrics"
	"github.com/sbilibin2017/gw-movie-streaming/internal/models"
)

// Error variables
var (
	ErrUserAlreadyExists  = apperrors.New(apperrors.KindConflict, "User with this email or username already exists")
	ErrInvalidCredentials = apperrors.New(apperrors.KindInvalidCredentials, "Invalid email or password")
	ErrUserNotFound       = apperrors.New(apperrors.KindNotFound, "User not found")
)

// UserReader defines read-only operations for users.
// Lookups return a nil user and nil error when nothing matches.
type UserReader interface {
	GetByID(ctx context.Context, userID uuid.UUID) (*models.UserDB, error)
	GetByEmail(ctx context.Context, email string) (*models.UserDB, error)
	GetByUsernameOrEmail(ctx context.Context, username, email string) (*models.UserDB, error)
	HasResetToken(ctx context.Context, email, tokenHash string) (bool, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Create(ctx context.Context, user *models.UserDB) error
	UpdateProfile(ctx context.Context, userID uuid.UUID, upd models.ProfileUpdate) (*models.UserDB, error)
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error
	SetResetToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error
	ResetPassword(ctx context.Context, email, tokenHash, passwordHash string) (uuid.UUID, bool, error)
}

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(ctx context.Context, password string) (string, error)
	Verify(ctx context.Context, password, digest string) (bool, error)
}

// JWTGenerator defines an interface for generating JWT tokens.
type JWTGenerator interface {
	Generate(ctx context.Context, userID uuid.UUID) (string, error)
}

// AuthService handles registration and login.
type AuthService struct {
	reader UserReader
	writer UserWriter
	hasher PasswordHasher
	jwt    JWTGenerator
	events eventPublisher

	// decoy digest verified on logins for unknown emails
	decoyMu     sync.Mutex
	decoyDigest string
}

const decoyPassword = "decoy-password-for-unknown-users"

// NewAuthService creates a new AuthService instance.
func NewAuthService(reader UserReader, writer UserWriter, hasher PasswordHasher, jwt JWTGenerator, kafkaWriter KafkaWriter) *AuthService {
	return &AuthService{
		reader: reader,
		writer: writer,
		hasher: hasher,
		jwt:    jwt,
		events: newEventPublisher(kafkaWriter),
	}
}

// Register creates an account and returns it together with a session token.
func (svc *AuthService) Register(ctx context.Context, reg models.Registration) (*models.UserDB, string, error) {
	username := strings.TrimSpace(reg.Username)
	email := normalizeEmail(reg.Email)

	existing, err := svc.reader.GetByUsernameOrEmail(ctx, username, email)
	if err != nil {
		logger.Log.Errorw("failed to check user exists", "err", err)
		return nil, "", err
	}
	if existing != nil {
		logger.Log.Infow("user already exists", "username", username, "email", email)
		metrics.RecordAuth("register", "conflict")
		return nil, "", ErrUserAlreadyExists
	}

	hash, err := svc.hasher.Hash(ctx, reg.Password)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return nil, "", err
	}

	user := &models.UserDB{
		ID:               uuid.New(),
		Username:         username,
		Email:            email,
		PasswordHash:     hash,
		FirstName:        strings.TrimSpace(reg.FirstName),
		LastName:         strings.TrimSpace(reg.LastName),
		SubscriptionType: models.SubscriptionFree,
		IsActive:         true,
	}

	if err := svc.writer.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			logger.Log.Infow("user created concurrently", "username", username, "email", email)
			metrics.RecordAuth("register", "conflict")
			return nil, "", ErrUserAlreadyExists
		}
		logger.Log.Errorw("failed to save user", "err", err)
		return nil, "", err
	}

	token, err := svc.jwt.Generate(ctx, user.ID)
	if err != nil {
		logger.Log.Errorw("failed to generate JWT", "err", err)
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	metrics.RecordAuth("register", "success")
	svc.events.publish(ctx, models.EventUserRegistered, user.ID, map[string]any{
		"username": user.Username,
		"email":    user.Email,
	})

	return user, token, nil
}

// Login authenticates a user by email and password and returns a session token.
// Unknown email, wrong password and inactive account are indistinguishable.
func (svc *AuthService) Login(ctx context.Context, email, password string) (*models.UserDB, string, error) {
	email = normalizeEmail(email)

	user, err := svc.reader.GetByEmail(ctx, email)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return nil, "", err
	}
	if user == nil {
		svc.verifyDecoy(ctx, password)
		logger.Log.Infow("login for unknown email")
		metrics.RecordAuth("login", "failure")
		return nil, "", ErrInvalidCredentials
	}

	ok, err := svc.hasher.Verify(ctx, password, user.PasswordHash)
	if err != nil {
		logger.Log.Errorw("failed to verify password", "err", err)
		return nil, "", err
	}
	if !ok || !user.IsActive {
		logger.Log.Infow("invalid credentials", "user_id", user.ID)
		metrics.RecordAuth("login", "failure")
		return nil, "", ErrInvalidCredentials
	}

	token, err := svc.jwt.Generate(ctx, user.ID)
	if err != nil {
		logger.Log.Errorw("failed to generate JWT", "err", err)
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	metrics.RecordAuth("login", "success")
	return user, token, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// verifyDecoy runs a password check against a throwaway digest. The digest is
// built on first use with the configured hasher so the cost matches real users.
func (svc *AuthService) verifyDecoy(ctx context.Context, password string) {
	svc.decoyMu.Lock()
	if svc.decoyDigest == "" {
		digest, err := svc.hasher.Hash(ctx, decoyPassword)
		if err != nil {
			svc.decoyMu.Unlock()
			logger.Log.Warnw("failed to build decoy digest", "err", err)
			return
		}
		svc.decoyDigest = digest
	}
	digest := svc.decoyDigest
	svc.decoyMu.Unlock()

	_, _ = svc.hasher.Verify(ctx, password, digest)
}
