package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/sbilibin2017/gw-movie-streaming/internal/apperrors"
	"github.com/sbilibin2017/gw-movie-streaming/internal/models"
)

const userColumns = `
	id, username, email, password_hash, first_name, last_name,
	subscription_type, is_active, reset_password_token, reset_password_expires,
	created_at, updated_at
`

// UserReadRepository reads user records.
type UserReadRepository struct {
	db *sqlx.DB
}

func NewUserReadRepository(db *sqlx.DB) *UserReadRepository {
	return &UserReadRepository{db: db}
}

// GetByID returns the user with the given id or nil when there is none.
func (r *UserReadRepository) GetByID(ctx context.Context, userID uuid.UUID) (*models.UserDB, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.getOne(ctx, query, userID)
}

// GetByEmail returns the user with the given email or nil when there is none.
func (r *UserReadRepository) GetByEmail(ctx context.Context, email string) (*models.UserDB, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.getOne(ctx, query, email)
}

// GetByUsernameOrEmail returns any user holding the username or the email.
func (r *UserReadRepository) GetByUsernameOrEmail(ctx context.Context, username, email string) (*models.UserDB, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE username = $1 OR email = $2
		LIMIT 1
	`
	return r.getOne(ctx, query, username, email)
}

// HasResetToken reports whether the active user holding email has an
// unexpired reset token with the given digest.
func (r *UserReadRepository) HasResetToken(ctx context.Context, email, tokenHash string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM users
			WHERE email = $1
			  AND reset_password_token = $2
			  AND reset_password_expires > NOW()
			  AND is_active
		)
	`
	var found bool
	err := r.db.GetContext(ctx, &found, query, email, tokenHash)

	logQuery(query, []any{email, redacted}, found, err)

	if err != nil {
		return false, err
	}
	return found, nil
}

func (r *UserReadRepository) getOne(ctx context.Context, query string, args ...any) (*models.UserDB, error) {
	var user models.UserDB
	err := r.db.GetContext(ctx, &user, query, args...)

	logQuery(query, args, user.ID, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UserWriteRepository writes user records.
type UserWriteRepository struct {
	db *sqlx.DB
}

func NewUserWriteRepository(db *sqlx.DB) *UserWriteRepository {
	return &UserWriteRepository{db: db}
}

// Create inserts a new user and fills in the generated timestamps.
// A taken username or email yields apperrors.ErrConflict.
func (r *UserWriteRepository) Create(ctx context.Context, user *models.UserDB) error {
	query := `
		INSERT INTO users (id, username, email, password_hash, first_name, last_name,
		                   subscription_type, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	args := []any{
		user.ID, user.Username, user.Email, user.PasswordHash, user.FirstName, user.LastName,
		string(user.SubscriptionType), user.IsActive,
	}

	err := r.db.QueryRowxContext(ctx, query, args...).Scan(&user.CreatedAt, &user.UpdatedAt)

	logArgs := append([]any{}, args...)
	logArgs[3] = redacted
	logQuery(query, logArgs, user.ID, err)

	if err != nil {
		return mapError(err)
	}
	return nil
}

// UpdateProfile changes the provided profile fields and returns the updated record.
func (r *UserWriteRepository) UpdateProfile(ctx context.Context, userID uuid.UUID, upd models.ProfileUpdate) (*models.UserDB, error) {
	query := `
		UPDATE users
		SET first_name = COALESCE($2, first_name),
		    last_name = COALESCE($3, last_name),
		    subscription_type = COALESCE($4, subscription_type),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userColumns

	var subscription *string
	if upd.SubscriptionType != nil {
		s := string(*upd.SubscriptionType)
		subscription = &s
	}
	args := []any{userID, upd.FirstName, upd.LastName, subscription}

	var user models.UserDB
	err := r.db.GetContext(ctx, &user, query, args...)

	logQuery(query, []any{userID}, user.ID, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("update profile %s: %w", userID, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, mapError(err)
	}
	return &user, nil
}

// UpdatePassword stores a new password hash and drops any pending reset token.
func (r *UserWriteRepository) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	query := `
		UPDATE users
		SET password_hash = $2,
		    reset_password_token = NULL,
		    reset_password_expires = NULL,
		    updated_at = NOW()
		WHERE id = $1
	`
	return r.execOne(ctx, query, []any{userID, passwordHash}, []any{userID, redacted})
}

// SetResetToken stores the digest of a reset token and its expiry.
func (r *UserWriteRepository) SetResetToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error {
	query := `
		UPDATE users
		SET reset_password_token = $2,
		    reset_password_expires = $3,
		    updated_at = NOW()
		WHERE id = $1
	`
	return r.execOne(ctx, query, []any{userID, tokenHash, expiresAt}, []any{userID, redacted, expiresAt})
}

// ResetPassword sets a new password hash for the active user holding email
// and an unexpired reset token with the given digest. The token fields are
// cleared in the same statement. ok is false when nothing matched.
func (r *UserWriteRepository) ResetPassword(ctx context.Context, email, tokenHash, passwordHash string) (userID uuid.UUID, ok bool, err error) {
	query := `
		UPDATE users
		SET password_hash = $3,
		    reset_password_token = NULL,
		    reset_password_expires = NULL,
		    updated_at = NOW()
		WHERE email = $1
		  AND reset_password_token = $2
		  AND reset_password_expires > NOW()
		  AND is_active
		RETURNING id
	`

	err = r.db.QueryRowxContext(ctx, query, email, tokenHash, passwordHash).Scan(&userID)

	logQuery(query, []any{email, redacted, redacted}, userID, err)

	if errors.Is(err, sql.ErrNoRows) {
		return uuid.Nil, false, nil
	}
	if err != nil {
		return uuid.Nil, false, err
	}
	return userID, true, nil
}

func (r *UserWriteRepository) execOne(ctx context.Context, query string, args, logArgs []any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logQuery(query, logArgs, rowsAffected, err)

	if err != nil {
		return mapError(err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("user %v: %w", args[0], apperrors.ErrNotFound)
	}
	return nil
}
