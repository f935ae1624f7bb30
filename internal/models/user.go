package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// SubscriptionType is the stored plan of a user. It is not enforced anywhere.
type SubscriptionType string

const (
	SubscriptionFree    SubscriptionType = "free"
	SubscriptionBasic   SubscriptionType = "basic"
	SubscriptionPremium SubscriptionType = "premium"
)

// Valid reports whether s is a known plan.
func (s SubscriptionType) Valid() bool {
	switch s {
	case SubscriptionFree, SubscriptionBasic, SubscriptionPremium:
		return true
	}
	return false
}

// UserDB represents a user record in the database
type UserDB struct {
	ID                   uuid.UUID        `db:"id"`                     // Primary key
	Username             string           `db:"username"`               // Unique, 3-20 chars
	Email                string           `db:"email"`                  // Unique, lowercased
	PasswordHash         string           `db:"password_hash"`          // bcrypt digest
	FirstName            string           `db:"first_name"`             // Optional
	LastName             string           `db:"last_name"`              // Optional
	SubscriptionType     SubscriptionType `db:"subscription_type"`      // free, basic or premium
	IsActive             bool             `db:"is_active"`              // Inactive users cannot authenticate
	ResetPasswordToken   sql.NullString   `db:"reset_password_token"`   // SHA-256 hex of the issued reset token
	ResetPasswordExpires sql.NullTime     `db:"reset_password_expires"` // Reset token expiry
	CreatedAt            time.Time        `db:"created_at"`             // Creation timestamp
	UpdatedAt            time.Time        `db:"updated_at"`             // Last update timestamp
}

// User is the public view of a user. It never carries credentials.
type User struct {
	ID               uuid.UUID        `json:"id"`
	Username         string           `json:"username"`
	Email            string           `json:"email"`
	FirstName        string           `json:"firstName"`
	LastName         string           `json:"lastName"`
	SubscriptionType SubscriptionType `json:"subscriptionType"`
	IsActive         bool             `json:"isActive"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

// Public returns the client-facing view of u.
func (u *UserDB) Public() User {
	return User{
		ID:               u.ID,
		Username:         u.Username,
		Email:            u.Email,
		FirstName:        u.FirstName,
		LastName:         u.LastName,
		SubscriptionType: u.SubscriptionType,
		IsActive:         u.IsActive,
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
}

// Registration carries the fields needed to create an account.
type Registration struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// ProfileUpdate lists the profile fields a user may change. Nil means unchanged.
type ProfileUpdate struct {
	FirstName        *string
	LastName         *string
	SubscriptionType *SubscriptionType
}

// Empty reports whether the update changes nothing.
func (p ProfileUpdate) Empty() bool {
	return p.FirstName == nil && p.LastName == nil && p.SubscriptionType == nil
}

// Profile is a user together with their populated movie lists. The user
// fields are inlined in JSON.
type Profile struct {
	User
	Watchlist []MovieSummary `json:"watchlist"`
	Favorites []MovieSummary `json:"favorites"`
}
