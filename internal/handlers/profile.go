package handlers

//go:generate mockgen -source=profile.go -destination=profile_mock.go -package=handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/sbilibin2017/gw-movie-streaming/internal/apperrors"
	"github.com/sbilibin2017/gw-movie-streaming/internal/middlewares"
	"github.com/sbilibin2017/gw-movie-streaming/internal/models"
	"github.com/sbilibin2017/gw-movie-streaming/internal/response"
	"github.com/sbilibin2017/gw-movie-streaming/internal/validation"
)

// ProfileGetter loads the profile of the authenticated user.
type ProfileGetter interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
}

// ProfileUpdater changes the mutable profile fields.
type ProfileUpdater interface {
	UpdateProfile(ctx context.Context, userID uuid.UUID, upd models.ProfileUpdate) (*models.UserDB, error)
}

// ProfileResponse wraps the populated profile
// swagger:model ProfileResponse
type ProfileResponse struct {
	User *models.Profile `json:"user"`
}

// UpdateProfileRequest lists the fields a user may change. Omitted fields keep
// their value.
// swagger:model UpdateProfileRequest
type UpdateProfileRequest struct {
	// default: John
	FirstName *string `json:"firstName,omitempty" validate:"omitempty,max=50"`

	// default: Doe
	LastName *string `json:"lastName,omitempty" validate:"omitempty,max=50"`

	// enum: free,basic,premium
	SubscriptionType *models.SubscriptionType `json:"subscriptionType,omitempty" validate:"omitempty,oneof=free basic premium"`
}

func (req *UpdateProfileRequest) Normalize() {
	for _, s := range []*string{req.FirstName, req.LastName} {
		if s != nil {
			*s = strings.TrimSpace(*s)
		}
	}
}

// UpdateProfileResponse represents a successful profile update
// swagger:model UpdateProfileResponse
type UpdateProfileResponse struct {
	// default: Profile updated successfully
	Message string      `json:"message"`
	User    models.User `json:"user"`
}

// currentUserID returns the id attached by the auth middleware.
func currentUserID(r *http.Request) (uuid.UUID, error) {
	user := middlewares.UserFromContext(r.Context())
	if user == nil {
		return uuid.Nil, apperrors.ErrUnauthenticated
	}
	return user.ID, nil
}

// NewGetProfileHandler returns an HTTP handler for the user's profile.
// @Summary Get user profile
// @Description Returns the public profile with populated watchlist and favorites
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} handlers.ProfileResponse "User profile"
// @Failure 401 {object} response.ErrorResponse "Not authorized"
// @Failure 404 {object} response.ErrorResponse "User not found"
// @Router /users/profile [get]
func NewGetProfileHandler(svc ProfileGetter, errs *response.ErrorWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r)
		if err != nil {
			errs.Write(w, r, err)
			return
		}

		profile, err := svc.GetProfile(r.Context(), userID)
		if err != nil {
			errs.Write(w, r, err)
			return
		}

		response.JSON(w, http.StatusOK, ProfileResponse{User: profile})
	}
}

// NewUpdateProfileHandler returns an HTTP handler for profile updates.
// @Summary Update user profile
// @Description Updates name fields and subscription type. Username, email and password cannot be changed here.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param updateProfileRequest body handlers.UpdateProfileRequest true "Fields to change"
// @Success 200 {object} handlers.UpdateProfileResponse "Profile updated"
// @Failure 400 {object} response.ErrorResponse "Validation failed"
// @Failure 401 {object} response.ErrorResponse "Not authorized"
// @Failure 404 {object} response.ErrorResponse "User not found"
// @Router /users/profile [put]
func NewUpdateProfileHandler(svc ProfileUpdater, errs *response.ErrorWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r)
		if err != nil {
			errs.Write(w, r, err)
			return
		}

		var req UpdateProfileRequest
		if err := validation.Decode(r, &req, true); err != nil {
			errs.Write(w, r, err)
			return
		}

		user, err := svc.UpdateProfile(r.Context(), userID, models.ProfileUpdate{
			FirstName:        req.FirstName,
			LastName:         req.LastName,
			SubscriptionType: req.SubscriptionType,
		})
		if err != nil {
			errs.Write(w, r, err)
			return
		}

		response.JSON(w, http.StatusOK, UpdateProfileResponse{
			Message: "Profile updated successfully",
			User:    user.Public(),
		})
	}
}
