package handlers

//go:generate mockgen -source=password.go -destination=password_mock.go -package=handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/sbilibin2017/gw-movie-streaming/internal/apperrors"
	"github.com/sbilibin2017/gw-movie-streaming/internal/response"
	"github.com/sbilibin2017/gw-movie-streaming/internal/validation"
)

// PasswordChanger changes the password of a signed-in user.
type PasswordChanger interface {
	ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error
}

// ResetRequester issues password reset tokens.
type ResetRequester interface {
	ForgotPassword(ctx context.Context, email string) error
}

// PasswordResetter consumes password reset tokens.
type PasswordResetter interface {
	ResetPassword(ctx context.Context, email, token, newPassword string) error
}

// ChangePasswordRequest represents the JSON body for a password change
// swagger:model ChangePasswordRequest
type ChangePasswordRequest struct {
	// required: true
	CurrentPassword string `json:"currentPassword" validate:"required"`

	// New password, 6 to 72 characters
	// required: true
	NewPassword string `json:"newPassword" validate:"required,password"`
}

// ForgotPasswordRequest represents the JSON body for a reset token request
// swagger:model ForgotPasswordRequest
type ForgotPasswordRequest struct {
	// required: true
	// default: john@example.com
	Email string `json:"email" validate:"required,email"`
}

func (req *ForgotPasswordRequest) Normalize() {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
}

// ResetPasswordRequest represents the JSON body for a password reset
// swagger:model ResetPasswordRequest
type ResetPasswordRequest struct {
	// required: true
	// default: john@example.com
	Email string `json:"email" validate:"required,email"`

	// Token delivered by email
	// required: true
	ResetToken string `json:"resetToken" validate:"required"`

	// New password, 6 to 72 characters
	// required: true
	NewPassword string `json:"newPassword" validate:"required,password"`
}

func (req *ResetPasswordRequest) Normalize() {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.ResetToken = strings.TrimSpace(req.ResetToken)
}

const forgotPasswordMessage = "If the email is registered, a reset link has been sent"

// NewChangePasswordHandler returns an HTTP handler for password changes.
// @Summary Change password
// @Description Replaces the password after verifying the current one. Existing tokens stay valid until they expire.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param changePasswordRequest body handlers.ChangePasswordRequest true "Current and new password"
// @Success 200 {object} response.MessageResponse "Password changed successfully"
// @Failure 400 {object} response.ErrorResponse "Current password is incorrect / validation failed"
// @Failure 401 {object} response.ErrorResponse "Not authorized"
// @Router /users/change-password [put]
func NewChangePasswordHandler(svc PasswordChanger, errs *response.ErrorWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r)
		if err != nil {
			errs.Write(w, r, err)
			return
		}

		var req ChangePasswordRequest
		if err := validation.Decode(r, &req, false); err != nil {
			errs.Write(w, r, err)
			return
		}

		if err := svc.ChangePassword(r.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
			if apperrors.KindOf(err) == apperrors.KindInvalidCredentials {
				errs.WriteStatus(w, r, err, http.StatusBadRequest)
				return
			}
			errs.Write(w, r, err)
			return
		}

		response.JSON(w, http.StatusOK, response.MessageResponse{Message: "Password changed successfully"})
	}
}

// NewForgotPasswordHandler returns an HTTP handler that issues reset tokens.
// @Summary Request a password reset
// @Description Sends a reset token to the email if it belongs to an active account. The response is the same either way.
// @Tags auth
// @Accept json
// @Produce json
// @Param forgotPasswordRequest body handlers.ForgotPasswordRequest true "Account email"
// @Success 200 {object} response.MessageResponse "Reset requested"
// @Failure 400 {object} response.ErrorResponse "Validation failed"
// @Failure 429 {object} response.ErrorResponse "Too many requests"
// @Router /users/forgot-password [post]
func NewForgotPasswordHandler(svc ResetRequester, errs *response.ErrorWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ForgotPasswordRequest
		if err := validation.Decode(r, &req, false); err != nil {
			errs.Write(w, r, err)
			return
		}

		if err := svc.ForgotPassword(r.Context(), req.Email); err != nil {
			errs.Write(w, r, err)
			return
		}

		response.JSON(w, http.StatusOK, response.MessageResponse{Message: forgotPasswordMessage})
	}
}

// NewResetPasswordHandler returns an HTTP handler for password resets.
// @Summary Reset password
// @Description Sets a new password using a reset token. The token is consumed.
// @Tags auth
// @Accept json
// @Produce json
// @Param resetPasswordRequest body handlers.ResetPasswordRequest true "Email, token and new password"
// @Success 200 {object} response.MessageResponse "Password reset successfully"
// @Failure 400 {object} response.ErrorResponse "Invalid or expired reset token / validation failed"
// @Failure 429 {object} response.ErrorResponse "Too many requests"
// @Router /users/reset-password [post]
func NewResetPasswordHandler(svc PasswordResetter, errs *response.ErrorWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ResetPasswordRequest
		if err := validation.Decode(r, &req, false); err != nil {
			errs.Write(w, r, err)
			return
		}

		if err := svc.ResetPassword(r.Context(), req.Email, req.ResetToken, req.NewPassword); err != nil {
			errs.Write(w, r, err)
			return
		}

		response.JSON(w, http.StatusOK, response.MessageResponse{Message: "Password reset successfully"})
	}
}
