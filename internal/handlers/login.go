package handlers

//go:generate mockgen -source=login.go -destination=login_mock.go -package=handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/sbilibin2017/gw-movie-streaming/internal/models"
	"github.com/sbilibin2017/gw-movie-streaming/internal/response"
	"github.com/sbilibin2017/gw-movie-streaming/internal/validation"
)

// Loginer defines the interface that the login service must implement.
type Loginer interface {
	Login(ctx context.Context, email, password string) (*models.UserDB, string, error)
}

// LoginRequest represents the JSON body for user login
// swagger:model LoginRequest
type LoginRequest struct {
	// Email
	// required: true
	// default: john@example.com
	Email string `json:"email" validate:"required,email"`

	// Password
	// required: true
	// default: secret123
	Password string `json:"password" validate:"required"`
}

func (req *LoginRequest) Normalize() {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
}

// NewLoginHandler returns an HTTP handler for user login.
// @Summary User login
// @Description Authenticate user and return JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Param loginRequest body handlers.LoginRequest true "Login Request"
// @Success 200 {object} handlers.AuthResponse "JWT token returned"
// @Failure 400 {object} response.ErrorResponse "Validation failed"
// @Failure 401 {object} response.ErrorResponse "Invalid email or password"
// @Failure 429 {object} response.ErrorResponse "Too many requests"
// @Router /users/login [post]
func NewLoginHandler(svc Loginer, errs *response.ErrorWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := validation.Decode(r, &req, false); err != nil {
			errs.Write(w, r, err)
			return
		}

		user, token, err := svc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			errs.Write(w, r, err)
			return
		}

		response.JSON(w, http.StatusOK, AuthResponse{
			Message: "Login successful",
			User:    user.Public(),
			Token:   token,
		})
	}
}
