package handlers

//go:generate mockgen -source=register.go -destination=register_mock.go -package=handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/sbilibin2017/gw-movie-streaming/internal/models"
	"github.com/sbilibin2017/gw-movie-streaming/internal/response"
	"github.com/sbilibin2017/gw-movie-streaming/internal/validation"
)

// Registerer defines the interface that the service must implement.
type Registerer interface {
	Register(ctx context.Context, reg models.Registration) (*models.UserDB, string, error)
}

// RegisterRequest represents the JSON body for user registration
// swagger:model RegisterRequest
type RegisterRequest struct {
	// Username, 3 to 20 characters
	// required: true
	// default: john_doe
	Username string `json:"username" validate:"required,username"`

	// Email
	// required: true
	// default: john@example.com
	Email string `json:"email" validate:"required,email"`

	// Password, 6 to 72 characters
	// required: true
	// default: secret123
	Password string `json:"password" validate:"required,password"`

	// First name
	// default: John
	FirstName string `json:"firstName,omitempty" validate:"max=50"`

	// Last name
	// default: Doe
	LastName string `json:"lastName,omitempty" validate:"max=50"`
}

func (req *RegisterRequest) Normalize() {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
}

// AuthResponse represents a successful registration or login
// swagger:model AuthResponse
type AuthResponse struct {
	// Success message
	// default: User registered successfully
	Message string `json:"message"`

	// Public user profile
	User models.User `json:"user"`

	// JWT token
	// default: JWT_TOKEN
	Token string `json:"token"`
}

// NewRegisterHandler returns an HTTP handler for user registration.
// @Summary Register a new user
// @Description Creates a new user account. Username and email must be unique. Password is hashed before storing.
// @Tags auth
// @Accept json
// @Produce json
// @Param registerRequest body handlers.RegisterRequest true "User registration request"
// @Success 201 {object} handlers.AuthResponse "User successfully registered"
// @Failure 400 {object} response.ErrorResponse "Validation failed"
// @Failure 409 {object} response.ErrorResponse "Username or email already exists"
// @Failure 429 {object} response.ErrorResponse "Too many requests"
// @Failure 500 {object} response.ErrorResponse "Internal server error"
// @Router /users/register [post]
func NewRegisterHandler(svc Registerer, errs *response.ErrorWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if err := validation.Decode(r, &req, false); err != nil {
			errs.Write(w, r, err)
			return
		}

		user, token, err := svc.Register(r.Context(), models.Registration{
			Username:  req.Username,
			Email:     req.Email,
			Password:  req.Password,
			FirstName: req.FirstName,
			LastName:  req.LastName,
		})
		if err != nil {
			errs.Write(w, r, err)
			return
		}

		response.JSON(w, http.StatusCreated, AuthResponse{
			Message: "User registered successfully",
			User:    user.Public(),
			Token:   token,
		})
	}
}
