package response

import (
	"encoding/json"
	"net/http"

	"github.com/sbilibin2017/gw-movie-streaming/internal/apperrors"
	"github.com/sbilibin2017/gw-movie-streaming/internal/logger"
)

const internalMessage = "Something went wrong on our end"

// ErrorResponse is the body of every failed request.
// swagger:model ErrorResponse
type ErrorResponse struct {
	// Error message
	// default: Not authorized
	Error string `json:"error"`

	// Per-field validation messages
	Fields map[string]string `json:"fields,omitempty"`

	// Internal error detail, development only
	Detail string `json:"detail,omitempty"`
}

// MessageResponse is a plain confirmation body.
// swagger:model MessageResponse
type MessageResponse struct {
	Message string `json:"message"`
}

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Errorw("failed to encode response", "err", err)
	}
}

// Fail writes an error body with the given status code.
func Fail(w http.ResponseWriter, status int, message string) {
	JSON(w, status, ErrorResponse{Error: message})
}

// StatusCode maps an error kind to its HTTP status.
func StatusCode(kind apperrors.Kind) int {
	switch kind {
	case apperrors.KindUnauthenticated, apperrors.KindInvalidCredentials:
		return http.StatusUnauthorized
	case apperrors.KindConflict:
		return http.StatusConflict
	case apperrors.KindValidation, apperrors.KindInvalidResetToken:
		return http.StatusBadRequest
	case apperrors.KindNotFound:
		return http.StatusNotFound
	case apperrors.KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// ErrorWriter renders errors as JSON responses. Internal details are exposed
// only when debug is set.
type ErrorWriter struct {
	debug bool
}

func NewErrorWriter(debug bool) *ErrorWriter {
	return &ErrorWriter{debug: debug}
}

// Write maps err to a status code and body.
func (ew *ErrorWriter) Write(w http.ResponseWriter, r *http.Request, err error) {
	ew.WriteStatus(w, r, err, 0)
}

// WriteStatus is Write with a status override for classified errors.
func (ew *ErrorWriter) WriteStatus(w http.ResponseWriter, r *http.Request, err error, status int) {
	appErr, ok := apperrors.As(err)
	if !ok || appErr.Kind == apperrors.KindInternal {
		logger.Log.Errorw("internal server error",
			"method", r.Method,
			"path", r.URL.Path,
			"err", err,
		)
		body := ErrorResponse{Error: internalMessage}
		if ew.debug {
			body.Detail = err.Error()
		}
		JSON(w, http.StatusInternalServerError, body)
		return
	}

	if status == 0 {
		status = StatusCode(appErr.Kind)
	}
	if appErr.Kind == apperrors.KindValidation {
		logger.Log.Infow("validation failed", "path", r.URL.Path, "fields", apperrors.FieldsString(appErr.Fields))
	}
	JSON(w, status, ErrorResponse{Error: appErr.Message, Fields: appErr.Fields})
}
