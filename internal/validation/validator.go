package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/sbilibin2017/gw-movie-streaming/internal/apperrors"
)

// maxBodyBytes caps request bodies read by Decode.
const maxBodyBytes = 1 << 20

// Password bounds are in bytes; bcrypt rejects inputs longer than 72 bytes.
const (
	minPasswordBytes = 6
	maxPasswordBytes = 72
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Use JSON tag names in field errors.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterAlias("username", "min=3,max=20")
	_ = v.RegisterValidation("password", passwordLength)
	return v
}

func passwordLength(fl validator.FieldLevel) bool {
	n := len(fl.Field().String())
	return n >= minPasswordBytes && n <= maxPasswordBytes
}

// Struct validates s and returns a validation error with per-field messages.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = message(fe)
	}
	return apperrors.Validation(fields)
}

// Normalizer is implemented by request types that clean their fields
// (trimming, case folding) before validation.
type Normalizer interface {
	Normalize()
}

// Decode reads a JSON body into dst and validates it. With strict set,
// unknown fields are rejected.
func Decode(r *http.Request, dst any, strict bool) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if strict {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(dst); err != nil {
		return apperrors.Validation(map[string]string{"body": bodyMessage(err)})
	}
	if n, ok := dst.(Normalizer); ok {
		n.Normalize()
	}
	return Struct(dst)
}

func bodyMessage(err error) string {
	var ute *json.UnmarshalTypeError
	switch {
	case errors.Is(err, io.EOF):
		return "request body is empty"
	case errors.As(err, &ute):
		return fmt.Sprintf("%s has the wrong type", ute.Field)
	case strings.HasPrefix(err.Error(), "json: unknown field"):
		return strings.TrimPrefix(err.Error(), "json: ") + " is not allowed"
	default:
		return "invalid json"
	}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "uuid":
		return "must be a valid UUID"
	case "username":
		return "must be between 3 and 20 characters long"
	case "password":
		return fmt.Sprintf("must be between %d and %d bytes long", minPasswordBytes, maxPasswordBytes)
	case "min":
		return "must be at least " + fe.Param() + " characters long"
	case "max":
		return "must be at most " + fe.Param() + " characters long"
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(fe.Param()), ", ")
	default:
		return "validation failed for '" + fe.Tag() + "'"
	}
}
