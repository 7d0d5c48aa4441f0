// AngelaMos | 2026
// validate.go

package profile

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	MsgStoreNameRequired = "Store name is required"
	MsgInvalidEmail      = "Invalid email format"
	MsgInvalidWebsite    = "Invalid website URL format"
)

// FieldError names the offending JSON field alongside the message shown to
// the user.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationResult struct {
	Valid  bool         `json:"valid"`
	Errors []FieldError `json:"errors"`
}

// Messages returns the user-facing messages in field order.
func (r ValidationResult) Messages() []string {
	msgs := make([]string, 0, len(r.Errors))
	for _, fe := range r.Errors {
		msgs = append(msgs, fe.Message)
	}
	return msgs
}

// Has reports whether field failed validation.
func (r ValidationResult) Has(field string) bool {
	for _, fe := range r.Errors {
		if fe.Field == field {
			return true
		}
	}
	return false
}

type profileRules struct {
	StoreName string `json:"storeName" validate:"required_trimmed"`
	Email     string `json:"email"     validate:"omitempty,email"`
	Website   string `json:"website"   validate:"omitempty,url"`
}

var rules = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	//nolint:errcheck // tag name is static and the func non-nil
	_ = v.RegisterValidation("required_trimmed", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	return v
}

// Validate is the one rule set shared by the editor and the dashboard.
// The editor blocks on storeName only; the dashboard reports everything as
// warnings.
func Validate(p *Profile) ValidationResult {
	result := ValidationResult{Valid: true, Errors: []FieldError{}}
	if p == nil {
		result.Valid = false
		result.Errors = append(result.Errors, FieldError{
			Field:   "storeName",
			Message: MsgStoreNameRequired,
		})
		return result
	}

	err := rules.Struct(profileRules{
		StoreName: p.StoreName,
		Email:     p.Email,
		Website:   p.Website,
	})
	if err == nil {
		return result
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		result.Valid = false
		result.Errors = append(result.Errors, FieldError{
			Field:   "",
			Message: "Validation error occurred",
		})
		return result
	}

	result.Valid = false
	for _, fe := range validationErrs {
		result.Errors = append(result.Errors, FieldError{
			Field:   fe.Field(),
			Message: messageFor(fe.Field()),
		})
	}

	return result
}

func messageFor(field string) string {
	switch field {
	case "storeName":
		return MsgStoreNameRequired
	case "email":
		return MsgInvalidEmail
	case "website":
		return MsgInvalidWebsite
	default:
		return field + " is invalid"
	}
}
