// Package validate performs the client-side pre-submission checks for the
// login and signup forms. The checks are advisory — the provider and backend
// stay authoritative — but a form that fails here never reaches the network.
package validate

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/inqgamerz48/university-management-v2.0/internal/role"
)

// FieldErrors maps a form field to its message. It satisfies error so a
// handler can treat a failed validation like any other failure.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	parts := make([]string, 0, len(e))
	for field, message := range e {
		parts = append(parts, field+": "+message)
	}
	return strings.Join(parts, "; ")
}

type Login struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,role"`
}

type Signup struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
	Role            string `json:"role" validate:"required,role"`
	Department      string `json:"department"`
}

var checker = newChecker()

func newChecker() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		_, err := role.Parse(fl.Field().String())
		return err == nil
	})
	return v
}

// messages carries the user-facing text per field and violation.
var messages = map[string]map[string]string{
	"name": {
		"required": "Name is required.",
	},
	"email": {
		"required": "Please enter an email address.",
		"email":    "Please enter a valid email address.",
	},
	"password": {
		"required": "Please enter a password.",
		"min":      "Password must be at least 8 characters.",
	},
	"confirm_password": {
		"required": "Please confirm your password.",
		"eqfield":  "Passwords do not match.",
	},
	"role": {
		"required": "You need to select a role.",
		"role":     "You need to select a role.",
	},
}

// Check validates a form struct and returns nil when it is clean.
func Check(form interface{}) FieldErrors {
	err := checker.Struct(form)
	if err == nil {
		return nil
	}
	violations, ok := err.(validator.ValidationErrors)
	if !ok {
		return FieldErrors{"general": err.Error()}
	}

	fields := make(FieldErrors, len(violations))
	for _, violation := range violations {
		field := violation.Field()
		if _, seen := fields[field]; seen {
			continue
		}
		if message, ok := messages[field][violation.Tag()]; ok {
			fields[field] = message
		} else {
			fields[field] = "Invalid value."
		}
	}
	return fields
}
