package session

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// Credentials are the login form fields.
type Credentials struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateCredentials checks the form before any network round trip and
// returns messages keyed by field name. A nil map means the form is valid.
func ValidateCredentials(c Credentials) map[string]string {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"form": "invalid input"}
	}

	fieldErrs := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		switch fe.Field() {
		case "Email":
			if fe.Tag() == "required" {
				fieldErrs["email"] = "email is required"
			} else {
				fieldErrs["email"] = "email must be a valid address"
			}
		case "Password":
			if fe.Tag() == "required" {
				fieldErrs["password"] = "password is required"
			} else {
				fieldErrs["password"] = "password must be at least 6 characters"
			}
		}
	}
	return fieldErrs
}
