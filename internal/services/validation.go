package services

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

// phoneRegexp accepts "+<1-15 digits>" or "NNN-NNN-NNNN".
var phoneRegexp = regexp.MustCompile(`^(\+\d{1,15}|\d{3}-\d{3}-\d{4})$`)

// validate is the shared validator instance; the crmphone rule backs the
// model tags so struct-level validation and the mutation checks agree.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Registration only fails for a blank tag name.
	_ = v.RegisterValidation("crmphone", func(fl validator.FieldLevel) bool {
		return phoneRegexp.MatchString(fl.Field().String())
	})
	return v
}

// validateEmail returns a human-readable error for a malformed email.
func validateEmail(email string) error {
	if err := validate.Var(email, "required,email"); err != nil {
		return fmt.Errorf("Invalid email format: %s", email)
	}
	return nil
}

// validatePhone returns a human-readable error for a phone that matches
// neither accepted format. An empty phone is allowed.
func validatePhone(phone string) error {
	if phone != "" && !phoneRegexp.MatchString(phone) {
		return fmt.Errorf("Invalid phone format. Use +1234567890 or 123-456-7890")
	}
	return nil
}
