package validation

import (
	"fmt"
	"regexp"
)

// Validation rule constants
var (
	EmailPattern = `^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`

	PasswordMinLength = 8
)

var emailRegex = regexp.MustCompile(EmailPattern)

// IsValidEmail reports whether the address matches the email pattern
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// ValidatePassword checks the minimum password length
func ValidatePassword(password string) error {
	if len(password) < PasswordMinLength {
		return fmt.Errorf("password must be at least %d characters", PasswordMinLength)
	}
	return nil
}
