package utils

import (
	"regexp"
	"strings"
)

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// ValidateEmail checks the email format
func ValidateEmail(email string) bool {
	return emailRegex.MatchString(strings.ToLower(strings.TrimSpace(email)))
}

// ValidateUsername checks username length and characters
func ValidateUsername(username string) bool {
	return usernameRegex.MatchString(username)
}

// ValidatePassword enforces the minimum password length
func ValidatePassword(password string) bool {
	return len(password) >= 6
}
