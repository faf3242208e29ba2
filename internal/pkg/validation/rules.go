package validation

import (
	"regexp"
	"strings"
)

// Validation rule patterns
var (
	// Professor and module codes are short uppercase alphanumerics, e.g. "JE1", "CD1"
	CodePattern = `^[A-Z][A-Z0-9]{1,9}$`

	// Username pattern - letters, digits, underscores
	UsernamePattern = `^[a-zA-Z0-9_]{3,30}$`

	// Email validation pattern
	EmailPattern = `^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,4}$`

	// Password min length
	PasswordMinLength = 8
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Code     *regexp.Regexp
	Username *regexp.Regexp
	Email    *regexp.Regexp
}{
	Code:     regexp.MustCompile(CodePattern),
	Username: regexp.MustCompile(UsernamePattern),
	Email:    regexp.MustCompile(EmailPattern),
}

// IsValidCode reports whether s is a well-formed professor or module code.
func IsValidCode(s string) bool {
	return CompiledPatterns.Code.MatchString(strings.TrimSpace(s))
}

// IsValidUsername reports whether s is a well-formed username.
func IsValidUsername(s string) bool {
	return CompiledPatterns.Username.MatchString(s)
}

// IsValidEmail reports whether s is a well-formed email address.
func IsValidEmail(s string) bool {
	return CompiledPatterns.Email.MatchString(strings.ToLower(s))
}
