package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidCode(t *testing.T) {
	valid := []string{"JE1", "VS1", "CD1", "PG1", "COMP3011", "AB"}
	for _, code := range valid {
		assert.True(t, IsValidCode(code), "code %q should be valid", code)
	}

	invalid := []string{"", "J", "je1", "1JE", "JE 1", "JE-1", "ABCDEFGHIJK"}
	for _, code := range invalid {
		assert.False(t, IsValidCode(code), "code %q should be invalid", code)
	}
}

func TestIsValidUsername(t *testing.T) {
	valid := []string{"alice", "bob_42", "ABC", "a_very_long_username_under_30"}
	for _, username := range valid {
		assert.True(t, IsValidUsername(username), "username %q should be valid", username)
	}

	invalid := []string{"", "ab", "has space", "bad!chars", "this_username_is_way_too_long_to_accept"}
	for _, username := range invalid {
		assert.False(t, IsValidUsername(username), "username %q should be invalid", username)
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"alice@example.com", "bob.smith@sub.domain.org"}
	for _, email := range valid {
		assert.True(t, IsValidEmail(email), "email %q should be valid", email)
	}

	invalid := []string{"", "not-an-email", "missing@tld", "@example.com"}
	for _, email := range invalid {
		assert.False(t, IsValidEmail(email), "email %q should be invalid", email)
	}
}
