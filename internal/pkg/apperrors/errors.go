package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenNotFound      = errors.New("token not found")
	ErrTokenRevoked       = errors.New("token revoked")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")

	// User errors
	ErrUserNotFound          = errors.New("user not found")
	ErrUsernameAlreadyExists = errors.New("username already exists")
	ErrEmailAlreadyExists    = errors.New("email already exists")
)

// Catalogue errors
var (
	ErrProfessorNotFound      = errors.New("professor not found")
	ErrModuleNotFound         = errors.New("module not found")
	ErrModuleInstanceNotFound = errors.New("module instance not found")
)

// Rating errors
var (
	ErrRatingOutOfRange     = errors.New("rating must be between 1 and 5")
	ErrProfessorNotTeaching = errors.New("professor does not teach this module instance")
)
