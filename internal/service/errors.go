package service

import "errors"

// Domain outcomes surfaced to the transport layer. Credential failures are
// deliberately uniform: a missing user and a wrong secret both map to
// ErrInvalidCredentials so login responses never reveal whether an
// identifier exists.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrOtpInvalid         = errors.New("otp invalid")

	// ErrProfileMissing means an identity row exists without its role
	// profile. Registration creates both atomically, so this is an
	// integrity fault, not a normal miss.
	ErrProfileMissing = errors.New("profile record missing for user")
)

// ValidationError reports a field-level problem with a request payload.
// Validation happens before any store access.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalidField(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
