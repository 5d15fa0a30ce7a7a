package model

import "errors"

// Common errors used across the application
var (
	// Account errors
	ErrAccountNotFound = errors.New("account not found")

	// Product errors
	ErrProductNotFound = errors.New("product not found")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")
)

// DuplicateAccountError reports which unique account fields an insert
// collided on, so registration can show per-field messages.
type DuplicateAccountError struct {
	EmailTaken    bool
	UsernameTaken bool
}

func (e *DuplicateAccountError) Error() string {
	switch {
	case e.EmailTaken && e.UsernameTaken:
		return "email and username already registered"
	case e.EmailTaken:
		return "email already registered"
	case e.UsernameTaken:
		return "username already registered"
	}
	return "duplicate account"
}

// AsDuplicateAccount unwraps err as a DuplicateAccountError if it is one
func AsDuplicateAccount(err error) (*DuplicateAccountError, bool) {
	var dup *DuplicateAccountError
	if errors.As(err, &dup) {
		return dup, true
	}
	return nil, false
}
