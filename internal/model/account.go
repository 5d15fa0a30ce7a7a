package model

import "time"

// Account is a registered storefront account.
// RememberToken is the optional persistent-login token; at most one is
// active per account and it is cleared on logout.
type Account struct {
	Email         string
	Username      string // login name, immutable, ^[a-z0-9]{3,25}$
	PasswordHash  string // bcrypt hash, never the plaintext
	RememberToken string // empty when no remembered session exists
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
