package model

// IdentityKind tags the visitor identity established for a request
type IdentityKind int

const (
	// IdentityGuest is an anonymous visitor; the cart lives in the session
	IdentityGuest IdentityKind = iota
	// IdentityAuthenticated is a signed-in account, whether via the
	// session or a matched remember-token
	IdentityAuthenticated
)

// Identity is the resolved visitor identity for one request. Exactly one
// kind describes a request at evaluation time; it is re-derived on every
// request.
type Identity struct {
	Kind     IdentityKind
	Username string
	Email    string
}

// Guest returns the anonymous identity
func Guest() Identity {
	return Identity{Kind: IdentityGuest}
}

// Authenticated returns a signed-in identity for the given account
func Authenticated(username, email string) Identity {
	return Identity{Kind: IdentityAuthenticated, Username: username, Email: email}
}

// IsAuthenticated reports whether the identity is account-bound
func (i Identity) IsAuthenticated() bool {
	return i.Kind == IdentityAuthenticated
}
