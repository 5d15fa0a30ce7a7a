package session

import (
	"context"

	"github.com/butiken/storefront/internal/model"
)

// User is the identity carried by a signed-in session
type User struct {
	Email    string
	Username string
}

// Session is the short-lived per-visitor state tied to the session cookie.
// A nil Cart is the canonical empty guest cart; the map only exists while
// the guest cart is non-empty. Captcha holds the one-time code generated
// for this session's registration form.
type Session struct {
	ID      string
	User    *User
	Cart    map[model.ProductID]int
	Captcha string
}

// AddToCart accumulates quantity for a product in the guest cart,
// creating the cart on first use
func (s *Session) AddToCart(productID model.ProductID, quantity int) {
	if s.Cart == nil {
		s.Cart = make(map[model.ProductID]int)
	}
	s.Cart[productID] += quantity
}

// RemoveFromCart removes a product from the guest cart; when the cart
// becomes empty the map itself is dropped so absence stays the empty
// representation
func (s *Session) RemoveFromCart(productID model.ProductID) {
	delete(s.Cart, productID)
	if len(s.Cart) == 0 {
		s.Cart = nil
	}
}

// TakeCaptcha returns the stored captcha code and consumes it
func (s *Session) TakeCaptcha() string {
	code := s.Captcha
	s.Captcha = ""
	return code
}

// Store defines the interface for session persistence
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, sess *Session) error
	Delete(ctx context.Context, id string) error
}
