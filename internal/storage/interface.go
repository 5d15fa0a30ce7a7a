package storage

import (
	"context"

	"github.com/butiken/storefront/internal/model"
)

// Store defines the interface for account, cart and catalog persistence
type Store interface {
	// Account operations
	//
	// CreateAccount enforces uniqueness on email and username independently
	// and combined; violations surface as *model.DuplicateAccountError with
	// per-field flags.
	CreateAccount(ctx context.Context, acct *model.Account) error
	GetAccountByEmail(ctx context.Context, email string) (*model.Account, error)
	GetAccountByRememberToken(ctx context.Context, token string) (*model.Account, error)
	SetRememberToken(ctx context.Context, username, token string) error
	ClearRememberToken(ctx context.Context, username string) error
	UpdatePassword(ctx context.Context, email, passwordHash string) error

	// Account-cart operations, keyed by (username, productID)
	//
	// UpsertCartItem is an atomic read-modify-write: an existing row has the
	// quantity added to it, otherwise a new row is inserted. Concurrent calls
	// for the same key must not lose an increment.
	GetCartItems(ctx context.Context, username string) ([]model.CartItem, error)
	UpsertCartItem(ctx context.Context, username string, productID model.ProductID, quantity int) error
	// RemoveCartItem deletes the row; removing an absent row is a no-op.
	RemoveCartItem(ctx context.Context, username string, productID model.ProductID) error

	// Catalog operations
	GetProduct(ctx context.Context, id model.ProductID) (*model.Product, error)
	ListProducts(ctx context.Context) ([]model.Product, error)
	SaveProduct(ctx context.Context, p *model.Product) error
}
