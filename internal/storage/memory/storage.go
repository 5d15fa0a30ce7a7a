package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/butiken/storefront/internal/model"
	"github.com/butiken/storefront/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	accounts   map[string]*model.Account // keyed by username
	emailIndex map[string]string         // email -> username
	cartItems  map[cartKey]int
	products   map[model.ProductID]*model.Product
}

type cartKey struct {
	username  string
	productID model.ProductID
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		accounts:   make(map[string]*model.Account),
		emailIndex: make(map[string]string),
		cartItems:  make(map[cartKey]int),
		products:   make(map[model.ProductID]*model.Product),
	}
}

// Ensure Storage implements the interface
var _ storage.Store = (*Storage)(nil)

// Account operations

func (s *Storage) CreateAccount(ctx context.Context, acct *model.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, emailTaken := s.emailIndex[acct.Email]
	_, usernameTaken := s.accounts[acct.Username]
	if emailTaken || usernameTaken {
		return &model.DuplicateAccountError{
			EmailTaken:    emailTaken,
			UsernameTaken: usernameTaken,
		}
	}

	cp := *acct
	s.accounts[acct.Username] = &cp
	s.emailIndex[acct.Email] = acct.Username
	return nil
}

func (s *Storage) GetAccountByEmail(ctx context.Context, email string) (*model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	username, ok := s.emailIndex[email]
	if !ok {
		return nil, model.ErrAccountNotFound
	}
	cp := *s.accounts[username]
	return &cp, nil
}

func (s *Storage) GetAccountByRememberToken(ctx context.Context, token string) (*model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if token == "" {
		return nil, model.ErrAccountNotFound
	}
	for _, acct := range s.accounts {
		if acct.RememberToken == token {
			cp := *acct
			return &cp, nil
		}
	}
	return nil, model.ErrAccountNotFound
}

func (s *Storage) SetRememberToken(ctx context.Context, username, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	acct, ok := s.accounts[username]
	if !ok {
		return model.ErrAccountNotFound
	}
	acct.RememberToken = token
	return nil
}

func (s *Storage) ClearRememberToken(ctx context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	acct, ok := s.accounts[username]
	if !ok {
		return model.ErrAccountNotFound
	}
	acct.RememberToken = ""
	return nil
}

func (s *Storage) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	username, ok := s.emailIndex[email]
	if !ok {
		return model.ErrAccountNotFound
	}
	s.accounts[username].PasswordHash = passwordHash
	return nil
}

// Cart operations

func (s *Storage) GetCartItems(ctx context.Context, username string) ([]model.CartItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var items []model.CartItem
	for key, qty := range s.cartItems {
		if key.username == username {
			items = append(items, model.CartItem{
				Username:  username,
				ProductID: key.productID,
				Quantity:  qty,
			})
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].ProductID < items[j].ProductID
	})
	return items, nil
}

// UpsertCartItem holds the write lock across the read-modify-write so
// concurrent adds for the same (username, product) never lose an increment.
func (s *Storage) UpsertCartItem(ctx context.Context, username string, productID model.ProductID, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := cartKey{username: username, productID: productID}
	s.cartItems[key] += quantity
	return nil
}

func (s *Storage) RemoveCartItem(ctx context.Context, username string, productID model.ProductID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.cartItems, cartKey{username: username, productID: productID})
	return nil
}

// Catalog operations

func (s *Storage) GetProduct(ctx context.Context, id model.ProductID) (*model.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[id]
	if !ok {
		return nil, model.ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *Storage) ListProducts(ctx context.Context) ([]model.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	products := make([]model.Product, 0, len(s.products))
	for _, p := range s.products {
		products = append(products, *p)
	}
	sort.Slice(products, func(i, j int) bool {
		return products[i].ID < products[j].ID
	})
	return products, nil
}

func (s *Storage) SaveProduct(ctx context.Context, p *model.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *p
	s.products[p.ID] = &cp
	return nil
}
