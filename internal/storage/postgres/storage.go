package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/butiken/storefront/internal/model"
	"github.com/butiken/storefront/internal/storage"
)

// Storage is a PostgreSQL-backed implementation of the storage interface.
// The pgx pool is owned by the Storage and closed via Close.
type Storage struct {
	pool *pgxpool.Pool
}

// New connects to the given database URL and verifies the connection
func New(ctx context.Context, url string) (*Storage, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Storage{pool: pool}, nil
}

// NewWithPool creates a Storage with an existing pool (for testing)
func NewWithPool(pool *pgxpool.Pool) *Storage {
	return &Storage{pool: pool}
}

// Close releases the connection pool
func (s *Storage) Close() {
	s.pool.Close()
}

// Ensure Storage implements the interface
var _ storage.Store = (*Storage)(nil)

// Account operations

func (s *Storage) CreateAccount(ctx context.Context, acct *model.Account) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO accounts (email, username, password_hash, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		acct.Email, acct.Username, acct.PasswordHash, acct.CreatedAt, acct.UpdatedAt)
	if err == nil {
		return nil
	}

	field, ok := classifyUniqueViolation(err)
	if !ok {
		return fmt.Errorf("insert account: %w", err)
	}

	// Postgres reports one fired constraint per insert; probe the sibling
	// field so both-taken registrations are reported per-field, the way the
	// original schema's combined key did. A failed probe fails the create
	// rather than under-reporting the duplicate.
	dup := &model.DuplicateAccountError{}
	switch field {
	case "email":
		dup.EmailTaken = true
		taken, err := s.exists(ctx,
			`SELECT 1 FROM accounts WHERE username = $1`, acct.Username)
		if err != nil {
			return fmt.Errorf("probe username: %w", err)
		}
		dup.UsernameTaken = taken
	case "username":
		dup.UsernameTaken = true
		taken, err := s.exists(ctx,
			`SELECT 1 FROM accounts WHERE email = $1`, acct.Email)
		if err != nil {
			return fmt.Errorf("probe email: %w", err)
		}
		dup.EmailTaken = taken
	default:
		dup.EmailTaken = true
		dup.UsernameTaken = true
	}
	return dup
}

func (s *Storage) GetAccountByEmail(ctx context.Context, email string) (*model.Account, error) {
	return s.getAccount(ctx,
		`SELECT email, username, password_hash, COALESCE(remember_token, ''), created_at, updated_at
		 FROM accounts WHERE email = $1`, email)
}

func (s *Storage) GetAccountByRememberToken(ctx context.Context, token string) (*model.Account, error) {
	if token == "" {
		return nil, model.ErrAccountNotFound
	}
	return s.getAccount(ctx,
		`SELECT email, username, password_hash, COALESCE(remember_token, ''), created_at, updated_at
		 FROM accounts WHERE remember_token = $1`, token)
}

func (s *Storage) getAccount(ctx context.Context, query string, arg any) (*model.Account, error) {
	var acct model.Account
	err := s.pool.QueryRow(ctx, query, arg).Scan(
		&acct.Email, &acct.Username, &acct.PasswordHash,
		&acct.RememberToken, &acct.CreatedAt, &acct.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAccountNotFound
		}
		return nil, fmt.Errorf("query account: %w", err)
	}
	return &acct, nil
}

func (s *Storage) SetRememberToken(ctx context.Context, username, token string) error {
	return s.updateAccount(ctx,
		`UPDATE accounts SET remember_token = $1, updated_at = now() WHERE username = $2`,
		token, username)
}

func (s *Storage) ClearRememberToken(ctx context.Context, username string) error {
	return s.updateAccount(ctx,
		`UPDATE accounts SET remember_token = NULL, updated_at = now() WHERE username = $1`,
		username)
}

func (s *Storage) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	return s.updateAccount(ctx,
		`UPDATE accounts SET password_hash = $1, updated_at = now() WHERE email = $2`,
		passwordHash, email)
}

func (s *Storage) updateAccount(ctx context.Context, query string, args ...any) error {
	tag, err := s.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrAccountNotFound
	}
	return nil
}

// Cart operations

func (s *Storage) GetCartItems(ctx context.Context, username string) ([]model.CartItem, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT product_id, quantity FROM cart_items
		 WHERE username = $1 ORDER BY product_id`, username)
	if err != nil {
		return nil, fmt.Errorf("query cart items: %w", err)
	}
	defer rows.Close()

	var items []model.CartItem
	for rows.Next() {
		item := model.CartItem{Username: username}
		if err := rows.Scan(&item.ProductID, &item.Quantity); err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cart items: %w", err)
	}
	return items, nil
}

// UpsertCartItem accumulates the quantity in a single atomic statement.
// Concurrent adds for the same (username, product) serialize on the row
// lock, and simultaneous first adds serialize on the primary-key index,
// so no increment is ever lost.
func (s *Storage) UpsertCartItem(ctx context.Context, username string, productID model.ProductID, quantity int) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO cart_items (username, product_id, quantity)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (username, product_id) DO UPDATE
		 SET quantity = cart_items.quantity + EXCLUDED.quantity`,
		username, productID, quantity)
	if err != nil {
		return fmt.Errorf("upsert cart row: %w", err)
	}
	return nil
}

func (s *Storage) RemoveCartItem(ctx context.Context, username string, productID model.ProductID) error {
	// Deleting an absent row is a no-op, not an error
	_, err := s.pool.Exec(ctx,
		`DELETE FROM cart_items WHERE username = $1 AND product_id = $2`,
		username, productID)
	if err != nil {
		return fmt.Errorf("delete cart row: %w", err)
	}
	return nil
}

// Catalog operations

func (s *Storage) GetProduct(ctx context.Context, id model.ProductID) (*model.Product, error) {
	var p model.Product
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, description, price FROM products WHERE id = $1`, id).
		Scan(&p.ID, &p.Name, &p.Description, &p.Price)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrProductNotFound
		}
		return nil, fmt.Errorf("query product: %w", err)
	}
	return &p, nil
}

func (s *Storage) ListProducts(ctx context.Context) ([]model.Product, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, description, price FROM products ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return products, nil
}

func (s *Storage) SaveProduct(ctx context.Context, p *model.Product) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO products (id, name, description, price)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (id) DO UPDATE SET
		   name = EXCLUDED.name,
		   description = EXCLUDED.description,
		   price = EXCLUDED.price`,
		p.ID, p.Name, p.Description, p.Price)
	if err != nil {
		return fmt.Errorf("save product: %w", err)
	}
	return nil
}

func (s *Storage) exists(ctx context.Context, query string, arg any) (bool, error) {
	var one int
	err := s.pool.QueryRow(ctx, query, arg).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// classifyUniqueViolation maps a unique_violation (23505) to the account
// field whose constraint fired, based on the constraint name.
func classifyUniqueViolation(err error) (field string, ok bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return "", false
	}
	name := strings.ToLower(pgErr.ConstraintName)
	switch {
	case strings.Contains(name, "email"):
		return "email", true
	case strings.Contains(name, "username"):
		return "username", true
	}
	return "", true
}
