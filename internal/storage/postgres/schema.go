package postgres

import (
	"context"
	"fmt"
)

// schema is applied by EnsureSchema. remember_token is nullable and unique:
// at most one remembered session per account, and NULLs never collide.
const schema = `
CREATE TABLE IF NOT EXISTS accounts (
	email          TEXT NOT NULL,
	username       TEXT NOT NULL,
	password_hash  TEXT NOT NULL,
	remember_token TEXT,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
	CONSTRAINT accounts_email_key UNIQUE (email),
	CONSTRAINT accounts_username_key UNIQUE (username),
	CONSTRAINT accounts_remember_token_key UNIQUE (remember_token)
);

CREATE TABLE IF NOT EXISTS products (
	id          INTEGER PRIMARY KEY,
	name        TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	price       BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS cart_items (
	username   TEXT NOT NULL REFERENCES accounts (username),
	product_id INTEGER NOT NULL,
	quantity   INTEGER NOT NULL,
	PRIMARY KEY (username, product_id)
);
`

// EnsureSchema creates the tables if they do not exist yet
func (s *Storage) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
