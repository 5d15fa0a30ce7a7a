package cli

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/butiken/storefront/internal/storage/postgres"
)

var databaseURL string

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "shopctl",
		Short: "Admin tool for the storefront database",
		Long: `shopctl manages the storefront's catalog, accounts and carts
directly against its postgres database.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&databaseURL, "database-url", os.Getenv("DATABASE_URL"),
		"Postgres connection URL (env: DATABASE_URL)")

	rootCmd.AddCommand(newProductCmd())
	rootCmd.AddCommand(newAccountCmd())
	rootCmd.AddCommand(newCartCmd())

	return rootCmd
}

// connect opens the postgres store and ensures the schema exists
func connect(ctx context.Context) (*postgres.Storage, error) {
	if databaseURL == "" {
		return nil, errors.New("--database-url or DATABASE_URL is required")
	}
	store, err := postgres.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	if err := store.EnsureSchema(ctx); err != nil {
		store.Close()
		return nil, err
	}
	return store, nil
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
