package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/butiken/storefront/internal/model"
)

func newAccountCmd() *cobra.Command {
	accountCmd := &cobra.Command{
		Use:   "account",
		Short: "Manage accounts",
	}

	var password string

	createCmd := &cobra.Command{
		Use:   "create <username> <email>",
		Short: "Create an account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			username, email := args[0], args[1]

			hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
			if err != nil {
				return err
			}

			store, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			now := time.Now()
			acct := &model.Account{
				Email:        email,
				Username:     username,
				PasswordHash: string(hash),
				CreatedAt:    now,
				UpdatedAt:    now,
			}
			if err := store.CreateAccount(cmd.Context(), acct); err != nil {
				return err
			}

			fmt.Printf("Created account %s <%s>\n", username, email)
			return nil
		},
	}
	createCmd.Flags().StringVar(&password, "password", "", "Account password")
	createCmd.MarkFlagRequired("password") //nolint:errcheck

	accountCmd.AddCommand(createCmd)
	return accountCmd
}
