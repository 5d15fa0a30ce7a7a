package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/butiken/storefront/internal/model"
)

func newCartCmd() *cobra.Command {
	cartCmd := &cobra.Command{
		Use:   "cart",
		Short: "Inspect account carts",
	}

	showCmd := &cobra.Command{
		Use:   "show <username>",
		Short: "Show an account's cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			username := args[0]

			store, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			items, err := store.GetCartItems(cmd.Context(), username)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				fmt.Println("Cart is empty")
				return nil
			}

			var total int64
			for _, item := range items {
				name := "N/A"
				price := "-"

				p, err := store.GetProduct(cmd.Context(), item.ProductID)
				switch {
				case err == nil:
					name = p.Name
					price = model.FormatPrice(p.Price)
					total += p.Price * int64(item.Quantity)
				case !errors.Is(err, model.ErrProductNotFound):
					return err
				}

				fmt.Printf("%d\t%s\t%s kr\tx%d\n", item.ProductID, name, price, item.Quantity)
			}
			fmt.Printf("Total: %s kr\n", model.FormatPrice(total))
			return nil
		},
	}

	cartCmd.AddCommand(showCmd)
	return cartCmd
}
