package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/butiken/storefront/internal/model"
)

func newProductCmd() *cobra.Command {
	productCmd := &cobra.Command{
		Use:   "product",
		Short: "Manage the product catalog",
	}

	var (
		name        string
		description string
		price       string
	)

	addCmd := &cobra.Command{
		Use:   "add <id>",
		Short: "Add or update a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid product id %q", args[0])
			}
			minor, err := model.ParsePrice(price)
			if err != nil {
				return err
			}

			store, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			p := &model.Product{
				ID:          model.ProductID(id),
				Name:        name,
				Description: description,
				Price:       minor,
			}
			if err := store.SaveProduct(cmd.Context(), p); err != nil {
				return err
			}

			fmt.Printf("Saved product %d: %s (%s kr)\n", p.ID, p.Name, model.FormatPrice(p.Price))
			return nil
		},
	}
	addCmd.Flags().StringVar(&name, "name", "", "Product name")
	addCmd.Flags().StringVar(&description, "description", "", "Product description")
	addCmd.Flags().StringVar(&price, "price", "", `Price, e.g. "129.50"`)
	addCmd.MarkFlagRequired("name")  //nolint:errcheck
	addCmd.MarkFlagRequired("price") //nolint:errcheck

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			products, err := store.ListProducts(cmd.Context())
			if err != nil {
				return err
			}

			for _, p := range products {
				fmt.Printf("%d\t%s\t%s kr\t%s\n", p.ID, p.Name, model.FormatPrice(p.Price), p.Description)
			}
			return nil
		},
	}

	productCmd.AddCommand(addCmd)
	productCmd.AddCommand(listCmd)
	return productCmd
}
