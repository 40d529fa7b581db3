package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/iudanet/fieldsync/internal/models"
)

type productFlags struct {
	name        string
	sku         string
	description string
	currency    string
	price       string
}

func (f *productFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "product name")
	cmd.Flags().StringVar(&f.sku, "sku", "", "stock keeping unit")
	cmd.Flags().StringVar(&f.description, "description", "", "description")
	cmd.Flags().StringVar(&f.currency, "currency", "", "ISO 4217 currency code")
	cmd.Flags().StringVar(&f.price, "price", "", "unit price, e.g. 12.50")
}

func (f *productFlags) apply(cmd *cobra.Command, product *models.Product) error {
	flags := cmd.Flags()
	if flags.Changed("name") {
		product.Name = f.name
	}
	if flags.Changed("sku") {
		product.SKU = f.sku
	}
	if flags.Changed("description") {
		product.Description = f.description
	}
	if flags.Changed("currency") {
		product.Currency = f.currency
	}
	if flags.Changed("price") {
		cents, err := parsePrice(f.price)
		if err != nil {
			return err
		}
		product.PriceCents = cents
	}
	return nil
}

func newProductCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "product",
		Aliases: []string{"products"},
		Short:   "Manage the product catalog",
	}

	addFlags := &productFlags{}
	add := &cobra.Command{
		Use:   "add",
		Short: "Create a product",
		Args:  cobra.NoArgs,
		RunE: s.run(func(ctx context.Context, c *Cli, cmd *cobra.Command, _ []string) error {
			product := &models.Product{}
			if err := addFlags.apply(cmd, product); err != nil {
				return err
			}
			return c.save(ctx, 0, product)
		}),
	}
	addFlags.register(add)
	_ = add.MarkFlagRequired("name")

	editFlags := &productFlags{}
	edit := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of a product",
		Args:  cobra.ExactArgs(1),
		RunE: s.run(func(ctx context.Context, c *Cli, cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return c.edit(ctx, models.TypeProduct, id, func(e models.Entity) error {
				return editFlags.apply(cmd, e.(*models.Product))
			})
		}),
	}
	editFlags.register(edit)

	cmd.AddCommand(add, edit, newListCommand(s, models.TypeProduct))
	return cmd
}
