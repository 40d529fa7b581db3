package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/iudanet/fieldsync/internal/models"
)

type cartFlags struct {
	note      string
	contactID int64
	productID int64
	quantity  int
}

func (f *cartFlags) register(cmd *cobra.Command) {
	cmd.Flags().Int64Var(&f.contactID, "contact", 0, "contact id")
	cmd.Flags().Int64Var(&f.productID, "product", 0, "product id")
	cmd.Flags().IntVar(&f.quantity, "quantity", 1, "quantity")
	cmd.Flags().StringVar(&f.note, "note", "", "free-form note")
}

func (f *cartFlags) apply(cmd *cobra.Command, item *models.CartItem) {
	flags := cmd.Flags()
	if flags.Changed("contact") {
		item.ContactID = f.contactID
	}
	if flags.Changed("product") {
		item.ProductID = f.productID
	}
	if flags.Changed("quantity") {
		item.Quantity = f.quantity
	}
	if flags.Changed("note") {
		item.Note = f.note
	}
}

func newCartCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Manage cart items",
		Long: `Cart items reference a contact and a product. Ids of records that have not
been synced yet (negative ids) may be used; they are rewritten once the
referenced record gets its server id.`,
	}

	addFlags := &cartFlags{}
	add := &cobra.Command{
		Use:   "add",
		Short: "Add an item to the cart",
		Args:  cobra.NoArgs,
		RunE: s.run(func(ctx context.Context, c *Cli, cmd *cobra.Command, _ []string) error {
			// Количество по умолчанию 1, даже если флаг не указан
			item := &models.CartItem{Quantity: addFlags.quantity}
			addFlags.apply(cmd, item)
			return c.save(ctx, 0, item)
		}),
	}
	addFlags.register(add)
	_ = add.MarkFlagRequired("contact")
	_ = add.MarkFlagRequired("product")

	editFlags := &cartFlags{}
	edit := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a cart item",
		Args:  cobra.ExactArgs(1),
		RunE: s.run(func(ctx context.Context, c *Cli, cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return c.edit(ctx, models.TypeCartItem, id, func(e models.Entity) error {
				editFlags.apply(cmd, e.(*models.CartItem))
				return nil
			})
		}),
	}
	editFlags.register(edit)

	cmd.AddCommand(add, edit, newListCommand(s, models.TypeCartItem))
	return cmd
}
