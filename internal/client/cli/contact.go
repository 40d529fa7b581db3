package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/iudanet/fieldsync/internal/models"
)

type contactFlags struct {
	name    string
	company string
	email   string
	phone   string
	address string
}

func (f *contactFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "contact name")
	cmd.Flags().StringVar(&f.company, "company", "", "company")
	cmd.Flags().StringVar(&f.email, "email", "", "email address")
	cmd.Flags().StringVar(&f.phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&f.address, "address", "", "postal address")
}

// apply copies the flags set on the command line into contact
func (f *contactFlags) apply(cmd *cobra.Command, contact *models.Contact) {
	flags := cmd.Flags()
	if flags.Changed("name") {
		contact.Name = f.name
	}
	if flags.Changed("company") {
		contact.Company = f.company
	}
	if flags.Changed("email") {
		contact.Email = f.email
	}
	if flags.Changed("phone") {
		contact.Phone = f.phone
	}
	if flags.Changed("address") {
		contact.Address = f.address
	}
}

func newContactCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "contact",
		Aliases: []string{"contacts"},
		Short:   "Manage contacts",
	}

	addFlags := &contactFlags{}
	add := &cobra.Command{
		Use:   "add",
		Short: "Create a contact",
		Args:  cobra.NoArgs,
		RunE: s.run(func(ctx context.Context, c *Cli, cmd *cobra.Command, _ []string) error {
			contact := &models.Contact{}
			addFlags.apply(cmd, contact)
			return c.save(ctx, 0, contact)
		}),
	}
	addFlags.register(add)
	_ = add.MarkFlagRequired("name")

	editFlags := &contactFlags{}
	edit := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of a contact",
		Args:  cobra.ExactArgs(1),
		RunE: s.run(func(ctx context.Context, c *Cli, cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return c.edit(ctx, models.TypeContact, id, func(e models.Entity) error {
				editFlags.apply(cmd, e.(*models.Contact))
				return nil
			})
		}),
	}
	editFlags.register(edit)

	cmd.AddCommand(add, edit, newListCommand(s, models.TypeContact))
	return cmd
}
