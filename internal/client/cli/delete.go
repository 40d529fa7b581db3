package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iudanet/fieldsync/internal/models"
)

// ErrConfirmationRequired is returned when a delete needs confirmation but
// input is not a terminal
var ErrConfirmationRequired = errors.New("confirmation required")

// remove deletes a record after confirmation unless force is set
func (c *Cli) remove(ctx context.Context, t models.EntityType, id int64, force bool) error {
	if !force {
		if !c.io.IsInteractive() {
			return fmt.Errorf("%w: pass --yes to delete %s %d", ErrConfirmationRequired, t, id)
		}
		answer, err := c.io.ReadInput(fmt.Sprintf("Delete %s %d? [y/N]: ", t, id))
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "y", "yes":
		default:
			c.io.Println("Cancelled")
			return nil
		}
	}

	if err := c.dataService.Delete(ctx, t, id); err != nil {
		return fmt.Errorf("failed to delete %s %d: %w", t, id, err)
	}

	c.io.Printf("Deleted %s %d\n", t, id)
	return nil
}

func newDeleteCommand(s *session) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:     "delete <contact|product|cart_item> <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a record",
		Long: `Delete a record. A record that never reached the server is removed at once;
a synced record is kept as pending deletion until the server confirms it.
Records still referenced by a cart item cannot be deleted.
Negative ids of unsynced records are accepted as is, e.g. "delete contact -1".`,
		Args: cobra.ExactArgs(2),
		RunE: s.run(func(ctx context.Context, c *Cli, _ *cobra.Command, args []string) error {
			t, err := models.ParseEntityType(args[0])
			if err != nil {
				return err
			}
			id, err := parseID(args[1])
			if err != nil {
				return err
			}
			return c.remove(ctx, t, id, force)
		}),
	}

	cmd.Flags().BoolVarP(&force, "yes", "y", false, "do not ask for confirmation")
	return cmd
}
