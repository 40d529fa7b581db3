package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iudanet/fieldsync/internal/models"
)

// save creates (id 0) or replaces an entity and prints the result
func (c *Cli) save(ctx context.Context, id int64, e models.Entity) error {
	rec, err := c.dataService.CreateOrEdit(ctx, id, e)
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", e.Type(), err)
	}

	action := "Updated"
	if id == 0 {
		action = "Created"
	}
	c.printSaved(action, rec)
	return nil
}

// edit loads the current entity, lets change modify a copy and saves it
func (c *Cli) edit(ctx context.Context, t models.EntityType, id int64, change func(e models.Entity) error) error {
	current, err := c.dataService.Get(ctx, t, id)
	if err != nil {
		return fmt.Errorf("failed to get %s %d: %w", t, id, err)
	}

	entity := models.CloneEntity(current.Entity)
	if err := change(entity); err != nil {
		return err
	}

	// Отображаемый id может быть временным, сервис сам найдет постоянный
	return c.save(ctx, current.ID, entity)
}

// list prints the live records of t
func (c *Cli) list(ctx context.Context, t models.EntityType) error {
	records, err := c.dataService.List(ctx, t)
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", t, err)
	}
	return c.printRecords(t, records)
}

func newListCommand(s *session, t models.EntityType) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   fmt.Sprintf("List %s records", t),
		Args:    cobra.NoArgs,
		RunE: s.run(func(ctx context.Context, c *Cli, _ *cobra.Command, _ []string) error {
			return c.list(ctx, t)
		}),
	}
}
