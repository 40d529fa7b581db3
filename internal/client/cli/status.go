package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iudanet/fieldsync/internal/models"
)

// status prints pending counts, the last sync time and the effective config
func (c *Cli) status(ctx context.Context) error {
	c.io.Println("Pending changes:")
	total := 0
	for _, t := range models.SyncOrder() {
		n := c.dataService.PendingCount(t)
		total += n
		c.io.Printf("  %-10s %d\n", t, n)
	}
	if total == 0 {
		c.io.Println("  all changes are synced")
	}

	last, err := c.metadata.GetLastSyncTime(ctx)
	if err != nil {
		return fmt.Errorf("failed to get last sync time: %w", err)
	}
	c.io.Printf("Last sync: %s\n", formatTime(last))

	if c.cfg != nil {
		c.io.Println("Configuration:")
		for _, line := range c.cfg.Summary() {
			c.io.Printf("  %s\n", line)
		}
	}
	return nil
}

func newStatusCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show pending changes and the last sync time",
		Args:  cobra.NoArgs,
		RunE: s.run(func(ctx context.Context, c *Cli, _ *cobra.Command, _ []string) error {
			return c.status(ctx)
		}),
	}
}
