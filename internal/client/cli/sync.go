package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	clientsync "github.com/iudanet/fieldsync/internal/client/sync"
	"github.com/iudanet/fieldsync/internal/models"
)

// syncNow runs one pass in the foreground and prints its report
func (c *Cli) syncNow(ctx context.Context) error {
	report, err := c.engine.RunPass(ctx)
	if report == nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	c.printReport(report)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("sync failed: %w", err)
	}

	if failed := report.Total().Failed; failed > 0 {
		return fmt.Errorf("sync finished with %d failed records", failed)
	}
	return nil
}

func (c *Cli) printReport(report *clientsync.PassReport) {
	c.io.Printf("Sync pass %s (%s)\n", formatTime(report.StartedAt), report.FinishedAt.Sub(report.StartedAt).Round(time.Millisecond))
	for _, t := range models.SyncOrder() {
		tr := report.Types[t]
		if tr == nil || tr.Attempted == 0 {
			continue
		}
		c.io.Printf("  %-10s created %d, updated %d, deleted %d, failed %d, deferred %d, skipped %d\n",
			t, tr.Created, tr.Updated, tr.Deleted, tr.Failed, tr.Deferred, tr.Skipped)
	}

	total := report.Total()
	if total.Attempted == 0 {
		c.io.Println("  nothing to sync")
	}
	if report.Interrupted {
		c.io.Println("  interrupted, remaining changes stay queued")
	}
}

func newSyncCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Push local changes to the server now",
		Args:  cobra.NoArgs,
		RunE: s.run(func(ctx context.Context, c *Cli, _ *cobra.Command, _ []string) error {
			return c.syncNow(ctx)
		}),
	}
}
