package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	clientsync "github.com/iudanet/fieldsync/internal/client/sync"
)

const watchShutdownTimeout = 10 * time.Second

// watch runs the background engine and prints its events until ctx is done
func (c *Cli) watch(ctx context.Context) error {
	if err := c.engine.Start(ctx); err != nil {
		return fmt.Errorf("failed to start sync engine: %w", err)
	}
	c.io.Println("Watching for changes, press Ctrl+C to stop")

	events := c.engine.Events()
	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), watchShutdownTimeout)
			defer cancel()
			if err := c.engine.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("failed to stop sync engine: %w", err)
			}
			c.io.Println("Stopped")
			return nil
		case ev := <-events:
			c.printEvent(ev)
		}
	}
}

func (c *Cli) printEvent(ev clientsync.Event) {
	switch ev.Kind {
	case clientsync.EventPassCompleted:
		if ev.Report != nil && ev.Report.Total().Attempted > 0 {
			c.printReport(ev.Report)
		}
	case clientsync.EventReconciled:
		c.io.Printf("%s %d is now %d\n", ev.Type, ev.OldID, ev.NewID)
	}
}

func newWatchCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Run the sync engine in the foreground",
		Long: `Start the background sync engine and print what it does. Pending changes
from earlier sessions are pushed right away. Stop with Ctrl+C; a request in
flight is completed before exit.`,
		Args: cobra.NoArgs,
		RunE: s.run(func(ctx context.Context, c *Cli, _ *cobra.Command, _ []string) error {
			return c.watch(ctx)
		}),
	}

	cmd.Flags().Duration("interval", 0, "periodic sync interval (overrides config)")
	return cmd
}
