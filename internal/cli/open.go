package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/feedgather/gather/internal/feed"
	"github.com/feedgather/gather/internal/store"
)

var openCmd = &cobra.Command{
	Use:   "open <item-id>",
	Short: "Open an item in your default browser",
	Long: `Open the specified item's link in your system's default web
browser. Accepts the full item ID or the shortened prefix shown by
'gather list'.`,
	Args: cobra.ExactArgs(1),
	RunE: runOpen,
}

func init() {
	rootCmd.AddCommand(openCmd)
}

func runOpen(cmd *cobra.Command, args []string) error {
	if cfg.Database.URL == "" {
		return fmt.Errorf("no database configured: set DATABASE_URL and run 'gather pull' first")
	}

	ctx := cmd.Context()
	st, err := connectStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	id := args[0]
	item, err := st.GetItem(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to look up item: %w", err)
	}

	// Fall back to prefix matching for the shortened IDs list prints.
	if item == nil {
		item, err = findByPrefix(ctx, st, id)
		if err != nil {
			return err
		}
	}
	if item == nil {
		return fmt.Errorf("item not found: %s", id)
	}

	logger.Info("opening item", "id", item.ID, "link", item.Link)
	if err := browser.OpenURL(item.Link); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}

	return nil
}

func findByPrefix(ctx context.Context, st store.Store, prefix string) (*feed.Item, error) {
	items, err := st.ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to look up item: %w", err)
	}

	var found *feed.Item
	for i := range items {
		if strings.HasPrefix(items[i].ID, prefix) {
			if found != nil {
				return nil, fmt.Errorf("item ID prefix %q is ambiguous", prefix)
			}
			found = &items[i]
		}
	}
	return found, nil
}
