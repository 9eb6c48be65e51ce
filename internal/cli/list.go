package cli

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/feedgather/gather/internal/feed"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List fetched items in chronological order",
	Long: `Display all persisted items in reverse chronological order (newest
first). Items without a publication date sort last. Requires DATABASE_URL;
run 'gather pull' first to fetch content.`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	if cfg.Database.URL == "" {
		return fmt.Errorf("no database configured: set DATABASE_URL and run 'gather pull' first")
	}

	ctx := cmd.Context()
	st, err := connectStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	items, err := st.ListItems(ctx)
	if err != nil {
		return fmt.Errorf("failed to list items: %w", err)
	}

	if len(items) == 0 {
		fmt.Println("no items yet; run 'gather pull' to fetch content")
		return nil
	}

	table := tablewriter.NewTable(os.Stdout)
	table.Header([]string{"ID", "DATE", "SOURCE", "TITLE"})
	for _, item := range items {
		table.Append([]string{shortID(item.ID), itemDate(item), item.SourceName, item.Title})
	}
	table.Render()

	return nil
}

// shortID keeps listings readable; open accepts the full UUID as well.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func itemDate(item feed.Item) string {
	if item.Published == nil {
		return "-"
	}
	return item.Published.Format("2006-01-02 15:04")
}
