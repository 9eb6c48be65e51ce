package cli

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/feedgather/gather/internal/feed"
	"github.com/feedgather/gather/internal/fetcher"
	"github.com/feedgather/gather/internal/metrics"
	"github.com/feedgather/gather/internal/store"
)

var metricsAddr string

var pullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Fetch latest content from all configured sources",
	Long: `Fetch the latest content from all configured RSS and Atom feeds.

Sources are fetched in parallel with a per-source timeout (default 10s,
override with GATHER_TIMEOUT_SECONDS). Failed sources are reported but do
not stop other sources from being fetched. When DATABASE_URL is set,
fetched items are persisted for the list and open commands.`,
	RunE: runPull,
}

func init() {
	rootCmd.AddCommand(pullCmd)

	pullCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address while pulling")
}

func runPull(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sources := make([]feed.Source, 0, len(cfg.Sources))
	for _, sc := range cfg.Sources {
		sources = append(sources, feed.NewFeedSource(sc.Name, sc.URL))
	}

	collector, err := metrics.NewFetchCollector()
	if err != nil {
		return fmt.Errorf("failed to initialize metrics: %w", err)
	}

	if metricsAddr != "" {
		go func() {
			if err := http.ListenAndServe(metricsAddr, collector.Handler()); err != nil {
				logger.Warn("metrics endpoint stopped", "error", err)
			}
		}()
	}

	f := fetcher.New(fetcher.Config{
		Timeout:     cfg.Fetch.Timeout,
		MaxInFlight: cfg.Fetch.MaxInFlight,
	}, logger, collector)

	items, stats := f.FetchAll(ctx, sources)

	if !quiet {
		fmt.Println(color.GreenString(stats.Summary()))
		if len(stats.Errors) > 0 {
			fmt.Println(color.RedString("failed sources:"))
			for _, e := range stats.Errors {
				fmt.Printf("  - %s: %s\n", e.SourceName, e.Message)
			}
		}
	}

	if cfg.Database.URL == "" {
		logger.Debug("no database configured, skipping persistence")
		return nil
	}

	st, err := connectStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.InsertItems(ctx, items); err != nil {
		return fmt.Errorf("failed to persist items: %w", err)
	}
	logger.Info("items persisted", "count", len(items))

	return nil
}

// connectStore opens the configured Postgres store.
func connectStore(ctx context.Context) (store.Store, error) {
	scfg := store.DefaultConfig()
	scfg.URL = cfg.Database.URL
	scfg.ServiceKey = cfg.Database.ServiceKey

	st, err := store.Connect(ctx, scfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return st, nil
}
