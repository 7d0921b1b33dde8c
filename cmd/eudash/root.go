package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"eudash.dev/internal/appconf"
	"eudash.dev/internal/catalog"
	"eudash.dev/internal/dataset"
	"eudash.dev/internal/logging"
)

type rootOptions struct {
	source  string
	timeout time.Duration
	verbose bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "eudash",
		Short:        "Explore World Bank indicators for EU member states",
		SilenceUsage: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.source, "source", appconf.StringEnv("EUDASH_SOURCE", appconf.DefaultSourceURL), "World Bank API base URL or path to an observations CSV file")
	flags.DurationVar(&opts.timeout, "timeout", appconf.DurationEnv("EUDASH_FETCH_TIMEOUT", appconf.DefaultFetchTimeout), "Timeout for loading the indicator data")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log acquisition progress to stderr")

	cmd.AddCommand(
		newViewCmd(opts),
		newExportCmd(opts),
		newCatalogCmd(),
		newSchemaCmd(),
	)

	return cmd
}

func (o *rootOptions) logger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelDebug
	}
	return logging.NewTextLogger(cmd.ErrOrStderr(), level)
}

// load fetches the snapshot for a single command run.
func (o *rootOptions) load(cmd *cobra.Command) (*dataset.Snapshot, *catalog.Catalog, error) {
	ctx, cancel := context.WithTimeout(cmd.Context(), o.timeout)
	defer cancel()

	logger := o.logger(cmd)
	cat := catalog.Default()

	snapshot, err := dataset.Load(ctx, dataset.NewSource(o.source, o.timeout, logger), cat, logger)
	if err != nil {
		return nil, nil, err
	}
	if o.verbose {
		snapshot.LogStatistics(logger)
	}
	return snapshot, cat, nil
}
