package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"eudash.dev/internal/export"
	"eudash.dev/internal/logging"
)

func newExportCmd(opts *rootOptions) *cobra.Command {
	var sel selectionFlags
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the view for an indicator and year to an xlsx workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			snapshot, cat, err := opts.load(cmd)
			if err != nil {
				return err
			}
			view, err := sel.view(snapshot, cat)
			if err != nil {
				return err
			}

			f, err := os.Create(out)
			if err != nil {
				return err
			}
			defer logging.HandleDeferredError(&err, f.Close, opts.logger(cmd), "close_workbook")

			if err := export.Write(f, view); err != nil {
				return fmt.Errorf("writing %s: %w", out, err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
			return nil
		},
	}

	sel.register(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", "view.xlsx", "Output file")

	return cmd
}
