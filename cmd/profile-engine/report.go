// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/profile-engine/internal/engine"
	"github.com/pdiddy/profile-engine/internal/store"
)

var reportCmd = &cobra.Command{
	Use:   "report [name]",
	Short: "Render a formatted report for a stored researcher",
	Long: `Report renders the stored profile of a previously searched
researcher as a sectioned text report. Use --export to also write the
profile as YAML next to the profile database.`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

func init() {
	reportCmd.Flags().Bool("export", false, "also export the profile as YAML")

	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	name := args[0]
	export, _ := cmd.Flags().GetBool("export")

	cfg := engineConfig()
	st, err := store.Open(cfg.Store)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := context.Background()

	p, err := st.Get(ctx, name)
	if err != nil {
		return err
	}

	fmt.Fprint(os.Stdout, engine.FormatReport(p))

	if export {
		path, err := st.ExportYAML(ctx, name)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Exported %s\n", path)
	}
	return nil
}
