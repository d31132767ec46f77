// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/profile-engine/internal/engine"
	"github.com/pdiddy/profile-engine/internal/store"
	"github.com/pdiddy/profile-engine/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search [name]",
	Short: "Aggregate information about a researcher from all sources",
	Long: `Search looks a researcher up in the loaded CSV dataset, queries all
configured web sources concurrently, merges and deduplicates the
results, and falls back to the generative backend when nothing was
found. The resulting profile is stored locally for ask and report.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().String("specialization", "", "narrow the search with a specialization")
	searchCmd.Flags().Bool("no-dataset", false, "skip the CSV dataset step")
	searchCmd.Flags().Bool("json", false, "output the profile as JSON instead of a report")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	name := args[0]
	specialization, _ := cmd.Flags().GetString("specialization")
	noDataset, _ := cmd.Flags().GetBool("no-dataset")
	asJSON, _ := cmd.Flags().GetBool("json")

	cfg := engineConfig()
	e, err := newEngine(cfg)
	if err != nil {
		return err
	}

	ctx := context.Background()

	var p *types.Profile
	if noDataset {
		p, err = e.SearchWithoutDataset(ctx, name, specialization)
	} else {
		p, err = e.Search(ctx, name, specialization)
	}
	if err != nil {
		return err
	}

	st, err := store.Open(cfg.Store)
	if err != nil {
		return err
	}
	defer st.Close()
	if err := st.Save(ctx, p); err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(p)
	}

	fmt.Fprint(os.Stdout, engine.FormatReport(p))
	return nil
}
