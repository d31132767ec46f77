// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/profile-engine/pkg/types"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List or add web information sources",
	Long: `Sources lists the configured source endpoints. The four built-in
names (pubmed, researchgate, google_scholar, clinical_trials) have
source-specific extraction; custom endpoints are queried but contribute
only their URL and a response snapshot.`,
	RunE: runSourcesList,
}

var sourcesAddCmd = &cobra.Command{
	Use:   "add [name] [base-url]",
	Short: "Add a custom source endpoint to the config file",
	Args:  cobra.ExactArgs(2),
	RunE:  runSourcesAdd,
}

func init() {
	sourcesCmd.AddCommand(sourcesAddCmd)
	rootCmd.AddCommand(sourcesCmd)
}

func runSourcesList(cmd *cobra.Command, args []string) error {
	endpoints := viper.GetStringMapString("sources.endpoints")
	if len(endpoints) == 0 {
		endpoints = types.DefaultEndpoints()
	}

	names := make([]string, 0, len(endpoints))
	for name := range endpoints {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fmt.Fprintf(os.Stdout, "%-18s %s\n", name, endpoints[name])
	}
	return nil
}

func runSourcesAdd(cmd *cobra.Command, args []string) error {
	name, baseURL := args[0], args[1]

	endpoints := viper.GetStringMapString("sources.endpoints")
	if len(endpoints) == 0 {
		endpoints = types.DefaultEndpoints()
	}
	endpoints[name] = baseURL
	viper.Set("sources.endpoints", endpoints)

	if err := viper.WriteConfig(); err != nil {
		if err := viper.SafeWriteConfigAs("profile-engine.yaml"); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}
	}

	fmt.Fprintf(os.Stderr, "Added source %s (%s)\n", name, baseURL)
	return nil
}
