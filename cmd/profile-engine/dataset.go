// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/profile-engine/internal/dataset"
)

var datasetCmd = &cobra.Command{
	Use:   "dataset",
	Short: "Inspect the researcher CSV dataset",
}

var datasetCheckCmd = &cobra.Command{
	Use:   "check [path]",
	Short: "Validate a researcher CSV file and print its row count",
	Long: `Check loads a CSV file with the expected column contract (Name,
Specialization, Affiliation, Research Interests, Publications, Email,
Phone, Location) and reports how many researcher rows it contains. Set
dataset.path in the config file to use the dataset during search.`,
	Args: cobra.ExactArgs(1),
	RunE: runDatasetCheck,
}

func init() {
	datasetCmd.AddCommand(datasetCheckCmd)
	rootCmd.AddCommand(datasetCmd)
}

func runDatasetCheck(cmd *cobra.Command, args []string) error {
	d, err := dataset.Load(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Loaded data for %d researchers\n", d.Len())
	return nil
}
