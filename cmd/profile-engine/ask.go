// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/profile-engine/internal/store"
)

var askCmd = &cobra.Command{
	Use:   "ask [question...]",
	Short: "Ask a question about a stored researcher",
	Long: `Ask answers a free-text question using the generative backend,
grounded in the stored profile of the researcher named with
--researcher. Without --researcher, the backend only knows which
researchers have been searched so far.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().String("researcher", "", "researcher name to focus the question on")

	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := strings.Join(args, " ")
	researcher, _ := cmd.Flags().GetString("researcher")

	cfg := engineConfig()
	e, err := newEngine(cfg)
	if err != nil {
		return err
	}

	ctx := context.Background()

	// Preload stored profiles so the engine sees earlier searches.
	st, err := store.Open(cfg.Store)
	if err != nil {
		return err
	}
	defer st.Close()

	entries, err := st.List(ctx)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		p, err := st.Get(ctx, entry.Name)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			return err
		}
		e.Put(p)
	}

	answer, err := e.Ask(ctx, question, researcher)
	if err != nil {
		return err
	}

	// A generate call for an unknown researcher stores a new profile;
	// persist it for later commands.
	if researcher != "" {
		if p, ok := e.Profile(researcher); ok {
			if err := st.Save(ctx, p); err != nil {
				return err
			}
		}
	}

	fmt.Fprintln(os.Stdout, answer)
	return nil
}
