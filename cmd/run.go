package cmd

import (
	"fmt"
	"os"

	"github.com/akale/trivio/internal/app"
	"github.com/akale/trivio/internal/llm"
	"github.com/akale/trivio/internal/quizgen"
	"github.com/akale/trivio/internal/store"
	"github.com/spf13/cobra"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	opts := app.Options{
		Store: st,
	}

	provider, err := llm.NewProviderFromEnv(ctx, st.EventRepo())
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Quiz generation will be unavailable; saved quizzes can still be played.")
	} else {
		gen := quizgen.New(provider, quizgen.DefaultGeneratorConfig())
		opts.Orchestrator = quizgen.NewOrchestrator(gen, quizgen.DefaultConfig())
	}

	return app.Run(opts)
}
