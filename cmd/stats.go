package cmd

import (
	"context"
	"fmt"

	"github.com/akale/trivio/internal/store"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show stored quiz and usage statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}

		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		ctx := context.Background()

		quizzes, err := s.QuizRepo().List(ctx)
		if err != nil {
			return fmt.Errorf("list quizzes: %w", err)
		}

		knownCount, err := s.AnswerRepo().Count(ctx)
		if err != nil {
			return fmt.Errorf("count known answers: %w", err)
		}

		usage, err := s.EventRepo().Usage(ctx)
		if err != nil {
			return fmt.Errorf("query LLM usage: %w", err)
		}

		var questions int
		for _, q := range quizzes {
			questions += len(q.Questions)
		}

		fmt.Printf("Saved quizzes:   %d\n", len(quizzes))
		fmt.Printf("Questions:       %d\n", questions)
		fmt.Printf("Known answers:   %d\n", knownCount)
		fmt.Println()
		fmt.Printf("LLM requests:    %d (%d failed)\n", usage.Requests, usage.Failures)
		fmt.Printf("Tokens:          %d in / %d out\n", usage.InputTokens, usage.OutputTokens)
		return nil
	},
}
