package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/akale/trivio/internal/store"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear the known-answer set",
	Long: `Clear the accumulated known-answer set used to steer generation away
from repeats. Saved quizzes are not affected.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

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
		count, err := s.AnswerRepo().Count(ctx)
		if err != nil {
			return fmt.Errorf("count known answers: %w", err)
		}
		if count == 0 {
			fmt.Println("Known-answer set is already empty.")
			return nil
		}

		if !force {
			fmt.Printf("Delete %d known answers? New quizzes may repeat old ones. [y/N] ", count)
			scanner := bufio.NewScanner(os.Stdin)
			if !scanner.Scan() {
				return nil
			}
			answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
			if answer != "y" && answer != "yes" {
				fmt.Println("Aborted.")
				return nil
			}
		}

		if err := s.AnswerRepo().Clear(ctx); err != nil {
			return fmt.Errorf("clear known answers: %w", err)
		}
		fmt.Printf("Cleared %d known answers.\n", count)
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("force", "f", false, "Skip the confirmation prompt")
}
