package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/docuchat/docuchat-go/internal/logging"
)

// NewHistoryCmd constructs the `docuchat history` command, which prints
// recent ingest and question activity from the local history database.
func NewHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent ingest and question activity",
		Long: `Print the most recent document ingests and answered questions from the
local history database (~/.docuchat/history.db).

Examples:
  docuchat history
  docuchat history --limit 5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			log := logging.New()

			history := openHistory(log)
			if history == nil {
				return fmt.Errorf("history: no history database available")
			}
			defer func() { _ = history.Close() }()

			ingests, err := history.RecentIngests(ctx, limit)
			if err != nil {
				return fmt.Errorf("history: %w", err)
			}
			questions, err := history.RecentQuestions(ctx, limit)
			if err != nil {
				return fmt.Errorf("history: %w", err)
			}

			fmt.Println("Recent ingests:")
			if len(ingests) == 0 {
				fmt.Println("  (none)")
			}
			for _, rec := range ingests {
				fmt.Printf("  %s  %q  %d/%d chunks  %s\n",
					rec.CreatedAt.Format(time.DateTime), rec.DocumentName,
					rec.ChunksWritten, rec.ChunksProduced,
					rec.Duration.Round(time.Millisecond))
			}

			fmt.Println("\nRecent questions:")
			if len(questions) == 0 {
				fmt.Println("  (none)")
			}
			for _, rec := range questions {
				sources := "(no sources)"
				if len(rec.Sources) > 0 {
					sources = strings.Join(rec.Sources, ", ")
				}
				fmt.Printf("  %s  %q  %s\n",
					rec.CreatedAt.Format(time.DateTime), rec.Question, sources)
			}

			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 10, "Maximum entries to show per section")

	return cmd
}
