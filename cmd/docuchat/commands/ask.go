package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/docuchat/docuchat-go/internal/embedder"
	"github.com/docuchat/docuchat-go/internal/logging"
	"github.com/docuchat/docuchat-go/internal/store"
)

// NewAskCmd constructs the `docuchat ask` command, a one-shot question
// against the indexed document.
func NewAskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask a question about the indexed document",
		Long: `Retrieve the most relevant chunks for the question and generate an
answer grounded in them. The sources the answer drew on are printed after
the answer text.

Examples:
  docuchat ask "what is the refund policy?"
  docuchat ask "summarise the third section"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			log := logging.New()
			question := strings.Join(args, " ")

			if err := embedder.Validate(log); err != nil {
				return fmt.Errorf("ask: %w", err)
			}

			emb, err := embedder.NewFromEnv(ctx)
			if err != nil {
				return fmt.Errorf("ask: failed to initialise embedder: %w", err)
			}

			vectorStore, err := buildStore(ctx, log)
			if err != nil {
				return fmt.Errorf("ask: %w", err)
			}
			defer vectorStore.Close()

			answerer, err := buildAnswerer(ctx, emb, vectorStore, log)
			if err != nil {
				return fmt.Errorf("ask: %w", err)
			}

			ans, err := answerer.Ask(ctx, question)
			if err != nil {
				return fmt.Errorf("ask: %w", err)
			}

			if history := openHistory(log); history != nil {
				defer func() { _ = history.Close() }()
				_ = history.RecordQuestion(ctx, store.QuestionRecord{
					Question: question,
					Sources:  ans.Sources,
				})
			}

			fmt.Println(ans.Response)
			if len(ans.Sources) > 0 {
				fmt.Printf("\nSources: %s\n", strings.Join(ans.Sources, ", "))
			}
			return nil
		},
	}

	return cmd
}
