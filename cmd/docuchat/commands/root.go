// Package commands defines all Cobra CLI commands for the docuchat binary.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/docuchat/docuchat-go/internal/audit"
	"github.com/docuchat/docuchat-go/internal/config"
	"github.com/docuchat/docuchat-go/internal/logging"
)

// configPath holds the --config flag value for YAML config file override.
var configPath string

// loadedConfigPath stores the resolved config file path for audit logging.
var loadedConfigPath string

// NewRootCmd constructs the root Cobra command that all subcommands attach to.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "docuchat",
		Short: "DocuChat — chat with your documents using retrieval-augmented generation",
		Long: `DocuChat indexes your documents into a vector store and answers
questions about them with citations.

Documents are split into overlapping chunks, embedded, and stored in Qdrant.
Questions retrieve the most relevant chunks and a generation model produces
an answer grounded in that context, refusing to invent facts the documents
do not support.

Embedding and generation backends are selected via EMBEDDING_PROVIDER and
GENERATION_PROVIDER environment variables or a YAML config file
(~/.docuchat/config.yaml). See 'docuchat --help' for available commands.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			log := logging.New()

			// Load YAML config (env vars always override YAML values).
			path, err := config.Load(configPath, log)
			if err != nil {
				return err
			}
			loadedConfigPath = path

			// Emit structured audit log for every command invocation.
			audit.LogCommandStart(log, cmd.Name(), loadedConfigPath)

			return nil
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "Path to YAML config file (default: ~/.docuchat/config.yaml)")

	root.AddCommand(
		NewServeCmd(),
		NewIngestCmd(),
		NewAskCmd(),
		NewHistoryCmd(),
		NewVersionCmd(),
	)

	return root
}
