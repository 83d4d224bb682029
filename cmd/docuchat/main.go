// Command docuchat is the entry point for the DocuChat document Q&A service.
// It provides a CLI interface (via Cobra) and an HTTP server exposing
// document upload and chat over the indexed documents.
package main

import (
	"fmt"
	"os"

	"github.com/docuchat/docuchat-go/cmd/docuchat/commands"
)

func main() {
	if err := commands.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
