package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"citeassist/src/cmd/cite/app"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "cite",
		Short:         "Citation assistant: build MLA, APA and Chicago citations from URLs, DOIs, ISBNs or typed fields",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	app.AddPersistentFlags(root)
	root.AddCommand(
		newAddCmd(),
		newListCmd(),
		newRemoveCmd(),
		newMoveCmd(),
		newSortCmd(),
		newClearCmd(),
		newEditCmd(),
		newFormatCmd(),
		newExtractCmd(),
		newExportCmd(),
		newStyleCmd(),
		newSearchCmd(),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
