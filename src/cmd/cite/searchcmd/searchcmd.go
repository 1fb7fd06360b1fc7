package searchcmd

import (
	"github.com/spf13/cobra"

	"citeassist/src/cmd/cite/app"
	"citeassist/src/cmd/cite/listcmd"
)

// New returns the search command. Every term must match a word of the
// title, authors, container, publisher, year, DOI or type.
func New() *cobra.Command {
	return &cobra.Command{
		Use:   "search <term>...",
		Short: "List stored citations matching all terms",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.FromCommand(cmd)
			if err != nil {
				return err
			}
			l, err := a.Store.Load()
			if err != nil {
				return err
			}
			hits := l.Search(args)
			a.Log.Debug("search", "terms", args, "hits", len(hits))
			return listcmd.Print(cmd.OutOrStdout(), a, hits, false)
		},
	}
}
