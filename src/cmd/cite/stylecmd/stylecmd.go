package stylecmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"citeassist/src/cmd/cite/app"
	"citeassist/src/internal/cite"
	"citeassist/src/internal/config"
)

// New returns the style command. Without an argument it lists the styles and
// marks the active one; with a name it saves that style as the default.
func New() *cobra.Command {
	return &cobra.Command{
		Use:   "style [name]",
		Short: "Show or set the default citation style",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.FromCommand(cmd)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if len(args) == 0 {
				for _, s := range cite.Styles() {
					mark := " "
					if s == a.Style {
						mark = "*"
					}
					if _, err := fmt.Fprintf(w, "%s %s\n", mark, s); err != nil {
						return err
					}
				}
				return nil
			}
			s, err := cite.ParseStyle(args[0])
			if err != nil {
				return err
			}
			cfg, err := config.ReadFile(a.ConfigPath)
			if err != nil {
				return err
			}
			cfg.Style = string(s)
			if err := config.Save(a.ConfigPath, cfg); err != nil {
				return err
			}
			_, err = fmt.Fprintf(w, "default style set to %s\n", s)
			return err
		},
	}
}
