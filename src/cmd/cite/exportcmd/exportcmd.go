package exportcmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"citeassist/src/cmd/cite/app"
	"citeassist/src/internal/store"
)

// New returns the export command, writing the stored list as a works-cited
// text file or as BibTeX.
func New() *cobra.Command {
	var out, format string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export stored citations as text in the active style or as BibTeX",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.FromCommand(cmd)
			if err != nil {
				return err
			}
			l, err := a.Store.Load()
			if err != nil {
				return err
			}
			var buf bytes.Buffer
			switch strings.ToLower(strings.TrimSpace(format)) {
			case "", "text":
				for _, r := range l.Records() {
					buf.WriteString(a.Cite(r))
					buf.WriteString("\n")
				}
			case "bibtex", "bib":
				if err := store.WriteBibTeX(&buf, l); err != nil {
					return err
				}
			default:
				return fmt.Errorf("--format must be text or bibtex, got %q", format)
			}
			if out == "" || out == "-" {
				_, err := cmd.OutOrStdout().Write(buf.Bytes())
				return err
			}
			if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
				return err
			}
			if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
				return err
			}
			a.Log.Debug("exported", "items", len(l), "format", format, "path", out)
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", filepath.ToSlash(out))
			return err
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&format, "format", "text", "text or bibtex")
	return cmd
}
