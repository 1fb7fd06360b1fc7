package formatcmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"citeassist/src/cmd/cite/app"
	"citeassist/src/internal/build"
	"citeassist/src/internal/cite"
	"citeassist/src/internal/schema"
)

// New returns the format command, which renders a record read from a file or
// stdin without touching the store.
func New() *cobra.Command {
	var all, inText bool
	cmd := &cobra.Command{
		Use:   "format [file]",
		Short: "Format a record given as YAML or JSON (file or stdin)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.FromCommand(cmd)
			if err != nil {
				return err
			}
			var in io.Reader = cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			rec, err := ReadRecord(in)
			if err != nil {
				return err
			}
			styles := []cite.Style{a.Style}
			if all {
				styles = cite.Styles()
			}
			w := cmd.OutOrStdout()
			for _, s := range styles {
				line := cite.Format(rec, s).Render(a.Marker)
				if all {
					line = fmt.Sprintf("%s: %s", s, line)
				}
				if _, err := fmt.Fprintln(w, line); err != nil {
					return err
				}
				if inText {
					if _, err := fmt.Fprintln(w, cite.InText(rec, s)); err != nil {
						return err
					}
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "render every style")
	cmd.Flags().BoolVar(&inText, "in-text", false, "also print the in-text citation")
	return cmd
}

// ReadRecord decodes one record from a JSON object or a YAML mapping.
func ReadRecord(r io.Reader) (schema.Record, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return schema.Record{}, err
	}
	var p schema.Partial
	if bytes.HasPrefix(bytes.TrimSpace(b), []byte("{")) {
		err = json.Unmarshal(b, &p)
	} else {
		err = yaml.Unmarshal(b, &p)
	}
	if err != nil {
		return schema.Record{}, fmt.Errorf("format: decode record: %w", err)
	}
	return build.Build(build.Extracted{Partial: p})
}
