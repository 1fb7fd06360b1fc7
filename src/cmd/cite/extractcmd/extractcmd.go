package extractcmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"citeassist/src/cmd/cite/app"
	"citeassist/src/internal/extract"
	"citeassist/src/internal/schema"
	"citeassist/src/internal/webfetch"
)

// New returns the extract command, which prints the metadata found in a page.
func New() *cobra.Command {
	var pageURL, parser string
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "extract [file]",
		Short: "Show the metadata extracted from an HTML file, stdin, or --url",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := parserFor(parser)
			if err != nil {
				return err
			}
			a, err := app.FromCommand(cmd)
			if err != nil {
				return err
			}
			var page extract.Page
			switch {
			case len(args) == 1 && args[0] != "-":
				b, err := os.ReadFile(args[0])
				if err != nil {
					return err
				}
				page = extract.Page{HTML: string(b), RequestURL: strings.TrimSpace(pageURL)}
			case len(args) == 0 && strings.TrimSpace(pageURL) != "":
				a.Log.Debug("fetching page", "url", pageURL)
				page, err = webfetch.Fetch(app.Context(cmd), pageURL)
				if err != nil {
					return err
				}
			default:
				b, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return err
				}
				page = extract.Page{HTML: string(b), RequestURL: strings.TrimSpace(pageURL)}
			}
			return write(cmd.OutOrStdout(), extract.Extract(page, extract.WithParser(p)), asJSON)
		},
	}
	cmd.Flags().StringVar(&pageURL, "url", "", "page URL; fetched when no file is given")
	cmd.Flags().StringVar(&parser, "parser", "html", "html (tokenizer) or regex")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of YAML")
	return cmd
}

func parserFor(name string) (extract.Parser, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "html":
		return extract.ParseHTML, nil
	case "regex":
		return extract.ParseRegex, nil
	}
	return nil, fmt.Errorf("unknown parser %q (want html or regex)", name)
}

func write(w io.Writer, p schema.Partial, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(p)
	}
	b, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}
