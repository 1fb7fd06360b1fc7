package addcmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"citeassist/src/cmd/cite/app"
	"citeassist/src/internal/booksearch"
	"citeassist/src/internal/build"
	"citeassist/src/internal/crossref"
	"citeassist/src/internal/extract"
	"citeassist/src/internal/openlibrary"
	"citeassist/src/internal/schema"
	"citeassist/src/internal/store"
	"citeassist/src/internal/webfetch"
)

// Resolver turns one argument into a build source.
type Resolver func(ctx context.Context, arg string) (build.Source, error)

// New returns the add command with one subcommand per source origin.
func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a citation from a URL, DOI, ISBN or manual entry",
	}
	cmd.AddCommand(
		newFetchCmd("url <url>", "Extract a citation from a web page", FromURL),
		newFetchCmd("doi <doi>", "Look a DOI up in Crossref", FromDOI),
		newFetchCmd("isbn <isbn>", "Look an ISBN up in OpenLibrary (Google Books fallback)", FromISBN),
		newBookCmd(),
		newHTMLCmd(),
		newManualCmd(),
	)
	return cmd
}

// FromURL fetches raw and extracts its metadata.
func FromURL(ctx context.Context, raw string) (build.Source, error) {
	page, err := webfetch.Fetch(ctx, raw)
	if err != nil {
		return nil, err
	}
	return build.Extracted{Partial: extract.Extract(page)}, nil
}

// FromDOI looks d up in Crossref.
func FromDOI(ctx context.Context, d string) (build.Source, error) {
	w, err := crossref.Fetch(ctx, d)
	if err != nil {
		return nil, err
	}
	return w, nil
}

// FromISBN looks isbn up in OpenLibrary.
func FromISBN(ctx context.Context, isbn string) (build.Source, error) {
	b, err := openlibrary.Fetch(ctx, isbn)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func newFetchCmd(use, short string, resolve Resolver) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.FromCommand(cmd)
			if err != nil {
				return err
			}
			origin := strings.Fields(use)[0]
			a.Log.Debug("fetching", "origin", origin, "arg", args[0])
			src, err := resolve(app.Context(cmd), args[0])
			if err != nil {
				return fmt.Errorf("add %s: %w", origin, err)
			}
			return save(cmd, a, src, dryRun)
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the citation without saving it")
	return cmd
}

func newBookCmd() *cobra.Command {
	var title, author string
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "book",
		Short: "Find a book by title and author (OpenLibrary search, Google Books fallback)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.FromCommand(cmd)
			if err != nil {
				return err
			}
			b, provider, attempts, err := booksearch.Search(app.Context(cmd), title, author)
			for _, at := range attempts {
				a.Log.Debug("book search attempt", "provider", at.Provider, "ok", at.Success, "error", at.Error)
			}
			if err != nil {
				return fmt.Errorf("add book: %w", err)
			}
			a.Log.Debug("book found", "provider", provider)
			return save(cmd, a, b, dryRun)
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "book title")
	cmd.Flags().StringVar(&author, "author", "", "author name")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the citation without saving it")
	return cmd
}

func newHTMLCmd() *cobra.Command {
	var pageURL string
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "html <file>",
		Short: "Extract a citation from a saved HTML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.FromCommand(cmd)
			if err != nil {
				return err
			}
			b, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			p := extract.Extract(extract.Page{HTML: string(b), RequestURL: strings.TrimSpace(pageURL)})
			return save(cmd, a, build.Extracted{Partial: p}, dryRun)
		},
	}
	cmd.Flags().StringVar(&pageURL, "url", "", "URL the page was saved from")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the citation without saving it")
	return cmd
}

func newManualCmd() *cobra.Command {
	var m build.Manual
	var authors []string
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "manual",
		Short: "Add a citation from typed-in fields",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.FromCommand(cmd)
			if err != nil {
				return err
			}
			m.Authors = strings.Join(authors, "\n")
			return save(cmd, a, m, dryRun)
		},
	}
	f := cmd.Flags()
	f.StringVar(&m.Type, "type", "generic", "journal-article, book, webpage or generic")
	f.StringVar(&m.Title, "title", "", "title")
	f.StringArrayVar(&authors, "author", nil, "author name, repeatable (\"Given Family\" or \"Family, Given\")")
	f.StringVar(&m.Container, "container", "", "journal or website name")
	f.StringVar(&m.Publisher, "publisher", "", "publisher")
	f.StringVar(&m.Year, "year", "", "publication year")
	f.StringVar(&m.Volume, "volume", "", "volume")
	f.StringVar(&m.Issue, "issue", "", "issue")
	f.StringVar(&m.Pages, "pages", "", "page range")
	f.StringVar(&m.DOI, "doi", "", "DOI")
	f.StringVar(&m.URL, "url", "", "URL")
	f.StringVar(&m.Date, "date", "", "publication date (YYYY-MM-DD)")
	f.BoolVar(&dryRun, "dry-run", false, "print the citation without saving it")
	return cmd
}

func save(cmd *cobra.Command, a *app.App, src build.Source, dryRun bool) error {
	rec, err := build.Build(src)
	if err != nil {
		return err
	}
	if dryRun {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), a.Cite(rec))
		return err
	}
	var added store.Item
	err = a.Update(func(l store.List) (store.List, error) {
		var out store.List
		out, added = l.Add(rec, time.Now())
		return out, nil
	})
	if err != nil {
		return err
	}
	a.Log.Info("citation added", "id", added.ID, "type", rec.Type)
	return report(cmd, a, added.ID, rec)
}

func report(cmd *cobra.Command, a *app.App, id string, rec schema.Record) error {
	_, err := fmt.Fprintf(cmd.OutOrStdout(), "added %s\n%s\n", app.ShortID(id), a.Cite(rec))
	return err
}
