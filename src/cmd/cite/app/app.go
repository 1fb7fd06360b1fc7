// Package app resolves the per-invocation state shared by every subcommand:
// configuration, the citation store, the active style and the logger.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"citeassist/src/internal/booksearch"
	"citeassist/src/internal/cite"
	"citeassist/src/internal/config"
	"citeassist/src/internal/crossref"
	"citeassist/src/internal/httpx"
	"citeassist/src/internal/openlibrary"
	"citeassist/src/internal/schema"
	"citeassist/src/internal/store"
	"citeassist/src/internal/webfetch"
)

// Persistent flag names registered on the root command.
const (
	FlagConfig  = "config"
	FlagStyle   = "style"
	FlagMarkup  = "markup"
	FlagStore   = "store"
	FlagVerbose = "verbose"
)

// Transport is the HTTP client behind every fetcher. Nil means a real client
// with the configured timeout; tests replace it with a fake.
var Transport httpx.Doer

// App is the resolved state for one command run.
type App struct {
	Config     config.Config
	ConfigPath string
	Store      store.Store
	Style      cite.Style
	Marker     cite.Marker
	Log        *slog.Logger
}

// AddPersistentFlags registers the shared flags on root.
func AddPersistentFlags(root *cobra.Command) {
	pf := root.PersistentFlags()
	pf.String(FlagConfig, "", "config file (default $XDG_CONFIG_HOME/citeassist/config.yml)")
	pf.String(FlagStyle, "", "citation style: mla, apa or chicago")
	pf.String(FlagMarkup, "", "emphasis markup: plain, html, markdown or terminal")
	pf.String(FlagStore, "", "citation store path (.yml or .db)")
	pf.BoolP(FlagVerbose, "v", false, "debug logging on stderr")
}

// FromCommand loads configuration, applies flag overrides and wires the
// fetchers. Flags missing from cmd fall back to configuration.
func FromCommand(cmd *cobra.Command) (*App, error) {
	cfgPath := flagString(cmd, FlagConfig)
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	if v := flagString(cmd, FlagStyle); v != "" {
		cfg.Style = v
	}
	if v := flagString(cmd, FlagMarkup); v != "" {
		cfg.Markup = v
	}
	if v := flagString(cmd, FlagStore); v != "" {
		cfg.StorePath = config.ExpandTilde(v)
		cfg.StoreBackend = ""
	}

	style, err := cite.ParseStyle(cfg.Style)
	if err != nil {
		return nil, err
	}
	marker, err := cite.ParseMarker(cfg.Markup)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", err, cfg.Markup)
	}
	st, err := store.Open(cfg.StoreBackend, cfg.StorePath)
	if err != nil {
		return nil, err
	}

	level := slog.LevelWarn
	if v, err := cmd.Flags().GetBool(FlagVerbose); err == nil && v {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	a := &App{Config: cfg, ConfigPath: cfgPath, Store: st, Style: style, Marker: marker, Log: log}
	a.wireFetchers()
	log.Debug("config resolved", "style", style, "markup", marker.Name, "store", cfg.StorePath)
	return a, nil
}

func flagString(cmd *cobra.Command, name string) string {
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		return ""
	}
	return v
}

func (a *App) wireFetchers() {
	var next httpx.Doer = Transport
	if next == nil {
		next = httpx.NewClient(time.Duration(a.Config.TimeoutSeconds) * time.Second)
	}
	d := httpx.NewLimited(next, a.Config.RequestsPerSecond)
	crossref.SetHTTPClient(d)
	crossref.SetMailto(a.Config.Mailto)
	openlibrary.SetHTTPClient(d)
	webfetch.SetHTTPClient(d)
	booksearch.SetHTTPClient(d)
}

// Context returns the command context, or Background when none is set.
func Context(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// Cite renders r in the active style and markup.
func (a *App) Cite(r schema.Record) string {
	return cite.Format(r, a.Style).Render(a.Marker)
}

// Update loads the list, applies fn and saves the result.
func (a *App) Update(fn func(store.List) (store.List, error)) error {
	l, err := a.Store.Load()
	if err != nil {
		return err
	}
	out, err := fn(l)
	if err != nil {
		return err
	}
	if err := a.Store.Save(out); err != nil {
		return err
	}
	a.Log.Debug("store saved", "items", len(out))
	return nil
}

// ShortID is the id prefix shown in listings; any unique prefix resolves.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
