package app

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"citeassist/src/internal/cite"
	"citeassist/src/internal/store"
)

func TestFromCommand_DefaultsWithoutFlags(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("XDG_DATA_HOME", dir)
	t.Setenv("CITEASSIST_STYLE", "apa")
	t.Setenv("CITEASSIST_MARKUP", "")
	t.Setenv("CITEASSIST_STORE", "")
	a, err := FromCommand(&cobra.Command{})
	if err != nil {
		t.Fatalf("FromCommand: %v", err)
	}
	if a.Style != cite.APA || a.Marker.Name != "plain" {
		t.Fatalf("style/marker: %v %v", a.Style, a.Marker.Name)
	}
	if _, ok := a.Store.(*store.YAMLStore); !ok {
		t.Fatalf("default store should be yaml: %T", a.Store)
	}
}

func TestFromCommand_FlagsOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("CITEASSIST_STYLE", "apa")
	root := &cobra.Command{Use: "root"}
	AddPersistentFlags(root)
	var got *App
	child := &cobra.Command{Use: "child", RunE: func(cmd *cobra.Command, args []string) error {
		var err error
		got, err = FromCommand(cmd)
		return err
	}}
	root.AddCommand(child)
	var errBuf bytes.Buffer
	root.SetErr(&errBuf)
	root.SetArgs([]string{"child", "--style", "Chicago", "--markup", "md", "--store", filepath.Join(dir, "c.db"), "-v"})
	if err := root.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if got.Style != cite.Chicago || got.Marker.Name != "markdown" {
		t.Fatalf("flags not applied: %v %v", got.Style, got.Marker.Name)
	}
	if _, ok := got.Store.(*store.SQLiteStore); !ok {
		t.Fatalf("store flag should pick sqlite: %T", got.Store)
	}
	if !strings.Contains(errBuf.String(), "config resolved") {
		t.Fatalf("verbose should log at debug: %q", errBuf.String())
	}
}

func TestFromCommand_BadMarkup(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("CITEASSIST_MARKUP", "rtf")
	if _, err := FromCommand(&cobra.Command{}); err == nil {
		t.Fatalf("expected markup error")
	}
}

func TestShortID(t *testing.T) {
	if ShortID("0123456789ab") != "01234567" || ShortID("abc") != "abc" {
		t.Fatalf("ShortID")
	}
}
