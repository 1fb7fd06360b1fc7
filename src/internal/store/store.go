// Package store persists the citation list between sessions.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Store loads and saves the whole list at once.
type Store interface {
	Load() (List, error)
	Save(List) error
}

// Backend names accepted by Open.
const (
	BackendYAML   = "yaml"
	BackendSQLite = "sqlite"
)

// Open returns the store for backend at path. An empty backend is chosen
// from the file extension.
func Open(backend, path string) (Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("store: empty path")
	}
	b := strings.ToLower(strings.TrimSpace(backend))
	if b == "" {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".db", ".sqlite", ".sqlite3":
			b = BackendSQLite
		default:
			b = BackendYAML
		}
	}
	switch b {
	case BackendYAML:
		return &YAMLStore{Path: path}, nil
	case BackendSQLite:
		return &SQLiteStore{Path: path}, nil
	default:
		return nil, fmt.Errorf("store: unknown backend %q", backend)
	}
}

// YAMLStore keeps the list as a single YAML document.
type YAMLStore struct {
	Path string
}

type yamlDoc struct {
	Citations List `yaml:"citations"`
}

// Load reads the list. A missing file is an empty list.
func (s *YAMLStore) Load() (List, error) {
	b, err := os.ReadFile(s.Path)
	if os.IsNotExist(err) {
		return List{}, nil
	}
	if err != nil {
		return nil, err
	}
	var doc yamlDoc
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("store: parse %s: %w", s.Path, err)
	}
	if doc.Citations == nil {
		doc.Citations = List{}
	}
	return doc.Citations, nil
}

// Save writes the list through a temp file and rename.
func (s *YAMLStore) Save(l List) error {
	if l == nil {
		l = List{}
	}
	b, err := yaml.Marshal(yamlDoc{Citations: l})
	if err != nil {
		return err
	}
	return writeAtomic(s.Path, b)
}

func writeAtomic(path string, b []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
