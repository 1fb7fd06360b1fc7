package editcmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"citeassist/src/cmd/cite/app"
	"citeassist/src/internal/build"
	"citeassist/src/internal/schema"
)

// New returns the edit command that displays or updates a citation by id.
func New() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <id> [field=value ...]",
		Short: "Show a citation as YAML or update fields (e.g. title=\"New\" year=2020)",
		Args:  cobra.MinimumNArgs(1),
		RunE:  func(cmd *cobra.Command, args []string) error { return execute(cmd, args) },
	}
}

func execute(cmd *cobra.Command, args []string) error {
	a, err := app.FromCommand(cmd)
	if err != nil {
		return err
	}
	id := args[0]
	assignments, err := ParseAssignments(args[1:])
	if err != nil {
		return err
	}
	l, err := a.Store.Load()
	if err != nil {
		return err
	}
	it, err := l.Find(id)
	if err != nil {
		return fmt.Errorf("no citation found for id %s: %w", id, err)
	}
	if len(assignments) == 0 {
		return printRecord(cmd, it.Record)
	}
	rec, err := Apply(it.Record, assignments)
	if err != nil {
		return err
	}
	out, err := l.Replace(it.ID, rec)
	if err != nil {
		return err
	}
	if err := a.Store.Save(out); err != nil {
		return err
	}
	a.Log.Debug("citation edited", "id", it.ID, "fields", len(assignments))
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "updated %s\n%s\n", app.ShortID(it.ID), a.Cite(rec))
	return err
}

func printRecord(cmd *cobra.Command, r schema.Record) error {
	b, err := yaml.Marshal(r)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), string(b))
	return err
}

// ParseAssignments reads field=value arguments. Repeated fields keep the last value.
func ParseAssignments(args []string) (map[string]string, error) {
	assigns := map[string]string{}
	for _, a := range args {
		if !parseBareAssignment(strings.TrimPrefix(a, "--"), assigns) {
			return nil, fmt.Errorf("expected field=value, got %q", a)
		}
	}
	for k := range assigns {
		if k == "id" || strings.HasPrefix(k, "id.") {
			return nil, fmt.Errorf("editing 'id' is not supported")
		}
	}
	return assigns, nil
}

func parseBareAssignment(a string, assigns map[string]string) bool {
	if eq := strings.IndexByte(a, '='); eq > 0 {
		key := strings.TrimSpace(a[:eq])
		val := a[eq+1:]
		if key != "" {
			assigns[key] = val
			return true
		}
	}
	return false
}

// Apply sets each dotted path on r's YAML form and rebuilds the record so the
// usual normalization runs on the edited fields.
func Apply(r schema.Record, assignments map[string]string) (schema.Record, error) {
	var root yaml.Node
	if err := root.Encode(r); err != nil {
		return schema.Record{}, err
	}
	keys := make([]string, 0, len(assignments))
	for k := range assignments {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := SetYAMLPathValue(&root, k, assignments[k]); err != nil {
			return schema.Record{}, fmt.Errorf("set %s: %w", k, err)
		}
	}
	var edited schema.Record
	if err := root.Decode(&edited); err != nil {
		return schema.Record{}, fmt.Errorf("decode updated YAML: %w", err)
	}
	return build.Build(build.Extracted{Partial: schema.Partial{Record: edited}})
}

// SetYAMLPathValue sets root[dotPath] to raw parsed as YAML, creating
// intermediate mappings.
func SetYAMLPathValue(root *yaml.Node, dotPath string, raw string) error {
	if root == nil || root.Kind != yaml.MappingNode {
		return fmt.Errorf("root must be a mapping node")
	}
	parts, err := SplitDotPath(dotPath)
	if err != nil {
		return err
	}
	cur := root
	for i := 0; i < len(parts)-1; i++ {
		cur = getOrCreateChildMap(cur, parts[i])
	}
	setMapKV(cur, parts[len(parts)-1], parseRawNode(raw))
	return nil
}

func SplitDotPath(p string) ([]string, error) {
	segs := strings.Split(p, ".")
	out := make([]string, 0, len(segs))
	for _, s := range segs {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil, fmt.Errorf("empty path segment in %q", p)
		}
		out = append(out, s)
	}
	return out, nil
}

func valueIndex(m *yaml.Node, key string) int {
	for i := 0; i+1 < len(m.Content); i += 2 {
		k := m.Content[i]
		if k.Kind == yaml.ScalarNode && k.Value == key {
			return i + 1
		}
	}
	return -1
}

func ensureMap(n *yaml.Node) *yaml.Node {
	if n.Kind != yaml.MappingNode {
		n.Kind = yaml.MappingNode
		n.Tag = "!!map"
		n.Value = ""
		n.Content = nil
	}
	return n
}

func getOrCreateChildMap(parent *yaml.Node, key string) *yaml.Node {
	if vi := valueIndex(parent, key); vi >= 0 {
		return ensureMap(parent.Content[vi])
	}
	k := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}
	v := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	parent.Content = append(parent.Content, k, v)
	return v
}

func setMapKV(m *yaml.Node, key string, val *yaml.Node) {
	if idx := valueIndex(m, key); idx >= 0 {
		m.Content[idx] = val
		return
	}
	k := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}
	m.Content = append(m.Content, k, val)
}

// parseRawNode reads raw as YAML; an empty value clears the field. Text like
// "Title: Subtitle" stays a string unless written in flow style.
func parseRawNode(raw string) *yaml.Node {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(raw), &doc); err == nil && len(doc.Content) > 0 {
		n := doc.Content[0]
		if n.Kind != yaml.MappingNode || strings.HasPrefix(trimmed, "{") {
			return n
		}
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: raw}
}
