package extract

import (
	"encoding/json"
	"strings"
)

// linkedData is the merge of every relevant JSON-LD node on a page.
type linkedData struct {
	fields map[string]any
	types  []string
}

var ldTypesOfInterest = []string{"article", "creativework", "scholarlyarticle", "webpage", "book"}

// mergeLD decodes each payload, flattens @graph and arrays, and merges the
// nodes whose @type is of interest in document order. Later keys win.
// Payloads that are not JSON are skipped.
func mergeLD(payloads []string) linkedData {
	ld := linkedData{fields: map[string]any{}}
	for _, p := range payloads {
		p = strings.TrimSpace(p)
		p = strings.TrimSuffix(strings.TrimPrefix(p, "<!--"), "-->")
		dec := json.NewDecoder(strings.NewReader(p))
		dec.UseNumber()
		var v any
		if err := dec.Decode(&v); err != nil {
			continue
		}
		for _, node := range flattenLD(v) {
			types := nodeTypes(node["@type"])
			if !interesting(types) {
				continue
			}
			ld.types = append(ld.types, types...)
			for k, val := range node {
				ld.fields[k] = val
			}
		}
	}
	return ld
}

func flattenLD(v any) []map[string]any {
	var out []map[string]any
	switch t := v.(type) {
	case []any:
		for _, it := range t {
			out = append(out, flattenLD(it)...)
		}
	case map[string]any:
		out = append(out, t)
		if g, ok := t["@graph"]; ok {
			out = append(out, flattenLD(g)...)
		}
	}
	return out
}

func nodeTypes(v any) []string {
	switch t := v.(type) {
	case string:
		return []string{strings.ToLower(strings.TrimSpace(t))}
	case []any:
		var out []string
		for _, it := range t {
			out = append(out, nodeTypes(it)...)
		}
		return out
	}
	return nil
}

func interesting(types []string) bool {
	for _, t := range types {
		for _, want := range ldTypesOfInterest {
			if strings.Contains(t, want) {
				return true
			}
		}
	}
	return false
}

// typeHas reports whether any merged @type contains sub.
func (ld linkedData) typeHas(sub string) bool {
	for _, t := range ld.types {
		if strings.Contains(t, sub) {
			return true
		}
	}
	return false
}

func (ld linkedData) str(key string) string { return ldString(ld.fields[key]) }

func (ld linkedData) name(key string) string { return ldName(ld.fields[key]) }

// authors coerces the author value (array or single) to display strings.
func (ld linkedData) authors() []string {
	var out []string
	switch t := ld.fields["author"].(type) {
	case []any:
		for _, it := range t {
			if s := ldName(it); s != "" {
				out = append(out, s)
			}
		}
	default:
		if s := ldName(t); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func ldString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	case []any:
		for _, it := range t {
			if s := ldString(it); s != "" {
				return s
			}
		}
	}
	return ""
}

// ldName reads a string, or the name property of an object.
func ldName(v any) string {
	switch t := v.(type) {
	case map[string]any:
		return ldString(t["name"])
	case []any:
		for _, it := range t {
			if s := ldName(it); s != "" {
				return s
			}
		}
		return ""
	default:
		return ldString(t)
	}
}
