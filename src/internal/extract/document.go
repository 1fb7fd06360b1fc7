package extract

import "strings"

// Document is the narrow attribute lookup the extractor reads a page
// through. Parsers differ only in how they fill it.
type Document interface {
	// Meta returns the content of the first meta tag matching any of names,
	// trying names in order. Keys match name, property or itemprop
	// case-insensitively.
	Meta(names ...string) string
	// MetaAll returns every non-empty content for name, in document order.
	MetaAll(name string) []string
	Title() string
	Canonical() string
	// JSONLD returns the raw payload of every application/ld+json script.
	JSONLD() []string
	Raw() string
}

// Parser turns markup into a Document. It must not fail; unparseable input
// yields an empty Document.
type Parser func(src string) Document

type metaTag struct {
	keys    []string
	content string
}

// doc is the Document both parsers produce.
type doc struct {
	raw       string
	metas     []metaTag
	title     string
	titleSet  bool
	canonical string
	ld        []string
}

func (d *doc) addMeta(attrs map[string]string) {
	content := strings.TrimSpace(attrs["content"])
	if content == "" {
		return
	}
	var keys []string
	for _, a := range []string{"name", "property", "itemprop"} {
		if k := strings.ToLower(strings.TrimSpace(attrs[a])); k != "" {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return
	}
	d.metas = append(d.metas, metaTag{keys: keys, content: content})
}

func (d *doc) addLink(attrs map[string]string) {
	if d.canonical != "" {
		return
	}
	for _, rel := range strings.Fields(strings.ToLower(attrs["rel"])) {
		if rel == "canonical" {
			d.canonical = strings.TrimSpace(attrs["href"])
			return
		}
	}
}

func (d *doc) setTitle(s string) {
	if d.titleSet {
		return
	}
	d.title, d.titleSet = strings.TrimSpace(s), true
}

func isLDScript(attrs map[string]string) bool {
	t := strings.ToLower(strings.TrimSpace(attrs["type"]))
	return strings.HasPrefix(t, "application/ld+json")
}

func (d *doc) Meta(names ...string) string {
	for _, n := range names {
		n = strings.ToLower(n)
		for _, m := range d.metas {
			for _, k := range m.keys {
				if k == n {
					return m.content
				}
			}
		}
	}
	return ""
}

func (d *doc) MetaAll(name string) []string {
	name = strings.ToLower(name)
	var out []string
	for _, m := range d.metas {
		for _, k := range m.keys {
			if k == name {
				out = append(out, m.content)
				break
			}
		}
	}
	return out
}

func (d *doc) Title() string     { return d.title }
func (d *doc) Canonical() string { return d.canonical }
func (d *doc) JSONLD() []string  { return d.ld }
func (d *doc) Raw() string       { return d.raw }
