package names

import (
	"strings"

	"citeassist/src/internal/schema"
	"citeassist/src/internal/stringsx"
)

// Initials converts a given name string into spaced initials: "Jane Q" -> "J. Q.".
func Initials(given string) string {
	given = strings.TrimSpace(given)
	if given == "" {
		return ""
	}
	var out []string
	for _, w := range strings.Fields(given) {
		r := []rune(w)
		if len(r) == 0 {
			continue
		}
		out = append(out, strings.ToUpper(string(r[0]))+".")
	}
	return strings.Join(out, " ")
}

// Parse splits a free-text name into a Person. It accepts either
// "Family, Given Names" or "Given Names Family"; a single token is a family
// name. Literal keeps the trimmed input. Blank input returns the zero Person.
func Parse(raw string) schema.Person {
	name := stringsx.CollapseSpace(raw)
	if name == "" {
		return schema.Person{}
	}
	if i := strings.Index(name, ","); i >= 0 {
		return schema.Person{
			Family:  strings.TrimSpace(name[:i]),
			Given:   strings.TrimSpace(name[i+1:]),
			Literal: name,
		}
	}
	parts := strings.Fields(name)
	if len(parts) == 1 {
		return schema.Person{Family: parts[0], Literal: name}
	}
	return schema.Person{
		Family:  parts[len(parts)-1],
		Given:   strings.Join(parts[:len(parts)-1], " "),
		Literal: name,
	}
}

// FromParts builds a Person from already-structured parts, as supplied by
// registries that separate given and family names.
func FromParts(given, family string) schema.Person {
	given, family = stringsx.CollapseSpace(given), stringsx.CollapseSpace(family)
	return schema.Person{Given: given, Family: family, Literal: stringsx.JoinSpace(given, family)}
}

// ParseAll parses every name and drops the blank ones.
func ParseAll(raw []string) schema.Authors {
	out := schema.Authors{}
	for _, r := range raw {
		if p := Parse(r); !p.IsZero() {
			out = append(out, p)
		}
	}
	return out
}

// ParseLines parses a newline-delimited author block, one name per line.
func ParseLines(text string) schema.Authors {
	return ParseAll(strings.Split(text, "\n"))
}

// Fill returns p with Literal populated from the structured parts when missing.
func Fill(p schema.Person) schema.Person {
	p.Given, p.Family = strings.TrimSpace(p.Given), strings.TrimSpace(p.Family)
	p.Literal = strings.TrimSpace(p.Literal)
	if p.Literal == "" {
		p.Literal = stringsx.JoinSpace(p.Given, p.Family)
	}
	return p
}
