package cite

import (
	"strings"

	"citeassist/src/internal/names"
	"citeassist/src/internal/schema"
	"citeassist/src/internal/stringsx"
)

const (
	apaMaxListed     = 20
	apaHeadListed    = 19
	chicagoMaxListed = 10
	chicagoHead      = 7
)

// inverted renders "Family, Given", falling back to the literal name.
func inverted(p schema.Person) string {
	if strings.TrimSpace(p.Family) == "" {
		return stringsx.FirstNonEmpty(p.Literal, p.Given)
	}
	return stringsx.JoinComma(strings.TrimSpace(p.Family), strings.TrimSpace(p.Given))
}

// natural renders "Given Family", falling back to the literal name.
func natural(p schema.Person) string {
	if strings.TrimSpace(p.Family) == "" {
		return stringsx.FirstNonEmpty(p.Literal, p.Given)
	}
	return stringsx.JoinSpace(strings.TrimSpace(p.Given), strings.TrimSpace(p.Family))
}

// apaName renders "Family, I. I."; a person without given names is the
// family name alone.
func apaName(p schema.Person) string {
	fam := strings.TrimSpace(p.Family)
	if fam == "" {
		return stringsx.FirstNonEmpty(p.Literal, p.Given)
	}
	if in := names.Initials(p.Given); in != "" {
		return fam + ", " + in
	}
	return fam
}

// named drops persons that render to nothing so positional rules count
// only the names that appear.
func named(authors schema.Authors) schema.Authors {
	out := make(schema.Authors, 0, len(authors))
	for _, a := range authors {
		if strings.TrimSpace(natural(a)) != "" {
			out = append(out, a)
		}
	}
	return out
}

func render(authors schema.Authors, fn func(schema.Person) string) []string {
	out := make([]string, 0, len(authors))
	for _, a := range authors {
		if s := strings.TrimSpace(fn(a)); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// mlaAuthors: one name inverted; two as "A, and B"; three or more collapse
// to the first plus "et al.".
func mlaAuthors(authors schema.Authors) string {
	authors = named(authors)
	inv := render(authors, inverted)
	switch len(inv) {
	case 0:
		return ""
	case 1:
		return stringsx.EnsurePeriod(inv[0])
	case 2:
		return stringsx.EnsurePeriod(inv[0] + ", and " + natural(authors[1]))
	default:
		return inv[0] + ", et al."
	}
}

func apaAuthors(authors schema.Authors) string {
	list := render(authors, apaName)
	n := len(list)
	var s string
	switch {
	case n == 0:
		return ""
	case n == 1:
		s = list[0]
	case n == 2:
		s = list[0] + " & " + list[1]
	case n <= apaMaxListed:
		s = strings.Join(list[:n-1], ", ") + ", & " + list[n-1]
	default:
		s = strings.Join(list[:apaHeadListed], ", ") + ", …, " + list[n-1]
	}
	return stringsx.EnsurePeriod(s)
}

func chicagoAuthors(authors schema.Authors) string {
	var list []string
	for i, a := range named(authors) {
		var s string
		if i == 0 {
			s = inverted(a)
		} else {
			s = natural(a)
		}
		if s = strings.TrimSpace(s); s != "" {
			list = append(list, s)
		}
	}
	n := len(list)
	var s string
	switch {
	case n == 0:
		return ""
	case n == 1:
		s = list[0]
	case n == 2:
		s = list[0] + " and " + list[1]
	case n <= chicagoMaxListed:
		s = strings.Join(list[:n-1], ", ") + ", and " + list[n-1]
	default:
		s = strings.Join(list[:chicagoHead], ", ") + ", et al."
	}
	return stringsx.EnsurePeriod(s)
}
