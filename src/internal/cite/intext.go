package cite

import (
	"fmt"
	"strings"

	"citeassist/src/internal/schema"
	"citeassist/src/internal/stringsx"
)

// InText returns the parenthetical in-text citation for r in style:
// "(Smith, 2021)" for APA, "(Smith)" for MLA and "(Smith 2021)" for Chicago
// author-date.
func InText(r schema.Record, style Style) string {
	fams := familyNames(r.Authors)
	year := yearOf(r)
	switch style {
	case APA:
		if year == "" {
			year = "n.d."
		}
		return fmt.Sprintf("(%s, %s)", inTextNames(fams, r, " & ", 2), year)
	case Chicago:
		return "(" + stringsx.JoinSpace(inTextNames(fams, r, " and ", 3), year) + ")"
	default:
		return "(" + inTextNames(fams, r, " and ", 2) + ")"
	}
}

func familyNames(authors schema.Authors) []string {
	out := make([]string, 0, len(authors))
	for _, a := range authors {
		if f := stringsx.FirstNonEmpty(a.Family, a.Literal, a.Given); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// inTextNames lists up to max family names; longer lists shorten to the
// first name plus "et al.". Works without authors are cited by title.
func inTextNames(fams []string, r schema.Record, and string, max int) string {
	switch n := len(fams); {
	case n == 0:
		if t := strings.TrimSpace(r.Title); t != "" {
			return "“" + t + "”"
		}
		return stringsx.FirstNonEmpty(r.Container, r.Publisher, "Anon.")
	case n == 1:
		return fams[0]
	case n > max:
		return fams[0] + " et al."
	case n == 2:
		return fams[0] + and + fams[1]
	default:
		return strings.Join(fams[:n-1], ", ") + "," + and + fams[n-1]
	}
}
