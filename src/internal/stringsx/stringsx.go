package stringsx

import (
	"html"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// FirstNonEmpty returns the first string in vals that is non-empty when trimmed.
func FirstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

var smallWords = map[string]bool{
	"a": true, "an": true, "the": true,
	"and": true, "but": true, "or": true, "for": true, "nor": true,
	"on": true, "at": true, "to": true, "from": true, "by": true, "of": true, "in": true, "with": true,
}

var reWordSep = regexp.MustCompile(`\s+|-`)

// tokens splits s into words and separators (whitespace runs and hyphens),
// keeping the separators so the string can be rebuilt verbatim.
func tokens(s string) []string {
	var out []string
	last := 0
	for _, loc := range reWordSep.FindAllStringIndex(s, -1) {
		if loc[0] > last {
			out = append(out, s[last:loc[0]])
		}
		out = append(out, s[loc[0]:loc[1]])
		last = loc[1]
	}
	if last < len(s) {
		out = append(out, s[last:])
	}
	return out
}

func isSep(tok string) bool { return tok == "-" || strings.TrimSpace(tok) == "" }

func upperFirst(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[n:]
}

// TitleCase lowercases s and capitalizes every word except small words
// (articles, coordinating conjunctions, short prepositions). The first and
// last words are always capitalized.
func TitleCase(s string) string {
	toks := tokens(strings.ToLower(s))
	first, last := -1, -1
	for i, t := range toks {
		if isSep(t) {
			continue
		}
		if first < 0 {
			first = i
		}
		last = i
	}
	var b strings.Builder
	for i, t := range toks {
		if isSep(t) || (i != first && i != last && smallWords[t]) {
			b.WriteString(t)
			continue
		}
		b.WriteString(upperFirst(t))
	}
	return b.String()
}

// CapitalizeWords lowercases s and capitalizes every word, small words included.
func CapitalizeWords(s string) string {
	var b strings.Builder
	for _, t := range tokens(strings.ToLower(s)) {
		if isSep(t) {
			b.WriteString(t)
			continue
		}
		b.WriteString(upperFirst(t))
	}
	return b.String()
}

// SentenceCase upper-cases the first character and lower-cases the rest.
func SentenceCase(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	r, n := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[n:])
}

func join(vals []string, sep string) string {
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return strings.Join(out, sep)
}

// JoinComma joins the non-empty values with ", ".
func JoinComma(vals ...string) string { return join(vals, ", ") }

// JoinSpace joins the non-empty values with a single space.
func JoinSpace(vals ...string) string { return join(vals, " ") }

// JoinNoSpace concatenates the non-empty values.
func JoinNoSpace(vals ...string) string { return join(vals, "") }

// EndsTerminal reports whether s ends in '.', '!' or '?'.
func EndsTerminal(s string) bool {
	s = strings.TrimSpace(s)
	return strings.HasSuffix(s, ".") || strings.HasSuffix(s, "!") || strings.HasSuffix(s, "?")
}

// EnsurePeriod appends a period unless s already ends in terminal punctuation.
func EnsurePeriod(s string) string {
	if strings.TrimSpace(s) == "" || EndsTerminal(s) {
		return s
	}
	return s + "."
}

// CollapseSpace folds whitespace runs into one space and trims the ends.
func CollapseSpace(s string) string { return strings.Join(strings.Fields(s), " ") }

// DecodeEntities unescapes HTML entities, normalizes to NFC and collapses whitespace.
func DecodeEntities(s string) string {
	if s == "" {
		return ""
	}
	return CollapseSpace(norm.NFC.String(html.UnescapeString(s)))
}

var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// EscapeHTML escapes the characters that would otherwise be read as markup.
func EscapeHTML(s string) string { return htmlEscaper.Replace(s) }
