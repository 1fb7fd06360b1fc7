// Package cite renders canonical records as MLA, APA or Chicago citations.
// Formatting is a pure function of the record and style.
package cite

import (
	"errors"
	"fmt"
	"strings"

	"citeassist/src/internal/dates"
	"citeassist/src/internal/doi"
	"citeassist/src/internal/schema"
	"citeassist/src/internal/stringsx"
)

// Style names a citation style.
type Style string

const (
	MLA     Style = "mla"
	APA     Style = "apa"
	Chicago Style = "chicago"
)

// ErrUnknownStyle is returned by ParseStyle for names outside Styles().
var ErrUnknownStyle = errors.New("cite: unknown style")

// Styles lists the supported styles in display order.
func Styles() []Style { return []Style{MLA, APA, Chicago} }

// ParseStyle reads a style name case-insensitively.
func ParseStyle(s string) (Style, error) {
	st := Style(strings.ToLower(strings.TrimSpace(s)))
	switch st {
	case MLA, APA, Chicago:
		return st, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStyle, s)
}

var formatters = map[Style]func(schema.Record) piece{
	MLA:     mla,
	APA:     apa,
	Chicago: chicago,
}

// Format renders r in style. Absent fields are left out together with their
// delimiters. An unrecognised style renders as MLA.
func Format(r schema.Record, style Style) Citation {
	f, ok := formatters[style]
	if !ok {
		f = mla
	}
	return f(r).citation()
}

// FormatString is Format without emphasis markup.
func FormatString(r schema.Record, style Style) string {
	return Format(r, style).String()
}

func yearOf(r schema.Record) string {
	if y, ok := r.ResolvedYear(); ok {
		return fmt.Sprintf("%d", y)
	}
	return ""
}

// link is the DOI resolver URL when there is a DOI, else the record URL.
func link(r schema.Record) string {
	if u := doi.URL(r.DOI); u != "" {
		return u
	}
	return strings.TrimSpace(r.URL)
}

func quoted(title string) string {
	if strings.TrimSpace(title) == "" {
		return ""
	}
	return "“" + stringsx.EnsurePeriod(title) + "”"
}

func prefixed(prefix, v string) string {
	if strings.TrimSpace(v) == "" {
		return ""
	}
	return prefix + strings.TrimSpace(v)
}

// mla: Authors. “Title.” Container, [Publisher,] vol. V, no. I, pp. P, Year, Link.
func mla(r schema.Record) piece {
	var pub string
	if r.Type == schema.Book {
		pub = r.Publisher
	}
	tail := join(", ",
		emph(stringsx.CapitalizeWords(r.Container)),
		plain(pub),
		plain(prefixed("vol. ", r.Volume)),
		plain(prefixed("no. ", r.Issue)),
		plain(prefixed("pp. ", r.Pages)),
		plain(yearOf(r)),
		plain(link(r)),
	)
	out := join(" ",
		plain(mlaAuthors(r.Authors)),
		plain(quoted(stringsx.TitleCase(r.Title))),
		tail,
	)
	return period(out)
}

// apaJournal keeps the source heuristic: a container with any of volume,
// issue or pages reads as a journal even when typed as a webpage.
func apaJournal(r schema.Record) bool {
	if r.Type == schema.JournalArticle {
		return true
	}
	if strings.TrimSpace(r.Container) == "" {
		return false
	}
	return strings.TrimSpace(r.Volume) != "" || strings.TrimSpace(r.Issue) != "" || strings.TrimSpace(r.Pages) != ""
}

func apa(r schema.Record) piece {
	var body piece
	if apaJournal(r) {
		var date string
		if y := yearOf(r); y != "" {
			date = "(" + y + ")."
		}
		var issue string
		if iss := strings.TrimSpace(r.Issue); iss != "" {
			issue = "(" + iss + ")"
		}
		source := join(", ",
			emph(stringsx.SentenceCase(r.Container)),
			cat(emph(strings.TrimSpace(r.Volume)), plain(issue)),
			plain(r.Pages),
		)
		body = join(" ",
			plain(apaAuthors(r.Authors)),
			plain(date),
			plain(stringsx.EnsurePeriod(stringsx.SentenceCase(r.Title))),
			period(source),
		)
	} else {
		site := stringsx.FirstNonEmpty(r.Container, r.Publisher)
		body = join(" ",
			plain(apaAuthors(r.Authors)),
			plain(apaDate(r)),
			period(emph(stringsx.SentenceCase(r.Title))),
			plain(stringsx.EnsurePeriod(site)),
		)
	}
	if l := link(r); l != "" {
		return join(" ", body, plain(l))
	}
	return period(body)
}

// apaDate is "(2021, March 15)." at the precision of DatePublished, falling
// back to the year alone.
func apaDate(r schema.Record) string {
	if d, ok := dates.Parse(r.DatePublished); ok {
		if r.Year != nil && *r.Year > 0 && *r.Year != d.Time.Year() {
			return fmt.Sprintf("(%d).", *r.Year)
		}
		return "(" + dates.APA(d) + ")."
	}
	if y := yearOf(r); y != "" {
		return "(" + y + ")."
	}
	return ""
}

// chicagoWeb is the webpage branch: typed webpage with no volume or issue.
func chicagoWeb(r schema.Record) bool {
	return r.Type == schema.Webpage && strings.TrimSpace(r.Volume) == "" && strings.TrimSpace(r.Issue) == ""
}

func chicago(r schema.Record) piece {
	head := join(" ",
		plain(chicagoAuthors(r.Authors)),
		plain(stringsx.EnsurePeriod(yearOf(r))),
		plain(quoted(stringsx.TitleCase(r.Title))),
	)
	var source piece
	if chicagoWeb(r) {
		source = plain(stringsx.EnsurePeriod(stringsx.FirstNonEmpty(r.Container, r.Publisher)))
	} else {
		container := emph(strings.TrimSpace(r.Container))
		if container.empty() && r.Type == schema.Book {
			container = plain(strings.TrimSpace(r.Publisher))
		}
		var volIssue string
		vol := strings.TrimSpace(r.Volume)
		iss := prefixed("no. ", r.Issue)
		volIssue = stringsx.JoinComma(vol, iss)
		source = join(", ", container, plain(volIssue))
		if pages := strings.TrimSpace(r.Pages); pages != "" {
			if source.empty() {
				source = plain(pages)
			} else {
				source = cat(source, plain(": "+pages))
			}
		}
		source = period(source)
	}
	return period(join(" ", head, source, plain(link(r))))
}
