package cite

import (
	"errors"
	"strings"

	"citeassist/src/internal/stringsx"
)

// Segment is a run of citation text. Emph marks titles the presentation
// layer should set in italics (or whatever its emphasis is).
type Segment struct {
	Text string `json:"text"`
	Emph bool   `json:"emph,omitempty"`
}

// Citation is a formatted citation as ordered segments. Adjacent segments
// never share the same Emph value.
type Citation struct {
	Segments []Segment `json:"segments"`
}

// String returns the citation without any emphasis markup.
func (c Citation) String() string { return c.Render(Plain) }

// Render writes the citation with emphasized segments wrapped by m.
func (c Citation) Render(m Marker) string {
	var b strings.Builder
	for _, s := range c.Segments {
		text := s.Text
		if m.Escape != nil {
			text = m.Escape(text)
		}
		if s.Emph {
			b.WriteString(m.Open)
			b.WriteString(text)
			b.WriteString(m.Close)
			continue
		}
		b.WriteString(text)
	}
	return b.String()
}

// Marker describes how a presentation layer shows emphasis.
type Marker struct {
	Name   string
	Open   string
	Close  string
	Escape func(string) string
}

var (
	Plain    = Marker{Name: "plain"}
	HTML     = Marker{Name: "html", Open: "<i>", Close: "</i>", Escape: stringsx.EscapeHTML}
	Markdown = Marker{Name: "markdown", Open: "*", Close: "*"}
	Terminal = Marker{Name: "terminal", Open: "\x1b[3m", Close: "\x1b[23m"}
)

// ErrUnknownMarker is returned by ParseMarker for names it does not know.
var ErrUnknownMarker = errors.New("cite: unknown markup")

// ParseMarker looks a marker up by name, case-insensitively. Empty is Plain.
func ParseMarker(name string) (Marker, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", Plain.Name, "text":
		return Plain, nil
	case HTML.Name:
		return HTML, nil
	case Markdown.Name, "md":
		return Markdown, nil
	case Terminal.Name, "ansi":
		return Terminal, nil
	}
	return Marker{}, ErrUnknownMarker
}

// piece is a citation fragment under construction.
type piece []Segment

func plain(s string) piece {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return piece{{Text: s}}
}

func emph(s string) piece {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return piece{{Text: s, Emph: true}}
}

func (p piece) text() string {
	var b strings.Builder
	for _, s := range p {
		b.WriteString(s.Text)
	}
	return b.String()
}

func (p piece) empty() bool { return strings.TrimSpace(p.text()) == "" }

// cat concatenates pieces with no separator.
func cat(ps ...piece) piece {
	var out piece
	for _, p := range ps {
		out = append(out, p...)
	}
	return out
}

// join drops empty pieces and separates the rest with sep.
func join(sep string, ps ...piece) piece {
	var out piece
	for _, p := range ps {
		if p.empty() {
			continue
		}
		if len(out) > 0 {
			out = append(out, Segment{Text: sep})
		}
		out = append(out, p...)
	}
	return out
}

// period appends "." unless the text already ends in terminal punctuation,
// including punctuation closed inside a quoted title.
func period(p piece) piece {
	if p.empty() || stringsx.EndsTerminal(strings.TrimSuffix(strings.TrimSpace(p.text()), "”")) {
		return p
	}
	return cat(p, piece{{Text: "."}})
}

// citation merges neighbouring segments with equal emphasis.
func (p piece) citation() Citation {
	out := make([]Segment, 0, len(p))
	for _, s := range p {
		if s.Text == "" {
			continue
		}
		if n := len(out); n > 0 && out[n-1].Emph == s.Emph {
			out[n-1].Text += s.Text
			continue
		}
		out = append(out, s)
	}
	return Citation{Segments: out}
}
