package extract

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ParseHTML reads src with the x/net/html tokenizer. Broken markup is read
// as far as the tokenizer gets; it never fails.
func ParseHTML(src string) Document {
	d := &doc{raw: src}
	z := html.NewTokenizer(strings.NewReader(src))
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			return d
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			attrs := attrMap(tok.Attr)
			switch tok.DataAtom {
			case atom.Meta:
				d.addMeta(attrs)
			case atom.Link:
				d.addLink(attrs)
			case atom.Title:
				if tt == html.StartTagToken {
					d.setTitle(nextText(z))
				}
			case atom.Script:
				if tt == html.StartTagToken && isLDScript(attrs) {
					if s := strings.TrimSpace(nextText(z)); s != "" {
						d.ld = append(d.ld, s)
					}
				}
			}
		}
	}
}

// nextText returns the raw text body following a title or script start tag.
func nextText(z *html.Tokenizer) string {
	if z.Next() != html.TextToken {
		return ""
	}
	return string(z.Text())
}

func attrMap(attrs []html.Attribute) map[string]string {
	m := make(map[string]string, len(attrs))
	for _, a := range attrs {
		k := strings.ToLower(a.Key)
		if _, ok := m[k]; !ok {
			m[k] = a.Val
		}
	}
	return m
}
