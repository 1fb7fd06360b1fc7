// Package extract pulls citation metadata out of a web page: meta tags, the
// title element, the canonical link and JSON-LD blocks, reconciled into one
// schema.Partial.
package extract

import (
	"net/url"
	"strings"

	"citeassist/src/internal/dates"
	"citeassist/src/internal/doi"
	"citeassist/src/internal/names"
	"citeassist/src/internal/sanitize"
	"citeassist/src/internal/schema"
	"citeassist/src/internal/stringsx"
)

// Page is fetched markup plus the URLs it came from. FinalURL is the URL
// after redirects.
type Page struct {
	HTML       string
	FinalURL   string
	RequestURL string
}

type options struct {
	parse Parser
}

// Option configures Extract.
type Option func(*options)

// WithParser swaps the markup parser. The default is ParseHTML.
func WithParser(p Parser) Option {
	return func(o *options) {
		if p != nil {
			o.parse = p
		}
	}
}

var (
	titleMetas     = []string{"citation_title", "og:title", "twitter:title", "dc.title", "headline"}
	authorMetas    = []string{"author", "article:author", "dc.creator"}
	containerMetas = []string{"citation_journal_title", "citation_conference_title", "citation_inbook_title", "citation_technical_report_institution", "og:site_name"}
	siteMetas      = []string{"og:site_name", "twitter:site", "application-name"}
	publisherMetas = []string{"citation_publisher", "publisher", "dc.publisher"}
	publishedMetas = []string{"citation_publication_date", "citation_date", "article:published_time", "datepublished", "pubdate", "dc.date", "date"}
	modifiedMetas  = []string{"article:modified_time", "datemodified", "og:updated_time"}
	doiMetas       = []string{"citation_doi", "doi", "dc.identifier"}
)

// FromHTML extracts from markup that has no known URL.
func FromHTML(src string) schema.Partial {
	return Extract(Page{HTML: src})
}

// Extract reads p and returns whatever metadata it carries. Missing fields
// stay empty; it never fails.
func Extract(p Page, opts ...Option) schema.Partial {
	o := options{parse: ParseHTML}
	for _, fn := range opts {
		fn(&o)
	}
	d := o.parse(p.HTML)
	ld := mergeLD(d.JSONLD())
	text := stringsx.DecodeEntities

	var out schema.Partial
	r := &out.Record

	r.Title = stringsx.FirstNonEmpty(text(d.Meta(titleMetas...)), text(d.Title()))
	if h := text(ld.str("headline")); h != "" {
		r.Title = h
	}

	r.Authors = parseAuthors(d, ld)

	container := text(d.Meta(containerMetas...))
	site := text(d.Meta(siteMetas...))
	out.Website = stringsx.FirstNonEmpty(text(ld.name("isPartOf")), text(ld.name("sourceOrganization")), site)
	r.Container = stringsx.FirstNonEmpty(container, out.Website)

	r.Publisher = stringsx.FirstNonEmpty(text(d.Meta(publisherMetas...)), site)
	if pub := text(ld.name("publisher")); pub != "" {
		r.Publisher = pub
	}

	r.DatePublished = stringsx.FirstNonEmpty(text(ld.str("datePublished")), text(d.Meta(publishedMetas...)))
	r.DateModified = stringsx.FirstNonEmpty(text(ld.str("dateModified")), text(d.Meta(modifiedMetas...)))
	if y, ok := dates.Year(r.DatePublished); ok {
		r.Year = &y
	}

	r.DOI = findDOI(d)

	r.Volume = text(d.Meta("citation_volume"))
	r.Issue = text(d.Meta("citation_issue"))
	r.Pages = pageRange(text(d.Meta("citation_firstpage")), text(d.Meta("citation_lastpage")))
	if start, end := text(ld.str("pageStart")), text(ld.str("pageEnd")); start != "" && end != "" {
		r.Pages = start + "-" + end
	}

	base := stringsx.FirstNonEmpty(p.FinalURL, p.RequestURL)
	r.URL = stringsx.FirstNonEmpty(resolve(base, text(d.Canonical())), p.FinalURL, p.RequestURL)

	r.Type = inferType(ld, r.DOI, container, out.Website, r.URL)
	return out
}

func parseAuthors(d Document, ld linkedData) schema.Authors {
	raw := d.MetaAll("citation_author")
	if len(raw) == 0 {
		raw = ld.authors()
	}
	if len(raw) == 0 {
		if a := d.Meta(authorMetas...); a != "" {
			raw = []string{a}
		}
	}
	out := schema.Authors{}
	for _, s := range raw {
		if p := names.Parse(stringsx.DecodeEntities(s)); !p.IsZero() {
			out = append(out, p)
		}
	}
	return out
}

// findDOI takes the first identifier meta that holds a DOI, then falls back
// to scanning the whole document.
func findDOI(d Document) string {
	for _, n := range doiMetas {
		if v := doi.Find(stringsx.DecodeEntities(d.Meta(n))); v != "" {
			return doi.Normalize(v)
		}
	}
	return doi.Normalize(doi.Find(d.Raw()))
}

func pageRange(first, last string) string {
	if first != "" && last != "" {
		return first + "-" + last
	}
	return stringsx.FirstNonEmpty(first, last)
}

// resolve makes a possibly relative canonical href absolute against base.
func resolve(base, ref string) string {
	if ref == "" {
		return ""
	}
	r, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	if r.IsAbs() || base == "" {
		return ref
	}
	b, err := url.Parse(base)
	if err != nil {
		return ref
	}
	return b.ResolveReference(r).String()
}

// inferType ranks structured-data type over identifier and container
// heuristics, which rank over the plain URL fallback.
func inferType(ld linkedData, d, container, website, u string) schema.Type {
	switch {
	case ld.typeHas("scholarlyarticle") || ld.typeHas("journal"):
		return schema.JournalArticle
	case ld.typeHas("book"):
		return schema.Book
	case d != "":
		return schema.JournalArticle
	case strings.TrimSpace(container) != "" && strings.TrimSpace(website) == "":
		return schema.JournalArticle
	case sanitize.IsWebURL(u):
		return schema.Webpage
	default:
		return schema.Generic
	}
}
