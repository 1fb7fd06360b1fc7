package extract

import (
	"testing"

	"citeassist/src/internal/schema"
)

var parsers = []struct {
	name  string
	parse Parser
}{
	{"html", ParseHTML},
	{"regex", ParseRegex},
}

func TestExtract_CitationAuthorAndOGTitle(t *testing.T) {
	src := `<html><head>
<meta name="citation_author" content="Doe, John">
<meta property="og:title" content="Example Page">
<title>Ignored</title>
</head><body></body></html>`
	for _, p := range parsers {
		got := Extract(Page{HTML: src}, WithParser(p.parse))
		if got.Title != "Example Page" {
			t.Fatalf("%s: title=%q", p.name, got.Title)
		}
		if len(got.Authors) != 1 || got.Authors[0].Family != "Doe" || got.Authors[0].Given != "John" {
			t.Fatalf("%s: authors=%+v", p.name, got.Authors)
		}
		if got.Type != schema.Generic {
			t.Fatalf("%s: type=%q", p.name, got.Type)
		}
	}
}

func TestExtract_ScholarlyMetas(t *testing.T) {
	src := `<head>
<meta name="citation_title" content="Rust &amp; Go   in Practice">
<meta name="citation_author" content="Smith, Jane">
<meta name="citation_author" content="Lee, Ann">
<meta name="citation_journal_title" content="Journal of Testing">
<meta name="citation_volume" content="4">
<meta name="citation_issue" content="2">
<meta name="citation_firstpage" content="10">
<meta name="citation_lastpage" content="20">
<meta name="citation_doi" content="doi:10.1000/xyz">
<meta name="citation_publication_date" content="2021/03/15">
<link rel="canonical" href="/articles/42">
</head>`
	for _, p := range parsers {
		got := Extract(Page{HTML: src, FinalURL: "https://journal.example.org/view?id=42"}, WithParser(p.parse))
		if got.Title != "Rust & Go in Practice" {
			t.Fatalf("%s: title=%q", p.name, got.Title)
		}
		if len(got.Authors) != 2 || got.Authors[1].Family != "Lee" {
			t.Fatalf("%s: authors=%+v", p.name, got.Authors)
		}
		if got.Container != "Journal of Testing" || got.Website != "" {
			t.Fatalf("%s: container=%q website=%q", p.name, got.Container, got.Website)
		}
		if got.Volume != "4" || got.Issue != "2" || got.Pages != "10-20" {
			t.Fatalf("%s: vol/iss/pages %q %q %q", p.name, got.Volume, got.Issue, got.Pages)
		}
		if got.DOI != "10.1000/xyz" || got.Type != schema.JournalArticle {
			t.Fatalf("%s: doi=%q type=%q", p.name, got.DOI, got.Type)
		}
		if got.Year == nil || *got.Year != 2021 {
			t.Fatalf("%s: year=%v", p.name, got.Year)
		}
		if got.URL != "https://journal.example.org/articles/42" {
			t.Fatalf("%s: url=%q", p.name, got.URL)
		}
	}
}

func TestExtract_JSONLDOverrides(t *testing.T) {
	src := `<head>
<meta property="og:title" content="Meta Title">
<meta property="og:site_name" content="Example News">
<meta name="author" content="Meta Author">
<meta name="publisher" content="Meta Publisher">
<meta property="article:published_time" content="2019-01-01">
<script type="application/ld+json">not json at all</script>
<script type="application/ld+json">
{"@context":"https://schema.org","@graph":[
  {"@type":"Organization","name":"Ignored Org"},
  {"@type":["NewsArticle"],"headline":"LD &quot;Headline&quot;",
   "author":[{"@type":"Person","name":"Jane Doe"},"John Smith"],
   "publisher":{"name":"LD Publisher"},
   "datePublished":"2020-12-31T23:00:00-05:00",
   "dateModified":"2021-01-02",
   "isPartOf":{"name":"The Daily"},
   "pageStart":5,"pageEnd":"9"}
]}
</script>
</head>`
	for _, p := range parsers {
		got := Extract(Page{HTML: src, RequestURL: "https://news.example.com/a"}, WithParser(p.parse))
		if got.Title != `LD "Headline"` {
			t.Fatalf("%s: title=%q", p.name, got.Title)
		}
		if len(got.Authors) != 2 || got.Authors[0].Family != "Doe" || got.Authors[1].Given != "John" {
			t.Fatalf("%s: authors=%+v", p.name, got.Authors)
		}
		if got.Publisher != "LD Publisher" {
			t.Fatalf("%s: publisher=%q", p.name, got.Publisher)
		}
		if got.Website != "The Daily" || got.Container != "Example News" {
			t.Fatalf("%s: website=%q container=%q", p.name, got.Website, got.Container)
		}
		if got.Year == nil || *got.Year != 2021 || got.DateModified != "2021-01-02" {
			t.Fatalf("%s: dates year=%v modified=%q", p.name, got.Year, got.DateModified)
		}
		if got.Pages != "5-9" {
			t.Fatalf("%s: pages=%q", p.name, got.Pages)
		}
		if got.Type != schema.Webpage || got.URL != "https://news.example.com/a" {
			t.Fatalf("%s: type=%q url=%q", p.name, got.Type, got.URL)
		}
	}
}

func TestExtract_DOIScanAndFallbackAuthor(t *testing.T) {
	src := `<html><head><title>Paper  page</title>
<meta name="dc.identifier" content="ISBN 978-0-00-000000-1">
<meta name="author" content="Mary Jane Watson">
</head><body><p>Cite as doi 10.5555/abc.123.</p></body></html>`
	for _, p := range parsers {
		got := Extract(Page{HTML: src}, WithParser(p.parse))
		if got.Title != "Paper page" {
			t.Fatalf("%s: title=%q", p.name, got.Title)
		}
		if got.DOI != "10.5555/abc.123" || got.Type != schema.JournalArticle {
			t.Fatalf("%s: doi=%q type=%q", p.name, got.DOI, got.Type)
		}
		if len(got.Authors) != 1 || got.Authors[0].Given != "Mary Jane" || got.Authors[0].Family != "Watson" {
			t.Fatalf("%s: authors=%+v", p.name, got.Authors)
		}
	}
}

func TestExtract_TypeInference(t *testing.T) {
	cases := []struct {
		name string
		src  string
		url  string
		want schema.Type
	}{
		{"ld book", `<script type="application/ld+json">{"@type":"Book","name":"B"}</script>`, "https://x.org", schema.Book},
		{"ld scholarly", `<script type="application/ld+json">{"@type":"ScholarlyArticle"}</script>`, "", schema.JournalArticle},
		{"site only", `<meta property="og:site_name" content="Blog">`, "https://blog.example", schema.Webpage},
		{"non web url", ``, "ftp://files.example/x", schema.Generic},
	}
	for _, c := range cases {
		got := Extract(Page{HTML: c.src, FinalURL: c.url})
		if got.Type != c.want {
			t.Fatalf("%s: type=%q want %q", c.name, got.Type, c.want)
		}
	}
}

func TestExtract_Garbage(t *testing.T) {
	for _, src := range []string{"", "<<<>>>", "<meta content=", "\x00\xff<title>"} {
		for _, p := range parsers {
			got := Extract(Page{HTML: src}, WithParser(p.parse))
			if got.Title != "" || got.DOI != "" || len(got.Authors) != 0 || got.Authors == nil {
				t.Fatalf("%s %q: %+v", p.name, src, got)
			}
		}
	}
}

func TestFromHTML_CanonicalWins(t *testing.T) {
	got := FromHTML(`<link rel="alternate canonical" href="https://example.com/c">`)
	if got.URL != "https://example.com/c" || got.Type != schema.Webpage {
		t.Fatalf("canonical: url=%q type=%q", got.URL, got.Type)
	}
}
