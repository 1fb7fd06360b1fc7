package extract

import (
	"html"
	"regexp"
	"strings"
)

var (
	reMetaTag = regexp.MustCompile(`(?is)<meta\b[^>]*>`)
	reLinkTag = regexp.MustCompile(`(?is)<link\b[^>]*>`)
	reAttr    = regexp.MustCompile(`(?is)([a-z_:.-]+)\s*=\s*(?:"([^"]*)"|'([^']*)'|([^\s"'>]+))`)
	reTitle   = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)
	reScript  = regexp.MustCompile(`(?is)<script\b([^>]*)>(.*?)</script>`)
)

// ParseRegex scans src with regular expressions. Attribute order and
// quoting style do not matter; anything that does not look like a tag is
// ignored.
func ParseRegex(src string) Document {
	d := &doc{raw: src}
	for _, tag := range reMetaTag.FindAllString(src, -1) {
		d.addMeta(parseAttrs(tag))
	}
	for _, tag := range reLinkTag.FindAllString(src, -1) {
		d.addLink(parseAttrs(tag))
	}
	if m := reTitle.FindStringSubmatch(src); len(m) == 2 {
		d.setTitle(html.UnescapeString(m[1]))
	}
	for _, m := range reScript.FindAllStringSubmatch(src, -1) {
		if !isLDScript(parseAttrs(m[1])) {
			continue
		}
		if s := strings.TrimSpace(m[2]); s != "" {
			d.ld = append(d.ld, s)
		}
	}
	return d
}

func parseAttrs(tag string) map[string]string {
	out := map[string]string{}
	for _, m := range reAttr.FindAllStringSubmatch(tag, -1) {
		k := strings.ToLower(m[1])
		if _, ok := out[k]; ok {
			continue
		}
		out[k] = html.UnescapeString(m[2] + m[3] + m[4])
	}
	return out
}
