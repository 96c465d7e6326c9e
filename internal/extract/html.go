package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	htmlMarker = regexp.MustCompile(`(?i)<\s*(?:html|body|div|p|ul|ol|li|br|h[1-6]|table|span)\b`)
	whitespace = regexp.MustCompile(`\s+`)
)

// LooksLikeHTML reports whether s appears to be HTML markup, such as a job
// description copied from a careers page.
func LooksLikeHTML(s string) bool {
	return htmlMarker.MatchString(s)
}

// blockElements start a new line in the extracted text.
var blockElements = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true, "dd": true,
	"div": true, "dl": true, "dt": true, "fieldset": true, "figcaption": true,
	"figure": true, "form": true, "h1": true, "h2": true, "h3": true, "h4": true,
	"h5": true, "h6": true, "hr": true, "li": true, "main": true, "ol": true,
	"p": true, "pre": true, "section": true, "table": true, "td": true, "th": true,
	"tr": true, "ul": true,
}

// HTMLToText returns the readable text of an HTML document. Every text node
// is kept and block elements and <br> break lines; each line is collapsed and
// blank lines are dropped. Scripts, styles and page chrome are removed.
func HTMLToText(markup string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return collapse(markup)
	}
	doc.Find("script, style, nav, header, footer, iframe, noscript, template").Remove()

	var b strings.Builder
	writeText(&b, doc.Find("body"))

	var lines []string
	for line := range strings.SplitSeq(b.String(), "\n") {
		if line = collapse(line); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

func writeText(b *strings.Builder, sel *goquery.Selection) {
	sel.Contents().Each(func(_ int, child *goquery.Selection) {
		switch name := goquery.NodeName(child); {
		case name == "#text":
			b.WriteString(child.Text())
		case name == "br":
			b.WriteByte('\n')
		case blockElements[name]:
			b.WriteByte('\n')
			writeText(b, child)
			b.WriteByte('\n')
		default:
			writeText(b, child)
		}
	})
}

func collapse(s string) string {
	return strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
}
