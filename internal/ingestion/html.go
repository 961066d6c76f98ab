package ingestion

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var htmlSpaceRE = regexp.MustCompile(`\s+`)

// blockElements start a new line when they open and close.
var blockElements = map[string]bool{
	"p": true, "div": true, "section": true, "article": true, "header": true,
	"footer": true, "h1": true, "h2": true, "h3": true, "h4": true, "h5": true,
	"h6": true, "ul": true, "ol": true, "tr": true, "table": true, "dt": true,
	"dd": true, "blockquote": true, "pre": true, "hr": true,
}

// ExtractHTMLText converts an HTML resume into plain text lines. Block
// elements end lines and list items become "- " bullets.
func ExtractHTMLText(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("script, style, noscript, template, nav").Remove()

	root := doc.Find("body")
	if root.Length() == 0 {
		root = doc.Selection
	}

	var b strings.Builder
	walkHTML(root, &b)
	return CleanText(b.String()), nil
}

func walkHTML(sel *goquery.Selection, b *strings.Builder) {
	sel.Contents().Each(func(_ int, child *goquery.Selection) {
		name := goquery.NodeName(child)
		switch {
		case name == "#text":
			b.WriteString(htmlSpaceRE.ReplaceAllString(child.Text(), " "))
		case name == "br":
			b.WriteString("\n")
		case name == "li":
			b.WriteString("\n- ")
			walkHTML(child, b)
			b.WriteString("\n")
		case name == "td" || name == "th":
			walkHTML(child, b)
			b.WriteString(" ")
		case blockElements[name]:
			b.WriteString("\n")
			walkHTML(child, b)
			b.WriteString("\n")
		default:
			walkHTML(child, b)
		}
	})
}
