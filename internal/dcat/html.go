package dcat

import (
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// blockSelectors are elements whose boundaries become word breaks once markup is dropped.
const blockSelectors = "p, div, br, li, ul, ol, h1, h2, h3, h4, h5, h6, tr, td, th, span"

// StripHTML removes markup from portal-supplied text and unescapes entities.
// Entity-escaped markup (&lt;p&gt;) is unescaped first so it is stripped as well.
func StripHTML(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	unescaped := html.UnescapeString(text)
	if !strings.ContainsAny(unescaped, "<>") {
		return cleanWhitespace(unescaped)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(unescaped))
	if err != nil {
		return cleanWhitespace(unescaped)
	}
	doc.Find("script, style").Remove()
	doc.Find(blockSelectors).AfterHtml(" ")

	return cleanWhitespace(doc.Text())
}

// cleanWhitespace collapses runs of whitespace to single spaces.
func cleanWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
