package scrape

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
	"golang.org/x/net/html"
)

// ExtractText pulls the main textual content out of an HTML page.
//
// Paragraph-level elements are tried first; when a page carries no <p> text
// the readability extractor gets a chance, and as a last resort the whole
// page's visible text is collected.
func ExtractText(htmlBody string, pageURL string) string {
	if text := extractParagraphs(htmlBody); text != "" {
		return text
	}
	if text := extractArticle(htmlBody, pageURL); text != "" {
		return text
	}
	return extractVisibleText(htmlBody)
}

// extractParagraphs concatenates the text of all paragraph elements
func extractParagraphs(htmlBody string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlBody))
	if err != nil {
		return ""
	}

	var parts []string
	doc.Find("p").Each(func(_ int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			parts = append(parts, text)
		}
	})

	return strings.Join(parts, " ")
}

// extractArticle runs the readability extractor over the page
func extractArticle(htmlBody string, pageURL string) string {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		parsed = nil
	}

	article, err := readability.FromReader(strings.NewReader(htmlBody), parsed)
	if err != nil {
		return ""
	}

	return strings.TrimSpace(article.TextContent)
}

// extractVisibleText walks the parsed document and collects text nodes,
// skipping script and style blocks
func extractVisibleText(htmlBody string) string {
	doc, err := html.Parse(strings.NewReader(htmlBody))
	if err != nil {
		return ""
	}

	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style" || n.Data == "noscript") {
			return
		}
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				if b.Len() > 0 {
					b.WriteByte(' ')
				}
				b.WriteString(text)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return b.String()
}
