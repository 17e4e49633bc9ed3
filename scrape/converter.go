package scrape

import (
	"bytes"
	"regexp"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/net/html"
)

// Pre-compiled regex to avoid runtime compilation on every conversion.
var excessiveLinesRe = regexp.MustCompile(`\n{3,}`)

// Converter renders a prompt's inner HTML as plain, word-wrapped text.
type Converter struct {
	converter *md.Converter
	width     int
}

// NewConverter creates a converter wrapping output at width columns.
func NewConverter(width int) *Converter {
	converter := md.NewConverter("", true, nil)
	converter.Use(plugin.GitHubFlavored())

	return &Converter{
		converter: converter,
		width:     width,
	}
}

// Convert transforms HTML markup to wrapped plain text.
func (c *Converter) Convert(htmlContent string) (string, error) {
	markdown, err := c.converter.ConvertString(htmlContent)
	if err != nil {
		return "", err
	}

	text := wordwrap.String(markdown, c.width)
	text = excessiveLinesRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text) + "\n", nil
}

// pageText extracts the prose of a response page for classification.
// It prefers the text inside <main> or <article>, falling back to the
// whole document, and finally to the raw body when parsing fails.
func pageText(body []byte) string {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return string(body)
	}

	root := doc
	for _, tag := range []string{"main", "article"} {
		if node := findElement(doc, tag); node != nil {
			root = node
			break
		}
	}

	var sb strings.Builder
	collectText(root, &sb)
	return sb.String()
}

// findElement finds the first element with the given tag name.
func findElement(n *html.Node, tag string) *html.Node {
	var result *html.Node
	var find func(*html.Node)
	find = func(node *html.Node) {
		if result != nil {
			return
		}
		if node.Type == html.ElementNode && node.Data == tag {
			result = node
			return
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			find(c)
		}
	}
	find(n)
	return result
}

// collectText appends all text node content under n.
func collectText(n *html.Node, sb *strings.Builder) {
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, sb)
	}
}
