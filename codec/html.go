package codec

import (
	"io"
	"strings"

	"github.com/npillmayer/cssed/cssdoc"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ImportHTML parses an HTML document and imports the contents of all its
// <style> elements, in document order, as a single stylesheet.
func ImportHTML(r io.Reader) (*cssdoc.Document, error) {
	h, err := html.Parse(r)
	if err != nil {
		return nil, &ImportError{Msg: "invalid HTML", Cause: err}
	}
	styles := extractStyles(h, nil)
	tracer().Debugf("found %d style elements", len(styles))
	return Import(strings.Join(styles, "\n"))
}

// extractStyles visits an HTML parse tree and collects the text content of
// embedded <style>s.
func extractStyles(h *html.Node, css []string) []string {
	if h == nil {
		return css
	}
	if h.Type == html.ElementNode && h.DataAtom == atom.Style {
		var text strings.Builder
		for ch := h.FirstChild; ch != nil; ch = ch.NextSibling {
			if ch.Type == html.TextNode {
				text.WriteString(ch.Data)
			}
		}
		return append(css, text.String())
	}
	for ch := h.FirstChild; ch != nil; ch = ch.NextSibling {
		css = extractStyles(ch, css)
	}
	return css
}
