// Package goquery extracts GOLD card records from HTML using goquery.
package goquery

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/goldcard"
	"golang.org/x/net/html"
)

// Ensure Extractor implements goldcard.Extractor at compile time.
var _ goldcard.Extractor = (*Extractor)(nil)

// Extractor reads label/value pairs from table header cells. Each bold span
// inside a th is a label; its value comes from the first td under the
// th's parent row.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract parses the HTML and returns the card's record.
func (e *Extractor) Extract(goldstamp, htmlContent string) (*goldcard.Record, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, goldcard.Errorf(goldcard.EINVALID, "failed to parse HTML for %s: %v", goldstamp, err)
	}

	record := goldcard.NewRecord(goldstamp)
	doc.Find("th").Each(func(_ int, th *goquery.Selection) {
		// Every label of this header shares the same data cell.
		value := cellValue(findDataCell(th.Nodes[0]))
		th.Find("b").Each(func(_ int, b *goquery.Selection) {
			record.Set(strings.TrimSpace(b.Text()), value)
		})
	})

	return record, nil
}

// findDataCell returns the first td in a pre-order walk of the header
// cell's parent, or nil.
func findDataCell(th *html.Node) *html.Node {
	if th.Parent == nil {
		return nil
	}
	return findFirst(th.Parent, "td")
}

// findFirst returns the first descendant of n (excluding n) that is an
// element named tag.
func findFirst(n *html.Node, tag string) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == tag {
			return c
		}
		if found := findFirst(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// cellValue applies the value rules to a data cell: its first element
// child's direct text if it has one, otherwise its own direct text.
func cellValue(td *html.Node) string {
	if td == nil {
		return goldcard.None
	}

	source := td
	if child := firstElementChild(td); child != nil {
		source = child
	}

	text, ok := directText(source)
	if !ok {
		return goldcard.None
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return goldcard.None
	}
	return EscapeASCII(text)
}

func firstElementChild(n *html.Node) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return c
		}
	}
	return nil
}

// directText returns the text of n when its only child is a text node.
func directText(n *html.Node) (string, bool) {
	c := n.FirstChild
	if c == nil || c.NextSibling != nil || c.Type != html.TextNode {
		return "", false
	}
	return c.Data, true
}

// EscapeASCII replaces every non-ASCII character with a backslash escape:
// \xNN below U+0100, \uNNNN below U+10000 and \UNNNNNNNN above.
func EscapeASCII(s string) string {
	if isASCII(s) {
		return s
	}

	var b strings.Builder
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		switch {
		case r == utf8.RuneError && size == 1:
			fmt.Fprintf(&b, `\x%02x`, s[0])
		case r < utf8.RuneSelf:
			b.WriteByte(byte(r))
		case r < 0x100:
			fmt.Fprintf(&b, `\x%02x`, r)
		case r < 0x10000:
			fmt.Fprintf(&b, `\u%04x`, r)
		default:
			fmt.Fprintf(&b, `\U%08x`, r)
		}
		s = s[size:]
	}
	return b.String()
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
