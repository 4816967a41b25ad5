// Package htmltext turns the rendered HTML of a post into text.
package htmltext

import (
	"strings"

	"github.com/JohannesKaufmann/dom"
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// hidden lists the elements whose content never shows on the page.
const hidden = "script, style, template"

// Extract returns the visible text of an HTML fragment.
// Every text node is trimmed, empty ones are dropped, and the remaining
// segments are joined with newlines in document order.
func Extract(content string) (string, error) {
	// without scripting, <noscript> holds markup instead of raw text
	root, err := html.ParseWithOptions(strings.NewReader(content), html.ParseOptionEnableScripting(false))
	if err != nil {
		return "", err
	}
	doc := goquery.NewDocumentFromNode(root)
	doc.Find(hidden).Remove()

	var segments []string
	for _, root := range doc.Nodes {
		texts := dom.FindAllNodes(root, func(node *html.Node) bool {
			return node.Type == html.TextNode
		})
		for _, n := range texts {
			if s := strings.TrimSpace(n.Data); s != "" {
				segments = append(segments, s)
			}
		}
	}
	return strings.Join(segments, "\n"), nil
}
