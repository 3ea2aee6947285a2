// README: Markup sanitizer; lenient HTML parse, strip disallowed elements, render back.
package markup

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// disallowed elements are removed together with their whole subtree.
var disallowed = map[atom.Atom]bool{
	atom.Script: true,
	atom.Style:  true,
	atom.Meta:   true,
	atom.Link:   true,
}

// literalText elements have their text children rendered unescaped, so any text
// they hold is dropped to keep markup from re-entering the output.
var literalText = map[atom.Atom]bool{
	atom.Iframe:    true,
	atom.Noembed:   true,
	atom.Noframes:  true,
	atom.Noscript:  true,
	atom.Plaintext: true,
	atom.Xmp:       true,
}

// bodyContext makes the parser treat generated markup as body content, so no
// <html>/<head>/<body> wrappers are synthesized around it.
var bodyContext = &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}

// Sanitize parses raw as HTML, drops script, style, meta and link elements and
// returns the re-serialized markup with surrounding whitespace trimmed.
// Malformed input never fails parsing; the parser recovers the best tree it can.
func Sanitize(raw string) (string, error) {
	nodes, err := parseFragment(raw)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	for _, n := range nodes {
		if isDisallowed(n) {
			continue
		}
		strip(n)
		if err := html.Render(&buf, n); err != nil {
			return "", fmt.Errorf("render sanitized markup: %w", err)
		}
	}
	return strings.TrimSpace(buf.String()), nil
}

func parseFragment(raw string) ([]*html.Node, error) {
	// With scripting off, noscript content is parsed as elements and can be stripped.
	nodes, err := html.ParseFragmentWithOptions(strings.NewReader(raw), bodyContext, html.ParseOptionEnableScripting(false))
	if err != nil {
		return nil, fmt.Errorf("parse markup: %w", err)
	}
	return nodes, nil
}

// strip removes disallowed descendants of n in place.
func strip(n *html.Node) {
	literal := n.Type == html.ElementNode && literalText[n.DataAtom]
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if isDisallowed(c) || (literal && c.Type == html.TextNode) {
			n.RemoveChild(c)
		} else {
			strip(c)
		}
		c = next
	}
}

func isDisallowed(n *html.Node) bool {
	return n.Type == html.ElementNode && disallowed[n.DataAtom]
}
