package markup

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Block is one readable line of an itinerary: a heading (Level 1-4) or a paragraph (Level 0).
type Block struct {
	Level int
	Text  string
}

var headingLevels = map[atom.Atom]int{
	atom.H1: 1,
	atom.H2: 2,
	atom.H3: 3,
	atom.H4: 4,
	atom.H5: 4,
	atom.H6: 4,
}

var blockElements = map[atom.Atom]bool{
	atom.P:          true,
	atom.Div:        true,
	atom.Li:         true,
	atom.Blockquote: true,
	atom.Pre:        true,
	atom.Tr:         true,
}

// Blocks flattens sanitized itinerary markup into headings and paragraphs, in document order.
// Inline formatting is dropped and whitespace collapsed; empty blocks are skipped.
func Blocks(raw string) ([]Block, error) {
	nodes, err := parseFragment(raw)
	if err != nil {
		return nil, err
	}

	var (
		out     []Block
		pending strings.Builder
	)
	flush := func(level int) {
		if text := collapseSpace(pending.String()); text != "" {
			out = append(out, Block{Level: level, Text: text})
		}
		pending.Reset()
	}

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			pending.WriteString(n.Data)
			return
		case html.ElementNode:
			if isDisallowed(n) {
				return
			}
			if level, ok := headingLevels[n.DataAtom]; ok {
				flush(0)
				pending.WriteString(textContent(n))
				flush(level)
				return
			}
			if n.DataAtom == atom.Br {
				pending.WriteString(" ")
				return
			}
			if blockElements[n.DataAtom] {
				flush(0)
				for c := n.FirstChild; c != nil; c = c.NextSibling {
					walk(c)
				}
				flush(0)
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range nodes {
		walk(n)
	}
	flush(0)
	return out, nil
}

// PlainText renders itinerary markup as plain text, one block per line,
// with a blank line before every heading except the first line.
func PlainText(raw string) (string, error) {
	blocks, err := Blocks(raw)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for i, blk := range blocks {
		if i > 0 && blk.Level > 0 {
			b.WriteString("\n")
		}
		b.WriteString(blk.Text)
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String()), nil
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		if isDisallowed(n) {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
