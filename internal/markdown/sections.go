// Package markdown reads the section structure of a contact list document.
// Address extraction itself never goes through the markdown parser; this
// package only answers "which heading is this offset under".
package markdown

import (
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"jobhunt-contacts/internal/config"
)

// Untiered labels addresses that appear before any tier heading or under a heading
// that matches no tier.
const Untiered = "Untiered"

type Heading struct {
	Text   string
	Level  int
	Offset int // byte offset of the heading content in the source
}

type TierCount struct {
	Label string
	Count int
}

// Headings returns every heading of src in document order.
func Headings(src []byte) []Heading {
	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	root := md.Parser().Parse(text.NewReader(src))

	var out []Heading
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		lines := h.Lines()
		if lines.Len() == 0 {
			return ast.WalkSkipChildren, nil
		}
		out = append(out, Heading{
			Text:   inlineText(h, src),
			Level:  h.Level,
			Offset: lines.At(0).Start,
		})
		return ast.WalkSkipChildren, nil
	})
	return out
}

func inlineText(n ast.Node, src []byte) string {
	var b strings.Builder
	var collect func(ast.Node)
	collect = func(n ast.Node) {
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			switch t := c.(type) {
			case *ast.Text:
				b.Write(t.Segment.Value(src))
				if t.SoftLineBreak() || t.HardLineBreak() {
					b.WriteByte(' ')
				}
			case *ast.String:
				b.Write(t.Value)
			default:
				collect(c)
			}
		}
	}
	collect(n)
	return strings.TrimSpace(b.String())
}

// TierFor returns the label of the first tier whose heading text is contained in
// heading, compared case-insensitively.
func TierFor(heading string, tiers []config.Tier) (string, bool) {
	h := strings.ToLower(heading)
	for _, t := range tiers {
		if t.Heading == "" {
			continue
		}
		if strings.Contains(h, strings.ToLower(t.Heading)) {
			return t.Label, true
		}
	}
	return "", false
}

// TierCounts attributes each offset (the first occurrence of one unique address) to
// the tier of the heading it sits under. Counts come back in tier order, zero counts
// omitted, with Untiered last.
func TierCounts(src []byte, tiers []config.Tier, offsets []int) []TierCount {
	headings := Headings(src)

	counts := map[string]int{}
	for _, off := range offsets {
		counts[tierAt(headings, tiers, off)]++
	}

	var out []TierCount
	seen := map[string]bool{}
	for _, t := range tiers {
		if seen[t.Label] || counts[t.Label] == 0 {
			continue
		}
		seen[t.Label] = true
		out = append(out, TierCount{Label: t.Label, Count: counts[t.Label]})
	}
	if n := counts[Untiered]; n > 0 {
		out = append(out, TierCount{Label: Untiered, Count: n})
	}
	return out
}

// tierAt walks from the nearest heading before offset up through its parents
// (strictly lower levels) and returns the first tier label found.
func tierAt(headings []Heading, tiers []config.Tier, offset int) string {
	i := sort.Search(len(headings), func(i int) bool { return headings[i].Offset > offset })
	level := 7
	for j := i - 1; j >= 0; j-- {
		h := headings[j]
		if h.Level >= level {
			continue
		}
		level = h.Level
		if label, ok := TierFor(h.Text, tiers); ok {
			return label
		}
	}
	return Untiered
}
