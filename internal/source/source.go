// Package source loads the document the converter scans for addresses.
package source

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

const (
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
	FormatText     = "text"
)

var ErrInvalidUTF8 = errors.New("input is not valid UTF-8")

// Document is a fully loaded input file.
type Document struct {
	Path   string
	Format string
	Raw    []byte
	// Text is what the address pattern runs over. For markdown and plain text
	// it is Raw unchanged.
	Text string
}

func Read(path string) (Document, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Document{}, err
	}
	if !utf8.Valid(b) {
		return Document{}, fmt.Errorf("%s: %w", path, ErrInvalidUTF8)
	}

	doc := Document{Path: path, Raw: b, Format: formatFor(path)}

	switch doc.Format {
	case FormatHTML:
		text, err := TextFromHTML(b)
		if err != nil {
			return Document{}, fmt.Errorf("%s: parse html: %w", path, err)
		}
		doc.Text = text
	default:
		doc.Text = string(b)
	}
	return doc, nil
}

func formatFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return FormatHTML
	case ".md", ".markdown":
		return FormatMarkdown
	default:
		return FormatText
	}
}

// TextFromHTML returns the visible text of an HTML page, one text node per line,
// followed by the targets of its mailto: links.
func TextFromHTML(b []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(b))
	if err != nil {
		return "", err
	}

	var lines []string

	var walk func(s *goquery.Selection)
	walk = func(s *goquery.Selection) {
		s.Contents().Each(func(_ int, c *goquery.Selection) {
			switch goquery.NodeName(c) {
			case "#text":
				if t := strings.TrimSpace(c.Text()); t != "" {
					lines = append(lines, t)
				}
			case "#comment", "script", "style", "noscript", "template":
				// not visible
			default:
				walk(c)
			}
		})
	}
	walk(doc.Find("body"))

	doc.Find(`a[href]`).Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		if addr := mailtoAddress(href); addr != "" {
			lines = append(lines, addr)
		}
	})

	return strings.Join(lines, "\n"), nil
}

func mailtoAddress(href string) string {
	href = strings.TrimSpace(href)
	if len(href) < len("mailto:") || !strings.EqualFold(href[:len("mailto:")], "mailto:") {
		return ""
	}
	addr := href[len("mailto:"):]
	if i := strings.IndexByte(addr, '?'); i >= 0 {
		addr = addr[:i]
	}
	if dec, err := url.PathUnescape(addr); err == nil {
		addr = dec
	}
	return strings.TrimSpace(addr)
}
