// Package document turns source bytes into paged text nodes.
//
// Two source formats are understood: the page/text XML produced by an
// upstream PDF conversion, and HTML pages whose main content becomes a
// single page of Markdown blocks.
package document

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/chriscorrea/termsift/internal/fetch"
	"github.com/chriscorrea/termsift/internal/termerr"
)

// TextNode is one styled run of text on a page.
type TextNode struct {
	Text     string
	FontSize float64
	NColor   string
}

// Page holds the text nodes of one page in document order.
type Page struct {
	Num   int
	Nodes []TextNode
}

// Document is a parsed source.
type Document struct {
	Path  string
	Pages []Page
}

// NodeCount returns the number of text nodes across all pages.
func (d *Document) NodeCount() int {
	n := 0
	for _, p := range d.Pages {
		n += len(p.Nodes)
	}
	return n
}

// Format identifies how a source is parsed.
type Format int

const (
	FormatXML Format = iota
	FormatHTML
)

// DetectFormat picks a parser from the source's extension. URLs without a
// recognised extension are treated as HTML and stdin as XML.
func DetectFormat(source string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(stripQuery(source)))
	switch ext {
	case ".xml":
		return FormatXML, nil
	case ".html", ".htm":
		return FormatHTML, nil
	}
	switch {
	case source == "-":
		return FormatXML, nil
	case fetch.IsURL(source):
		return FormatHTML, nil
	}
	return FormatXML, fmt.Errorf("source %q: %w", source, termerr.ErrUnsupportedSource)
}

func stripQuery(source string) string {
	if !fetch.IsURL(source) {
		return source
	}
	u, err := url.Parse(source)
	if err != nil {
		return source
	}
	return u.Path
}

// Loader fetches and parses sources.
type Loader struct {
	HTML HTMLOptions
}

// NewLoader creates a loader applying html to HTML sources.
func NewLoader(html HTMLOptions) *Loader {
	return &Loader{HTML: html}
}

// Load fetches a source and parses it according to its format.
func (l *Loader) Load(ctx context.Context, source string) (*Document, error) {
	format, err := DetectFormat(source)
	if err != nil {
		return nil, err
	}

	reader, err := fetch.GetContent(ctx, source)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	switch format {
	case FormatHTML:
		var base *url.URL
		if fetch.IsURL(source) {
			base, _ = url.Parse(source)
		}
		doc, err := ParseHTMLWithOptions(reader, source, base, l.HTML)
		if err != nil {
			return nil, err
		}
		slog.Debug("loaded html document", "source", source, "nodes", doc.NodeCount())
		return doc, nil
	default:
		doc, err := ParseXML(reader, source)
		if err != nil {
			return nil, err
		}
		slog.Debug("loaded xml document", "source", source, "pages", len(doc.Pages), "nodes", doc.NodeCount())
		return doc, nil
	}
}
