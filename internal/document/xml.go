package document

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"golang.org/x/net/html/charset"
)

// TextElement is one decoded text node of the page/text XML.
type TextElement struct {
	FontSize string
	NColor   string
	Font     string // pdftohtml fontspec reference
	Content  string
}

// UnmarshalXML collects every character run inside the element, including
// CDATA sections and the text of nested inline tags such as <b> or <i>.
func (t *TextElement) UnmarshalXML(dec *xml.Decoder, start xml.StartElement) error {
	for _, attr := range start.Attr {
		switch attr.Name.Local {
		case "fontsize":
			t.FontSize = attr.Value
		case "ncolor":
			t.NColor = attr.Value
		case "font":
			t.Font = attr.Value
		}
	}

	var b strings.Builder
	depth := 0
	for {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		switch tok := tok.(type) {
		case xml.CharData:
			b.Write(tok)
		case xml.StartElement:
			depth++
		case xml.EndElement:
			if depth == 0 {
				t.Content = b.String()
				return nil
			}
			depth--
		}
	}
}

type pageElement struct {
	ID        string        `xml:"id,attr"`
	Number    string        `xml:"number,attr"`
	Fontspecs []fontspec    `xml:"fontspec"`
	Texts     []TextElement `xml:"text"`
}

type fontspec struct {
	ID   string `xml:"id,attr"`
	Size string `xml:"size,attr"`
}

// ParseXML reads the page/text layout produced by PDF conversion:
//
//	<root><page id="N"><text fontsize="..." ncolor="...">...</text></page></root>
//
// pdftohtml -xml output is read as well: pages numbered with a number
// attribute and text nodes sized through fontspec elements. Pages whose
// id is not an integer are skipped. Malformed XML ends the document at the
// last complete page; only read failures are errors.
func ParseXML(r io.Reader, path string) (*Document, error) {
	dec := xml.NewDecoder(r)
	dec.Strict = false
	dec.Entity = xml.HTMLEntity
	dec.CharsetReader = charset.NewReaderLabel

	doc := &Document{Path: path}
	fonts := make(map[string]float64) // fontspec sizes are shared by all pages

	for {
		// read tokens from the XML document in a stream
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var syntaxErr *xml.SyntaxError
			if errors.As(err, &syntaxErr) {
				slog.Debug("stopping at malformed XML", "path", path, "error", err)
				break
			}
			return nil, fmt.Errorf("failed to parse %q: %w", path, err)
		}

		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch se.Name.Local {
		case "fontspec":
			var fs fontspec
			if err := dec.DecodeElement(&fs, &se); err == nil {
				registerFont(fonts, fs)
			}
		case "page":
			var pe pageElement
			if err := dec.DecodeElement(&pe, &se); err != nil {
				slog.Debug("stopping at malformed page", "path", path, "error", err)
				return doc, nil
			}
			for _, fs := range pe.Fontspecs {
				registerFont(fonts, fs)
			}
			if p, ok := newPage(pe, fonts, path); ok {
				doc.Pages = append(doc.Pages, p)
			}
		}
	}

	return doc, nil
}

func registerFont(fonts map[string]float64, fs fontspec) {
	if size, err := strconv.ParseFloat(strings.TrimSpace(fs.Size), 64); err == nil {
		fonts[fs.ID] = size
	}
}

// newPage converts a decoded page; ok is false when it has no usable number.
func newPage(pe pageElement, fonts map[string]float64, path string) (Page, bool) {
	id := pe.ID
	if strings.TrimSpace(id) == "" {
		id = pe.Number
	}
	if strings.TrimSpace(id) == "" {
		slog.Debug("skipping page without id", "path", path)
		return Page{}, false
	}
	num, err := strconv.Atoi(strings.TrimSpace(id))
	if err != nil {
		slog.Debug("skipping page with non-integer id", "path", path, "id", id)
		return Page{}, false
	}

	p := Page{Num: num}
	for _, node := range pe.Texts {
		size := TextNodeFontSize(node)
		if size == 0 && node.Font != "" {
			size = fonts[node.Font]
		}
		p.Nodes = append(p.Nodes, TextNode{
			Text:     TextNodeText(node),
			FontSize: size,
			NColor:   TextNodeNColor(node),
		})
	}
	return p, true
}

// TextNodeText returns the inner text of a text node.
func TextNodeText(node TextElement) string {
	return node.Content
}

// TextNodeFontSize returns the fontsize attribute, or 0 when it is missing
// or not a number.
func TextNodeFontSize(node TextElement) float64 {
	size, err := strconv.ParseFloat(strings.TrimSpace(node.FontSize), 64)
	if err != nil {
		return 0
	}
	return size
}

// TextNodeNColor returns the ncolor attribute, or "" when it is missing.
func TextNodeNColor(node TextElement) string {
	return strings.TrimSpace(node.NColor)
}
