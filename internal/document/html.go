package document

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
)

// HTMLOptions controls which part of an HTML page becomes text.
type HTMLOptions struct {
	// Selector restricts extraction to the elements matching a CSS selector.
	Selector string
	// IncludeAll converts the whole page instead of the readability main content.
	IncludeAll bool
}

// ParseHTMLWithOptions extracts the part of an HTML page selected by opts
// and returns it as a single page with one text node per Markdown block.
func ParseHTMLWithOptions(r io.Reader, path string, baseURL *url.URL, opts HTMLOptions) (*Document, error) {
	markdown, err := ToMarkdown(r, opts, baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to extract %q: %w", path, err)
	}

	// HTML has no pages, so the whole article becomes page 1
	doc := &Document{Path: path}
	nodes := MarkdownNodes(markdown)
	if len(nodes) > 0 {
		doc.Pages = []Page{{Num: 1, Nodes: nodes}}
	}
	return doc, nil
}

// ToMarkdown converts HTML to Markdown. A selector takes precedence over
// IncludeAll; with neither, go-readability picks the main content.
func ToMarkdown(content io.Reader, opts HTMLOptions, baseURL *url.URL) (string, error) {
	if opts.Selector != "" {
		return extractWithSelector(content, opts.Selector)
	}
	if opts.IncludeAll {
		return convertAllHTML(content)
	}
	return extractMainContent(content, baseURL)
}

// extractMainContent keeps the readability article body.
func extractMainContent(content io.Reader, baseURL *url.URL) (string, error) {
	// readability resolves relative links against the base; local files have none
	if baseURL == nil {
		baseURL = &url.URL{}
	}

	article, err := readability.FromReader(content, baseURL)
	if err != nil {
		return "", fmt.Errorf("failed to extract main content: %w", err)
	}

	// article.Content is cleaned HTML, not text
	return convertToMarkdown(article.Content)
}

// extractWithSelector converts only the elements matching a CSS selector.
func extractWithSelector(content io.Reader, selector string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(content)
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	selection := doc.Find(selector)
	if selection.Length() == 0 {
		return "", fmt.Errorf("no elements found matching selector: %s", selector)
	}

	var htmlParts []string
	selection.Each(func(i int, s *goquery.Selection) {
		html, err := s.Html()
		if err == nil {
			// re-wrap the inner HTML so headings and lists keep their markup
			tagName := goquery.NodeName(s)
			htmlParts = append(htmlParts, fmt.Sprintf("<%s>%s</%s>", tagName, html, tagName))
		}
	})

	if len(htmlParts) == 0 {
		return "", fmt.Errorf("failed to extract HTML from selection")
	}

	return convertToMarkdown(strings.Join(htmlParts, "\n"))
}

// convertAllHTML converts the whole page, navigation and footers included.
func convertAllHTML(content io.Reader) (string, error) {
	htmlBytes, err := io.ReadAll(content)
	if err != nil {
		return "", fmt.Errorf("failed to read HTML content: %w", err)
	}
	return convertToMarkdown(string(htmlBytes))
}

func convertToMarkdown(htmlString string) (string, error) {
	converter := md.NewConverter("", true, nil)

	markdown, err := converter.ConvertString(htmlString)
	if err != nil {
		return "", fmt.Errorf("failed to convert HTML to Markdown: %w", err)
	}

	// collapse runs of blank lines so blocks split on exactly one
	cleaned := strings.TrimSpace(markdown)
	cleaned = strings.ReplaceAll(cleaned, "\n\n\n", "\n\n")
	return cleaned, nil
}
