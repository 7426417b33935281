// Package locate finds the pages where a ranked term matters most.
//
// Every page of a domain is indexed as a Markdown document built from its
// candidate terms, larger fonts becoming headings, and scored with the
// field-weighted BM25 of bm25md. Scripts the BM25 tokenizer does not split
// on spaces fall back to counting literal occurrences.
package locate

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/chriscorrea/bm25md"

	"github.com/chriscorrea/termsift/internal/document"
	"github.com/chriscorrea/termsift/internal/term"
)

// PageRef points at one page of one document.
type PageRef struct {
	Path  string  `json:"path"`
	Page  int     `json:"page"`
	Score float64 `json:"score"`
}

// String renders the reference as path#page.
func (p PageRef) String() string {
	return document.PageLabel(p.Path, p.Page)
}

// Locator scores the pages of one domain against term queries.
type Locator struct {
	corpus *bm25md.Corpus
	pages  []PageRef
	texts  []string
}

// NewLocator indexes every page of the domain's candidate lists.
func NewLocator(domain term.DomainCandidateTermList) *Locator {
	l := &Locator{corpus: bm25md.NewCorpus()}
	parser := bm25md.NewMarkdownFieldParser()

	for _, pdf := range domain.PDFs {
		for _, page := range pdf.Pages {
			markdown := pageMarkdown(page)
			doc := bm25md.Document{
				ID:       len(l.pages),
				Fields:   parser.ParseDocument(markdown),
				Original: markdown,
			}
			l.corpus.AddDocument(doc)
			l.pages = append(l.pages, PageRef{Path: pdf.Path, Page: page.PageNum})
			l.texts = append(l.texts, markdown)
		}
	}

	slog.Debug("Indexed pages for locating", "domain", domain.Domain, "pages", len(l.pages))
	return l
}

// pageMarkdown rebuilds a page from its candidate terms.
func pageMarkdown(page term.PageCandidateTermList) string {
	p := document.Page{Num: page.PageNum}
	for _, t := range page.Candidates {
		if t.Augmented {
			continue
		}
		p.Nodes = append(p.Nodes, document.TextNode{Text: t.String(), FontSize: t.FontSize, NColor: t.NColor})
	}
	return document.PageMarkdown(p)
}

// Locate returns up to k pages with a positive score for query, best first.
// Equal scores keep document order. k <= 0 returns every matching page.
func (l *Locator) Locate(query string, k int) []PageRef {
	query = strings.TrimSpace(query)
	if query == "" || len(l.pages) == 0 {
		return nil
	}

	var refs []PageRef
	for i, page := range l.pages {
		if score := l.corpus.Score(query, i); score > 0 {
			page.Score = score
			refs = append(refs, page)
		}
	}
	if len(refs) == 0 {
		refs = l.literalMatches(query)
	}

	sort.SliceStable(refs, func(i, j int) bool {
		return refs[i].Score > refs[j].Score
	})
	if k > 0 && len(refs) > k {
		refs = refs[:k]
	}
	return refs
}

// literalMatches scores pages by how often query occurs verbatim.
func (l *Locator) literalMatches(query string) []PageRef {
	var refs []PageRef
	for i, text := range l.texts {
		if n := strings.Count(text, query); n > 0 {
			page := l.pages[i]
			page.Score = float64(n)
			refs = append(refs, page)
		}
	}
	return refs
}
