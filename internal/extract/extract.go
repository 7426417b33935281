// Package extract finds candidate terms in text, documents and domains.
//
// Text is tokenized and cut into maximal runs of tokens the token filter
// accepts. Each run becomes a term that is split at repeated tokens; every
// split result is augmented with its connector-bounded sub-spans, and only
// the terms that pass the term filter are kept.
package extract

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/chriscorrea/termsift/internal/augment"
	"github.com/chriscorrea/termsift/internal/classify"
	"github.com/chriscorrea/termsift/internal/document"
	"github.com/chriscorrea/termsift/internal/fetch"
	"github.com/chriscorrea/termsift/internal/filter"
	"github.com/chriscorrea/termsift/internal/split"
	"github.com/chriscorrea/termsift/internal/term"
	"github.com/chriscorrea/termsift/internal/tokenize"
	"github.com/chriscorrea/termsift/internal/worker"
)

// Tokenizer turns text into tokens.
type Tokenizer interface {
	Tokenize(text string) []term.Token
}

// Filter is the token- and term-level candidate filter.
type Filter interface {
	IsPartOfCandidate(tokens []term.Token, idx int) bool
	IsCandidate(t term.Term) bool
}

// Options tune document loading and concurrency.
type Options struct {
	// Workers bounds how many documents of one domain load at once.
	Workers int
	// HTML selects the part of HTML sources that becomes text.
	HTML document.HTMLOptions
	// OnSkip is called for every source that could not be loaded.
	OnSkip func(source string, err error)
}

// Extractor is safe for concurrent use when its tokenizer is.
type Extractor struct {
	tokenizer Tokenizer
	filter    Filter
	splitter  split.Splitter
	augmenter augment.Augmenter
	opts      Options
}

// New creates an extractor from explicit stages.
func New(tokenizer Tokenizer, f Filter, s split.Splitter, a augment.Augmenter, opts Options) *Extractor {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	return &Extractor{
		tokenizer: tokenizer,
		filter:    f,
		splitter:  s,
		augmenter: a,
		opts:      opts,
	}
}

// NewWithClassifiers wires the default filter, splitter and augmenter
// around tokenizer.
func NewWithClassifiers(tokenizer Tokenizer, classifiers *classify.Set, opts Options) *Extractor {
	return New(
		tokenizer,
		filter.Default(classifiers),
		split.NewCombiner(split.NewRepeatSplitter(classifiers)),
		augment.Default(classifiers),
		opts,
	)
}

// NewDefault creates an extractor with the English and Japanese modules.
func NewDefault(opts Options) (*Extractor, error) {
	tk, err := tokenize.NewDefault()
	if err != nil {
		return nil, err
	}
	return NewWithClassifiers(tk, classify.Default(), opts), nil
}

// ExtractFromText returns the candidate terms of one text node, carrying
// the node's style.
func (e *Extractor) ExtractFromText(text string, fontsize float64, ncolor string) []term.Term {
	tokens := e.tokenizer.Tokenize(text)
	if len(tokens) == 0 {
		return nil
	}

	var candidates []term.Term
	start := -1
	flush := func(end int) {
		if start < 0 {
			return
		}
		candidates = append(candidates, e.expand(term.NewTerm(tokens[start:end], fontsize, ncolor, false))...)
		start = -1
	}

	for i := range tokens {
		if e.filter.IsPartOfCandidate(tokens, i) {
			if start < 0 {
				start = i
			}
			continue
		}
		flush(i)
	}
	flush(len(tokens))

	return candidates
}

// expand splits a raw run, augments each piece and keeps the candidates.
func (e *Extractor) expand(raw term.Term) []term.Term {
	var out []term.Term
	for _, piece := range e.splitter.Split(raw) {
		derived := append([]term.Term{piece}, e.augmenter.Augment(piece)...)
		for _, t := range derived {
			if e.filter.IsCandidate(t) {
				out = append(out, t)
			}
		}
	}
	return out
}

// ExtractFromDocument extracts every page of doc. Pages without candidates
// are kept with an empty list.
func (e *Extractor) ExtractFromDocument(doc *document.Document) term.PDFCandidateTermList {
	pdf := term.PDFCandidateTermList{Path: doc.Path}
	for _, page := range doc.Pages {
		p := term.PageCandidateTermList{PageNum: page.Num, Candidates: []term.Term{}}
		for _, node := range page.Nodes {
			p.Candidates = append(p.Candidates, e.ExtractFromText(node.Text, node.FontSize, node.NColor)...)
		}
		pdf.Pages = append(pdf.Pages, p)
	}
	return pdf
}

// ExtractFromXMLFile parses one page/text XML file and extracts it.
func (e *Extractor) ExtractFromXMLFile(ctx context.Context, path string) (term.PDFCandidateTermList, error) {
	reader, err := fetch.GetContent(ctx, path)
	if err != nil {
		return term.PDFCandidateTermList{}, err
	}
	defer reader.Close()

	doc, err := document.ParseXML(reader, path)
	if err != nil {
		return term.PDFCandidateTermList{}, err
	}
	return e.ExtractFromDocument(doc), nil
}

// ExtractFromSource loads any supported source and extracts it.
func (e *Extractor) ExtractFromSource(ctx context.Context, source string) (term.PDFCandidateTermList, error) {
	doc, err := document.NewLoader(e.opts.HTML).Load(ctx, source)
	if err != nil {
		return term.PDFCandidateTermList{}, err
	}
	return e.ExtractFromDocument(doc), nil
}

// ExtractFromDomainFiles extracts every source of a domain. Directories are
// expanded to the supported files they contain. Sources that fail to load
// are reported through OnSkip and left out; the remaining documents keep
// source order.
func (e *Extractor) ExtractFromDomainFiles(ctx context.Context, domain string, sources []string) (term.DomainCandidateTermList, error) {
	result := term.DomainCandidateTermList{Domain: domain}

	files, err := ResolveSources(sources)
	if err != nil {
		return result, err
	}

	pdfs, errs := worker.Map(ctx, e.opts.Workers, files, e.ExtractFromSource)
	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("extraction of domain %q interrupted: %w", domain, err)
	}

	for i, pdf := range pdfs {
		if errs[i] != nil {
			slog.Debug("skipping source", "domain", domain, "source", files[i], "error", errs[i])
			if e.opts.OnSkip != nil {
				e.opts.OnSkip(files[i], errs[i])
			}
			continue
		}
		result.PDFs = append(result.PDFs, pdf)
	}

	slog.Debug("extracted domain", "domain", domain, "documents", len(result.PDFs), "candidates", result.Count())
	return result, nil
}

// ResolveSources expands directories into their document files and keeps
// every other source as given.
func ResolveSources(sources []string) ([]string, error) {
	var files []string
	for _, src := range sources {
		if src == "-" || fetch.IsURL(src) {
			files = append(files, src)
			continue
		}
		info, err := os.Stat(src)
		if err != nil || !info.IsDir() {
			files = append(files, src)
			continue
		}
		expanded, err := fetch.ExpandDomainDir(src)
		if err != nil {
			return nil, err
		}
		files = append(files, expanded...)
	}
	return files, nil
}
