// Package filter decides which tokens form candidate terms and which
// assembled terms qualify as candidates.
//
// Token filters look at one token in the context of its neighbors and report
// whether it may be part of a candidate. Term filters look at a whole term.
// Each filter declares the tokens or terms it is responsible for through
// InScope; a Combiner ORs the in-scope token filters and ANDs the in-scope
// term filters.
package filter

import (
	"github.com/chriscorrea/termsift/internal/classify"
	"github.com/chriscorrea/termsift/internal/term"
)

// TokenFilter decides token-level candidate membership.
type TokenFilter interface {
	InScope(tok term.Token) bool
	IsPartOfCandidate(tokens []term.Token, idx int) bool
}

// TermFilter decides whether a term is a candidate.
type TermFilter interface {
	InScope(t term.Term) bool
	IsCandidate(t term.Term) bool
}

// Combiner aggregates token and term filters.
type Combiner struct {
	tokenFilters []TokenFilter
	termFilters  []TermFilter
}

// NewCombiner creates a Combiner over the given filters.
func NewCombiner(tokenFilters []TokenFilter, termFilters []TermFilter) *Combiner {
	return &Combiner{
		tokenFilters: tokenFilters,
		termFilters:  termFilters,
	}
}

// Default returns the English and Japanese filters sharing one classifier set.
func Default(classifiers *classify.Set) *Combiner {
	return NewCombiner(
		[]TokenFilter{NewEnglishTokenFilter(classifiers), NewJapaneseTokenFilter(classifiers)},
		[]TermFilter{NewEnglishTermFilter(classifiers), NewJapaneseTermFilter(classifiers)},
	)
}

// IsPartOfCandidate is true when any in-scope token filter accepts the token.
func (c *Combiner) IsPartOfCandidate(tokens []term.Token, idx int) bool {
	if idx < 0 || idx >= len(tokens) {
		return false
	}
	tok := tokens[idx]
	for _, f := range c.tokenFilters {
		if f.InScope(tok) && f.IsPartOfCandidate(tokens, idx) {
			return true
		}
	}
	return false
}

// IsCandidate is true when the term is non-empty and every in-scope term
// filter accepts it.
func (c *Combiner) IsCandidate(t term.Term) bool {
	if t.Len() == 0 {
		return false
	}
	for _, f := range c.termFilters {
		if f.InScope(t) && !f.IsCandidate(t) {
			return false
		}
	}
	return true
}

// maxTermRunes bounds the surface length of a candidate term.
const maxTermRunes = 80

func tooLong(t term.Term) bool {
	return len([]rune(t.String())) > maxTermRunes
}

// hasContentToken reports whether any token is a noun, proper noun or adjective.
func hasContentToken(t term.Term) bool {
	for _, tok := range t.Tokens {
		switch tok.POS {
		case term.Noun, term.ProperNoun, term.Adjective:
			return true
		}
	}
	return false
}
