// Package augment derives additional candidate terms from a term.
//
// Every derived term is flagged Augmented so that frequency analysis and
// ranking can leave it out of their statistics.
package augment

import (
	"github.com/chriscorrea/termsift/internal/classify"
	"github.com/chriscorrea/termsift/internal/term"
)

// Augmenter derives zero or more terms from a term.
type Augmenter interface {
	Augment(t term.Term) []term.Term
}

// Combiner returns the union of all augmenters' outputs, in augmenter order.
type Combiner struct {
	augmenters []Augmenter
}

// NewCombiner creates a Combiner over the given augmenters.
func NewCombiner(augmenters ...Augmenter) *Combiner {
	return &Combiner{augmenters: augmenters}
}

// Default returns the English adposition and Japanese modifying particle
// augmenters.
func Default(classifiers *classify.Set) *Combiner {
	return NewCombiner(
		NewConnectorAugmenter(term.English, classifiers.IsAdposition),
		NewConnectorAugmenter(term.Japanese, classifiers.IsModifyingParticle),
	)
}

// Augment collects the outputs of every augmenter.
func (c *Combiner) Augment(t term.Term) []term.Term {
	var out []term.Term
	for _, a := range c.augmenters {
		out = append(out, a.Augment(t)...)
	}
	return out
}

// ConnectorAugmenter derives the sub-spans between connector tokens.
//
// With connector positions c1..ck in a term of n tokens, boundaries are
// [-1, c1, ..., ck, n] and every span strictly between two boundaries is
// emitted, except the span covering the whole term. "A of B of C" yields
// "A", "B", "C", "A of B" and "B of C".
type ConnectorAugmenter struct {
	lang        term.Lang
	isConnector func(term.Token) bool
}

// NewConnectorAugmenter creates an augmenter splitting at tokens of lang for
// which isConnector holds.
func NewConnectorAugmenter(lang term.Lang, isConnector func(term.Token) bool) *ConnectorAugmenter {
	return &ConnectorAugmenter{lang: lang, isConnector: isConnector}
}

// Augment returns the connector-bounded sub-spans of t, shortest first.
func (a *ConnectorAugmenter) Augment(t term.Term) []term.Term {
	n := t.Len()
	boundaries := []int{-1}
	for i, tok := range t.Tokens {
		if tok.Lang == a.lang && a.isConnector(tok) {
			boundaries = append(boundaries, i)
		}
	}
	boundaries = append(boundaries, n)

	if len(boundaries) == 2 {
		return nil
	}

	var out []term.Term
	for length := 1; length < len(boundaries)-1; length++ {
		for idx := 0; idx+length < len(boundaries); idx++ {
			i, j := boundaries[idx], boundaries[idx+length]
			if i == -1 && j == n {
				continue
			}
			if j-i <= 1 {
				continue // adjacent connectors leave nothing between them
			}
			out = append(out, term.NewTerm(t.Tokens[i+1:j], t.FontSize, t.NColor, true))
		}
	}
	return out
}
