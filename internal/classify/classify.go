// Package classify provides language-specific token classifiers.
//
// The classify package decides, token by token, whether a token carries meaning
// for term scoring and whether it acts as a connector inside a compound term
// (an English adposition such as "of", a Japanese modifying particle "の", or a
// connector symbol such as "-" or "・").
//
// Classifiers hold no mutable state. A single process-wide Set is built once by
// Default and shared by the splitter, the frequency analyzer and every ranker,
// so that all of them agree on what "meaningless" means.
package classify

import (
	"sync"

	"github.com/chriscorrea/termsift/internal/term"
)

// Classifier answers language-specific questions about a single token.
// Every predicate returns false for tokens outside the classifier's scope.
type Classifier interface {
	// InScope reports whether the classifier understands the token's language.
	InScope(tok term.Token) bool

	// IsMeaningless reports whether the token should be ignored for scoring.
	IsMeaningless(tok term.Token) bool

	// IsModifyingParticle reports whether the token is a modifying particle
	// joining two nominal phrases.
	IsModifyingParticle(tok term.Token) bool

	// IsConnectorSymbol reports whether the token is a symbol that joins two
	// parts of a compound term.
	IsConnectorSymbol(tok term.Token) bool

	// IsAdposition reports whether the token is an adposition.
	IsAdposition(tok term.Token) bool
}

// Set combines classifiers for every installed language.
type Set struct {
	classifiers []Classifier
}

// NewSet creates a Set over the given classifiers.
func NewSet(classifiers ...Classifier) *Set {
	return &Set{classifiers: classifiers}
}

var (
	defaultSet     *Set
	defaultSetOnce sync.Once
)

// Default returns the shared Set of English and Japanese classifiers.
func Default() *Set {
	defaultSetOnce.Do(func() {
		defaultSet = NewSet(NewEnglish(), NewJapanese())
	})
	return defaultSet
}

// IsMeaningless reports whether any registered classifier considers the token
// meaningless. Tokens in an unrecognized script are always meaningless.
func (s *Set) IsMeaningless(tok term.Token) bool {
	if tok.Lang == term.Unknown {
		return true
	}
	for _, c := range s.classifiers {
		if c.IsMeaningless(tok) {
			return true
		}
	}
	return false
}

// IsConnector reports whether the token is a modifying particle, an adposition
// or a connector symbol in any registered language.
func (s *Set) IsConnector(tok term.Token) bool {
	for _, c := range s.classifiers {
		if c.IsModifyingParticle(tok) || c.IsAdposition(tok) || c.IsConnectorSymbol(tok) {
			return true
		}
	}
	return false
}

// IsAdposition reports whether any registered classifier sees an adposition.
func (s *Set) IsAdposition(tok term.Token) bool {
	for _, c := range s.classifiers {
		if c.IsAdposition(tok) {
			return true
		}
	}
	return false
}

// IsModifyingParticle reports whether any registered classifier sees a
// modifying particle.
func (s *Set) IsModifyingParticle(tok term.Token) bool {
	for _, c := range s.classifiers {
		if c.IsModifyingParticle(tok) {
			return true
		}
	}
	return false
}

// ContainsConnector reports whether any token of t is a connector.
func (s *Set) ContainsConnector(t term.Term) bool {
	for _, tok := range t.Tokens {
		if s.IsConnector(tok) {
			return true
		}
	}
	return false
}

// Meaningful reports for each token of t whether it carries meaning.
func (s *Set) Meaningful(t term.Term) []bool {
	mask := make([]bool, len(t.Tokens))
	for i, tok := range t.Tokens {
		mask[i] = !s.IsMeaningless(tok)
	}
	return mask
}
