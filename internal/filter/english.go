package filter

import (
	"regexp"

	"github.com/chriscorrea/termsift/internal/classify"
	"github.com/chriscorrea/termsift/internal/term"
)

// variableLike matches single-token math variables such as "x" or "n1".
var variableLike = regexp.MustCompile(`^[A-Za-z][0-9]*$`)

// EnglishTokenFilter accepts nouns, participle or adjective modifiers that
// precede nominal tokens, and "of" or "-" between two term parts.
type EnglishTokenFilter struct {
	classifiers *classify.Set
}

// NewEnglishTokenFilter creates an English token filter.
func NewEnglishTokenFilter(classifiers *classify.Set) *EnglishTokenFilter {
	return &EnglishTokenFilter{classifiers: classifiers}
}

// InScope reports whether tok is English.
func (f *EnglishTokenFilter) InScope(tok term.Token) bool {
	return tok.Lang == term.English
}

// IsPartOfCandidate applies the English token rules at tokens[idx].
func (f *EnglishTokenFilter) IsPartOfCandidate(tokens []term.Token, idx int) bool {
	tok := tokens[idx]
	last := len(tokens) - 1

	switch {
	case tok.IsNominal():
		return true
	case isEnglishModifier(tok):
		return idx < last && (tokens[idx+1].IsNominal() || isEnglishModifier(tokens[idx+1]) || f.classifiers.IsConnector(tokens[idx+1]))
	case f.classifiers.IsAdposition(tok):
		if tok.Lemma != "of" || idx == 0 || idx == last {
			return false
		}
		return tokens[idx-1].IsNominal() && (tokens[idx+1].IsNominal() || isEnglishModifier(tokens[idx+1]))
	case f.classifiers.IsConnector(tok):
		if idx == 0 || idx == last {
			return false
		}
		prev, next := tokens[idx-1], tokens[idx+1]
		return (prev.IsNominal() || isEnglishModifier(prev)) && (next.IsNominal() || isEnglishModifier(next))
	default:
		return false
	}
}

// isEnglishModifier is true for adjectives and participles.
func isEnglishModifier(tok term.Token) bool {
	if tok.Lang != term.English {
		return false
	}
	if tok.POS == term.Adjective {
		return true
	}
	return tok.POS == term.Verb && (tok.Category == "VBG" || tok.Category == "VBN")
}

// EnglishTermFilter rejects English terms that are not well-formed noun phrases.
type EnglishTermFilter struct {
	classifiers *classify.Set
}

// NewEnglishTermFilter creates an English term filter.
func NewEnglishTermFilter(classifiers *classify.Set) *EnglishTermFilter {
	return &EnglishTermFilter{classifiers: classifiers}
}

// InScope is true when every token is English.
func (f *EnglishTermFilter) InScope(t term.Term) bool {
	if t.Len() == 0 {
		return false
	}
	for _, tok := range t.Tokens {
		if tok.Lang != term.English {
			return false
		}
	}
	return true
}

// IsCandidate checks term boundaries, content and length.
func (f *EnglishTermFilter) IsCandidate(t term.Term) bool {
	first, last := t.Tokens[0], t.Tokens[t.Len()-1]

	switch {
	case f.classifiers.IsConnector(first) || f.classifiers.IsMeaningless(first):
		return false
	case !last.IsNominal():
		return false
	case !hasContentToken(t):
		return false
	case t.Len() == 1 && variableLike.MatchString(first.Surface):
		return false
	case tooLong(t):
		return false
	default:
		return true
	}
}
