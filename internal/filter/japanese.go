package filter

import (
	"unicode"

	"github.com/chriscorrea/termsift/internal/classify"
	"github.com/chriscorrea/termsift/internal/term"
)

// excludedNounSubcategories are IPA noun subcategories that never start or
// continue a term on their own.
var excludedNounSubcategories = map[string]struct{}{
	"代名詞":  {},
	"非自立":  {},
	"副詞可能": {},
	"特殊":   {},
}

// JapaneseTokenFilter accepts content nouns, prefixes before nouns, and "の"
// or "・" between two nominal tokens.
type JapaneseTokenFilter struct {
	classifiers *classify.Set
}

// NewJapaneseTokenFilter creates a Japanese token filter.
func NewJapaneseTokenFilter(classifiers *classify.Set) *JapaneseTokenFilter {
	return &JapaneseTokenFilter{classifiers: classifiers}
}

// InScope reports whether tok is Japanese.
func (f *JapaneseTokenFilter) InScope(tok term.Token) bool {
	return tok.Lang == term.Japanese
}

// IsPartOfCandidate applies the Japanese token rules at tokens[idx].
func (f *JapaneseTokenFilter) IsPartOfCandidate(tokens []term.Token, idx int) bool {
	tok := tokens[idx]
	last := len(tokens) - 1

	switch {
	case isJapaneseContentNoun(tok):
		return true
	case tok.POS == term.Prefix:
		return idx < last && isNominalAny(tokens[idx+1])
	case f.classifiers.IsConnector(tok):
		if idx == 0 || idx == last {
			return false
		}
		return isNominalAny(tokens[idx-1]) && isNominalAny(tokens[idx+1])
	default:
		return false
	}
}

func isJapaneseContentNoun(tok term.Token) bool {
	if tok.Lang != term.Japanese || tok.Category != "名詞" {
		return false
	}
	_, excluded := excludedNounSubcategories[tok.Subcategory]
	return !excluded
}

// isNominalAny accepts Japanese content nouns and English nominal tokens, so
// that mixed-script terms such as "GPU計算" hold together.
func isNominalAny(tok term.Token) bool {
	if tok.Lang == term.Japanese {
		return isJapaneseContentNoun(tok)
	}
	return tok.IsNominal()
}

// JapaneseTermFilter rejects Japanese terms with bad boundaries or no content.
type JapaneseTermFilter struct {
	classifiers *classify.Set
}

// NewJapaneseTermFilter creates a Japanese term filter.
func NewJapaneseTermFilter(classifiers *classify.Set) *JapaneseTermFilter {
	return &JapaneseTermFilter{classifiers: classifiers}
}

// InScope is true when any token is Japanese.
func (f *JapaneseTermFilter) InScope(t term.Term) bool {
	for _, tok := range t.Tokens {
		if tok.Lang == term.Japanese {
			return true
		}
	}
	return false
}

// IsCandidate checks term boundaries, content and length.
func (f *JapaneseTermFilter) IsCandidate(t term.Term) bool {
	first, last := t.Tokens[0], t.Tokens[t.Len()-1]

	switch {
	case f.classifiers.IsConnector(first) || f.classifiers.IsMeaningless(first):
		return false
	case first.POS == term.Suffix:
		return false
	case f.classifiers.IsConnector(last) || last.POS == term.Prefix:
		return false
	case !isNominalAny(last):
		return false
	case !hasContentToken(t):
		return false
	case t.Len() == 1 && isSingleKana(first.Surface):
		return false
	case tooLong(t):
		return false
	default:
		return true
	}
}

func isSingleKana(s string) bool {
	runes := []rune(s)
	return len(runes) == 1 && unicode.In(runes[0], unicode.Hiragana, unicode.Katakana)
}
