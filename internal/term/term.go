package term

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Term is an ordered sequence of tokens plus the style of the text node it
// was found in.
type Term struct {
	Tokens    []Token `json:"tokens"`
	FontSize  float64 `json:"fontsize"`
	NColor    string  `json:"ncolor"`
	Augmented bool    `json:"augmented"`
}

// NewTerm copies tokens into a new term so that sub-slicing a parent term
// never aliases its backing array.
func NewTerm(tokens []Token, fontsize float64, ncolor string, augmented bool) Term {
	copied := make([]Token, len(tokens))
	copy(copied, tokens)
	return Term{
		Tokens:    copied,
		FontSize:  fontsize,
		NColor:    ncolor,
		Augmented: augmented,
	}
}

// Len returns the number of tokens in the term.
func (t Term) Len() int {
	return len(t.Tokens)
}

// Lemma concatenates the token lemmas. It is the grouping key for all
// frequency and ranking computations.
func (t Term) Lemma() string {
	return joinTokens(t.Tokens, func(tok Token) string { return tok.Lemma })
}

// String concatenates the token surface forms.
func (t Term) String() string {
	return joinTokens(t.Tokens, func(tok Token) string { return tok.Surface })
}

// joinTokens inserts a single space between two adjacent tokens only when
// both sides of the boundary are Latin letters or digits.
func joinTokens(tokens []Token, text func(Token) string) string {
	var b strings.Builder
	var prev string
	for i, tok := range tokens {
		cur := text(tok)
		if i > 0 && needsSpace(prev, cur) {
			b.WriteByte(' ')
		}
		b.WriteString(cur)
		prev = cur
	}
	return b.String()
}

func needsSpace(left, right string) bool {
	if left == "" || right == "" {
		return false
	}
	l, _ := utf8.DecodeLastRuneInString(left)
	r, _ := utf8.DecodeRuneInString(right)
	return isLatinWordRune(l) && isLatinWordRune(r)
}

func isLatinWordRune(r rune) bool {
	return unicode.In(r, unicode.Latin) || (r < utf8.RuneSelf && unicode.IsDigit(r))
}
