package classify

import (
	"strings"

	"github.com/kljensen/snowball"

	"github.com/chriscorrea/termsift/internal/term"
)

// functionWords are English words that never carry termhood on their own.
// They are matched by stem so that inflected forms are caught too.
var functionWords = []string{
	"a", "an", "the", "this", "that", "these", "those",
	"and", "or", "but", "nor", "if", "than", "then",
	"of", "in", "on", "at", "to", "for", "from", "by", "with", "into", "onto", "via",
	"is", "are", "was", "were", "be", "been", "being",
	"it", "its", "we", "our", "they", "their",
	"such", "each", "every", "some", "any", "all",
}

// English classifies tokens produced by the English language module.
type English struct {
	stopStems map[string]struct{}
}

// NewEnglish creates and initializes a new English classifier
func NewEnglish() *English {
	stems := make(map[string]struct{}, len(functionWords))
	for _, w := range functionWords {
		stems[stem(w)] = struct{}{}
	}
	return &English{stopStems: stems}
}

// InScope reports whether tok is an English token.
func (e *English) InScope(tok term.Token) bool {
	return tok.Lang == term.English
}

// IsMeaningless is true for symbols, punctuation, adpositions and function words.
func (e *English) IsMeaningless(tok term.Token) bool {
	if !e.InScope(tok) {
		return false
	}
	if tok.POS == term.Symbol || tok.POS == term.Punctuation || e.IsAdposition(tok) {
		return true
	}
	// "IT" or "OR" written as a name is not the function word
	if tok.Category == "NNP" || tok.Category == "NNPS" || term.IsAcronym(tok.Lemma) {
		return false
	}
	_, stop := e.stopStems[stem(tok.Lemma)]
	return stop
}

// IsModifyingParticle is always false: English has no modifying particles.
func (e *English) IsModifyingParticle(tok term.Token) bool {
	return false
}

// IsConnectorSymbol is true for a hyphen or slash used as a symbol token,
// as in "client-server" or "input/output".
func (e *English) IsConnectorSymbol(tok term.Token) bool {
	if !e.InScope(tok) {
		return false
	}
	return (tok.POS == term.Symbol || tok.POS == term.Punctuation) && (tok.Surface == "-" || tok.Surface == "/")
}

// IsAdposition is true for tokens tagged as adpositions.
func (e *English) IsAdposition(tok term.Token) bool {
	if !e.InScope(tok) {
		return false
	}
	return tok.POS == term.Adposition
}

// stem lowercases and stems a word, falling back to the lowercased word if
// the stemmer rejects it.
func stem(word string) string {
	word = strings.ToLower(word)
	stemmed, err := snowball.Stem(word, "english", true)
	if err != nil {
		return word
	}
	return stemmed
}
