// Package term defines the tokens, terms and candidate lists that flow
// through the termsift extraction and ranking pipeline.
//
// Tokens are produced by the tokenize package and never mutated. Terms are
// assembled by the extract package and collected into per-page, per-document
// and per-domain candidate lists, which are the read-only input to the
// analysis and rank packages.
package term

import (
	"strings"
	"unicode"
)

// Lang identifies the language module that produced a token.
type Lang string

const (
	// English tokens come from the prose-based English module
	English Lang = "en"
	// Japanese tokens come from the kagome-based Japanese module
	Japanese Lang = "ja"
	// Unknown marks text in a script no language module recognizes
	Unknown Lang = ""
)

// POS is a coarse, language-independent part-of-speech class.
type POS string

const (
	Noun        POS = "NOUN"
	ProperNoun  POS = "PROPN"
	Adjective   POS = "ADJ"
	Verb        POS = "VERB"
	Adverb      POS = "ADV"
	Numeral     POS = "NUM"
	Adposition  POS = "ADP"
	Particle    POS = "PART"
	Determiner  POS = "DET"
	Pronoun     POS = "PRON"
	Conjunction POS = "CONJ"
	Prefix      POS = "PREFIX"
	Suffix      POS = "SUFFIX"
	Symbol      POS = "SYM"
	Punctuation POS = "PUNCT"
	Other       POS = "X"
)

// Token is a single lexical unit.
type Token struct {
	Lang    Lang   `json:"lang"`
	Surface string `json:"surface"`
	Lemma   string `json:"lemma"`
	POS     POS    `json:"pos"`

	// Category and Subcategory hold the language-specific tag: the Penn
	// Treebank tag for English, the first two IPA POS levels for Japanese.
	Category    string `json:"category,omitempty"`
	Subcategory string `json:"subcategory,omitempty"`
}

// String returns the surface form of the token.
func (t Token) String() string {
	return t.Surface
}

// IsNominal reports whether the token is a noun, proper noun or numeral.
func (t Token) IsNominal() bool {
	return t.POS == Noun || t.POS == ProperNoun || t.POS == Numeral
}

// IsAcronym reports whether s is written in capitals, like "IT" or "GPU".
// A single capital letter is not an acronym.
func IsAcronym(s string) bool {
	letters := 0
	for _, r := range s {
		if !unicode.IsLetter(r) {
			continue
		}
		// caseless scripts such as kanji have no acronyms
		if !unicode.IsUpper(r) {
			return false
		}
		letters++
	}
	return letters >= 2
}

// PluralAcronym returns the singular of an acronym with a plural "s", as in
// "GPUs", and whether s had that form.
func PluralAcronym(s string) (string, bool) {
	if len(s) < 3 || !strings.HasSuffix(s, "s") {
		return s, false
	}
	head := s[:len(s)-1]
	if !IsAcronym(head) {
		return s, false
	}
	return head, true
}
