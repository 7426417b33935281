// Package tokenize turns text into language-annotated tokens.
//
// A Tokenizer holds several language modules at once. Text is NFKC-normalized,
// cut into runs of runes that belong to the same module, and each run is handed
// to the module that recognizes its script, so a single text node may mix
// English and Japanese. Runs in a script that no module recognizes become
// tokens of term.Unknown language; they never join a candidate term.
//
// Usage Example:
//
//	tk, err := tokenize.NewDefault()
//	tokens := tk.Tokenize("深層学習 and machine learning model")
package tokenize

import (
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/chriscorrea/termsift/internal/term"
)

// LanguageModule tokenizes the text of one language.
type LanguageModule interface {
	// Lang returns the language tag assigned to produced tokens.
	Lang() term.Lang

	// Recognizes reports whether r belongs to the module's script.
	Recognizes(r rune) bool

	// Tokenize splits a run of the module's script into tokens.
	Tokenize(text string) []term.Token
}

// Tokenizer dispatches script runs to the registered language modules.
type Tokenizer struct {
	modules []LanguageModule
}

// New creates a tokenizer over the given modules. Earlier modules win when
// more than one recognizes a rune.
func New(modules ...LanguageModule) *Tokenizer {
	return &Tokenizer{modules: modules}
}

// NewDefault creates a tokenizer with the Japanese and English modules.
func NewDefault() (*Tokenizer, error) {
	ja, err := NewJapanese()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize japanese module: %w", err)
	}
	return New(ja, NewEnglish()), nil
}

// unknownOwner marks runes no module recognizes.
const unknownOwner = -1

// run is a stretch of text owned by one module (or by none).
type run struct {
	owner int
	text  string
}

// Tokenize splits text into tokens. It is a pure function of its input.
func (t *Tokenizer) Tokenize(text string) []term.Token {
	if strings.TrimSpace(text) == "" {
		return []term.Token{}
	}

	text = norm.NFKC.String(text)
	runs := t.splitRuns(text)

	tokens := make([]term.Token, 0, len(runs))
	for _, r := range runs {
		if r.owner == unknownOwner {
			tokens = append(tokens, unknownTokens(r.text)...)
			continue
		}
		tokens = append(tokens, t.modules[r.owner].Tokenize(r.text)...)
	}

	slog.Debug("Tokenized text", "textLength", len(text), "runs", len(runs), "tokens", len(tokens))
	return tokens
}

// splitRuns groups consecutive runes by owning module. Whitespace belongs to
// whichever run is open so that a module sees whole phrases.
func (t *Tokenizer) splitRuns(text string) []run {
	var runs []run
	var current strings.Builder
	owner := unknownOwner
	open := false

	flush := func() {
		if s := strings.TrimSpace(current.String()); s != "" {
			runs = append(runs, run{owner: owner, text: s})
		}
		current.Reset()
		open = false
	}

	for _, r := range text {
		if unicode.IsSpace(r) {
			current.WriteRune(r)
			continue
		}

		o := t.ownerOf(r)
		if open && o != owner {
			flush()
		}
		if !open {
			owner = o
			open = true
		}
		current.WriteRune(r)
	}
	flush()

	return runs
}

func (t *Tokenizer) ownerOf(r rune) int {
	for i, m := range t.modules {
		if m.Recognizes(r) {
			return i
		}
	}
	return unknownOwner
}

// unknownTokens emits one token per whitespace-separated word of an
// unrecognized script.
func unknownTokens(text string) []term.Token {
	fields := strings.Fields(text)
	tokens := make([]term.Token, 0, len(fields))
	for _, f := range fields {
		tokens = append(tokens, term.Token{
			Lang:    term.Unknown,
			Surface: f,
			Lemma:   f,
			POS:     term.Other,
		})
	}
	return tokens
}
