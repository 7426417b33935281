package tokenize

import (
	"log/slog"
	"strings"
	"sync"
	"unicode"

	"github.com/jdkato/prose/v2"

	"github.com/chriscorrea/termsift/internal/term"
)

// English tokenizes and tags Latin-script text with prose's perceptron tagger.
type English struct {
	mu    sync.Mutex // serializes access to the shared tagging model
	model *prose.Model
}

// NewEnglish creates the English language module. The tagging model is
// loaded lazily on first use and then reused.
func NewEnglish() *English {
	return &English{}
}

// Lang returns term.English.
func (e *English) Lang() term.Lang {
	return term.English
}

// Recognizes accepts Latin letters, digits, and punctuation or symbols.
func (e *English) Recognizes(r rune) bool {
	switch {
	case unicode.In(r, unicode.Latin):
		return true
	case unicode.IsDigit(r):
		return true
	case unicode.IsPunct(r) || unicode.IsSymbol(r):
		return true
	default:
		return false
	}
}

// Tokenize splits text into tagged English tokens.
func (e *English) Tokenize(text string) []term.Token {
	doc, err := e.newDocument(text)
	if err != nil {
		slog.Debug("English tagging failed", "error", err, "textLength", len(text))
		return []term.Token{}
	}

	var tagged []prose.Token
	for _, pt := range doc.Tokens() {
		if strings.TrimSpace(pt.Text) != "" {
			tagged = append(tagged, pt)
		}
	}

	tokens := make([]term.Token, 0, len(tagged))
	for i, pt := range tagged {
		// inside an all-caps run such as a shouted heading, capitals say
		// nothing about acronyms
		shouting := (i > 0 && term.IsAcronym(tagged[i-1].Text)) ||
			(i < len(tagged)-1 && term.IsAcronym(tagged[i+1].Text))
		tokens = append(tokens, englishToken(pt.Text, pt.Tag, shouting))
	}
	return tokens
}

// englishToken builds a token from a tagged word.
func englishToken(text, tag string, shouting bool) term.Token {
	if shouting {
		if _, plural := term.PluralAcronym(text); !plural && isClosedClass(tag) {
			return term.Token{
				Lang:     term.English,
				Surface:  text,
				Lemma:    strings.ToLower(text),
				POS:      pennToPOS(tag, text),
				Category: tag,
			}
		}
	}

	tag = acronymTag(tag, text)
	return term.Token{
		Lang:     term.English,
		Surface:  text,
		Lemma:    englishLemma(text, tag),
		POS:      pennToPOS(tag, text),
		Category: tag,
	}
}

func (e *English) newDocument(text string) (*prose.Document, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	opts := []prose.DocOpt{
		prose.WithSegmentation(false),
		prose.WithExtraction(false),
	}
	if e.model != nil {
		opts = append(opts, prose.UsingModel(e.model))
	}

	doc, err := prose.NewDocument(text, opts...)
	if err != nil {
		return nil, err
	}
	if e.model == nil {
		e.model = doc.Model
	}
	return doc, nil
}

// pennToPOS maps a Penn Treebank tag to a coarse class.
func pennToPOS(tag, text string) term.POS {
	switch {
	case tag == "NN" || tag == "NNS":
		return term.Noun
	case tag == "NNP" || tag == "NNPS":
		return term.ProperNoun
	case strings.HasPrefix(tag, "JJ"):
		return term.Adjective
	case strings.HasPrefix(tag, "VB"):
		return term.Verb
	case strings.HasPrefix(tag, "RB") || tag == "WRB":
		return term.Adverb
	case tag == "CD":
		return term.Numeral
	case tag == "IN":
		return term.Adposition
	case tag == "TO" || tag == "RP" || tag == "POS":
		return term.Particle
	case tag == "DT" || tag == "PDT" || tag == "WDT":
		return term.Determiner
	case strings.HasPrefix(tag, "PRP") || strings.HasPrefix(tag, "WP") || tag == "EX":
		return term.Pronoun
	case tag == "CC":
		return term.Conjunction
	case tag == "SYM" || tag == "$" || tag == "#":
		return term.Symbol
	case isPunctuation(text):
		return term.Punctuation
	default:
		return term.Other
	}
}

func isPunctuation(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsPunct(r) && !unicode.IsSymbol(r) {
			return false
		}
	}
	return true
}

// acronymTag retags capitalized acronyms that the tagger mistook for
// function words ("IT" as a pronoun, "OR" as a conjunction) as proper nouns.
func acronymTag(tag, text string) string {
	if _, plural := term.PluralAcronym(text); plural {
		return "NNPS"
	}
	if term.IsAcronym(text) && isClosedClass(tag) {
		return "NNP"
	}
	return tag
}

// isClosedClass is true for Penn tags of function words.
func isClosedClass(tag string) bool {
	switch tag {
	case "PRP", "PRP$", "IN", "DT", "PDT", "WDT", "CC", "TO", "RP", "EX", "MD", "FW", "UH":
		return true
	}
	return false
}

// englishLemma lowercases common words and singularizes plural nouns.
// Proper nouns and acronyms keep their case; plural acronyms such as "GPUs"
// lose their "s" so they share a lemma with the singular.
func englishLemma(surface, tag string) string {
	if singular, ok := term.PluralAcronym(surface); ok {
		return singular
	}
	lemma := surface
	if tag != "NNP" && tag != "NNPS" && !term.IsAcronym(surface) {
		lemma = strings.ToLower(surface)
	}
	if tag == "NNS" || tag == "NNPS" {
		lemma = singularize(lemma)
	}
	return lemma
}

// singularize strips regular English plural endings.
func singularize(word string) string {
	lower := strings.ToLower(word)
	switch {
	case len(word) > 4 && strings.HasSuffix(lower, "ies"):
		return word[:len(word)-3] + "y"
	case strings.HasSuffix(lower, "sses"),
		strings.HasSuffix(lower, "xes"),
		strings.HasSuffix(lower, "ches"),
		strings.HasSuffix(lower, "shes"):
		return word[:len(word)-2]
	case strings.HasSuffix(lower, "ss"),
		strings.HasSuffix(lower, "us"),
		strings.HasSuffix(lower, "is"):
		return word
	case len(word) > 3 && strings.HasSuffix(lower, "s"):
		return word[:len(word)-1]
	default:
		return word
	}
}
