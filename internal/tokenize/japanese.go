package tokenize

import (
	"fmt"
	"unicode"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"

	"github.com/chriscorrea/termsift/internal/term"
)

// Japanese tokenizes Japanese text with kagome and the IPA dictionary.
type Japanese struct {
	kagome *tokenizer.Tokenizer
}

// NewJapanese loads the IPA dictionary and creates the Japanese module.
func NewJapanese() (*Japanese, error) {
	t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, fmt.Errorf("failed to create kagome tokenizer: %w", err)
	}
	return &Japanese{kagome: t}, nil
}

// Lang returns term.Japanese.
func (j *Japanese) Lang() term.Lang {
	return term.Japanese
}

// Recognizes accepts hiragana, katakana, kanji and CJK punctuation.
func (j *Japanese) Recognizes(r rune) bool {
	switch {
	case unicode.In(r, unicode.Hiragana, unicode.Katakana, unicode.Han):
		return true
	case r == 'ー' || r == '・' || r == '々' || r == '〆':
		return true
	case r >= 0x3000 && r <= 0x303F: // CJK symbols and punctuation
		return true
	default:
		return false
	}
}

// Tokenize splits text into Japanese tokens, dropping whitespace tokens.
func (j *Japanese) Tokenize(text string) []term.Token {
	kt := j.kagome.Tokenize(text)
	tokens := make([]term.Token, 0, len(kt))
	for _, k := range kt {
		pos := k.POS()
		category, subcategory := "", ""
		if len(pos) > 0 {
			category = pos[0]
		}
		if len(pos) > 1 {
			subcategory = pos[1]
		}
		if category == "記号" && subcategory == "空白" {
			continue
		}

		lemma := k.Surface
		if base, ok := k.BaseForm(); ok && base != "" && base != "*" {
			lemma = base
		}

		tokens = append(tokens, term.Token{
			Lang:        term.Japanese,
			Surface:     k.Surface,
			Lemma:       lemma,
			POS:         ipaToPOS(category, subcategory),
			Category:    category,
			Subcategory: subcategory,
		})
	}
	return tokens
}

// ipaToPOS maps the first two IPA POS levels to a coarse class.
func ipaToPOS(category, subcategory string) term.POS {
	switch category {
	case "名詞":
		switch subcategory {
		case "固有名詞":
			return term.ProperNoun
		case "数":
			return term.Numeral
		case "代名詞":
			return term.Pronoun
		case "接尾":
			return term.Suffix
		default:
			return term.Noun
		}
	case "動詞":
		return term.Verb
	case "形容詞":
		return term.Adjective
	case "副詞":
		return term.Adverb
	case "助詞":
		return term.Particle
	case "接頭詞":
		return term.Prefix
	case "連体詞":
		return term.Determiner
	case "接続詞":
		return term.Conjunction
	case "記号":
		return term.Symbol
	default:
		return term.Other
	}
}
