package classify

import "github.com/chriscorrea/termsift/internal/term"

// IPA dictionary part-of-speech labels used by the Japanese classifier.
const (
	ipaParticle        = "助詞"
	ipaAdnominalizer   = "連体化"
	ipaSymbol          = "記号"
	modifyingParticleN = "の"
)

var japaneseConnectorSymbols = map[string]struct{}{
	"・": {},
	"-": {},
}

// Japanese classifies tokens produced by the Japanese language module.
type Japanese struct{}

// NewJapanese creates a Japanese classifier.
func NewJapanese() *Japanese {
	return &Japanese{}
}

// InScope reports whether tok is a Japanese token.
func (j *Japanese) InScope(tok term.Token) bool {
	return tok.Lang == term.Japanese
}

// IsMeaningless is true for symbols and the modifying particle "の".
func (j *Japanese) IsMeaningless(tok term.Token) bool {
	if !j.InScope(tok) {
		return false
	}
	return tok.Category == ipaSymbol || tok.POS == term.Symbol || j.IsModifyingParticle(tok)
}

// IsModifyingParticle is true for the adnominal particle "の".
func (j *Japanese) IsModifyingParticle(tok term.Token) bool {
	if !j.InScope(tok) {
		return false
	}
	return tok.Surface == modifyingParticleN && tok.Category == ipaParticle && tok.Subcategory == ipaAdnominalizer
}

// IsConnectorSymbol is true for "・" and "-" symbol tokens.
func (j *Japanese) IsConnectorSymbol(tok term.Token) bool {
	if !j.InScope(tok) {
		return false
	}
	if tok.Category != ipaSymbol && tok.POS != term.Symbol {
		return false
	}
	_, ok := japaneseConnectorSymbols[tok.Surface]
	return ok
}

// IsAdposition is always false: Japanese postpositions are particles.
func (j *Japanese) IsAdposition(tok term.Token) bool {
	return false
}
