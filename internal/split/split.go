// Package split decomposes candidate terms that are really several terms
// concatenated together.
//
// Layout artifacts and OCR can glue repeated phrases into one run of tokens,
// for example "python book python". The RepeatSplitter cuts such runs at
// repeated tokens while keeping every token exactly once: the concatenation of
// its output always reproduces the input token sequence.
package split

import (
	"log/slog"

	"github.com/chriscorrea/termsift/internal/classify"
	"github.com/chriscorrea/termsift/internal/term"
)

// Splitter breaks one term into one or more terms.
type Splitter interface {
	// Split always returns at least one term; [t] when no split applies.
	Split(t term.Term) []term.Term
}

// Combiner applies splitters in sequence; every output of one splitter is
// fed to the next.
type Combiner struct {
	splitters []Splitter
}

// NewCombiner creates a Combiner over the given splitters.
func NewCombiner(splitters ...Splitter) *Combiner {
	return &Combiner{splitters: splitters}
}

// Split runs every splitter over the outputs of the previous one.
func (c *Combiner) Split(t term.Term) []term.Term {
	terms := []term.Term{t}
	for _, s := range c.splitters {
		var next []term.Term
		for _, cur := range terms {
			next = append(next, s.Split(cur)...)
		}
		terms = next
	}
	return terms
}

// RepeatSplitter cuts terms at repeated tokens.
type RepeatSplitter struct {
	classifiers *classify.Set
}

// NewRepeatSplitter creates a RepeatSplitter.
func NewRepeatSplitter(classifiers *classify.Set) *RepeatSplitter {
	return &RepeatSplitter{classifiers: classifiers}
}

// Split returns the forward splits, the remaining center, then the backward
// splits in original order. Terms containing a connector are compound
// phrases and are returned unchanged.
func (s *RepeatSplitter) Split(t term.Term) []term.Term {
	if t.Len() <= 1 || s.classifiers.ContainsConnector(t) {
		return []term.Term{t}
	}

	head, backward := s.backwardSplit(t)
	center, forward := s.forwardSplit(head)

	if len(backward) == 0 && len(forward) == 0 {
		return []term.Term{t}
	}

	out := make([]term.Term, 0, len(forward)+1+len(backward))
	out = append(out, forward...)
	out = append(out, center)
	for i := len(backward) - 1; i >= 0; i-- {
		out = append(out, backward[i])
	}

	slog.Debug("Split repeated term", "term", t.String(), "parts", len(out))
	return out
}

// backwardSplit scans from the end. Whenever the token just before a cut
// equals the current last token of the head, the span between them is split
// off and the head shrinks to end at that token. Splits are returned in
// discovery order, i.e. last part first.
func (s *RepeatSplitter) backwardSplit(t term.Term) (term.Term, []term.Term) {
	var splits []term.Term
	head := t.Tokens

	for {
		headLen := len(head)
		i := headLen
		for j := headLen - 1; j > 0; j-- {
			if head[i-1].Surface != head[j-1].Surface {
				continue
			}
			splits = append(splits, term.NewTerm(head[j:i], t.FontSize, t.NColor, t.Augmented))
			i = j
		}
		head = head[:i]
		if i == headLen {
			break
		}
	}

	return term.NewTerm(head, t.FontSize, t.NColor, t.Augmented), splits
}

// forwardSplit mirrors backwardSplit from the start. Whenever a token equals
// the current first token of the tail, the span before it is split off.
func (s *RepeatSplitter) forwardSplit(t term.Term) (term.Term, []term.Term) {
	var splits []term.Term
	tail := t.Tokens

	for {
		tailLen := len(tail)
		i := 0
		for j := 1; j < tailLen; j++ {
			if tail[i].Surface != tail[j].Surface {
				continue
			}
			splits = append(splits, term.NewTerm(tail[i:j], t.FontSize, t.NColor, t.Augmented))
			i = j
		}
		tail = tail[i:]
		if i == 0 {
			break
		}
	}

	return term.NewTerm(tail, t.FontSize, t.NColor, t.Augmented), splits
}
