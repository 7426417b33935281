package rank

import (
	"github.com/chriscorrea/termsift/internal/classify"
	"github.com/chriscorrea/termsift/internal/term"
)

// FLR scores a term by its frequency plus the average left/right
// connectivity of its tokens:
//
//	ExtendedLog10(freq) + avg over meaningful tokens of
//	0.5 * (ExtendedLog10(left count) + ExtendedLog10(right count))
type FLR struct {
	classifiers *classify.Set
}

// NewFLR creates an FLR ranker.
func NewFLR(classifiers *classify.Set) *FLR {
	return &FLR{classifiers: classifiers}
}

// Name returns "flr".
func (r *FLR) Name() string { return MethodFLR }

// RankTerms ranks every distinct candidate of domain.
func (r *FLR) RankTerms(domain term.DomainCandidateTermList, data RankingData) MethodTermRanking {
	return rankWith(MethodFLR, domain, func(lemma string, t term.Term) float64 {
		return ExtendedLog10(float64(data.TermFreq.TermFreq[lemma])) + r.concatScore(t, data)
	})
}

// concatScore averages the left/right connectivity of the meaningful
// tokens of t.
func (r *FLR) concatScore(t term.Term, data RankingData) float64 {
	total, n := 0.0, 0
	for i, ok := range r.classifiers.Meaningful(t) {
		if !ok {
			continue
		}
		lemma := t.Tokens[i].Lemma
		left := ExtendedLog10(float64(data.LeftRight.LeftSum(lemma)))
		right := ExtendedLog10(float64(data.LeftRight.RightSum(lemma)))
		total += 0.5 * (left + right)
		n++
	}
	if n == 0 {
		return 0
	}
	return total / float64(n)
}
