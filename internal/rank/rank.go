// Package rank scores the candidate terms of a domain by termhood.
//
// Every ranker returns exactly one ScoredTerm per distinct candidate lemma,
// sorted by descending score. Ties keep the order in which lemmas were first
// seen in the domain, so repeated runs produce identical rankings.
//
// Usage Example:
//
//	data := rank.NewRankingData(domain, classify.Default(), false)
//	ranker, err := rank.New("hits", rank.Options{})
//	ranking := ranker.RankTerms(domain, data)
package rank

import (
	"math"
	"sort"

	"github.com/chriscorrea/termsift/internal/analysis"
	"github.com/chriscorrea/termsift/internal/classify"
	"github.com/chriscorrea/termsift/internal/term"
)

// LogFloor is the value ExtendedLog10 returns for non-positive input.
const LogFloor = -1.0

// ExtendedLog10 is log10 guarded against zero, negative and NaN input.
func ExtendedLog10(x float64) float64 {
	if !(x > 0) {
		return LogFloor
	}
	return math.Log10(x)
}

// RankingData bundles the per-domain statistics rankers read.
type RankingData struct {
	Domain    string                            `json:"domain"`
	TermFreq  analysis.DomainTermFrequency      `json:"term_freq"`
	LeftRight analysis.DomainLeftRightFrequency `json:"left_right"`
}

// NewRankingData analyzes a domain once for every ranker.
func NewRankingData(domain term.DomainCandidateTermList, classifiers *classify.Set, ignoreAugmented bool) RankingData {
	return RankingData{
		Domain:    domain.Domain,
		TermFreq:  analysis.NewTermFrequencyAnalyzer(ignoreAugmented).Analyze(domain),
		LeftRight: analysis.NewLeftRightAnalyzer(classifiers, ignoreAugmented).Analyze(domain),
	}
}

// ScoredTerm is a ranked candidate.
type ScoredTerm struct {
	Term  term.Term `json:"-"`
	Lemma string    `json:"lemma"`
	Text  string    `json:"text"`
	Score float64   `json:"score"`
}

// MethodTermRanking is the ranking of one domain by one method.
type MethodTermRanking struct {
	Domain  string       `json:"domain"`
	Method  string       `json:"method"`
	Ranking []ScoredTerm `json:"ranking"`
}

// Top returns at most n leading terms; n <= 0 returns all of them.
func (r MethodTermRanking) Top(n int) []ScoredTerm {
	if n <= 0 || n >= len(r.Ranking) {
		return r.Ranking
	}
	return r.Ranking[:n]
}

// Ranker scores the distinct candidates of a domain.
type Ranker interface {
	Name() string
	RankTerms(domain term.DomainCandidateTermList, data RankingData) MethodTermRanking
}

// rankWith scores every distinct lemma with score and sorts the result.
func rankWith(method string, domain term.DomainCandidateTermList, score func(lemma string, t term.Term) float64) MethodTermRanking {
	candidates := domain.NoStyleCandidates()
	ranking := make([]ScoredTerm, 0, candidates.Len())
	candidates.Each(func(lemma string, t term.Term) {
		s := score(lemma, t)
		if math.IsNaN(s) {
			s = LogFloor
		}
		ranking = append(ranking, ScoredTerm{Term: t, Lemma: lemma, Text: t.String(), Score: s})
	})

	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Score > ranking[j].Score
	})

	return MethodTermRanking{Domain: domain.Domain, Method: method, Ranking: ranking}
}
