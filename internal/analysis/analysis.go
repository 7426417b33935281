// Package analysis computes the per-domain statistics that rankers consume.
package analysis

import (
	"log/slog"

	"github.com/chriscorrea/termsift/internal/classify"
	"github.com/chriscorrea/termsift/internal/term"
)

// DomainLeftRightFrequency records, for every token lemma, how often each
// other lemma occurred immediately to its left and to its right.
type DomainLeftRightFrequency struct {
	Domain    string                    `json:"domain"`
	LeftFreq  map[string]map[string]int `json:"left_freq"`
	RightFreq map[string]map[string]int `json:"right_freq"`
}

// LeftSum returns the total count of left neighbors of lemma.
func (f DomainLeftRightFrequency) LeftSum(lemma string) int {
	return sum(f.LeftFreq[lemma])
}

// RightSum returns the total count of right neighbors of lemma.
func (f DomainLeftRightFrequency) RightSum(lemma string) int {
	return sum(f.RightFreq[lemma])
}

func sum(m map[string]int) int {
	n := 0
	for _, c := range m {
		n += c
	}
	return n
}

// LeftRightAnalyzer builds DomainLeftRightFrequency tables.
type LeftRightAnalyzer struct {
	IgnoreAugmented bool
	classifiers     *classify.Set
}

// NewLeftRightAnalyzer creates an analyzer sharing the given classifiers.
func NewLeftRightAnalyzer(classifiers *classify.Set, ignoreAugmented bool) *LeftRightAnalyzer {
	return &LeftRightAnalyzer{IgnoreAugmented: ignoreAugmented, classifiers: classifiers}
}

// Analyze walks every term of the domain. Meaningless tokens get empty
// entries and are never counted as anybody's neighbor; boundary tokens get
// an empty entry on their open side.
func (a *LeftRightAnalyzer) Analyze(domain term.DomainCandidateTermList) DomainLeftRightFrequency {
	freq := DomainLeftRightFrequency{
		Domain:    domain.Domain,
		LeftFreq:  make(map[string]map[string]int),
		RightFreq: make(map[string]map[string]int),
	}

	domain.Walk(func(_ term.PDFCandidateTermList, _ term.PageCandidateTermList, t term.Term) {
		if a.IgnoreAugmented && t.Augmented {
			return
		}
		tokens := t.Tokens
		meaningful := a.classifiers.Meaningful(t)
		for i, tok := range tokens {
			left := entry(freq.LeftFreq, tok.Lemma)
			right := entry(freq.RightFreq, tok.Lemma)
			if !meaningful[i] {
				continue
			}
			if i > 0 && meaningful[i-1] {
				left[tokens[i-1].Lemma]++
			}
			if i < len(tokens)-1 && meaningful[i+1] {
				right[tokens[i+1].Lemma]++
			}
		}
	})

	slog.Debug("analyzed left/right frequency", "domain", domain.Domain, "lemmas", len(freq.LeftFreq))
	return freq
}

// entry returns the neighbor map of lemma, creating an empty one when the
// lemma has not been seen. Existing counts are never reset.
func entry(table map[string]map[string]int, lemma string) map[string]int {
	m, ok := table[lemma]
	if !ok {
		m = make(map[string]int)
		table[lemma] = m
	}
	return m
}

// DomainTermFrequency counts term occurrences by lemma.
type DomainTermFrequency struct {
	Domain   string         `json:"domain"`
	TermFreq map[string]int `json:"term_freq"`
	Total    int            `json:"total"`
}

// TermFrequencyAnalyzer builds DomainTermFrequency tables.
type TermFrequencyAnalyzer struct {
	IgnoreAugmented bool
}

// NewTermFrequencyAnalyzer creates a term frequency analyzer.
func NewTermFrequencyAnalyzer(ignoreAugmented bool) *TermFrequencyAnalyzer {
	return &TermFrequencyAnalyzer{IgnoreAugmented: ignoreAugmented}
}

// Analyze counts every term of the domain under its lemma.
func (a *TermFrequencyAnalyzer) Analyze(domain term.DomainCandidateTermList) DomainTermFrequency {
	freq := DomainTermFrequency{Domain: domain.Domain, TermFreq: make(map[string]int)}
	domain.Walk(func(_ term.PDFCandidateTermList, _ term.PageCandidateTermList, t term.Term) {
		if a.IgnoreAugmented && t.Augmented {
			return
		}
		freq.TermFreq[t.Lemma()]++
		freq.Total++
	})
	return freq
}
