package rank

import (
	"log/slog"
	"math"

	"github.com/chriscorrea/termsift/internal/analysis"
	"github.com/chriscorrea/termsift/internal/term"
)

// Corpus holds the domain frequencies of every domain being ranked, so
// that a term common to all domains scores lower than one specific to a
// single domain.
type Corpus struct {
	DocFrequencies map[string]int // number of domains containing each lemma
	TotalDomains   int
}

// NewCorpus creates a corpus from the term frequencies of each domain.
func NewCorpus(domains ...analysis.DomainTermFrequency) *Corpus {
	corpus := &Corpus{
		DocFrequencies: make(map[string]int),
		TotalDomains:   len(domains),
	}
	for _, d := range domains {
		for lemma, count := range d.TermFreq {
			if count > 0 {
				corpus.DocFrequencies[lemma]++
			}
		}
	}
	slog.Debug("Created TF-IDF corpus", "domains", corpus.TotalDomains, "lemmas", len(corpus.DocFrequencies))
	return corpus
}

// IDF returns ln(1 + N/df). Lemmas the corpus has never seen count as
// appearing in one domain.
func (c *Corpus) IDF(lemma string) float64 {
	n := max(c.TotalDomains, 1)
	df := max(c.DocFrequencies[lemma], 1)
	return math.Log(1 + float64(n)/float64(df))
}

// TFIDF scores a term by its relative frequency in the domain times its
// inverse domain frequency across the corpus.
type TFIDF struct {
	corpus *Corpus
}

// NewTFIDF creates a TF-IDF ranker. A nil corpus ranks each domain on its
// own, which reduces the score to relative frequency.
func NewTFIDF(corpus *Corpus) *TFIDF {
	return &TFIDF{corpus: corpus}
}

// Name returns "tfidf".
func (r *TFIDF) Name() string { return MethodTFIDF }

// RankTerms ranks every distinct candidate of domain.
func (r *TFIDF) RankTerms(domain term.DomainCandidateTermList, data RankingData) MethodTermRanking {
	corpus := r.corpus
	if corpus == nil {
		corpus = NewCorpus(data.TermFreq)
	}
	return rankWith(MethodTFIDF, domain, func(lemma string, _ term.Term) float64 {
		if data.TermFreq.Total == 0 {
			return 0
		}
		tf := float64(data.TermFreq.TermFreq[lemma]) / float64(data.TermFreq.Total)
		return tf * corpus.IDF(lemma)
	})
}
