package rank

import (
	"log/slog"
	"math"
	"sort"

	"github.com/chriscorrea/termsift/internal/analysis"
	"github.com/chriscorrea/termsift/internal/classify"
	"github.com/chriscorrea/termsift/internal/term"
)

// HITS defaults.
const (
	DefaultHITSThreshold = 1e-8
	DefaultHITSMaxLoop   = 1000
)

// HITS treats token lemmas as nodes of a bipartite graph: a token's
// authority comes from the hubs on its left, its hub value from the
// authorities on its right. The converged values are combined along each
// term, the first token contributing its hub value, the last its authority
// and interior tokens the mean of both.
type HITS struct {
	Threshold   float64
	MaxLoop     int
	classifiers *classify.Set
}

// NewHITS creates a HITS ranker. Non-positive arguments fall back to the
// defaults.
func NewHITS(classifiers *classify.Set, threshold float64, maxLoop int) *HITS {
	if threshold <= 0 {
		threshold = DefaultHITSThreshold
	}
	if maxLoop <= 0 {
		maxLoop = DefaultHITSMaxLoop
	}
	return &HITS{Threshold: threshold, MaxLoop: maxLoop, classifiers: classifiers}
}

// Name returns "hits".
func (r *HITS) Name() string { return MethodHITS }

// Convergence is the fixed point reached by HITS.
type Convergence struct {
	Auth       map[string]float64
	Hub        map[string]float64
	Iterations int
	Converged  bool
}

// Converge iterates authority and hub values until the largest change falls
// below Threshold or MaxLoop iterations have run. Both vectors are
// L2-normalized after each update; an all-zero vector stays zero.
func (r *HITS) Converge(freq analysis.DomainLeftRightFrequency) Convergence {
	nodes := make([]string, 0, len(freq.LeftFreq))
	index := make(map[string]int)
	addNode := func(lemma string) {
		if _, ok := index[lemma]; !ok {
			index[lemma] = len(nodes)
			nodes = append(nodes, lemma)
		}
	}
	for lemma := range freq.LeftFreq {
		addNode(lemma)
	}
	for lemma := range freq.RightFreq {
		addNode(lemma)
	}
	sort.Strings(nodes)
	for i, lemma := range nodes {
		index[lemma] = i
	}

	lefts := adjacency(nodes, index, freq.LeftFreq)
	rights := adjacency(nodes, index, freq.RightFreq)

	n := len(nodes)
	auth := make([]float64, n)
	hub := make([]float64, n)
	for i := range nodes {
		auth[i], hub[i] = 1, 1
	}

	result := Convergence{}
	newAuth := make([]float64, n)
	newHub := make([]float64, n)
	for result.Iterations < r.MaxLoop {
		result.Iterations++

		for i := range nodes {
			s := 0.0
			for _, l := range lefts[i] {
				s += hub[l]
			}
			newAuth[i] = s
		}
		normalize(newAuth)

		for i := range nodes {
			s := 0.0
			for _, rr := range rights[i] {
				s += newAuth[rr]
			}
			newHub[i] = s
		}
		normalize(newHub)

		delta := 0.0
		for i := range nodes {
			delta = math.Max(delta, math.Abs(newAuth[i]-auth[i]))
			delta = math.Max(delta, math.Abs(newHub[i]-hub[i]))
		}
		auth, newAuth = newAuth, auth
		hub, newHub = newHub, hub

		if delta < r.Threshold {
			result.Converged = true
			break
		}
	}

	result.Auth = make(map[string]float64, n)
	result.Hub = make(map[string]float64, n)
	for i, lemma := range nodes {
		result.Auth[lemma] = auth[i]
		result.Hub[lemma] = hub[i]
	}

	slog.Debug("HITS finished", "domain", freq.Domain, "nodes", n, "iterations", result.Iterations, "converged", result.Converged)
	return result
}

// adjacency lists each node's distinct neighbors as sorted node indices.
func adjacency(nodes []string, index map[string]int, table map[string]map[string]int) [][]int {
	adj := make([][]int, len(nodes))
	for i, lemma := range nodes {
		for neighbor, count := range table[lemma] {
			if count <= 0 {
				continue
			}
			if j, ok := index[neighbor]; ok {
				adj[i] = append(adj[i], j)
			}
		}
		sort.Ints(adj[i])
	}
	return adj
}

func normalize(v []float64) {
	norm := 0.0
	for _, x := range v {
		norm += x * x
	}
	if norm == 0 {
		return
	}
	norm = math.Sqrt(norm)
	for i := range v {
		v[i] /= norm
	}
}

// RankTerms ranks every distinct candidate of domain.
func (r *HITS) RankTerms(domain term.DomainCandidateTermList, data RankingData) MethodTermRanking {
	c := r.Converge(data.LeftRight)
	return rankWith(MethodHITS, domain, func(lemma string, t term.Term) float64 {
		return ExtendedLog10(float64(data.TermFreq.TermFreq[lemma])) + r.positionScore(t, c)
	})
}

// positionScore weighs hub scores at the head of t and authority scores
// at its tail, averaged over the meaningful tokens.
func (r *HITS) positionScore(t term.Term, c Convergence) float64 {
	total, n := 0.0, 0
	last := t.Len() - 1
	for i, ok := range r.classifiers.Meaningful(t) {
		if !ok {
			continue
		}
		lemma := t.Tokens[i].Lemma
		hub, auth := c.Hub[lemma], c.Auth[lemma]
		switch {
		case last == 0:
			total += (hub + auth) / 2
		case i == 0:
			total += hub
		case i == last:
			total += auth
		default:
			total += (hub + auth) / 2
		}
		n++
	}
	if n == 0 {
		return 0
	}
	return total / float64(n)
}
