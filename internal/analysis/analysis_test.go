package analysis

import (
	"testing"

	"github.com/chriscorrea/termsift/internal/classify"
	"github.com/chriscorrea/termsift/internal/term"
)

func enTerm(augmented bool, ws ...string) term.Term {
	tokens := make([]term.Token, len(ws))
	for i, w := range ws {
		pos := term.Noun
		if w == "of" {
			pos = term.Adposition
		}
		tokens[i] = term.Token{Lang: term.English, Surface: w, Lemma: w, POS: pos}
	}
	return term.NewTerm(tokens, 10, "", augmented)
}

func domainOf(terms ...term.Term) term.DomainCandidateTermList {
	return term.DomainCandidateTermList{
		Domain: "test",
		PDFs: []term.PDFCandidateTermList{{
			Path:  "a.xml",
			Pages: []term.PageCandidateTermList{{PageNum: 1, Candidates: terms}},
		}},
	}
}

func TestLeftRightAnalyzer_Counts(t *testing.T) {
	a := NewLeftRightAnalyzer(classify.Default(), false)
	freq := a.Analyze(domainOf(
		enTerm(false, "machine", "learning", "model"),
		enTerm(false, "machine", "learning", "model"),
		enTerm(false, "theory", "of", "learning"),
	))

	tests := []struct {
		table    map[string]map[string]int
		lemma    string
		neighbor string
		want     int
	}{
		{freq.LeftFreq, "learning", "machine", 2},
		{freq.LeftFreq, "model", "learning", 2},
		{freq.RightFreq, "machine", "learning", 2},
		{freq.RightFreq, "learning", "model", 2},
		{freq.RightFreq, "theory", "of", 0},
		{freq.LeftFreq, "learning", "of", 0},
	}
	for _, tt := range tests {
		if got := tt.table[tt.lemma][tt.neighbor]; got != tt.want {
			t.Errorf("freq[%q][%q] = %d, want %d", tt.lemma, tt.neighbor, got, tt.want)
		}
	}

	if m, ok := freq.LeftFreq["of"]; !ok || len(m) != 0 {
		t.Errorf("LeftFreq[of] = %v, %v, want an empty entry", m, ok)
	}
	if m, ok := freq.LeftFreq["machine"]; !ok || len(m) != 0 {
		t.Errorf("LeftFreq[machine] = %v, %v, want an empty boundary entry", m, ok)
	}
	if got := freq.LeftSum("learning"); got != 2 {
		t.Errorf("LeftSum(learning) = %d, want 2", got)
	}
	if got := freq.RightSum("model"); got != 0 {
		t.Errorf("RightSum(model) = %d, want 0", got)
	}
}

func TestLeftRightAnalyzer_RoundTrip(t *testing.T) {
	classifiers := classify.Default()
	domain := domainOf(
		enTerm(false, "graph", "theory"),
		enTerm(false, "graph", "of", "graph", "theory"),
		enTerm(false, "theory", "graph", "theory"),
		enTerm(true, "graph"),
	)
	freq := NewLeftRightAnalyzer(classifiers, false).Analyze(domain)

	observed := make(map[[2]string]int)
	domain.Walk(func(_ term.PDFCandidateTermList, _ term.PageCandidateTermList, tm term.Term) {
		for i := 0; i+1 < len(tm.Tokens); i++ {
			x, y := tm.Tokens[i], tm.Tokens[i+1]
			if classifiers.IsMeaningless(x) || classifiers.IsMeaningless(y) {
				continue
			}
			observed[[2]string{x.Lemma, y.Lemma}]++
		}
	})

	for x, rights := range freq.RightFreq {
		for y, n := range rights {
			if observed[[2]string{x, y}] < n {
				t.Errorf("RightFreq[%q][%q] = %d, observed %d", x, y, n, observed[[2]string{x, y}])
			}
			if freq.LeftFreq[y][x] != n {
				t.Errorf("LeftFreq[%q][%q] = %d, want %d", y, x, freq.LeftFreq[y][x], n)
			}
		}
	}
}

func TestLeftRightAnalyzer_IgnoreAugmented(t *testing.T) {
	domain := domainOf(
		enTerm(false, "graph", "theory"),
		enTerm(true, "graph", "theory"),
	)

	with := NewLeftRightAnalyzer(classify.Default(), false).Analyze(domain)
	without := NewLeftRightAnalyzer(classify.Default(), true).Analyze(domain)

	if got := with.RightFreq["graph"]["theory"]; got != 2 {
		t.Errorf("RightFreq[graph][theory] = %d, want 2", got)
	}
	if got := without.RightFreq["graph"]["theory"]; got != 1 {
		t.Errorf("RightFreq[graph][theory] ignoring augmented = %d, want 1", got)
	}
}

func TestLeftRightAnalyzer_Empty(t *testing.T) {
	freq := NewLeftRightAnalyzer(classify.Default(), false).Analyze(term.DomainCandidateTermList{Domain: "empty"})
	if freq.Domain != "empty" || len(freq.LeftFreq) != 0 || len(freq.RightFreq) != 0 {
		t.Errorf("Analyze(empty) = %+v, want empty tables", freq)
	}
	if freq.LeftFreq == nil || freq.RightFreq == nil {
		t.Error("Analyze(empty) returned nil maps")
	}
}

func TestTermFrequencyAnalyzer(t *testing.T) {
	domain := domainOf(
		enTerm(false, "machine", "learning"),
		enTerm(false, "machine", "learning"),
		enTerm(true, "machine"),
	)

	tests := []struct {
		ignore    bool
		wantML    int
		wantM     int
		wantTotal int
	}{
		{false, 2, 1, 3},
		{true, 2, 0, 2},
	}
	for _, tt := range tests {
		freq := NewTermFrequencyAnalyzer(tt.ignore).Analyze(domain)
		if freq.TermFreq["machine learning"] != tt.wantML || freq.TermFreq["machine"] != tt.wantM || freq.Total != tt.wantTotal {
			t.Errorf("Analyze(ignore=%v) = %+v, want %d/%d/%d", tt.ignore, freq, tt.wantML, tt.wantM, tt.wantTotal)
		}
	}
}
