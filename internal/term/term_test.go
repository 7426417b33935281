package term

import (
	"testing"
)

func en(surface string, pos POS) Token {
	return Token{Lang: English, Surface: surface, Lemma: surface, POS: pos}
}

func ja(surface string, pos POS) Token {
	return Token{Lang: Japanese, Surface: surface, Lemma: surface, POS: pos}
}

func TestTermLemma(t *testing.T) {
	tests := []struct {
		name     string
		tokens   []Token
		expected string
	}{
		{"empty", nil, ""},
		{"single english", []Token{en("model", Noun)}, "model"},
		{"english words spaced", []Token{en("machine", Noun), en("learning", Noun), en("model", Noun)}, "machine learning model"},
		{"hyphen not spaced", []Token{en("state", Noun), en("-", Symbol), en("space", Noun)}, "state-space"},
		{"japanese concatenated", []Token{ja("自然", Noun), ja("言語", Noun), ja("処理", Noun)}, "自然言語処理"},
		{"mixed scripts", []Token{en("GPU", Noun), ja("計算", Noun)}, "GPU計算"},
		{"digits and letters", []Token{en("layer", Noun), en("2", Numeral)}, "layer 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewTerm(tt.tokens, 10, "", false).Lemma()
			if got != tt.expected {
				t.Errorf("Lemma() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestNewTermCopiesTokens(t *testing.T) {
	tokens := []Token{en("a", Noun), en("b", Noun)}
	tm := NewTerm(tokens[:1], 0, "", false)
	tokens[0].Surface = "changed"

	if tm.Tokens[0].Surface != "a" {
		t.Errorf("NewTerm aliased its input: got %q", tm.Tokens[0].Surface)
	}
}

func TestNoStyleCandidates(t *testing.T) {
	mk := func(fontsize float64, words ...string) Term {
		var toks []Token
		for _, w := range words {
			toks = append(toks, en(w, Noun))
		}
		return NewTerm(toks, fontsize, "", false)
	}

	domain := DomainCandidateTermList{
		Domain: "test",
		PDFs: []PDFCandidateTermList{
			{Path: "a.xml", Pages: []PageCandidateTermList{
				{PageNum: 1, Candidates: []Term{mk(10, "graph"), mk(12, "neural", "network")}},
			}},
			{Path: "b.xml", Pages: []PageCandidateTermList{
				{PageNum: 1, Candidates: []Term{mk(20, "graph"), mk(10, "tensor")}},
			}},
		},
	}

	c := domain.NoStyleCandidates()
	want := []string{"graph", "neural network", "tensor"}
	got := c.Lemmas()
	if len(got) != len(want) {
		t.Fatalf("Lemmas() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Lemmas()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	rep, ok := c.Get("graph")
	if !ok || rep.FontSize != 10 {
		t.Errorf("Get(graph) = %+v, %v; want first-seen term with fontsize 10", rep, ok)
	}

	if domain.Count() != 4 {
		t.Errorf("Count() = %d, want 4", domain.Count())
	}
}

func TestIsAcronym(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"IT", true},
		{"GPU", true},
		{"U.S.", true},
		{"I", false},
		{"It", false},
		{"GPUs", false},
		{"3D", false},
		{"言語", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsAcronym(tt.in); got != tt.want {
			t.Errorf("IsAcronym(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestPluralAcronym(t *testing.T) {
	tests := []struct {
		in       string
		singular string
		plural   bool
	}{
		{"GPUs", "GPU", true},
		{"APIs", "API", true},
		{"Is", "Is", false},
		{"bus", "bus", false},
		{"GPU", "GPU", false},
		{"GPUS", "GPUS", false},
	}
	for _, tt := range tests {
		got, ok := PluralAcronym(tt.in)
		if got != tt.singular || ok != tt.plural {
			t.Errorf("PluralAcronym(%q) = %q, %v, want %q, %v", tt.in, got, ok, tt.singular, tt.plural)
		}
	}
}
