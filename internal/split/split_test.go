package split

import (
	"strings"
	"testing"

	"github.com/chriscorrea/termsift/internal/classify"
	"github.com/chriscorrea/termsift/internal/term"
)

func words(ws ...string) term.Term {
	tokens := make([]term.Token, len(ws))
	for i, w := range ws {
		tokens[i] = term.Token{Lang: term.English, Surface: w, Lemma: w, POS: term.Noun, Category: "NN"}
	}
	return term.NewTerm(tokens, 12, "black", false)
}

func surfaces(terms []term.Term) [][]string {
	out := make([][]string, len(terms))
	for i, t := range terms {
		for _, tok := range t.Tokens {
			out[i] = append(out[i], tok.Surface)
		}
	}
	return out
}

func concat(terms []term.Term) []string {
	var out []string
	for _, t := range terms {
		for _, tok := range t.Tokens {
			out = append(out, tok.Surface)
		}
	}
	return out
}

func TestRepeatSplitter_Split(t *testing.T) {
	s := NewRepeatSplitter(classify.Default())

	tests := []struct {
		name     string
		input    []string
		expected [][]string
	}{
		{"single token", []string{"python"}, [][]string{{"python"}}},
		{"no repeat", []string{"machine", "learning", "model"}, [][]string{{"machine", "learning", "model"}}},
		{"python book python", []string{"python", "book", "python"}, [][]string{{"python"}, {"book", "python"}}},
		{"forward repeat", []string{"a", "b", "a", "c"}, [][]string{{"a", "b"}, {"a", "c"}}},
		{"alternating", []string{"a", "b", "a", "b", "a"}, [][]string{{"a"}, {"b", "a"}, {"b", "a"}}},
		{"adjacent duplicates", []string{"graph", "graph"}, [][]string{{"graph"}, {"graph"}}},
		{"both directions", []string{"x", "y", "x", "z", "w", "z"}, [][]string{{"x", "y"}, {"x", "z"}, {"w", "z"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := surfaces(s.Split(words(tt.input...)))
			if len(got) != len(tt.expected) {
				t.Fatalf("Split(%v) = %v, want %v", tt.input, got, tt.expected)
			}
			for i := range tt.expected {
				if strings.Join(got[i], " ") != strings.Join(tt.expected[i], " ") {
					t.Errorf("Split(%v)[%d] = %v, want %v", tt.input, i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestRepeatSplitter_Completeness(t *testing.T) {
	s := NewRepeatSplitter(classify.Default())

	inputs := [][]string{
		{"python", "book", "python"},
		{"a", "b", "a", "b", "a"},
		{"a", "a", "a", "a"},
		{"x", "y", "x", "z", "w", "z"},
		{"p", "q", "r", "p", "q", "r"},
		{"data", "set", "data", "set", "model"},
	}

	for _, in := range inputs {
		parts := s.Split(words(in...))
		if got := concat(parts); strings.Join(got, " ") != strings.Join(in, " ") {
			t.Errorf("concat(Split(%v)) = %v, want the original tokens", in, got)
		}
		for _, p := range parts {
			if p.Len() == 0 {
				t.Errorf("Split(%v) produced an empty term", in)
			}
			if p.FontSize != 12 || p.NColor != "black" {
				t.Errorf("Split(%v) lost style: %+v", in, p)
			}
		}
	}
}

func TestRepeatSplitter_ConnectorUnchanged(t *testing.T) {
	s := NewRepeatSplitter(classify.Default())

	tokens := []term.Token{
		{Lang: term.English, Surface: "theory", Lemma: "theory", POS: term.Noun},
		{Lang: term.English, Surface: "of", Lemma: "of", POS: term.Adposition},
		{Lang: term.English, Surface: "theory", Lemma: "theory", POS: term.Noun},
	}
	in := term.NewTerm(tokens, 10, "", false)

	got := s.Split(in)
	if len(got) != 1 || got[0].String() != in.String() {
		t.Errorf("Split(%q) = %v, want the term unchanged", in.String(), surfaces(got))
	}
}

func TestCombiner_Split(t *testing.T) {
	c := NewCombiner(NewRepeatSplitter(classify.Default()), NewRepeatSplitter(classify.Default()))
	got := concat(c.Split(words("a", "b", "a")))
	if strings.Join(got, " ") != "a b a" {
		t.Errorf("Combiner.Split lost tokens: %v", got)
	}
}
