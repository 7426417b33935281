package app

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/chriscorrea/termsift/internal/termerr"
)

func TestMain(m *testing.M) {
	stderr = io.Discard
	os.Exit(m.Run())
}

func TestOutputFormat_String(t *testing.T) {
	tests := []struct {
		format   OutputFormat
		expected string
	}{
		{Markdown, "Markdown"},
		{Text, "Text"},
		{JSON, "JSON"},
		{OutputFormat(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.format.String(); got != tt.expected {
			t.Errorf("OutputFormat(%d).String() = %q, want %q", tt.format, got, tt.expected)
		}
	}
}

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		input       string
		expected    OutputFormat
		expectError bool
	}{
		{input: "", expected: Markdown},
		{input: "md", expected: Markdown},
		{input: "Markdown", expected: Markdown},
		{input: "txt", expected: Text},
		{input: "text", expected: Text},
		{input: " JSON ", expected: JSON},
		{input: "yaml", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseOutputFormat(tt.input)
			if tt.expectError {
				if !errors.Is(err, termerr.ErrInvalidConfig) {
					t.Errorf("ParseOutputFormat(%q) error = %v, want ErrInvalidConfig", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseOutputFormat(%q) error = %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("ParseOutputFormat(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParseDomainArg(t *testing.T) {
	tests := []struct {
		name     string
		arg      string
		expected Domain
	}{
		{
			name:     "named sources",
			arg:      "ml=a.xml, b.xml,,",
			expected: Domain{Name: "ml", Sources: []string{"a.xml", "b.xml"}},
		},
		{
			name:     "directory",
			arg:      "corpora/biology/",
			expected: Domain{Name: "biology", Sources: []string{"corpora/biology/"}},
		},
		{
			name:     "single file",
			arg:      "papers/attention.xml",
			expected: Domain{Name: "attention", Sources: []string{"papers/attention.xml"}},
		},
		{
			name:     "stdin",
			arg:      "-",
			expected: Domain{Name: "stdin", Sources: []string{"-"}},
		},
		{
			name:     "URL with query",
			arg:      "https://example.com/wiki/Graph_theory?action=view",
			expected: Domain{Name: "Graph_theory", Sources: []string{"https://example.com/wiki/Graph_theory?action=view"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseDomainArg(tt.arg); !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("ParseDomainArg(%q) = %+v, want %+v", tt.arg, got, tt.expected)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		cfg := DefaultConfig()
		cfg.Domains = []Domain{{Name: "ml", Sources: []string{"ml.xml"}}}
		return cfg
	}

	tests := []struct {
		name     string
		mutate   func(c *Config)
		expected error
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "no domains", mutate: func(c *Config) { c.Domains = nil }, expected: termerr.ErrNoSources},
		{name: "domain without sources", mutate: func(c *Config) { c.Domains[0].Sources = nil }, expected: termerr.ErrNoSources},
		{name: "unnamed domain", mutate: func(c *Config) { c.Domains[0].Name = "" }, expected: termerr.ErrInvalidConfig},
		{
			name: "duplicate domain",
			mutate: func(c *Config) {
				c.Domains = append(c.Domains, Domain{Name: "ml", Sources: []string{"other.xml"}})
			},
			expected: termerr.ErrInvalidConfig,
		},
		{name: "no methods", mutate: func(c *Config) { c.Methods = nil }, expected: termerr.ErrInvalidConfig},
		{name: "unknown method", mutate: func(c *Config) { c.Methods = []string{"flr", "pagerank"} }, expected: termerr.ErrUnknownMethod},
		{name: "negative top", mutate: func(c *Config) { c.TopN = -1 }, expected: termerr.ErrInvalidConfig},
		{name: "negative threshold", mutate: func(c *Config) { c.HITSThreshold = -1 }, expected: termerr.ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.expected == nil {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.expected) {
				t.Errorf("Validate() error = %v, want %v", err, tt.expected)
			}
		})
	}
}

func sampleReport() *Report {
	return &Report{
		RunID: "01HZY3J5E8M3Q2R4T6V8W0X2Y4",
		Domains: []DomainReport{
			{
				Domain:     "ml",
				Documents:  2,
				Candidates: 10,
				Distinct:   4,
				Methods: []MethodReport{
					{
						Method: "flr",
						Terms: []RankedTerm{
							{Rank: 1, Text: "machine learning", Lemma: "machine learning", Score: 1.23456, Pages: []string{"a.xml#2", "b.xml#1"}},
							{Rank: 2, Text: "a|b", Lemma: "a|b", Score: 0.5},
						},
					},
					{Method: "hits", Terms: []RankedTerm{}},
				},
			},
		},
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		format   OutputFormat
		contains []string
	}{
		{
			name:   "markdown",
			format: Markdown,
			contains: []string{
				"# ml\n",
				"2 documents, 10 candidates, 4 distinct",
				"## FLR",
				"| Rank | Term | Score | Pages |",
				"| 1 | machine learning | 1.2346 | a.xml#2, b.xml#1 |",
				"| 2 | a\\|b | 0.5000 |  |",
				"## HITS\n\n_No candidate terms._",
			},
		},
		{
			name:   "text",
			format: Text,
			contains: []string{
				"ml: 2 documents, 10 candidates, 4 distinct",
				"[flr]",
				"   1. machine learning\t1.2346\ta.xml#2 b.xml#1",
				"   2. a|b\t0.5000\n",
				"[hits]",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Format(sampleReport(), tt.format)
			if err != nil {
				t.Fatalf("Format() error = %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(out, want) {
					t.Errorf("Format() output missing %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestFormat_JSON(t *testing.T) {
	out, err := Format(sampleReport(), JSON)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var decoded Report
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("Format(JSON) produced invalid JSON: %v", err)
	}
	if decoded.RunID != "01HZY3J5E8M3Q2R4T6V8W0X2Y4" || len(decoded.Domains) != 1 {
		t.Fatalf("decoded report = %+v", decoded)
	}
	if got := decoded.Domains[0].Methods[0].Terms[0].Pages; len(got) != 2 {
		t.Errorf("decoded pages = %v, want 2 pages", got)
	}
	if strings.Contains(out, `"pages": null`) {
		t.Error("terms without pages should omit the field")
	}
}

func TestFormat_UnknownFormat(t *testing.T) {
	if _, err := Format(sampleReport(), OutputFormat(42)); err == nil {
		t.Error("Format(unknown) expected error")
	}
}

const mlXML = `<?xml version="1.0" encoding="UTF-8"?>
<pdf2xml>
<page id="1">
<text font-size="18" ncolor="#000000">Machine Learning</text>
<text font-size="10" ncolor="#000000">Machine learning models learn from training data.</text>
</page>
<page id="2">
<text font-size="10" ncolor="#000000">A neural network is a machine learning model.</text>
</page>
</pdf2xml>`

const bioXML = `<?xml version="1.0" encoding="UTF-8"?>
<pdf2xml>
<page id="1">
<text font-size="10" ncolor="#000000">Protein folding determines protein structure.</text>
</page>
</pdf2xml>`

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func pipelineConfig(t *testing.T) Config {
	t.Helper()
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.Quiet = true
	cfg.Methods = []string{"flr", "hits", "tfidf"}
	cfg.LocatePages = 2
	cfg.Cache.Path = filepath.Join(dir, "cache", "termsift.db")
	cfg.Domains = []Domain{
		{Name: "ml", Sources: []string{writeFixture(t, dir, "ml.xml", mlXML)}},
		{Name: "bio", Sources: []string{writeFixture(t, dir, "bio.xml", bioXML), filepath.Join(dir, "missing.xml")}},
	}
	return cfg
}

func TestAnalyze(t *testing.T) {
	if testing.Short() {
		t.Skip("loads the tokenizer dictionaries")
	}
	cfg := pipelineConfig(t)

	report, err := Analyze(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if report.RunID == "" || report.GeneratedAt.IsZero() {
		t.Errorf("report missing run metadata: %+v", report)
	}
	if len(report.Domains) != 2 {
		t.Fatalf("len(Domains) = %d, want 2", len(report.Domains))
	}

	for i, want := range []string{"ml", "bio"} {
		d := report.Domains[i]
		if d.Domain != want {
			t.Errorf("Domains[%d] = %q, want %q", i, d.Domain, want)
		}
		if d.Documents != 1 || d.Candidates == 0 || d.Distinct == 0 {
			t.Errorf("domain %q stats = %+v", d.Domain, d)
		}
		if len(d.Methods) != 3 {
			t.Fatalf("domain %q has %d methods, want 3", d.Domain, len(d.Methods))
		}
		for _, m := range d.Methods {
			if len(m.Terms) == 0 || len(m.Terms) > d.Distinct {
				t.Errorf("domain %q method %s returned %d terms", d.Domain, m.Method, len(m.Terms))
			}
			for j, term := range m.Terms {
				if term.Rank != j+1 {
					t.Errorf("term %q rank = %d, want %d", term.Text, term.Rank, j+1)
				}
				if j > 0 && term.Score > m.Terms[j-1].Score {
					t.Errorf("method %s is not sorted at %d", m.Method, j)
				}
			}
		}
	}
}

func TestAnalyze_UsesCache(t *testing.T) {
	if testing.Short() {
		t.Skip("loads the tokenizer dictionaries")
	}
	cfg := pipelineConfig(t)
	cfg.Domains = cfg.Domains[:1]

	first, err := Analyze(context.Background(), cfg)
	if err != nil {
		t.Fatalf("first Analyze() error = %v", err)
	}
	second, err := Analyze(context.Background(), cfg)
	if err != nil {
		t.Fatalf("second Analyze() error = %v", err)
	}

	if first.Domains[0].Cached {
		t.Error("first run reported a cache hit")
	}
	if !second.Domains[0].Cached {
		t.Error("second run did not use the cache")
	}
	if !reflect.DeepEqual(first.Domains[0].Methods, second.Domains[0].Methods) {
		t.Error("cached run produced different rankings")
	}
	if first.RunID == second.RunID {
		t.Error("runs share a run ID")
	}
}

func TestCandidatesKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.xml")
	if err := os.WriteFile(path, []byte(`<root/>`), 0o644); err != nil {
		t.Fatal(err)
	}
	p := &pipeline{cfg: DefaultConfig()}

	tests := []struct {
		name      string
		files     []string
		cacheable bool
	}{
		{"local file", []string{path}, true},
		{"stdin", []string{path, "-"}, false},
		{"url", []string{"https://example.com/docs/intro"}, false},
		{"url among files", []string{path, "http://example.com/a.html"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, ok := p.candidatesKey("cs", tt.files)
			if ok != tt.cacheable {
				t.Errorf("candidatesKey(%v) cacheable = %v, want %v", tt.files, ok, tt.cacheable)
			}
			if ok == (key == "") {
				t.Errorf("candidatesKey(%v) = %q with cacheable %v", tt.files, key, ok)
			}
		})
	}

	// the key follows the file contents
	before, _ := p.candidatesKey("cs", []string{path})
	if err := os.WriteFile(path, []byte(`<root><page id="1"/></root>`), 0o644); err != nil {
		t.Fatal(err)
	}
	after, _ := p.candidatesKey("cs", []string{path})
	if before == after {
		t.Error("candidatesKey did not change after the file changed")
	}
}

func TestAnalyze_NoContent(t *testing.T) {
	if testing.Short() {
		t.Skip("loads the tokenizer dictionaries")
	}
	cfg := DefaultConfig()
	cfg.Quiet = true
	cfg.Cache.Enabled = false
	cfg.Domains = []Domain{{Name: "empty", Sources: []string{filepath.Join(t.TempDir(), "missing.xml")}}}

	if _, err := Analyze(context.Background(), cfg); !errors.Is(err, termerr.ErrNoContentExtracted) {
		t.Errorf("Analyze() error = %v, want ErrNoContentExtracted", err)
	}
}

func TestRun_InvalidConfig(t *testing.T) {
	if _, err := Run(context.Background(), Config{}); !errors.Is(err, termerr.ErrNoSources) {
		t.Errorf("Run() error = %v, want ErrNoSources", err)
	}
}

func TestRun_Canceled(t *testing.T) {
	if testing.Short() {
		t.Skip("loads the tokenizer dictionaries")
	}
	cfg := pipelineConfig(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Run(ctx, cfg); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}

func TestOpenCache(t *testing.T) {
	tests := []struct {
		name     string
		cfg      CacheConfig
		wantType string
	}{
		{name: "disabled", cfg: CacheConfig{}, wantType: "cache.Nop"},
		{name: "memory", cfg: CacheConfig{Enabled: true}, wantType: "*cache.MemoryCache"},
		{name: "sqlite", cfg: CacheConfig{Enabled: true, Path: filepath.Join(t.TempDir(), "c.db")}, wantType: "*cache.LayeredCache"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, closeStore, err := openCache(context.Background(), tt.cfg)
			if err != nil {
				t.Fatalf("openCache() error = %v", err)
			}
			defer closeStore()
			if got := reflect.TypeOf(store).String(); got != tt.wantType {
				t.Errorf("openCache() type = %s, want %s", got, tt.wantType)
			}
		})
	}
}
