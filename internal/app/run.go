// Package app contains the core application logic for the termsift CLI tool.
// It handles the main business logic separated from CLI concerns.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/chriscorrea/termsift/internal/analysis"
	"github.com/chriscorrea/termsift/internal/cache"
	"github.com/chriscorrea/termsift/internal/classify"
	"github.com/chriscorrea/termsift/internal/document"
	"github.com/chriscorrea/termsift/internal/extract"
	"github.com/chriscorrea/termsift/internal/fetch"
	"github.com/chriscorrea/termsift/internal/locate"
	"github.com/chriscorrea/termsift/internal/rank"
	"github.com/chriscorrea/termsift/internal/spinner"
	"github.com/chriscorrea/termsift/internal/term"
	"github.com/chriscorrea/termsift/internal/termerr"
	"github.com/chriscorrea/termsift/internal/worker"
)

// stderr receives warnings and progress.
var stderr io.Writer = os.Stderr

// Report is the result of one run.
type Report struct {
	RunID       string         `json:"run_id"`
	GeneratedAt time.Time      `json:"generated_at"`
	Domains     []DomainReport `json:"domains"`
}

// DomainReport holds the rankings of one domain.
type DomainReport struct {
	Domain     string         `json:"domain"`
	Documents  int            `json:"documents"`
	Candidates int            `json:"candidates"`
	Distinct   int            `json:"distinct"`
	Cached     bool           `json:"cached"`
	Methods    []MethodReport `json:"methods"`
}

// MethodReport is one method's ranking, cut to the configured length.
type MethodReport struct {
	Method string       `json:"method"`
	Terms  []RankedTerm `json:"terms"`
}

// RankedTerm is a ranked term with the pages it occurs on.
type RankedTerm struct {
	Rank  int      `json:"rank"`
	Text  string   `json:"text"`
	Lemma string   `json:"lemma"`
	Score float64  `json:"score"`
	Pages []string `json:"pages,omitempty"`
}

// Run executes the termsift pipeline and returns formatted output.
func Run(ctx context.Context, cfg Config) (string, error) {
	report, err := Analyze(ctx, cfg)
	if err != nil {
		return "", err
	}
	return Format(report, cfg.OutputFormat)
}

// domainData is the outcome of extracting one domain.
type domainData struct {
	candidates term.DomainCandidateTermList
	ranking    rank.RankingData
	cached     bool
}

// Analyze extracts every domain, then ranks each one with every method.
// Domains are processed concurrently; the report keeps configuration order.
func Analyze(ctx context.Context, cfg Config) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// the cache is optional; a disabled cache is a no-op store
	store, closeStore, err := openCache(ctx, cfg.Cache)
	if err != nil {
		return nil, err
	}
	defer closeStore()

	classifiers := classify.Default()
	extractor, err := extract.NewDefault(extract.Options{
		Workers: cfg.SourceWorkers,
		HTML:    document.HTMLOptions{Selector: cfg.Selector, IncludeAll: cfg.IncludeAll},
		// unreadable sources are skipped, not fatal
		OnSkip: func(source string, err error) {
			if !cfg.Quiet {
				fmt.Fprintf(stderr, "Warning: failed to process source %q: %v\n", source, err)
			}
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create extractor: %w", err)
	}

	p := &pipeline{cfg: cfg, store: store, extractor: extractor, classifiers: classifiers}

	// step 1: extract candidates and frequency statistics per domain
	sp := spinner.NewProgress(ctx, stderr, "Extracting terms", len(cfg.Domains), cfg.Quiet)
	sp.Start()
	data, errs := worker.Map(ctx, cfg.Workers, cfg.Domains, func(ctx context.Context, d Domain) (domainData, error) {
		defer sp.Advance()
		return p.extractDomain(ctx, d)
	})
	sp.Stop()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("domain %q: %w", cfg.Domains[i].Name, err)
		}
	}

	documents := 0
	freqs := make([]rank.RankingData, len(data))
	for i, d := range data {
		documents += len(d.candidates.PDFs)
		freqs[i] = d.ranking
	}
	// every source failed or was empty
	if documents == 0 {
		return nil, termerr.ErrNoContentExtracted
	}

	// step 2: rank against a corpus spanning every domain
	corpus := rank.NewCorpus(termFrequencies(freqs)...)
	sp = spinner.NewProgress(ctx, stderr, "Ranking terms", len(data), cfg.Quiet)
	sp.Start()
	reports, errs := worker.Map(ctx, cfg.Workers, data, func(ctx context.Context, d domainData) (DomainReport, error) {
		defer sp.Advance()
		return p.rankDomain(ctx, d, corpus)
	})
	sp.Stop()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("domain %q: %w", cfg.Domains[i].Name, err)
		}
	}

	return &Report{
		RunID:       ulid.Make().String(),
		GeneratedAt: time.Now().UTC(),
		Domains:     reports,
	}, nil
}

type pipeline struct {
	cfg         Config
	store       cache.Cache
	extractor   *extract.Extractor
	classifiers *classify.Set
}

// extractDomain loads a domain from the cache or its sources. Results are
// only cached when every source is a local file that loaded.
func (p *pipeline) extractDomain(ctx context.Context, d Domain) (domainData, error) {
	files, err := extract.ResolveSources(d.Sources)
	if err != nil {
		return domainData{}, err
	}

	key, cacheable := p.candidatesKey(d.Name, files)
	rankingKey := cache.Key(key, "ranking", strconv.FormatBool(p.cfg.IgnoreAugmented))

	var out domainData
	if cacheable && cache.GetJSON(p.store, key, &out.candidates) {
		// frequency tables depend on IgnoreAugmented, so they have their own key
		out.cached = true
		if !cache.GetJSON(p.store, rankingKey, &out.ranking) {
			out.ranking = rank.NewRankingData(out.candidates, p.classifiers, p.cfg.IgnoreAugmented)
			p.save(rankingKey, out.ranking)
		}
		slog.Debug("using cached candidates", "domain", d.Name, "documents", len(out.candidates.PDFs))
		return out, nil
	}

	out.candidates, err = p.extractor.ExtractFromDomainFiles(ctx, d.Name, files)
	if err != nil {
		return domainData{}, err
	}
	out.ranking = rank.NewRankingData(out.candidates, p.classifiers, p.cfg.IgnoreAugmented)

	// a partial load is not cached, so a fixed source is picked up next run
	if cacheable && len(out.candidates.PDFs) == len(files) {
		p.save(key, out.candidates)
		p.save(rankingKey, out.ranking)
	}
	return out, nil
}

func (p *pipeline) candidatesKey(name string, files []string) (string, bool) {
	parts := []string{"candidates", name, p.cfg.Selector, strconv.FormatBool(p.cfg.IncludeAll)}
	for _, f := range files {
		// stdin and remote pages can change without the name changing
		if f == "-" || fetch.IsURL(f) {
			return "", false
		}
		parts = append(parts, fetch.Fingerprint(f))
	}
	return cache.Key(parts...), true
}

// save writes v to the cache. Failures only cost a recomputation next run.
func (p *pipeline) save(key string, v any) {
	if err := cache.SetJSON(p.store, key, v, p.cfg.Cache.TTL); err != nil {
		slog.Debug("failed to write cache entry", "key", key, "error", err)
	}
}

// rankDomain runs every configured method over one domain.
func (p *pipeline) rankDomain(ctx context.Context, d domainData, corpus *rank.Corpus) (DomainReport, error) {
	report := DomainReport{
		Domain:     d.candidates.Domain,
		Documents:  len(d.candidates.PDFs),
		Candidates: d.candidates.Count(),
		Distinct:   d.candidates.NoStyleCandidates().Len(),
		Cached:     d.cached,
	}

	// page lookup indexes the whole domain, so it is built only when asked for
	var locator *locate.Locator
	if p.cfg.LocatePages > 0 {
		locator = locate.NewLocator(d.candidates)
	}

	opts := rank.Options{
		Classifiers:   p.classifiers,
		HITSThreshold: p.cfg.HITSThreshold,
		HITSMaxLoop:   p.cfg.HITSMaxLoop,
		Corpus:        corpus,
	}
	for _, method := range p.cfg.Methods {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		ranker, err := rank.New(method, opts)
		if err != nil {
			return report, err
		}
		ranking := ranker.RankTerms(d.candidates, d.ranking)

		// empty rankings encode as [] in JSON, not null
		mr := MethodReport{Method: ranker.Name(), Terms: []RankedTerm{}}
		for i, st := range ranking.Top(p.cfg.TopN) {
			rt := RankedTerm{Rank: i + 1, Text: st.Text, Lemma: st.Lemma, Score: st.Score}
			if locator != nil {
				for _, ref := range locator.Locate(st.Text, p.cfg.LocatePages) {
					rt.Pages = append(rt.Pages, ref.String())
				}
			}
			mr.Terms = append(mr.Terms, rt)
		}
		report.Methods = append(report.Methods, mr)
	}
	return report, nil
}

func termFrequencies(data []rank.RankingData) []analysis.DomainTermFrequency {
	out := make([]analysis.DomainTermFrequency, len(data))
	for i, d := range data {
		out[i] = d.TermFreq
	}
	return out
}

// openCache returns the configured cache and a function releasing it.
func openCache(ctx context.Context, cfg CacheConfig) (cache.Cache, func(), error) {
	if !cfg.Enabled {
		return cache.Nop{}, func() {}, nil
	}
	memory := cache.NewMemoryCache(cfg.TTL, 10*time.Minute)
	// without a path the cache lives for this run only
	if cfg.Path == "" {
		return memory, func() {}, nil
	}

	disk, err := cache.OpenSQLite(ctx, cfg.Path, cfg.TTL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open cache %q: %w", cfg.Path, err)
	}
	closeDisk := func() {
		if err := disk.Close(); err != nil {
			slog.Debug("failed to close cache", "path", cfg.Path, "error", err)
		}
	}
	return cache.NewLayeredCache(memory, disk), closeDisk, nil
}

// DefaultCachePath returns the SQLite cache location under the user cache dir.
func DefaultCachePath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "termsift", "cache.db")
}
