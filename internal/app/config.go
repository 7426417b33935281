package app

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chriscorrea/termsift/internal/fetch"
	"github.com/chriscorrea/termsift/internal/rank"
	"github.com/chriscorrea/termsift/internal/termerr"
)

// OutputFormat defines the output format for results
type OutputFormat int

const (
	// markdown output format (default)
	Markdown OutputFormat = iota
	// plaintext output format
	Text
	// JSON output format
	JSON
)

// String returns the string representation of the output
func (f OutputFormat) String() string {
	switch f {
	case Markdown:
		return "Markdown"
	case Text:
		return "Text"
	case JSON:
		return "JSON"
	default:
		return "Unknown"
	}
}

// ParseOutputFormat accepts md/markdown, txt/text and json.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "md", "markdown":
		return Markdown, nil
	case "txt", "text":
		return Text, nil
	case "json":
		return JSON, nil
	default:
		return Markdown, fmt.Errorf("output format %q: %w", s, termerr.ErrInvalidConfig)
	}
}

// Domain is a named group of sources ranked together.
type Domain struct {
	Name    string   `mapstructure:"name" yaml:"name" json:"name"`
	Sources []string `mapstructure:"sources" yaml:"sources" json:"sources"`
}

// ParseDomainArg reads a command-line domain: either "name=src1,src2" or a
// single source whose base name (without extension) names the domain.
func ParseDomainArg(arg string) Domain {
	if name, rest, ok := strings.Cut(arg, "="); ok && name != "" && !strings.Contains(name, "/") {
		var sources []string
		for _, s := range strings.Split(rest, ",") {
			if s = strings.TrimSpace(s); s != "" {
				sources = append(sources, s)
			}
		}
		return Domain{Name: name, Sources: sources}
	}

	if arg == "-" {
		return Domain{Name: "stdin", Sources: []string{arg}}
	}

	clean := strings.TrimRight(arg, string(os.PathSeparator))
	if fetch.IsURL(arg) {
		if u, err := url.Parse(arg); err == nil {
			clean = strings.TrimRight(u.Host+u.Path, "/")
		}
	}
	name := filepath.Base(clean)
	if ext := filepath.Ext(name); ext != "" && ext != name {
		name = strings.TrimSuffix(name, ext)
	}
	return Domain{Name: name, Sources: []string{arg}}
}

// Config holds all configuration options for a termsift run.
type Config struct {
	Domains         []Domain
	Methods         []string     // ranking methods, see rank.Methods
	TopN            int          // terms shown per ranking; 0 shows all
	OutputFormat    OutputFormat // output format (md/txt/json)
	IgnoreAugmented bool         // leave augmented terms out of frequency statistics
	HITSThreshold   float64
	HITSMaxLoop     int
	Workers         int // domains processed in parallel
	SourceWorkers   int // documents of one domain loaded in parallel
	LocatePages     int // pages listed per ranked term; 0 disables locating
	Selector        string
	IncludeAll      bool // convert whole HTML pages instead of their main content
	Cache           CacheConfig
	Quiet           bool // suppress info messages
	Debug           bool
}

// CacheConfig controls reuse of extraction results between runs.
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
	Path    string // SQLite file; empty keeps the cache in memory only
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		Methods:       []string{rank.MethodFLR, rank.MethodHITS},
		TopN:          20,
		OutputFormat:  Markdown,
		HITSThreshold: rank.DefaultHITSThreshold,
		HITSMaxLoop:   rank.DefaultHITSMaxLoop,
		Workers:       4,
		SourceWorkers: 4,
		Cache: CacheConfig{
			Enabled: true,
			TTL:     7 * 24 * time.Hour,
		},
	}
}

// Validate reports the first problem with cfg.
func (c Config) Validate() error {
	if len(c.Domains) == 0 {
		return termerr.ErrNoSources
	}
	seen := make(map[string]bool)
	for _, d := range c.Domains {
		if d.Name == "" {
			return fmt.Errorf("domain without a name: %w", termerr.ErrInvalidConfig)
		}
		if seen[d.Name] {
			return fmt.Errorf("domain %q listed twice: %w", d.Name, termerr.ErrInvalidConfig)
		}
		seen[d.Name] = true
		if len(d.Sources) == 0 {
			return fmt.Errorf("domain %q: %w", d.Name, termerr.ErrNoSources)
		}
	}
	if len(c.Methods) == 0 {
		return fmt.Errorf("no ranking methods: %w", termerr.ErrInvalidConfig)
	}
	for _, m := range c.Methods {
		if _, err := rank.New(m, rank.Options{}); err != nil {
			return err
		}
	}
	if c.TopN < 0 || c.LocatePages < 0 {
		return fmt.Errorf("negative top or pages count: %w", termerr.ErrInvalidConfig)
	}
	if c.HITSThreshold < 0 || c.HITSMaxLoop < 0 {
		return fmt.Errorf("negative HITS parameters: %w", termerr.ErrInvalidConfig)
	}
	return nil
}
