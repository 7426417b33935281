package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/chriscorrea/termsift/internal/app"
	"github.com/chriscorrea/termsift/internal/termerr"
)

// fileConfig is the on-disk shape of the configuration.
type fileConfig struct {
	Domains         []app.Domain `mapstructure:"domains" yaml:"domains"`
	Methods         []string     `mapstructure:"methods" yaml:"methods"`
	Top             int          `mapstructure:"top" yaml:"top"`
	Format          string       `mapstructure:"format" yaml:"format"`
	IgnoreAugmented bool         `mapstructure:"ignore_augmented" yaml:"ignore_augmented"`
	Workers         int          `mapstructure:"workers" yaml:"workers"`
	SourceWorkers   int          `mapstructure:"source_workers" yaml:"source_workers"`
	LocatePages     int          `mapstructure:"pages" yaml:"pages"`
	Selector        string       `mapstructure:"selector" yaml:"selector"`
	IncludeAll      bool         `mapstructure:"include_all" yaml:"include_all"`
	HITS            hitsConfig   `mapstructure:"hits" yaml:"hits"`
	Cache           cacheConfig  `mapstructure:"cache" yaml:"cache"`
}

type hitsConfig struct {
	Threshold float64 `mapstructure:"threshold" yaml:"threshold"`
	MaxLoop   int     `mapstructure:"max_loop" yaml:"max_loop"`
}

type cacheConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	TTL     string `mapstructure:"ttl" yaml:"ttl"`
	Path    string `mapstructure:"path" yaml:"path"`
}

// configDir returns $HOME/.termsift.
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("error finding home directory: %w", err)
	}
	return filepath.Join(home, ".termsift"), nil
}

// newViper creates a viper instance with defaults, env binding and the
// config file (explicit path or $HOME/.termsift/config.yaml).
func newViper(cfgFile string) (*viper.Viper, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("TERMSIFT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := configDir()
		if err != nil {
			return v, nil
		}
		v.AddConfigPath(dir)
		v.SetConfigType("yaml")
		v.SetConfigName("config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}
	return v, nil
}

func setDefaults(v *viper.Viper) {
	d := app.DefaultConfig()
	v.SetDefault("methods", d.Methods)
	v.SetDefault("top", d.TopN)
	v.SetDefault("format", "md")
	v.SetDefault("ignore_augmented", d.IgnoreAugmented)
	v.SetDefault("workers", d.Workers)
	v.SetDefault("source_workers", d.SourceWorkers)
	v.SetDefault("pages", d.LocatePages)
	v.SetDefault("selector", "")
	v.SetDefault("include_all", false)
	v.SetDefault("hits.threshold", d.HITSThreshold)
	v.SetDefault("hits.max_loop", d.HITSMaxLoop)
	v.SetDefault("cache.enabled", d.Cache.Enabled)
	v.SetDefault("cache.ttl", d.Cache.TTL.String())
	v.SetDefault("cache.path", app.DefaultCachePath())
}

// flagKeys maps command flags to configuration keys.
var flagKeys = map[string]string{
	"method":           "methods",
	"top":              "top",
	"ignore-augmented": "ignore_augmented",
	"workers":          "workers",
	"source-workers":   "source_workers",
	"pages":            "pages",
	"selector":         "selector",
	"include-all":      "include_all",
	"hits-threshold":   "hits.threshold",
	"hits-max-loop":    "hits.max_loop",
	"cache-ttl":        "cache.ttl",
	"cache-path":       "cache.path",
}

// bindFlags lets set flags override env vars and the config file.
func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	for flag, key := range flagKeys {
		f := cmd.Flags().Lookup(flag)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("failed to bind flag %q: %w", flag, err)
		}
	}
	return nil
}

// loadFileConfig decodes the effective layered configuration.
func loadFileConfig(v *viper.Viper) (fileConfig, error) {
	var fc fileConfig
	if err := v.Unmarshal(&fc); err != nil {
		return fc, fmt.Errorf("failed to decode config: %w", err)
	}
	return fc, nil
}

// buildConfig turns the layered configuration and positional domains into
// an app.Config. Positional domains replace configured ones; with neither,
// standard input is read as a single domain.
func buildConfig(fc fileConfig, args []string, quiet, debug, noCache bool) (app.Config, error) {
	format, err := app.ParseOutputFormat(fc.Format)
	if err != nil {
		return app.Config{}, err
	}

	ttl, err := time.ParseDuration(fc.Cache.TTL)
	if err != nil {
		return app.Config{}, fmt.Errorf("cache ttl %q: %w", fc.Cache.TTL, termerr.ErrInvalidConfig)
	}

	domains := fc.Domains
	if len(args) > 0 {
		domains = nil
		for _, arg := range args {
			domains = append(domains, app.ParseDomainArg(arg))
		}
	}
	if len(domains) == 0 {
		domains = []app.Domain{app.ParseDomainArg("-")}
	}

	return app.Config{
		Domains:         domains,
		Methods:         splitMethods(fc.Methods),
		TopN:            fc.Top,
		OutputFormat:    format,
		IgnoreAugmented: fc.IgnoreAugmented,
		HITSThreshold:   fc.HITS.Threshold,
		HITSMaxLoop:     fc.HITS.MaxLoop,
		Workers:         fc.Workers,
		SourceWorkers:   fc.SourceWorkers,
		LocatePages:     fc.LocatePages,
		Selector:        fc.Selector,
		IncludeAll:      fc.IncludeAll,
		Cache: app.CacheConfig{
			Enabled: fc.Cache.Enabled && !noCache,
			TTL:     ttl,
			Path:    fc.Cache.Path,
		},
		Quiet: quiet,
		Debug: debug,
	}, nil
}

// splitMethods accepts both repeated values and comma lists from env vars.
func splitMethods(methods []string) []string {
	var out []string
	for _, m := range methods {
		for _, part := range strings.Split(m, ",") {
			if part = strings.ToLower(strings.TrimSpace(part)); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func newConfigCmd(cfgFile *string) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage termsift configuration",
		Long: `Manage termsift configuration files and settings.

Configuration hierarchy (highest to lowest priority):
1. CLI flags
2. Environment variables (TERMSIFT_*, also read from .env)
3. Config file (~/.termsift/config.yaml)
4. Defaults`,
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := newViper(*cfgFile)
			if err != nil {
				return err
			}
			fc, err := loadFileConfig(v)
			if err != nil {
				return err
			}

			if used := v.ConfigFileUsed(); used != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "Configuration file: %s\n\n", used)
			} else {
				fmt.Fprintf(cmd.ErrOrStderr(), "No configuration file found (using defaults)\n\n")
			}

			data, err := yaml.Marshal(fc)
			if err != nil {
				return fmt.Errorf("error marshaling config: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := *cfgFile
			if path == "" {
				dir, err := configDir()
				if err != nil {
					return err
				}
				path = filepath.Join(dir, "config.yaml")
			}
			if err := writeDefaultConfig(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created default configuration: %s\n", path)
			return nil
		},
	}

	configCmd.AddCommand(showCmd, initCmd)
	return configCmd
}

// writeDefaultConfig creates a commented default config file at path. An
// existing file is never overwritten.
func writeDefaultConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	fc, err := loadFileConfig(v)
	if err != nil {
		return err
	}
	fc.Domains = []app.Domain{{Name: "example", Sources: []string{"./papers"}}}

	data, err := yaml.Marshal(fc)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	header := `# termsift configuration
#
# Configuration hierarchy (highest to lowest priority):
#   1. CLI flags
#   2. Environment variables (TERMSIFT_TOP, TERMSIFT_CACHE_PATH, ...)
#   3. This config file
#   4. Built-in defaults
#
# methods: flr, hits, tfidf
# format: md, text, json

`
	if err := os.WriteFile(path, append([]byte(header), data...), 0o644); err != nil {
		return fmt.Errorf("error writing config: %w", err)
	}
	return nil
}
