package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/chriscorrea/termsift/internal/app"
	"github.com/chriscorrea/termsift/internal/rank"
)

// setupLogger configures the default slog logger based on debug mode
func setupLogger(debug bool) {
	var level slog.Level
	if debug {
		level = slog.LevelDebug
	} else {
		level = slog.LevelError
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

func newRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "termsift [domain...]",
		Short: "A CLI tool for technical term extraction",
		Long: `Termsift extracts technical-term candidates from documents and ranks them by termhood.
Documents are grouped into domains; each domain is ranked on its own. Sources may be
page/text XML files, HTML files, URLs, directories of documents, or standard input.

A domain argument is either a single source (named after its base name) or
name=source1,source2.

Examples:
  termsift papers/
  termsift ml=a.xml,b.xml bio=https://example.com/protein.html --method flr,tfidf
  pdftohtml -xml -stdout paper.pdf | termsift --json`,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			quiet, _ := cmd.Flags().GetBool("quiet")
			debug, _ := cmd.Flags().GetBool("debug")
			noCache, _ := cmd.Flags().GetBool("no-cache")

			// configure logging pending debug flag
			setupLogger(debug)

			v, err := newViper(cfgFile)
			if err != nil {
				return fmt.Errorf("configuration error: %w", err)
			}
			// flags win over TERMSIFT_* variables, which win over the config file
			if err := bindFlags(v, cmd); err != nil {
				return fmt.Errorf("configuration error: %w", err)
			}
			fc, err := loadFileConfig(v)
			if err != nil {
				return fmt.Errorf("configuration error: %w", err)
			}
			// the format switches are plain flags, not viper keys
			if f := outputFlag(cmd); f != "" {
				fc.Format = f
			}

			config, err := buildConfig(fc, args, quiet, debug, noCache)
			if err != nil {
				return fmt.Errorf("configuration error: %w", err)
			}
			slog.Debug("configuration loaded", "config", v.ConfigFileUsed(), "domains", len(config.Domains), "methods", config.Methods)

			// create context with signal handling for graceful shutdown
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			result, err := app.Run(ctx, config)
			if err != nil {
				return fmt.Errorf("termsift failed: %w", err)
			}

			// results go to stdout; progress and warnings went to stderr
			fmt.Fprint(cmd.OutOrStdout(), result)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.termsift/config.yaml)")

	// ranking flags
	rootCmd.Flags().StringSliceP("method", "m", nil, "Ranking methods: "+strings.Join(rank.Methods(), ", ")+" (default: flr,hits)")
	rootCmd.Flags().IntP("top", "n", 0, "Number of terms per ranking, 0 for all (default: 20)")
	rootCmd.Flags().Bool("ignore-augmented", false, "Leave augmented sub-terms out of frequency statistics")
	rootCmd.Flags().Float64("hits-threshold", rank.DefaultHITSThreshold, "HITS convergence threshold")
	rootCmd.Flags().Int("hits-max-loop", rank.DefaultHITSMaxLoop, "Maximum HITS iterations")
	rootCmd.Flags().IntP("pages", "p", 0, "List the best pages for each ranked term")

	// output format flags are mutually exclusive
	rootCmd.Flags().Bool("md", false, "Output in Markdown format (default)")
	rootCmd.Flags().Bool("text", false, "Output in plain text format")
	rootCmd.Flags().Bool("json", false, "Output in JSON format")
	rootCmd.MarkFlagsMutuallyExclusive("md", "text", "json")

	// extraction flags
	rootCmd.Flags().StringP("selector", "s", "", "CSS selector for HTML sources")
	rootCmd.Flags().BoolP("include-all", "i", false, "Include all HTML content without readability filtering")
	rootCmd.Flags().IntP("workers", "w", 0, "Domains processed in parallel (default: 4)")
	rootCmd.Flags().Int("source-workers", 0, "Documents of a domain loaded in parallel (default: 4)")

	// cache flags
	rootCmd.Flags().Bool("no-cache", false, "Do not read or write cached extraction results")
	rootCmd.Flags().String("cache-path", "", "SQLite cache file (default: user cache dir)")
	rootCmd.Flags().String("cache-ttl", "", "Lifetime of cached results, e.g. 24h (default: 168h)")

	// other flags
	rootCmd.Flags().BoolP("quiet", "q", false, "Suppress output messages")
	rootCmd.Flags().BoolP("debug", "D", false, "Enable debug logging")
	_ = rootCmd.Flags().MarkHidden("debug")

	rootCmd.AddCommand(newConfigCmd(&cfgFile))
	return rootCmd
}

// outputFlag returns the format chosen by --md, --text or --json, if any.
func outputFlag(cmd *cobra.Command) string {
	for _, name := range []string{"md", "text", "json"} {
		if set, _ := cmd.Flags().GetBool(name); set {
			return name
		}
	}
	return ""
}

func main() {
	// a .env file is optional
	_ = godotenv.Load()

	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
