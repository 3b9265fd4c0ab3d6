// Package main provides the StyleRAG command line tool for running searches
// without the HTTP server.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/stylerag/backend/config"
	"github.com/stylerag/backend/internal/app"
	"github.com/stylerag/backend/internal/domain"
	"github.com/stylerag/backend/internal/lexicon"
	"github.com/stylerag/backend/internal/observability"
	"github.com/stylerag/backend/internal/usecase"
)

const version = "1.0.0"

var (
	// Global flags
	cfgFile string
	verbose bool
	offline bool

	cfg    *config.Config
	logger zerolog.Logger
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "stylerag",
		Short: "Fashion recommendation search over a product catalog",
		Long: `stylerag answers shopper queries against a catalog CSV or the built-in
catalog, falling back to model-generated suggestions when nothing matches.

Results are printed as indented JSON.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if offline {
				if err := os.Setenv("STYLERAG_LLM_PROVIDER", "none"); err != nil {
					return err
				}
			}

			var err error
			if cfgFile != "" {
				cfg, err = config.LoadFile(cfgFile)
			} else {
				cfg, err = config.Load()
			}
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			level := "warn"
			if verbose {
				level = "debug"
			}
			logger = observability.NewLogger(observability.LogConfig{
				Level:       level,
				Format:      "console",
				Output:      cmd.ErrOrStderr(),
				ServiceName: "stylerag-cli",
			})
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default: config.yaml or env vars)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log pipeline decisions to stderr")
	root.PersistentFlags().BoolVar(&offline, "offline", false, "disable the text generation backend")

	root.AddCommand(newSearchCmd())
	root.AddCommand(newExtractCmd())
	root.AddCommand(newVersionCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newSearchCmd creates the search subcommand
func newSearchCmd() *cobra.Command {
	var (
		csvPath  string
		category string
	)

	cmd := &cobra.Command{
		Use:   "search <query...>",
		Short: "Run a recommendation search",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			if csvPath != "" {
				cfg.Catalog.Source = csvPath
			}

			application, err := app.New(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer application.Close()

			response := application.Service.Search(ctx, &domain.SearchRequest{
				Query:    strings.Join(args, " "),
				Category: category,
			})
			return writeJSON(cmd.OutOrStdout(), response)
		},
	}

	cmd.Flags().StringVar(&csvPath, "csv", "", "catalog CSV file (overrides catalog.source)")
	cmd.Flags().StringVar(&category, "category", "", "restrict results to a category")
	return cmd
}

// newExtractCmd creates the extract subcommand
func newExtractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extract <query...>",
		Short: "Show the filters and domain decision for a query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lex, err := lexicon.FromJSON(cfg.Catalog.CategoryMappingJSON, cfg.Catalog.KnownMaterialsJSON)
			if err != nil {
				return err
			}

			query := strings.Join(args, " ")
			filters := usecase.NewFilterExtractor(lex, logger).Extract(query)

			return writeJSON(cmd.OutOrStdout(), struct {
				Query    string           `json:"query"`
				Filters  domain.FilterSet `json:"filters"`
				InDomain bool             `json:"in_domain"`
			}{
				Query:    query,
				Filters:  filters,
				InDomain: usecase.NewDomainGate(lex).IsInDomain(query, filters),
			})
		},
	}
}

// newVersionCmd creates the version subcommand
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "stylerag %s\n", version)
		},
	}
}

func writeJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
