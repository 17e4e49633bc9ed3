// Package main provides the aocli binary: fetch, view, cache, and submit
// answers for daily programming puzzles.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aockit/aocli/aoc"
	"github.com/aockit/aocli/cache"
	"github.com/aockit/aocli/config"
	"github.com/aockit/aocli/puzzle"
	"github.com/aockit/aocli/scrape"
)

const (
	Version = "0.1.0"
	appName = "aocli"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:           appName,
		Short:         "Fetch, cache, and submit daily programming puzzles",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(logLevel)
		},
	}
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	cmd.AddCommand(getCmd(), viewCmd(), submitCmd(), statusCmd(), versionCmd())
	return cmd
}

func setupLogging(logLevel string) {
	level := slog.LevelWarn
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "error":
		level = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}

// newClient loads configuration and wires the scraper and cache together.
func newClient() (*aoc.Client, *cache.Cache, error) {
	cfg, err := config.NewLoader(slog.Default()).Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	fetcher := scrape.NewFetcher(cfg.Session, cfg.UserAgent, cfg.Timeout)
	scraper := scrape.New(fetcher, cfg.BaseURL, slog.Default())
	store := cache.New(cfg.CacheDir)
	return aoc.NewClient(scraper, store, slog.Default()), store, nil
}

// resolveID turns explicit flags into a puzzle identity, inferring one
// from the working directory when flags are missing.
func resolveID(year, day int) (puzzle.ID, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return puzzle.ID{}, fmt.Errorf("get working directory: %w", err)
	}
	return puzzle.Resolve(year, day, cwd)
}

// idFlags registers the year/day flags shared by puzzle commands.
func idFlags(cmd *cobra.Command, year, day *int) {
	cmd.Flags().IntVarP(year, "year", "y", 0, "The puzzle's year")
	cmd.Flags().IntVarP(day, "day", "d", 0, "The puzzle's day")
}

func getCmd() *cobra.Command {
	var (
		year, day int
		build     bool
	)

	cmd := &cobra.Command{
		Use:   "get [output-dir]",
		Short: "Fetch a puzzle and its input into a directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveID(year, day)
			if err != nil {
				return err
			}
			client, _, err := newClient()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			p, err := client.Puzzle(ctx, id)
			if err != nil {
				return err
			}
			input, err := client.Input(ctx, id)
			if err != nil {
				return err
			}

			dest := "."
			switch {
			case build:
				dest = fmt.Sprintf("%d/d%02d", id.Year, id.Day)
			case len(args) == 1:
				dest = args[0]
			}
			if err := os.MkdirAll(dest, 0755); err != nil {
				return fmt.Errorf("create output directory: %w", err)
			}
			if err := os.WriteFile(filepath.Join(dest, "puzzle.md"), []byte(p.View(true)), 0644); err != nil {
				return fmt.Errorf("write puzzle: %w", err)
			}
			if err := os.WriteFile(filepath.Join(dest, "input"), []byte(input), 0644); err != nil {
				return fmt.Errorf("write input: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Saved puzzle %s to %s\n", id, dest)
			return nil
		},
	}
	idFlags(cmd, &year, &day)
	cmd.Flags().BoolVarP(&build, "build", "b", false, "Write into ./{year}/d{day}/")
	return cmd
}

func viewCmd() *cobra.Command {
	var (
		year, day int
		answers   bool
	)

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Print a puzzle's prompt text",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveID(year, day)
			if err != nil {
				return err
			}
			client, _, err := newClient()
			if err != nil {
				return err
			}

			p, err := client.Puzzle(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), p.View(answers))
			return nil
		},
	}
	idFlags(cmd, &year, &day)
	cmd.Flags().BoolVarP(&answers, "answers", "a", false, "Show submitted answers for each part")
	return cmd
}

func submitCmd() *cobra.Command {
	var year, day, part int

	cmd := &cobra.Command{
		Use:   "submit <answer>",
		Short: "Submit an answer, inferring the part when not given",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveID(year, day)
			if err != nil {
				return err
			}
			client, _, err := newClient()
			if err != nil {
				return err
			}

			outcome, err := client.Submit(cmd.Context(), id, part, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), outcome.Message())
			return nil
		},
	}
	idFlags(cmd, &year, &day)
	cmd.Flags().IntVarP(&part, "part", "p", aoc.PartInfer, "The part to answer (1 or 2; inferred when omitted)")
	return cmd
}

func statusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "List cached puzzles and their solved parts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, err := newClient()
			if err != nil {
				return err
			}

			ids, err := store.List()
			if err != nil {
				return err
			}
			if len(ids) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No cached puzzles.")
				return nil
			}
			for _, id := range ids {
				stars := ""
				if a, ok := store.GetAnswer(id, puzzle.Part1); ok && a != "" {
					stars = "*"
				}
				if a, ok := store.GetAnswer(id, puzzle.Part2); ok && a != "" {
					stars = "**"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-9s %s\n", id, stars)
			}
			return nil
		},
	}
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, Version)
		},
	}
}
