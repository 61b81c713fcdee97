// Package main provides the CLI entrypoint for lpm.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jaymody/lpm/internal/config"
	"github.com/jaymody/lpm/internal/model"
	"github.com/jaymody/lpm/internal/snippets"
	"github.com/jaymody/lpm/internal/stats"
	"github.com/jaymody/lpm/internal/statsui"
	"github.com/jaymody/lpm/internal/store"
	"github.com/jaymody/lpm/internal/tui"
)

const version = "0.4.0"

const (
	defaultMaxLines    = 40
	defaultMaxCols     = 80
	defaultCurveWindow = 20
)

var (
	practiceMaxLines int
	practiceMaxCols  int

	statsLang        string
	statsSince       string
	statsLast        int
	statsCurveWindow int
	statsPlain       bool

	snippetsForce bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "lpm [languages...]",
		Short: "Lines Per Minute, a typing tool made for programmers",
		Long: "Lines Per Minute, a typing tool made for programmers.\n\n" +
			"Retype real code snippets in your terminal and track your speed and\n" +
			"accuracy over time. Positional arguments whitelist snippet languages;\n" +
			"with no arguments, all languages are loaded.",
		Example:       "  lpm\n  lpm python\n  lpm python java\n  lpm stats\n  lpm snippets --force",
		Version:       version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPracticeCmd,
	}

	rootCmd.Flags().IntVar(&practiceMaxLines, "max-lines", defaultMaxLines, "skip snippets taller than this many lines")
	rootCmd.Flags().IntVar(&practiceMaxCols, "max-cols", defaultMaxCols, "skip snippets wider than this many columns")

	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newSnippetsCmd())
	rootCmd.AddCommand(newResetCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runPracticeCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "max-lines", &practiceMaxLines, fileCfg.Practice.MaxLines)
	applyIntConfig(cmd, "max-cols", &practiceMaxCols, fileCfg.Practice.MaxCols)

	languages := args
	if len(languages) == 0 && fileCfg.Practice.Languages != nil {
		languages = *fileCfg.Practice.Languages
	}
	sources := config.MergeSources(fileCfg.Sources)
	if err := validateLanguages(languages, sources); err != nil {
		return err
	}

	cfg := model.Config{
		Languages: normalizeLanguages(languages),
		MaxLines:  practiceMaxLines,
		MaxCols:   practiceMaxCols,
	}
	if cfg.MaxLines <= 0 {
		return fmt.Errorf("--max-lines must be > 0")
	}
	if cfg.MaxCols <= 0 {
		return fmt.Errorf("--max-cols must be > 0")
	}

	snippetsPath := config.DefaultSnippetsPath()
	if _, err := os.Stat(snippetsPath); os.IsNotExist(err) {
		logErrln("... downloading snippets ...")
		if err := downloadSnippets(cmd.Context(), sources, snippetsPath); err != nil {
			return err
		}
	}
	all, err := snippets.Load(snippetsPath)
	if err != nil {
		return fmt.Errorf("failed to load snippets (try `lpm snippets`): %w", err)
	}
	filtered := snippets.Filter(all, cfg.Languages, cfg.MaxLines, cfg.MaxCols)
	if len(filtered) == 0 {
		return fmt.Errorf("no snippets matched; raise --max-lines/--max-cols or run `lpm snippets`")
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	library := snippets.NewLibrary(filtered)
	program := tea.NewProgram(tui.NewModel(cfg, st, library), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show lifetime and recent statistics",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsLang, "lang", "", "language filter")
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N sessions")
	cmd.Flags().IntVar(&statsCurveWindow, "curve-window", defaultCurveWindow, "moving average window")
	cmd.Flags().BoolVar(&statsPlain, "plain", false, "print a plain-text report instead of the TUI")
	return cmd
}

func runStatsCmd(_ *cobra.Command, _ []string) error {
	var sinceTime *time.Time
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}

	cfg := model.StatsConfig{
		Lang:        statsLang,
		Since:       sinceTime,
		Last:        statsLast,
		CurveWindow: statsCurveWindow,
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	if statsPlain {
		report, err := stats.BuildReport(context.Background(), st, cfg)
		if err != nil {
			return fmt.Errorf("failed to build report: %w", err)
		}
		return stats.RenderReport(os.Stdout, report, cfg.CurveWindow, stats.TerminalWidth())
	}

	program := tea.NewProgram(statsui.NewModel(st, cfg), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats TUI: %w", err)
	}
	return nil
}

func newSnippetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snippets",
		Short: "Download the snippet database",
		Args:  cobra.NoArgs,
		RunE:  runSnippetsCmd,
	}
	cmd.Flags().BoolVar(&snippetsForce, "force", false, "overwrite an existing snippet database")
	return cmd
}

func runSnippetsCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	path := config.DefaultSnippetsPath()
	if !snippetsForce {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("snippet database already exists: %s (use --force to overwrite)", path)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat snippet database: %w", err)
		}
	}
	logErrln("... downloading snippets ...")
	return downloadSnippets(cmd.Context(), config.MergeSources(fileCfg.Sources), path)
}

func downloadSnippets(ctx context.Context, sources map[string][]string, path string) error {
	fetcher := snippets.NewFetcher()
	snips, skipped := fetcher.FetchAll(ctx, sources)
	for _, url := range skipped {
		logErrf("Error downloading %s - SKIPPED\n", url)
	}
	if len(snips) == 0 {
		return fmt.Errorf("no snippets could be downloaded")
	}
	if err := snippets.Save(path, snips); err != nil {
		return fmt.Errorf("failed to save snippets: %w", err)
	}
	logErrf("Wrote %d snippets to %s\n", len(snips), path)
	return nil
}

func newResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Interactively reset statistics and snippets",
		Args:  cobra.NoArgs,
		RunE:  runResetCmd,
	}
}

func runResetCmd(cmd *cobra.Command, _ []string) error {
	reader := bufio.NewReader(os.Stdin)

	if promptYesNo(reader, "Do you want to reset your lifetime statistics? (y/n): ") {
		dbPath := config.DefaultDBPath()
		if _, err := os.Stat(dbPath); err == nil {
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to remove stats: %w", err)
			}
			fmt.Println("User statistics were reset.")
		} else {
			fmt.Println("User statistics do not exist.")
		}
	}

	if promptYesNo(reader, "Do you want to redownload snippets? (y/n): ") {
		fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		logErrln("... downloading snippets ...")
		if err := downloadSnippets(cmd.Context(), config.MergeSources(fileCfg.Sources), config.DefaultSnippetsPath()); err != nil {
			return err
		}
	}
	return nil
}

func promptYesNo(reader *bufio.Reader, prompt string) bool {
	fmt.Print(prompt)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(line), "y")
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# lpm configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# languages = ["python", "javascript", "java"]
# max-lines = %d          # Skip snippets taller than this many lines
# max-cols = %d           # Skip snippets wider than this many columns

# A [sources] table replaces the built-in permalink list per language:
# [sources]
# python = [
#   "https://github.com/user/repo/blob/<sha>/file.py#L1-L10",
# ]
`, defaultMaxLines, defaultMaxCols)
}

func validateLanguages(languages []string, sources map[string][]string) error {
	if len(languages) == 0 {
		return nil
	}
	known := make([]string, 0, len(sources))
	for lang := range sources {
		known = append(known, lang)
	}
	sort.Strings(known)
	for _, lang := range languages {
		if _, ok := sources[strings.ToLower(lang)]; !ok {
			return fmt.Errorf("unknown language %q (available: %s)", lang, strings.Join(known, ", "))
		}
	}
	return nil
}

func normalizeLanguages(languages []string) []string {
	out := make([]string, 0, len(languages))
	for _, lang := range languages {
		out = append(out, strings.ToLower(lang))
	}
	return out
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
