// Package main provides the CLI entrypoint for kindrill.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/maayanb/kindrill/internal/config"
	"github.com/maayanb/kindrill/internal/model"
	"github.com/maayanb/kindrill/internal/parser"
	"github.com/maayanb/kindrill/internal/quiz"
	"github.com/maayanb/kindrill/internal/stats"
	"github.com/maayanb/kindrill/internal/store"
	"github.com/maayanb/kindrill/internal/tui"
)

const (
	defaultMode      = "flashcard"
	defaultQuestions = 10
)

var (
	drillMode      string
	drillQuestions int
	dbPath         string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "kindrill",
		Short:         "Flashcard trainer for names and family relations",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runDrillCmd,
	}

	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "path to the SQLite database (default: XDG data dir)")
	rootCmd.Flags().StringVar(&drillMode, "mode", defaultMode,
		fmt.Sprintf("drill mode (%s)", strings.Join(quiz.ModeNames(), ", ")))
	rootCmd.Flags().IntVar(&drillQuestions, "questions", defaultQuestions, "questions per session")

	rootCmd.AddCommand(newRosterCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runDrillCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "mode", &drillMode, fileCfg.Session.Mode)
	applyIntConfig(cmd, "questions", &drillQuestions, fileCfg.Session.Questions)

	mode, err := quiz.ParseMode(drillMode)
	if err != nil {
		return err
	}
	if drillQuestions <= 0 {
		return fmt.Errorf("--questions must be > 0")
	}

	noSiblings := quiz.DefaultNoSiblingsAnswers
	if fileCfg.Answers.NoSiblings != nil {
		noSiblings = *fileCfg.Answers.NoSiblings
	}
	cfg := model.Config{
		Mode:          mode.String(),
		Questions:     drillQuestions,
		NoSiblingsSet: noSiblings,
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	ctx := context.Background()
	roster, err := st.LoadRoster(ctx)
	if err != nil {
		return fmt.Errorf("failed to load roster: %w", err)
	}
	if len(roster) == 0 {
		return errors.New("no people yet; import some with: kindrill roster import <file>")
	}

	overall, err := st.LoadOverall(ctx)
	if err != nil {
		// Corrupt stats must not block drilling; start from zero.
		logErrf("failed to load stats, starting fresh: %v\n", err)
		overall = model.NewOverallStats()
	}

	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	drillModel := tui.NewModel(cfg, mode, st, roster, overall, rnd)
	program := tea.NewProgram(drillModel, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newRosterCmd() *cobra.Command {
	rosterCmd := &cobra.Command{
		Use:   "roster",
		Short: "Manage the roster of people",
	}
	rosterCmd.AddCommand(&cobra.Command{
		Use:   "import [file]",
		Short: "Import people from text (file or stdin)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runRosterImportCmd,
	})
	rosterCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the roster",
		Args:  cobra.NoArgs,
		RunE:  runRosterListCmd,
	})
	rosterCmd.AddCommand(&cobra.Command{
		Use:   "export",
		Short: "Export the roster as JSON",
		Args:  cobra.NoArgs,
		RunE:  runRosterExportCmd,
	})
	return rosterCmd
}

func runRosterImportCmd(cmd *cobra.Command, args []string) error {
	var text []byte
	var err error
	if len(args) == 1 {
		text, err = os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}
	} else {
		text, err = io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
	}

	people, err := parser.Parse(string(text))
	if err != nil {
		var perr *parser.ParseError
		if errors.As(err, &perr) && len(perr.RemainderLines) > 0 {
			logErrln("unmatched lines:")
			for _, line := range perr.RemainderLines {
				logErrf("  %s\n", line)
			}
		}
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	if err := st.SaveRoster(context.Background(), people); err != nil {
		return fmt.Errorf("failed to save roster: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d people\n", len(people))
	return nil
}

func runRosterListCmd(cmd *cobra.Command, _ []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	people, err := st.LoadRoster(context.Background())
	if err != nil {
		return fmt.Errorf("failed to load roster: %w", err)
	}
	if len(people) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Roster is empty.")
		return nil
	}
	for _, p := range people {
		siblings := strings.Join(p.Siblings, " ")
		if siblings == "" {
			siblings = "-"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s | parents: %s | siblings: %s\n",
			p.Name, strings.Join(p.Parents, " "), siblings)
	}
	return nil
}

func runRosterExportCmd(cmd *cobra.Command, _ []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	people, err := st.LoadRoster(context.Background())
	if err != nil {
		return fmt.Errorf("failed to load roster: %w", err)
	}
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(people); err != nil {
		return fmt.Errorf("failed to encode roster: %w", err)
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show drill statistics",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	statsCmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Clear all statistics and spaced-repetition state",
		Args:  cobra.NoArgs,
		RunE:  runStatsResetCmd,
	})
	return statsCmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	report, err := stats.BuildReport(context.Background(), st)
	if err != nil {
		return err
	}
	return stats.Render(cmd.OutOrStdout(), report)
}

func runStatsResetCmd(cmd *cobra.Command, _ []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	if err := st.ResetStats(context.Background()); err != nil {
		return fmt.Errorf("failed to reset stats: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Statistics cleared.")
	return nil
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

func openStore() (*store.Store, error) {
	path := dbPath
	if path == "" {
		path = config.DefaultDBPath()
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	return st, nil
}

func closeStore(st *store.Store) {
	if cerr := st.Close(); cerr != nil {
		logErrf("failed to close db: %v\n", cerr)
	}
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
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

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# kindrill configuration
# Uncomment a value to enable it. CLI flags override config values.

[session]
# mode = %q            # Drill mode (%s)
# questions = %d       # Questions per session

[answers]
# Free-recall answers accepted for a person with no siblings.
# no-siblings = ["", "none", "no siblings", "אין"]
`,
		defaultMode,
		strings.Join(quiz.ModeNames(), ", "),
		defaultQuestions,
	)
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
