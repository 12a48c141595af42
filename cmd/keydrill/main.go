// Package main provides the CLI entrypoint for keydrill.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"keydrill/internal/config"
	"keydrill/internal/content"
	"keydrill/internal/curriculum"
	"keydrill/internal/layout"
	"keydrill/internal/store"
	"keydrill/internal/tui"
)

var (
	practiceMode     string
	practiceDuration int
	practiceHard     bool

	historyProfile string
	historyLast    int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "keydrill",
		Short:         "TUI touch-typing tutor",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPracticeCmd,
	}

	rootCmd.Flags().StringVar(&practiceMode, "mode", "", "practice mode: curriculum, sentences or code")
	rootCmd.Flags().IntVar(&practiceDuration, "duration", config.DefaultDurationSec, "drill duration in seconds")
	rootCmd.Flags().BoolVar(&practiceHard, "hard", config.DefaultHardMode, "hard mode: retry every miss before advancing")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newLessonsCmd())
	rootCmd.AddCommand(newProfilesCmd())
	rootCmd.AddCommand(newHistoryCmd())

	return rootCmd
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("practice requires an interactive terminal")
	}

	fileCfg, err := config.LoadFile(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	// Flags act at file precedence; profile overrides still win.
	if cmd.Flags().Changed("mode") {
		if _, ok := content.ParseMode(practiceMode); !ok {
			return fmt.Errorf("unknown mode %q (curriculum, sentences, code)", practiceMode)
		}
		fileCfg.Practice.Mode = &practiceMode
	}
	if cmd.Flags().Changed("duration") {
		if practiceDuration <= 0 {
			return fmt.Errorf("--duration must be > 0")
		}
		fileCfg.Practice.DurationSec = &practiceDuration
	}
	if cmd.Flags().Changed("hard") {
		fileCfg.Practice.HardMode = &practiceHard
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

	resolver := layout.Active(cmd.Context())
	if !resolver.Available() {
		logErrln("keyboard layout unavailable; falling back to character matching")
	}

	model, err := tui.NewModel(fileCfg, st, resolver)
	if err != nil {
		return err
	}
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
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

func newLessonsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lessons",
		Short: "List curriculum lessons",
		Args:  cobra.NoArgs,
		RunE:  runLessonsCmd,
	}
}

func runLessonsCmd(cmd *cobra.Command, _ []string) error {
	for i, lesson := range curriculum.Lessons {
		line := fmt.Sprintf("%2d  %-26s  %d WPM at %d%%", i+1, lesson.Name, lesson.TargetWPM, lesson.TargetAccuracy)
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newProfilesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List profiles",
		Args:  cobra.NoArgs,
		RunE:  runProfilesCmd,
	}
}

func runProfilesCmd(cmd *cobra.Command, _ []string) error {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	profiles, err := st.ListProfiles(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list profiles: %w", err)
	}
	if len(profiles) == 0 {
		logErrln("No profiles yet. Run: keydrill")
		return nil
	}
	for _, p := range profiles {
		line := fmt.Sprintf("%-16s lesson %2d  record %3d WPM  %d drills", p.Name, p.LessonIndex+1, p.WPMRecord, p.TotalDrills)
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent drills for a profile",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().StringVar(&historyProfile, "profile", "", "profile name (required)")
	cmd.Flags().IntVar(&historyLast, "last", 20, "number of drills to show")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	if strings.TrimSpace(historyProfile) == "" {
		return fmt.Errorf("--profile is required")
	}
	if historyLast <= 0 {
		return fmt.Errorf("--last must be > 0")
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

	drills, err := st.ListDrills(context.Background(), strings.ToLower(strings.TrimSpace(historyProfile)), historyLast)
	if err != nil {
		return fmt.Errorf("failed to list drills: %w", err)
	}
	if len(drills) == 0 {
		logErrln("No drills recorded for this profile yet.")
		return nil
	}
	for _, d := range drills {
		status := " "
		if d.Mode == string(content.ModeCurriculum) {
			if d.Passed {
				status = "pass"
			} else {
				status = "fail"
			}
		}
		line := fmt.Sprintf("%s  %-10s  %3d WPM  %3d%%  %s",
			d.EndedAt.Local().Format("2006-01-02 15:04"), d.Mode, d.WPM, d.Accuracy, status)
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# keydrill configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# mode = %q          # curriculum, sentences or code
# duration = %d              # Drill duration in seconds
# shuffle-after = %d           # Chunks before pattern order shuffles
# hard-mode = %t            # Retry every miss before advancing
# languages = %q

[sources]
# sentence = ["api", "cmd", "file", "local"]
# code = ["ai", "cmd", "file", "local"]
# sentences-file = %q
# snippets-file = %q
# sentence-command = ""
# code-command = ""
# quote-api-url = %q

[ai]
# endpoint = %q
# type = %q    # openai, ollama or auto
# model = %q
# api-key = ""
`,
		config.DefaultMode,
		config.DefaultDurationSec,
		config.DefaultShuffleAfter,
		config.DefaultHardMode,
		config.DefaultLanguages,
		config.DefaultSentencesFile,
		config.DefaultSnippetsFile,
		config.DefaultQuoteAPIURL,
		config.DefaultAIEndpoint,
		config.DefaultAIAPIType,
		config.DefaultAIModel,
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
