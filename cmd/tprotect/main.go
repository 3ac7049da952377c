// Package main provides the CLI entrypoint for tprotect.
package main

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/tprotect/internal/cipher"
	"github.com/verte-zerg/tprotect/internal/config"
	"github.com/verte-zerg/tprotect/internal/logging"
	"github.com/verte-zerg/tprotect/internal/model"
	"github.com/verte-zerg/tprotect/internal/store"
	"github.com/verte-zerg/tprotect/internal/textio"
	"github.com/verte-zerg/tprotect/internal/tui"
	"github.com/verte-zerg/tprotect/internal/wordlist"
)

const defaultMode = "substitution"

var (
	logLevel  string
	noHistory bool

	cipherMode  string
	cipherKey   string
	cipherShift int

	workbenchPlain  string
	workbenchCipher string

	fileCfg config.FileConfig
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "tprotect",
		Short:             "Classical cipher workbench",
		SilenceUsage:      true,
		SilenceErrors:     false,
		PersistentPreRunE: loadSettings,
		RunE:              runWorkbenchCmd,
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", logging.DefaultLevel.String(), "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&noHistory, "no-history", false, "do not record runs in the history database")

	addCipherFlags(rootCmd)
	rootCmd.Flags().StringVar(&workbenchPlain, "plain", "", "file to preload into the plain pane")
	rootCmd.Flags().StringVar(&workbenchCipher, "cipher", "", "file to preload into the cipher pane")

	rootCmd.AddCommand(newCipherCmd(model.DirectionEncrypt))
	rootCmd.AddCommand(newCipherCmd(model.DirectionDecrypt))
	rootCmd.AddCommand(newBruteCmd())
	rootCmd.AddCommand(newAnalyzeCmd())
	rootCmd.AddCommand(newKeygenCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func addCipherFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&cipherMode, "mode", defaultMode, "cipher mode (substitution or transposition)")
	cmd.Flags().StringVar(&cipherKey, "key", cipher.DefaultSubstitutionKey, "substitution key")
	cmd.Flags().IntVar(&cipherShift, "shift", cipher.DefaultShiftKey, "transposition shift")
}

func loadSettings(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	fileCfg = cfg
	applyStringConfig(cmd, "log-level", &logLevel, fileCfg.Log.Level)
	setupStderrLogs(cmd.ErrOrStderr())
	return nil
}

// resolveConfig merges cipher flags with the config file. Flags win when set.
func resolveConfig(cmd *cobra.Command) (model.Config, error) {
	applyStringConfig(cmd, "mode", &cipherMode, fileCfg.Cipher.Mode)
	applyStringConfig(cmd, "key", &cipherKey, fileCfg.Cipher.Key)
	applyIntConfig(cmd, "shift", &cipherShift, fileCfg.Cipher.Shift)

	cfg := model.Config{
		Mode:            cipherMode,
		SubstitutionKey: cipherKey,
		ShiftKey:        cipherShift,
		History:         !noHistory,
	}
	if fileCfg.Analysis.CaseSensitive != nil {
		cfg.CaseSensitive = *fileCfg.Analysis.CaseSensitive
	}
	if fileCfg.Analysis.WordList != nil {
		cfg.WordListPath = *fileCfg.Analysis.WordList
	}
	if fileCfg.History.Enabled != nil && !*fileCfg.History.Enabled {
		cfg.History = false
	}
	if err := validateConfig(cfg); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

func validateConfig(cfg model.Config) error {
	if _, err := cipher.ParseMode(cfg.Mode); err != nil {
		return err
	}
	if cfg.SubstitutionKey == "" {
		return &cipher.ConfigError{Field: "substitution key", Err: cipher.ErrEmptyKey}
	}
	return nil
}

func newSelector(cfg model.Config) (*cipher.Selector, error) {
	mode, err := cipher.ParseMode(cfg.Mode)
	if err != nil {
		return nil, err
	}
	sel, err := cipher.NewSelector(mode, cfg.SubstitutionKey, cfg.ShiftKey)
	if err != nil {
		return nil, fmt.Errorf("failed to configure cipher: %w", err)
	}
	if mode == cipher.ModeSubstitution {
		warnCollisions(cfg.SubstitutionKey)
	}
	return sel, nil
}

func warnCollisions(key string) {
	collisions := cipher.KeyCollisions(key)
	if len(collisions) == 0 {
		return
	}
	shared := make([]string, 0, len(collisions))
	for _, c := range collisions {
		shared = append(shared, string(c.Cipher))
	}
	log.Warn().
		Int("collisions", len(collisions)).
		Str("shared", strings.Join(shared, "")).
		Msg("substitution key maps several letters to the same character; decryption is lossy")
}

func openHistory(cfg model.Config) *store.Store {
	if !cfg.History {
		log.Debug().Msg("history disabled")
		return nil
	}
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		log.Warn().Err(err).Msg("failed to open history database")
		return nil
	}
	return st
}

func closeHistory(st *store.Store) {
	if st == nil {
		return
	}
	if err := st.Close(); err != nil {
		log.Warn().Err(err).Msg("failed to close history database")
	}
}

func loadDictionary(path string) (*wordlist.Dictionary, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}
	dict, err := wordlist.LoadDictionary(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load word list %s: %w", path, err)
	}
	log.Debug().Str("path", path).Int("words", dict.Len()).Msg("word list loaded")
	return dict, nil
}

func runWorkbenchCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	sel, err := newSelector(cfg)
	if err != nil {
		return err
	}
	dict, err := loadDictionary(cfg.WordListPath)
	if err != nil {
		return err
	}
	plain, err := loadOptionalText(workbenchPlain)
	if err != nil {
		return err
	}
	ciphertext, err := loadOptionalText(workbenchCipher)
	if err != nil {
		return err
	}

	st := openHistory(cfg)
	defer closeHistory(st)

	m := tui.NewModel(tui.Options{
		Selector:      sel,
		Store:         st,
		Dictionary:    dict,
		CaseSensitive: cfg.CaseSensitive,
		Plain:         plain,
		Cipher:        ciphertext,
	})
	restoreLogs, err := logToFile(config.DefaultLogPath(), cmd.ErrOrStderr())
	if err != nil {
		log.Warn().Err(err).Msg("workbench logs discarded")
		restoreLogs = discardLogs(cmd.ErrOrStderr())
	}
	defer restoreLogs()

	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// logToFile sends log output to path until the returned func restores stderr.
func logToFile(path string, errOut io.Writer) (func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	logging.Setup(logging.Config{Level: logLevel, NoColor: true, Out: f})
	return func() {
		setupStderrLogs(errOut)
		if err := f.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close log file")
		}
	}, nil
}

func discardLogs(errOut io.Writer) func() {
	logging.Setup(logging.Config{Level: logLevel, NoColor: true, Out: io.Discard})
	return func() {
		setupStderrLogs(errOut)
	}
}

func setupStderrLogs(errOut io.Writer) {
	logging.Setup(logging.Config{
		Level:   logLevel,
		NoColor: !isTerminal(os.Stderr),
		Out:     errOut,
	})
}

func loadOptionalText(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	return textio.LoadText(path)
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
	if err := ensureConfigFile(path); err != nil {
		return err
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

func ensureConfigFile(path string) error {
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
		log.Info().Str("path", path).Msg("config file created")
	}
	return nil
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

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# tprotect configuration
# Uncomment a value to enable it. CLI flags override config values.

[cipher]
# mode = %q      # substitution or transposition
# key = %q
# shift = %d                 # Transposition shift; folded into 0-25

[analysis]
# case-sensitive = false     # Count upper and lower case letters separately
# wordlist = ""              # One word per line; ranks brute-force output by dictionary hits

[history]
# enabled = true             # Record runs in the history database

[log]
# level = %q              # debug, info, warn or error
`,
		defaultMode,
		cipher.DefaultSubstitutionKey,
		cipher.DefaultShiftKey,
		logging.DefaultLevel.String(),
	)
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func logErrf(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
