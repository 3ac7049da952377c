package main

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/tprotect/internal/cipher"
	"github.com/verte-zerg/tprotect/internal/config"
	"github.com/verte-zerg/tprotect/internal/frequency"
	"github.com/verte-zerg/tprotect/internal/generator"
	"github.com/verte-zerg/tprotect/internal/model"
	"github.com/verte-zerg/tprotect/internal/stats"
	"github.com/verte-zerg/tprotect/internal/store"
	"github.com/verte-zerg/tprotect/internal/textio"
)

const cliSource = "cli"

var (
	inputText string
	inputPath string
	outPath   string
	outFormat string

	bruteRank     bool
	bruteWordList string
	bruteWidth    int

	analyzeCaseSensitive bool
	analyzeCompare       bool
	analyzeBars          bool

	keygenSeed  int64
	keygenMixed bool

	historyLast int
	historyMode string
	historyTop  int
)

func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&inputText, "text", "", "input text (default: read --in or stdin)")
	cmd.Flags().StringVar(&inputPath, "in", "", "read input from file")
}

func addFormatFlag(cmd *cobra.Command) {
	cmd.Flags().StringVar(&outFormat, "format", formatText, "output format (text, json, yaml)")
}

func newCipherCmd(direction model.Direction) *cobra.Command {
	short := "Encrypt text with the selected cipher"
	if direction == model.DirectionDecrypt {
		short = "Decrypt text with the selected cipher"
	}
	cmd := &cobra.Command{
		Use:   string(direction),
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCipherCmd(cmd, direction)
		},
	}
	addCipherFlags(cmd)
	addInputFlags(cmd)
	cmd.Flags().StringVar(&outPath, "out", "", "write output to file instead of stdout")
	return cmd
}

func runCipherCmd(cmd *cobra.Command, direction model.Direction) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	sel, err := newSelector(cfg)
	if err != nil {
		return err
	}
	input, err := readInput(cmd)
	if err != nil {
		return err
	}

	var output string
	if direction == model.DirectionDecrypt {
		output, err = sel.Decrypt(input)
	} else {
		output, err = sel.Encrypt(input)
	}
	if err != nil {
		return fmt.Errorf("failed to %s: %w", direction, err)
	}

	if err := writeText(cmd, output); err != nil {
		return err
	}
	recordRun(cmd.Context(), cfg, sel.Mode(), direction, input, output)
	return nil
}

func newBruteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "brute",
		Short: "Decrypt shift cipher text with every shift from 1 to 25",
		Args:  cobra.NoArgs,
		RunE:  runBruteCmd,
	}
	addInputFlags(cmd)
	addFormatFlag(cmd)
	cmd.Flags().BoolVar(&bruteRank, "rank", false, "order candidates by how English they look")
	cmd.Flags().StringVar(&bruteWordList, "wordlist", "", "rank by dictionary hits from this word list (implies --rank)")
	cmd.Flags().StringVar(&outPath, "out", "", "write one file per shift, named <stem>_<shift><ext>")
	cmd.Flags().IntVar(&bruteWidth, "width", -1, "cut candidate text to this many columns (0 for full text; default: 60 on a terminal, full otherwise)")
	return cmd
}

func runBruteCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if err := validateFormat(outFormat); err != nil {
		return err
	}
	if cmd.Flags().Changed("wordlist") {
		cfg.WordListPath = bruteWordList
		bruteRank = true
	}
	input, err := readInput(cmd)
	if err != nil {
		return err
	}

	score := frequency.ChiSquared
	dict, err := loadDictionary(cfg.WordListPath)
	if err != nil {
		return err
	}
	if dict != nil {
		score = dict.Score
	}

	texts := cipher.DecryptAllShifts(input)
	candidates := scoreCandidates(texts, score, bruteRank)

	if outPath != "" {
		written, err := textio.SaveShiftCandidates(outPath, texts)
		if err != nil {
			return fmt.Errorf("failed to save candidates: %w", err)
		}
		log.Info().Int("files", len(written)).Str("base", outPath).Msg("brute-force candidates written")
		logErrf(cmd.ErrOrStderr(), "Wrote %d files next to %s\n", len(written), outPath)
	}

	if err := renderCandidates(cmd.OutOrStdout(), outFormat, candidates, bruteRank); err != nil {
		return err
	}
	recordRun(cmd.Context(), cfg, cipher.ModeTransposition, model.DirectionBrute, input, strings.Join(texts, "\n"))
	return nil
}

func scoreCandidates(texts []string, score func(string) float64, rank bool) []frequency.Candidate {
	if rank {
		return frequency.RankCandidatesBy(texts, score)
	}
	out := make([]frequency.Candidate, len(texts))
	for i, text := range texts {
		out[i] = frequency.Candidate{Shift: i + cipher.MinBruteShift, Text: text, Score: score(text)}
	}
	return out
}

func renderCandidates(w io.Writer, format string, candidates []frequency.Candidate, withScore bool) error {
	if format == formatText {
		if err := stats.RenderCandidates(w, candidates, withScore, previewWidth(w)); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	out := make([]candidateOutput, len(candidates))
	for i, c := range candidates {
		out[i] = candidateOutput{Shift: c.Shift, Text: c.Text}
		if !math.IsInf(c.Score, 0) && !math.IsNaN(c.Score) {
			s := c.Score
			out[i].Score = &s
		}
	}
	return writeStructured(w, format, out)
}

func previewWidth(w io.Writer) int {
	if bruteWidth >= 0 {
		return bruteWidth
	}
	if writesToTerminal(w) {
		return stats.CandidatePreviewWidth
	}
	return 0
}

func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Show letter frequencies of the input",
		Args:  cobra.NoArgs,
		RunE:  runAnalyzeCmd,
	}
	addInputFlags(cmd)
	addFormatFlag(cmd)
	cmd.Flags().BoolVar(&analyzeCaseSensitive, "case-sensitive", false, "count upper and lower case letters separately")
	cmd.Flags().BoolVar(&analyzeCompare, "compare", false, "show the English reference frequency of each letter")
	cmd.Flags().BoolVar(&analyzeBars, "bars", false, "draw observed vs English bars")
	return cmd
}

func runAnalyzeCmd(cmd *cobra.Command, _ []string) error {
	applyBoolConfig(cmd, "case-sensitive", &analyzeCaseSensitive, fileCfg.Analysis.CaseSensitive)
	if err := validateFormat(outFormat); err != nil {
		return err
	}
	input, err := readInput(cmd)
	if err != nil {
		return err
	}
	freqs := frequency.Analyze(input, analyzeCaseSensitive)

	w := cmd.OutOrStdout()
	if outFormat != formatText {
		return writeStructured(w, outFormat, newAnalysisOutput(freqs, analyzeCompare))
	}
	if err := stats.RenderFrequencyTable(w, freqs, analyzeCompare); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if analyzeBars && len(freqs) > 0 {
		if _, err := fmt.Fprintln(w); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		if err := stats.RenderFrequencyBars(w, freqs, 0, writesToTerminal(w)); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newKeygenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Print a random collision-free substitution key",
		Args:  cobra.NoArgs,
		RunE:  runKeygenCmd,
	}
	cmd.Flags().Int64Var(&keygenSeed, "seed", 0, "seed for a reproducible key")
	cmd.Flags().BoolVar(&keygenMixed, "mixed", false, "shuffle upper and lower case letters together")
	return cmd
}

func runKeygenCmd(cmd *cobra.Command, _ []string) error {
	gen := generator.New()
	if cmd.Flags().Changed("seed") {
		gen = generator.NewSeeded(keygenSeed)
	}
	key := gen.SubstitutionKey()
	if keygenMixed {
		key = gen.MixedKey()
	}
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), key); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded cipher runs",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	addFormatFlag(cmd)
	cmd.Flags().IntVar(&historyLast, "last", 0, "limit to last N runs")
	cmd.Flags().StringVar(&historyMode, "mode", "", "only show runs of this cipher mode")
	cmd.Flags().IntVar(&historyTop, "top", 10, "number of letters in the letter table (0 for all)")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	if err := validateFormat(outFormat); err != nil {
		return err
	}
	if historyLast < 0 {
		return fmt.Errorf("--last must be >= 0")
	}
	filter := model.HistoryFilter{Last: historyLast}
	if historyMode != "" {
		mode, err := cipher.ParseMode(historyMode)
		if err != nil {
			return err
		}
		filter.Mode = mode.String()
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer closeHistory(st)

	report, err := stats.BuildHistoryReport(cmd.Context(), st, filter)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}
	w := cmd.OutOrStdout()
	if outFormat != formatText {
		return writeStructured(w, outFormat, newHistoryOutput(report))
	}
	if err := stats.RenderHistory(w, report, historyTop); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func readInput(cmd *cobra.Command) (string, error) {
	if cmd.Flags().Changed("text") {
		return inputText, nil
	}
	if inputPath != "" {
		return textio.LoadText(inputPath)
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

func writeText(cmd *cobra.Command, text string) error {
	if outPath != "" {
		if err := textio.SaveText(outPath, text); err != nil {
			return err
		}
		log.Info().Str("path", outPath).Int("chars", len(text)).Msg("output written")
		return nil
	}
	w := cmd.OutOrStdout()
	// Only a terminal gets a trailing newline.
	if writesToTerminal(w) && !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	if _, err := io.WriteString(w, text); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func recordRun(ctx context.Context, cfg model.Config, mode cipher.Mode, direction model.Direction, input, output string) {
	st := openHistory(cfg)
	if st == nil {
		return
	}
	defer closeHistory(st)
	if ctx == nil {
		ctx = context.Background()
	}
	run, letters := stats.RunRecord(mode.String(), direction, cliSource, input, output)
	id, err := st.InsertRun(ctx, run, letters)
	if err != nil {
		log.Warn().Err(err).Msg("failed to record run")
		return
	}
	log.Debug().Str("run_id", id).Str("direction", string(direction)).Msg("run recorded")
}

func writesToTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isTerminal(f)
}
