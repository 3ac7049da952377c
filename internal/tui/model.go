// Package tui provides the Bubble Tea cipher workbench.
package tui

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/verte-zerg/tprotect/internal/cipher"
	"github.com/verte-zerg/tprotect/internal/frequency"
	"github.com/verte-zerg/tprotect/internal/generator"
	"github.com/verte-zerg/tprotect/internal/model"
	"github.com/verte-zerg/tprotect/internal/stats"
	"github.com/verte-zerg/tprotect/internal/store"
	"github.com/verte-zerg/tprotect/internal/textio"
	"github.com/verte-zerg/tprotect/internal/wordlist"
)

const (
	tabCipher = iota
	tabBrute
	tabFrequency
)

const (
	panePlain = iota
	paneCipher
)

const runSource = "tui"

type promptKind int

const (
	promptNone promptKind = iota
	promptKey
	promptLoad
	promptSave
	promptBrute
)

// Options configures a workbench. Selector is required; the rest is optional.
type Options struct {
	Selector      *cipher.Selector
	Store         *store.Store
	Generator     *generator.Generator
	Dictionary    *wordlist.Dictionary
	CaseSensitive bool
	Plain         string
	Cipher        string
}

// Model implements the Bubble Tea workbench. It owns every piece of
// application state; nothing is shared through package variables.
type Model struct {
	selector      *cipher.Selector
	store         *store.Store
	gen           *generator.Generator
	score         func(string) float64
	caseSensitive bool

	tabs      []string
	activeTab int

	panes [2]textarea.Model
	focus int

	candidates []frequency.Candidate
	bruteTable table.Model
	preview    viewport.Model
	freqView   viewport.Model

	prompt promptKind
	input  textinput.Model

	confirmExit bool
	status      string
	statusErr   bool

	width  int
	height int
}

// NewModel constructs a workbench model.
func NewModel(opts Options) *Model {
	m := &Model{
		selector:      opts.Selector,
		store:         opts.Store,
		gen:           opts.Generator,
		score:         frequency.ChiSquared,
		caseSensitive: opts.CaseSensitive,
		tabs:          []string{"Cipher", "Brute Force", "Frequency"},
		bruteTable:    newCandidateTable(),
		preview:       viewport.New(0, 0),
		freqView:      viewport.New(0, 0),
		input:         newPromptInput(),
	}
	if m.gen == nil {
		m.gen = generator.New()
	}
	if opts.Dictionary != nil && opts.Dictionary.Len() > 0 {
		m.score = opts.Dictionary.Score
	}
	m.panes[panePlain] = newPane("Plain text", opts.Plain)
	m.panes[paneCipher] = newPane("Cipher text", opts.Cipher)
	m.panes[panePlain].Focus()
	return m
}

func newPane(placeholder, value string) textarea.Model {
	ta := textarea.New()
	ta.Prompt = ""
	ta.Placeholder = placeholder
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.SetValue(value)
	return ta
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textarea.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.refreshTab()
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	var cmd tea.Cmd
	if m.prompt != promptNone {
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	m.panes[m.focus], cmd = m.panes[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirmExit {
		return m.updateConfirm(msg)
	}
	if msg.Type == tea.KeyCtrlC {
		m.confirmExit = true
		return m, nil
	}
	if m.prompt != promptNone {
		return m.updatePrompt(msg)
	}

	switch msg.String() {
	case "esc":
		m.confirmExit = true
		return m, nil
	case "shift+tab":
		m.moveTab(1)
		return m, tea.ClearScreen
	case "f1":
		m.setTab(tabCipher)
		return m, tea.ClearScreen
	case "f2":
		m.setTab(tabBrute)
		return m, tea.ClearScreen
	case "f3":
		m.setTab(tabFrequency)
		return m, tea.ClearScreen
	case "ctrl+t":
		m.toggleMode()
		return m, nil
	case "ctrl+k":
		return m, m.startPrompt(promptKey)
	case "ctrl+g":
		m.generateKey()
		return m, nil
	}

	switch m.activeTab {
	case tabCipher:
		return m.updateCipherTab(msg)
	case tabBrute:
		return m.updateBruteTab(msg)
	default:
		var cmd tea.Cmd
		m.freqView, cmd = m.freqView.Update(msg)
		return m, cmd
	}
}

func (m *Model) updateCipherTab(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab":
		m.panes[m.focus].Blur()
		m.focus = (m.focus + 1) % len(m.panes)
		return m, m.panes[m.focus].Focus()
	case "ctrl+e":
		m.encrypt()
		return m, nil
	case "ctrl+d":
		m.decrypt()
		return m, nil
	case "ctrl+x":
		m.panes[m.focus].Reset()
		m.setInfo(fmt.Sprintf("cleared %s pane", paneName(m.focus)))
		return m, nil
	case "ctrl+o":
		return m, m.startPrompt(promptLoad)
	case "ctrl+s":
		return m, m.startPrompt(promptSave)
	case "ctrl+b":
		if m.selector.Mode() != cipher.ModeTransposition {
			m.setError(fmt.Errorf("brute-force export needs %s mode", cipher.ModeTransposition))
			return m, nil
		}
		return m, m.startPrompt(promptBrute)
	}
	var cmd tea.Cmd
	m.panes[m.focus], cmd = m.panes[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) updateBruteTab(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEnter {
		m.applyCandidate()
		return m, nil
	}
	var cmd tea.Cmd
	m.bruteTable, cmd = m.bruteTable.Update(msg)
	m.updatePreview()
	return m, cmd
}

func (m *Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		return m, tea.Quit
	case "n", "N", "esc":
		m.confirmExit = false
	}
	return m, nil
}

func (m *Model) startPrompt(kind promptKind) tea.Cmd {
	m.prompt = kind
	m.input.Prompt = promptLabel(kind)
	m.input.Placeholder = ""
	m.input.SetValue("")
	switch kind {
	case promptKey:
		if m.selector.Mode() == cipher.ModeTransposition {
			m.input.Prompt = "Shift: "
			m.input.SetValue(strconv.Itoa(m.selector.Shift().Key()))
		} else {
			m.input.SetValue(m.selector.Substitution().Key())
		}
	case promptBrute:
		m.input.Placeholder = "out/message.txt"
	default:
		m.input.Placeholder = "path/to/file.txt"
	}
	m.updateLayout()
	return m.input.Focus()
}

func (m *Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.closePrompt()
		return m, nil
	case tea.KeyEnter:
		if err := m.applyPrompt(); err != nil {
			m.setError(err)
			return m, nil
		}
		m.closePrompt()
		m.refreshTab()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) closePrompt() {
	m.prompt = promptNone
	m.input.Blur()
}

func (m *Model) applyPrompt() error {
	value := m.input.Value()
	if m.prompt == promptKey {
		return m.applyKey(value)
	}

	path := strings.TrimSpace(value)
	if path == "" {
		return fmt.Errorf("path must not be empty")
	}
	switch m.prompt {
	case promptLoad:
		text, err := textio.LoadText(path)
		if err != nil {
			return err
		}
		m.panes[m.focus].SetValue(text)
		m.setInfo(fmt.Sprintf("loaded %s into %s pane", path, paneName(m.focus)))
	case promptSave:
		if err := textio.SaveText(path, m.panes[m.focus].Value()); err != nil {
			return err
		}
		m.setInfo(fmt.Sprintf("saved %s pane to %s", paneName(m.focus), path))
	case promptBrute:
		written, err := textio.SaveShiftCandidates(path, cipher.DecryptAllShifts(m.panes[paneCipher].Value()))
		if err != nil {
			return err
		}
		m.setInfo(fmt.Sprintf("wrote %d brute-force files next to %s", len(written), path))
	}
	return nil
}

func (m *Model) applyKey(value string) error {
	if m.selector.Mode() == cipher.ModeTransposition {
		shift, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return &cipher.ConfigError{Field: "shift", Err: fmt.Errorf("%q is not an integer", value)}
		}
		m.selector.Shift().SetKey(shift)
		m.setInfo(fmt.Sprintf("shift set to %d", m.selector.Shift().Key()))
		return nil
	}
	if err := m.selector.Substitution().SetKey(value); err != nil {
		return err
	}
	if collisions := cipher.KeyCollisions(value); len(collisions) > 0 {
		m.setError(fmt.Errorf("key set, but %d cipher letters are shared; decryption will be lossy", len(collisions)))
		return nil
	}
	m.setInfo("substitution key updated")
	return nil
}

func (m *Model) encrypt() {
	plain := m.panes[panePlain].Value()
	out, err := m.selector.Encrypt(plain)
	if err != nil {
		m.setError(err)
		return
	}
	m.panes[paneCipher].SetValue(out)
	m.setInfo(fmt.Sprintf("encrypted %d characters (%s)", len(plain), m.selector.Mode()))
	m.record(model.DirectionEncrypt, plain, out)
}

func (m *Model) decrypt() {
	ciphertext := m.panes[paneCipher].Value()
	out, err := m.selector.Decrypt(ciphertext)
	if err != nil {
		m.setError(err)
		return
	}
	m.panes[panePlain].SetValue(out)
	m.setInfo(fmt.Sprintf("decrypted %d characters (%s)", len(ciphertext), m.selector.Mode()))
	m.record(model.DirectionDecrypt, ciphertext, out)
}

func (m *Model) record(direction model.Direction, input, output string) {
	if m.store == nil {
		return
	}
	run, letters := stats.RunRecord(m.selector.Mode().String(), direction, runSource, input, output)
	id, err := m.store.InsertRun(context.Background(), run, letters)
	if err != nil {
		m.setError(fmt.Errorf("failed to record run: %w", err))
		return
	}
	log.Debug().Str("run_id", id).Str("direction", string(direction)).Msg("run recorded")
}

func (m *Model) toggleMode() {
	next := cipher.ModeTransposition
	if m.selector.Mode() == cipher.ModeTransposition {
		next = cipher.ModeSubstitution
	}
	if err := m.selector.Select(next); err != nil {
		m.setError(err)
		return
	}
	m.setInfo(fmt.Sprintf("mode: %s", next))
}

func (m *Model) generateKey() {
	if m.selector.Mode() == cipher.ModeTransposition {
		m.selector.Shift().SetKey(m.gen.ShiftKey())
		m.setInfo(fmt.Sprintf("generated shift %d", m.selector.Shift().Key()))
		return
	}
	if err := m.selector.Substitution().SetKey(m.gen.SubstitutionKey()); err != nil {
		m.setError(err)
		return
	}
	m.setInfo("generated substitution key")
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	if count == 0 {
		return
	}
	next := (m.activeTab + delta) % count
	if next < 0 {
		next += count
	}
	m.setTab(next)
}

func (m *Model) setTab(tab int) {
	m.activeTab = tab
	if tab == tabBrute {
		m.bruteTable.Focus()
	} else {
		m.bruteTable.Blur()
	}
	m.refreshTab()
}

func (m *Model) refreshTab() {
	switch m.activeTab {
	case tabBrute:
		m.refreshCandidates()
	case tabFrequency:
		m.refreshFrequency()
	}
}

func (m *Model) refreshCandidates() {
	text := m.panes[paneCipher].Value()
	m.candidates = nil
	if strings.TrimSpace(text) != "" {
		m.candidates = frequency.RankCandidatesBy(cipher.DecryptAllShifts(text), m.score)
	}
	_, rows := stats.CandidateRows(m.candidates, true, 0)
	tableRows := make([]table.Row, len(rows))
	for i, row := range rows {
		tableRows[i] = table.Row(row)
	}
	m.bruteTable.SetRows(tableRows)
	m.bruteTable.SetCursor(0)
	m.updatePreview()
}

func (m *Model) updatePreview() {
	idx := m.bruteTable.Cursor()
	if idx < 0 || idx >= len(m.candidates) {
		m.preview.SetContent("")
		return
	}
	c := m.candidates[idx]
	header := headerStyle.Render(fmt.Sprintf("Shift %d", c.Shift))
	m.preview.SetContent(header + "\n" + wrapText(c.Text, m.preview.Width))
	m.preview.GotoTop()
}

func (m *Model) applyCandidate() {
	idx := m.bruteTable.Cursor()
	if idx < 0 || idx >= len(m.candidates) {
		m.setError(fmt.Errorf("no candidate selected"))
		return
	}
	c := m.candidates[idx]
	m.panes[panePlain].SetValue(c.Text)
	m.selector.Shift().SetKey(c.Shift)
	m.setInfo(fmt.Sprintf("shift %d applied to plain pane", c.Shift))
}

func (m *Model) refreshFrequency() {
	text := m.panes[m.focus].Value()
	freqs := frequency.Analyze(text, m.caseSensitive)
	width := m.freqView.Width
	if width <= 0 {
		width = 80
	}
	var buf bytes.Buffer
	buf.WriteString(headerStyle.Render(fmt.Sprintf("Source: %s pane", paneName(m.focus))))
	buf.WriteByte('\n')
	if err := stats.RenderFrequencyTable(&buf, freqs, true); err != nil {
		m.freqView.SetContent(fmt.Sprintf("Failed to render frequencies: %v", err))
		return
	}
	if len(freqs) > 0 {
		buf.WriteByte('\n')
		if err := stats.RenderFrequencyBars(&buf, freqs, width, false); err != nil {
			m.freqView.SetContent(fmt.Sprintf("Failed to render frequencies: %v", err))
			return
		}
	}
	m.freqView.SetContent(strings.TrimRight(buf.String(), "\n"))
}

func (m *Model) setInfo(msg string) {
	m.status = msg
	m.statusErr = false
}

func (m *Model) setError(err error) {
	m.status = err.Error()
	m.statusErr = true
}

func paneName(pane int) string {
	if pane == paneCipher {
		return "cipher"
	}
	return "plain"
}

func promptLabel(kind promptKind) string {
	switch kind {
	case promptKey:
		return "Key: "
	case promptLoad:
		return "Load from: "
	case promptSave:
		return "Save to: "
	case promptBrute:
		return "Brute-force base path: "
	default:
		return ""
	}
}
