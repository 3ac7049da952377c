package tui

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/tprotect/internal/cipher"
	"github.com/verte-zerg/tprotect/internal/generator"
	"github.com/verte-zerg/tprotect/internal/model"
	"github.com/verte-zerg/tprotect/internal/store"
)

const nextLetterKey = "BCDEFGHIJKLMNOPQRSTUVWXYZAbcdefghijklmnopqrstuvwxyza"

func newTestModel(t *testing.T, opts Options) *Model {
	t.Helper()
	if opts.Selector == nil {
		sel, err := cipher.NewSelector(cipher.ModeSubstitution, nextLetterKey, 3)
		require.NoError(t, err)
		opts.Selector = sel
	}
	if opts.Generator == nil {
		opts.Generator = generator.NewSeeded(1)
	}
	m := NewModel(opts)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m
}

func press(m *Model, msgs ...tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	for _, msg := range msgs {
		_, cmd = m.Update(msg)
	}
	return cmd
}

func keyOf(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func runesOf(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestEncryptDecryptPanes(t *testing.T) {
	m := newTestModel(t, Options{Plain: "Hello, World!"})

	press(m, keyOf(tea.KeyCtrlE))
	assert.Equal(t, "Ifmmp, Xpsme!", m.panes[paneCipher].Value())
	assert.False(t, m.statusErr)

	press(m, keyOf(tea.KeyCtrlX))
	assert.Equal(t, "", m.panes[panePlain].Value())

	press(m, keyOf(tea.KeyCtrlD))
	assert.Equal(t, "Hello, World!", m.panes[panePlain].Value())
}

func TestToggleModeUsesShift(t *testing.T) {
	m := newTestModel(t, Options{Plain: "abcXYZ"})

	press(m, keyOf(tea.KeyCtrlT))
	require.Equal(t, cipher.ModeTransposition, m.selector.Mode())

	press(m, keyOf(tea.KeyCtrlE))
	assert.Equal(t, "defABC", m.panes[paneCipher].Value())

	press(m, keyOf(tea.KeyCtrlT))
	assert.Equal(t, cipher.ModeSubstitution, m.selector.Mode())
}

func TestTabCyclesPaneFocus(t *testing.T) {
	m := newTestModel(t, Options{})
	press(m, keyOf(tea.KeyTab))
	assert.Equal(t, paneCipher, m.focus)
	assert.True(t, m.panes[paneCipher].Focused())
	assert.False(t, m.panes[panePlain].Focused())
	press(m, keyOf(tea.KeyTab))
	assert.Equal(t, panePlain, m.focus)
}

func TestKeyPromptKeepsPreviousKeyOnError(t *testing.T) {
	m := newTestModel(t, Options{})

	press(m, keyOf(tea.KeyCtrlK))
	require.Equal(t, promptKey, m.prompt)
	assert.Equal(t, nextLetterKey, m.input.Value())

	m.input.SetValue("")
	press(m, keyOf(tea.KeyEnter))
	assert.Equal(t, promptKey, m.prompt)
	assert.True(t, m.statusErr)
	assert.Contains(t, m.status, "substitution key")
	assert.Equal(t, nextLetterKey, m.selector.Substitution().Key())

	press(m, keyOf(tea.KeyEsc))
	assert.Equal(t, promptNone, m.prompt)
	assert.False(t, m.confirmExit)
}

func TestKeyPromptWarnsOnCollisions(t *testing.T) {
	m := newTestModel(t, Options{})
	press(m, keyOf(tea.KeyCtrlK))
	m.input.SetValue("AB")
	press(m, keyOf(tea.KeyEnter))

	assert.Equal(t, promptNone, m.prompt)
	assert.Equal(t, "AB", m.selector.Substitution().Key())
	assert.True(t, m.statusErr)
	assert.Contains(t, m.status, "lossy")
}

func TestShiftPrompt(t *testing.T) {
	m := newTestModel(t, Options{})
	press(m, keyOf(tea.KeyCtrlT), keyOf(tea.KeyCtrlK))
	assert.Equal(t, "3", m.input.Value())

	m.input.SetValue("abc")
	press(m, keyOf(tea.KeyEnter))
	assert.True(t, m.statusErr)
	assert.Contains(t, m.status, "shift")
	assert.Equal(t, 3, m.selector.Shift().Key())

	m.input.SetValue("-1")
	press(m, keyOf(tea.KeyEnter))
	assert.Equal(t, promptNone, m.prompt)
	assert.Equal(t, 1, m.selector.Shift().Key())
}

func TestGenerateKey(t *testing.T) {
	m := newTestModel(t, Options{})
	press(m, keyOf(tea.KeyCtrlG))
	key := m.selector.Substitution().Key()
	assert.NotEqual(t, nextLetterKey, key)
	assert.True(t, cipher.Bijective(key))

	press(m, keyOf(tea.KeyCtrlT), keyOf(tea.KeyCtrlG))
	shift := m.selector.Shift().Key()
	assert.GreaterOrEqual(t, shift, cipher.MinBruteShift)
	assert.LessOrEqual(t, shift, cipher.MaxBruteShift)
}

func TestBruteSaveNeedsTransposition(t *testing.T) {
	m := newTestModel(t, Options{Cipher: "Khoor"})
	press(m, keyOf(tea.KeyCtrlB))
	assert.Equal(t, promptNone, m.prompt)
	assert.True(t, m.statusErr)
	assert.Contains(t, m.View(), "brute-force export needs transposition mode")
}

func TestBruteSaveWritesEveryShift(t *testing.T) {
	m := newTestModel(t, Options{Cipher: "Khoor"})
	base := filepath.Join(t.TempDir(), "out", "msg.txt")

	press(m, keyOf(tea.KeyCtrlT), keyOf(tea.KeyCtrlB))
	require.Equal(t, promptBrute, m.prompt)
	m.input.SetValue(base)
	press(m, keyOf(tea.KeyEnter))
	require.False(t, m.statusErr, m.status)

	for shift := cipher.MinBruteShift; shift <= cipher.MaxBruteShift; shift++ {
		_, err := os.Stat(filepath.Join(filepath.Dir(base), "msg_"+strconv.Itoa(shift)+".txt"))
		require.NoError(t, err)
	}
	data, err := os.ReadFile(filepath.Join(filepath.Dir(base), "msg_3.txt"))
	require.NoError(t, err)
	assert.Equal(t, "Hello", string(data))
}

func TestLoadAndSavePanes(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.txt")
	require.NoError(t, os.WriteFile(in, []byte("Attack at dawn"), 0o644))

	m := newTestModel(t, Options{})
	press(m, keyOf(tea.KeyCtrlO))
	m.input.SetValue(in)
	press(m, keyOf(tea.KeyEnter))
	require.False(t, m.statusErr, m.status)
	assert.Equal(t, "Attack at dawn", m.panes[panePlain].Value())

	out := filepath.Join(dir, "copy.txt")
	press(m, keyOf(tea.KeyCtrlS))
	m.input.SetValue(out)
	press(m, keyOf(tea.KeyEnter))
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "Attack at dawn", string(data))

	press(m, keyOf(tea.KeyCtrlO))
	m.input.SetValue(filepath.Join(dir, "missing.txt"))
	press(m, keyOf(tea.KeyEnter))
	assert.True(t, m.statusErr)
	assert.Equal(t, promptLoad, m.prompt)
}

func TestBruteTabRanksAndAppliesCandidate(t *testing.T) {
	plain := "Attack at dawn. The enemy is weakest before the sun rises over the eastern hills."
	enc, err := cipher.NewShift(7).Encrypt(plain)
	require.NoError(t, err)
	m := newTestModel(t, Options{Cipher: enc})

	press(m, keyOf(tea.KeyShiftTab))
	require.Equal(t, tabBrute, m.activeTab)
	require.Len(t, m.candidates, cipher.MaxBruteShift)
	assert.Equal(t, 7, m.candidates[0].Shift)
	assert.Contains(t, m.View(), "Shift 7")

	press(m, keyOf(tea.KeyEnter))
	assert.Equal(t, plain, m.panes[panePlain].Value())
	assert.Equal(t, 7, m.selector.Shift().Key())
}

func TestBruteTabEmpty(t *testing.T) {
	m := newTestModel(t, Options{})
	press(m, keyOf(tea.KeyF2))
	assert.Empty(t, m.candidates)
	assert.Contains(t, m.View(), "No cipher text to brute force.")
}

func TestFrequencyTab(t *testing.T) {
	m := newTestModel(t, Options{Plain: "aab"})
	press(m, keyOf(tea.KeyF3))
	require.Equal(t, tabFrequency, m.activeTab)
	view := m.freqView.View()
	assert.Contains(t, view, "Source: plain pane")
	assert.Contains(t, view, "Letters counted: 3")
}

func TestExitConfirmation(t *testing.T) {
	m := newTestModel(t, Options{})

	press(m, keyOf(tea.KeyEsc))
	require.True(t, m.confirmExit)
	assert.Contains(t, m.View(), "Are you sure to exit? y/n")

	cmd := press(m, runesOf("n"))
	assert.Nil(t, cmd)
	assert.False(t, m.confirmExit)

	press(m, keyOf(tea.KeyCtrlC))
	require.True(t, m.confirmExit)
	cmd = press(m, runesOf("y"))
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestRecordsRunsToStore(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "tprotect.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = st.Close()
	})

	m := newTestModel(t, Options{Store: st, Plain: "Hello, World!"})
	press(m, keyOf(tea.KeyCtrlE))
	require.False(t, m.statusErr, m.status)

	runs, err := st.ListRuns(context.Background(), model.HistoryFilter{})
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "tui", runs[0].Source)
	assert.Equal(t, model.DirectionEncrypt, runs[0].Direction)
	assert.Equal(t, "substitution", runs[0].Mode)
	assert.Equal(t, 10, runs[0].Letters)
}

func TestViewShowsTabsAndSettings(t *testing.T) {
	m := newTestModel(t, Options{})
	view := m.View()
	for _, want := range []string{"Cipher", "Brute Force", "Frequency", "Mode: substitution"} {
		assert.True(t, strings.Contains(view, want), "view missing %q", want)
	}
}
