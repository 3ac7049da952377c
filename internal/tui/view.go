package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/tprotect/internal/cipher"
)

const (
	sideBySideMinWidth = 80
	previewMaxHeight   = 6
	shiftColWidth      = 5
	scoreColWidth      = 9
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	activePaneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactivePaneStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	infoStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	titleStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
	modalStyle      = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A")).
			Padding(1, 2)
)

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.confirmExit {
		return fitLines(m.renderModal("Exit", "Are you sure to exit? y/n"), m.width, m.height)
	}
	if m.prompt != promptNone {
		return fitLines(m.renderPromptModal(), m.width, m.height)
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := lipgloss.Height(activeNavStyle.Render("X"))
	if tabsHeight < 1 {
		tabsHeight = 1
	}
	headerHeight = tabsHeight + 1
	footerHeight = 2
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()

	// Panes carry a border and a title line.
	paneWidth, paneHeight := m.width, bodyHeight/2
	if m.width >= sideBySideMinWidth {
		paneWidth, paneHeight = m.width/2, bodyHeight
	}
	for i := range m.panes {
		m.panes[i].SetWidth(maxInt(1, paneWidth-2))
		m.panes[i].SetHeight(maxInt(1, paneHeight-3))
	}

	previewHeight := minInt(previewMaxHeight, maxInt(1, bodyHeight/3))
	m.preview.Width = m.width
	m.preview.Height = previewHeight
	m.bruteTable.SetColumns(candidateColumns(m.width))
	m.bruteTable.SetWidth(m.width)
	m.bruteTable.SetHeight(maxInt(1, bodyHeight-previewHeight-2))

	m.freqView.Width = m.width
	m.freqView.Height = bodyHeight

	promptWidth := lipgloss.Width(m.input.Prompt)
	m.input.Width = maxInt(10, modalInnerWidth(m.width)-promptWidth)
}

func newCandidateTable() table.Model {
	t := table.New(
		table.WithColumns(candidateColumns(0)),
		table.WithHeight(1),
	)
	t.SetStyles(candidateTableStyles())
	return t
}

func candidateColumns(width int) []table.Column {
	textWidth := maxInt(10, width-shiftColWidth-scoreColWidth-3)
	return []table.Column{
		{Title: "Shift", Width: shiftColWidth},
		{Title: "Score", Width: scoreColWidth},
		{Title: "Text", Width: textWidth},
	}
}

func candidateTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func newPromptInput() textinput.Model {
	input := textinput.New()
	input.CharLimit = 0
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	tabs := padLines(m.renderTabs(), m.width)
	settings := padLines(m.renderSettings(), m.width)
	return tabs + "\n" + settings
}

func (m *Model) renderSettings() string {
	mode := m.selector.Mode()
	var key string
	if mode == cipher.ModeTransposition {
		key = fmt.Sprintf("shift=%d", m.selector.Shift().Key())
	} else {
		key = fmt.Sprintf("key=%s", m.selector.Substitution().Key())
	}
	summary := fmt.Sprintf("Mode: %s  %s", mode, key)
	return headerStyle.Render(truncateLine(summary, m.width))
}

func (m *Model) renderHelp() string {
	var help string
	switch m.activeTab {
	case tabBrute:
		help = "Select: up/down  Use candidate: enter  Tabs: shift+tab/f1-f3  Mode: ctrl+t  Quit: esc"
	case tabFrequency:
		help = "Scroll: up/down/pgup/pgdn  Tabs: shift+tab/f1-f3  Quit: esc"
	default:
		help = "Pane: tab  Encrypt: ctrl+e  Decrypt: ctrl+d  Mode: ctrl+t  Key: ctrl+k  Keygen: ctrl+g  " +
			"Clear: ctrl+x  Load: ctrl+o  Save: ctrl+s  Brute save: ctrl+b  Tabs: shift+tab/f1-f3  Quit: esc"
	}
	return headerStyle.Render(truncateLine(help, m.width))
}

func (m *Model) renderStatus() string {
	if m.status == "" {
		return ""
	}
	status := truncateLine(m.status, m.width)
	if m.statusErr {
		return errorStyle.Render(status)
	}
	return infoStyle.Render(status)
}

func (m *Model) renderFooter() string {
	return m.renderHelp() + "\n" + m.renderStatus()
}

func (m *Model) renderBody() string {
	switch m.activeTab {
	case tabBrute:
		if len(m.candidates) == 0 {
			return "No cipher text to brute force."
		}
		return tableMutedStyle.Render(m.bruteTable.View()) + "\n\n" + m.preview.View()
	case tabFrequency:
		return m.freqView.View()
	default:
		return m.renderPanes()
	}
}

func (m *Model) renderPanes() string {
	views := make([]string, len(m.panes))
	for i := range m.panes {
		style := inactivePaneStyle
		if i == m.focus {
			style = activePaneStyle
		}
		title := titleStyle.Render(strings.ToUpper(paneName(i)[:1]) + paneName(i)[1:])
		views[i] = style.Render(title + "\n" + m.panes[i].View())
	}
	if m.width >= sideBySideMinWidth {
		return lipgloss.JoinHorizontal(lipgloss.Top, views...)
	}
	return lipgloss.JoinVertical(lipgloss.Left, views...)
}

func (m *Model) renderPromptModal() string {
	title := "Set key"
	switch m.prompt {
	case promptLoad:
		title = fmt.Sprintf("Load into %s pane", paneName(m.focus))
	case promptSave:
		title = fmt.Sprintf("Save %s pane", paneName(m.focus))
	case promptBrute:
		title = "Save every shift"
	}
	lines := []string{
		titleStyle.Render(title),
		m.input.View(),
		headerStyle.Render("Enter to apply / Esc to cancel"),
	}
	if m.statusErr && m.status != "" {
		lines = append(lines, errorStyle.Render(m.status))
	}
	return m.renderBox(strings.Join(lines, "\n"))
}

func (m *Model) renderModal(title, body string) string {
	return m.renderBox(titleStyle.Render(title) + "\n" + body)
}

func (m *Model) renderBox(content string) string {
	box := modalStyle.Width(modalWidth(m.width)).Render(content)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func modalWidth(width int) int {
	return maxInt(40, minInt(width-4, 80))
}

func modalInnerWidth(width int) int {
	w := modalWidth(width)
	w -= 6 // 2 border + 4 padding
	if w < 10 {
		return 10
	}
	return w
}

func padLines(s string, width int) string {
	if width <= 0 || s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	return strings.Join(lines, "\n")
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	if width <= 3 {
		return runewidth.Truncate(s, width, "")
	}
	return runewidth.Truncate(s, width, "...")
}
