package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

type cell struct {
	r       rune
	width   int
	isSpace bool
}

// wrapText breaks each line of s so no line is wider than width, preferring
// to break at spaces. A width of 0 or less leaves s unchanged.
func wrapText(s string, width int) string {
	if width <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = wrapCells(toCells(line), width)
	}
	return strings.Join(lines, "\n")
}

func toCells(s string) []cell {
	out := make([]cell, 0, len(s))
	for _, r := range s {
		if r == '\t' || r == '\r' {
			r = ' '
		}
		out = append(out, cell{r: r, width: runewidth.RuneWidth(r), isSpace: r == ' '})
	}
	return out
}

func wrapCells(cells []cell, width int) string {
	var out strings.Builder
	line := make([]cell, 0, len(cells))
	lineWidth := 0
	lastSpaceIdx := -1

	for i := 0; i < len(cells); {
		c := cells[i]
		if lineWidth+c.width > width && len(line) > 0 {
			switch {
			case c.isSpace:
				// Break on the overflowing space and drop it.
				out.WriteString(renderCells(line))
				out.WriteRune('\n')
				line = line[:0]
				lineWidth = 0
				lastSpaceIdx = -1
				i++
			case lastSpaceIdx > 0:
				out.WriteString(renderCells(line[:lastSpaceIdx]))
				out.WriteRune('\n')
				line = append([]cell{}, line[lastSpaceIdx+1:]...)
				lineWidth = lineWidthOf(line)
				lastSpaceIdx = lastSpaceIndex(line)
			default:
				out.WriteString(renderCells(line))
				out.WriteRune('\n')
				line = line[:0]
				lineWidth = 0
				lastSpaceIdx = -1
			}
			continue
		}
		line = append(line, c)
		lineWidth += c.width
		if c.isSpace {
			lastSpaceIdx = len(line) - 1
		}
		i++
	}
	out.WriteString(renderCells(line))
	return out.String()
}

func renderCells(cells []cell) string {
	var b strings.Builder
	for _, c := range cells {
		b.WriteRune(c.r)
	}
	return b.String()
}

func lineWidthOf(line []cell) int {
	total := 0
	for _, c := range line {
		total += c.width
	}
	return total
}

func lastSpaceIndex(line []cell) int {
	for i := len(line) - 1; i >= 0; i-- {
		if line[i].isSpace {
			return i
		}
	}
	return -1
}
