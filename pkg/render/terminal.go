package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/wordcloud/pkg/core/cloud"
)

const (
	terminalFill  = '·'
	terminalEmpty = ' '
)

// RenderTerminal draws a cols x rows character preview of l. Each word's
// rotated bounding box is shaded in the word's color with as much of its
// text as fits written across the middle row. Later words never overwrite
// earlier ones.
func RenderTerminal(l Layout, s Style, cols, rows int) string {
	if cols <= 0 || rows <= 0 || l.Width <= 0 || l.Height <= 0 {
		return ""
	}

	cells := make([]rune, cols*rows)
	owner := make([]int, cols*rows)
	for i := range cells {
		cells[i] = terminalEmpty
		owner[i] = -1
	}

	sx := float64(cols) / float64(l.Width)
	sy := float64(rows) / float64(l.Height)

	for idx, w := range l.Words {
		width, height := cloud.Estimate(w.Text, w.Size, cloud.DefaultCharWidth)
		b := cloud.RotatedBounds(w.X, w.Y, width, height, w.Rotate)
		c0, c1 := clampInt(int(b.MinX*sx), 0, cols-1), clampInt(int(b.MaxX*sx), 0, cols-1)
		r0, r1 := clampInt(int(b.MinY*sy), 0, rows-1), clampInt(int(b.MaxY*sy), 0, rows-1)

		for r := r0; r <= r1; r++ {
			for c := c0; c <= c1; c++ {
				if owner[r*cols+c] < 0 {
					owner[r*cols+c] = idx
					cells[r*cols+c] = terminalFill
				}
			}
		}

		text := []rune(w.Text)
		span := c1 - c0 + 1
		if len(text) > span {
			text = text[:span]
		}
		mid := clampInt(int(w.Y*sy), r0, r1)
		start := c0 + (span-len(text))/2
		for k, ch := range text {
			if i := mid*cols + start + k; owner[i] == idx {
				cells[i] = ch
			}
		}
	}

	styles := make(map[int]lipgloss.Style)
	styleFor := func(idx int) lipgloss.Style {
		if st, ok := styles[idx]; ok {
			return st
		}
		w := l.Words[idx]
		st := lipgloss.NewStyle().Foreground(lipgloss.Color(s.wordColor(idx, w.Color).Hex()))
		styles[idx] = st
		return st
	}

	var out strings.Builder
	for r := range rows {
		for c := 0; c < cols; {
			idx := owner[r*cols+c]
			end := c
			for end < cols && owner[r*cols+end] == idx {
				end++
			}
			seg := string(cells[r*cols+c : r*cols+end])
			if idx < 0 {
				out.WriteString(seg)
			} else {
				out.WriteString(styleFor(idx).Render(seg))
			}
			c = end
		}
		if r < rows-1 {
			out.WriteByte('\n')
		}
	}
	return out.String()
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
