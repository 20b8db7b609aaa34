package pdfreport

import (
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Layout tolerances for grouping positioned text into a grid. The agenda
// report is rendered with a uniform small font, so fixed point values hold
// across pages.
const (
	rowTolerance    = 3.0  // Y distance still considered the same visual line
	cellPadding     = 2.0  // X slack when matching a cell to a column start
	minCellGap      = 4.0  // smallest gap treated as a cell boundary
	wordGapFraction = 0.15 // of font size: smaller gaps are kerning, not spaces
)

// cell is one horizontal run of text within a visual line.
type cell struct {
	x    float64
	text string
}

// line is one visual row of the page, cells ordered left to right.
type line struct {
	y     float64
	cells []cell
}

// text returns the line's cells joined as free text.
func (l line) text() string {
	parts := make([]string, 0, len(l.cells))
	for _, c := range l.cells {
		if c.text != "" {
			parts = append(parts, c.text)
		}
	}
	return strings.Join(parts, " ")
}

// buildLines groups a page's positioned text fragments into visual lines.
// Fragments are bucketed by Y within rowTolerance, then merged left to
// right into cells wherever the horizontal gap stays below the font size.
func buildLines(texts []pdf.Text) []line {
	filtered := make([]pdf.Text, 0, len(texts))
	for _, t := range texts {
		if strings.TrimSpace(t.S) != "" {
			filtered = append(filtered, t)
		}
	}
	if len(filtered) == 0 {
		return nil
	}

	// PDF Y grows upward; sort top of page first.
	sort.SliceStable(filtered, func(i, j int) bool {
		if filtered[i].Y != filtered[j].Y {
			return filtered[i].Y > filtered[j].Y
		}
		return filtered[i].X < filtered[j].X
	})

	var lines []line
	group := []pdf.Text{filtered[0]}
	for _, t := range filtered[1:] {
		if group[0].Y-t.Y <= rowTolerance {
			group = append(group, t)
			continue
		}
		lines = append(lines, mergeLine(group))
		group = []pdf.Text{t}
	}
	lines = append(lines, mergeLine(group))
	return lines
}

// mergeLine joins adjacent fragments of one visual line into cells. The
// extractor emits one fragment per glyph, so word breaks only survive as
// horizontal gaps: a gap wider than the fragment's font size (or minCellGap
// for tiny fonts) starts a new cell, a gap wider than wordGapFraction of the
// font size is a word space, and anything narrower is kerning between glyphs
// of the same word.
func mergeLine(group []pdf.Text) line {
	sort.SliceStable(group, func(i, j int) bool { return group[i].X < group[j].X })

	ln := line{y: group[0].Y}
	current := cell{x: group[0].X, text: strings.TrimSpace(group[0].S)}
	rightEdge := group[0].X + group[0].W

	for _, t := range group[1:] {
		cellGap := t.FontSize
		if cellGap < minCellGap {
			cellGap = minCellGap
		}
		frag := strings.TrimSpace(t.S)
		gap := t.X - rightEdge
		switch {
		case gap > cellGap:
			ln.cells = append(ln.cells, current)
			current = cell{x: t.X, text: frag}
		case frag == "":
		case current.text == "":
			current.text = frag
		case gap > t.FontSize*wordGapFraction:
			current.text += " " + frag
		default:
			current.text += frag
		}
		if t.X+t.W > rightEdge {
			rightEdge = t.X + t.W
		}
	}
	ln.cells = append(ln.cells, current)
	return ln
}

// columnStarts returns the X anchor of each cell in a header line. Data
// rows are projected onto these anchors to form the table grid.
func columnStarts(header line) []float64 {
	starts := make([]float64, len(header.cells))
	for i, c := range header.cells {
		starts[i] = c.x
	}
	return starts
}

// projectRow places a line's cells into the table columns anchored at
// starts. A cell belongs to the rightmost column starting at or left of its
// X position (within cellPadding); cells landing in the same column are
// joined with a space.
func projectRow(ln line, starts []float64) []string {
	row := make([]string, len(starts))
	for _, c := range ln.cells {
		col := 0
		for i, start := range starts {
			if start <= c.x+cellPadding {
				col = i
			}
		}
		if row[col] == "" {
			row[col] = c.text
		} else {
			row[col] += " " + c.text
		}
	}
	return row
}
