package chart

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/x/ansi"
	"github.com/guptarohit/asciigraph"
)

// Glyphs used for the horizontal box rows.
const (
	glyphWhisker = '─'
	glyphBox     = '▒'
	glyphMedian  = '┃'
	glyphMean    = '◆'
	glyphLowEnd  = '├'
	glyphHighEnd = '┤'
	glyphOutlier = '•'
)

// Terminal renders a Figure as text for a terminal.
type Terminal struct {
	Width         int
	Color         bool
	ProfileHeight int
}

const (
	defaultWidth  = 100
	minPlotWidth  = 20
	defaultHeight = 10
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	axisStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

func (r Terminal) width() int {
	if r.Width <= 0 {
		return defaultWidth
	}
	return r.Width
}

func (r Terminal) paint(style lipgloss.Style, s string) string {
	if !r.Color {
		return s
	}
	return style.Render(s)
}

// Render draws the title, the box rows on a shared axis, reference lines,
// the legend, the optional depth profile and the summary table.
func (r Terminal) Render(f *Figure) string {
	var b strings.Builder
	b.WriteString(r.paint(titleStyle, f.Title))
	b.WriteString("\n\n")
	if f.YAxisTitle != "" {
		b.WriteString(r.paint(axisStyle, fmt.Sprintf("%s by %s", f.YAxisTitle, axisLabel(f.XAxisTitle))))
		b.WriteString("\n")
	}
	b.WriteString(r.Boxes(f))
	for _, l := range f.Lines {
		b.WriteString(fmt.Sprintf("%s %s\n", dashGlyph(l.Dash), l.Label))
	}
	if len(f.Legend) > 0 {
		b.WriteString("\n")
		b.WriteString(r.Legend(f))
		b.WriteString("\n")
	}
	if len(f.Profile) > 1 {
		b.WriteString("\n")
		b.WriteString(r.Profile(f))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(r.Table(f))
	b.WriteString("\n")
	return b.String()
}

func axisLabel(x string) string {
	if x == "" {
		return "dataset"
	}
	return strings.ToLower(x)
}

func dashGlyph(d string) string {
	if d == "dot" {
		return "···"
	}
	return "- -"
}

// Boxes draws one row per box on a shared value axis followed by the axis.
func (r Terminal) Boxes(f *Figure) string {
	if len(f.Boxes) == 0 {
		return "(no data)\n"
	}
	labelW := 0
	for _, bx := range f.Boxes {
		labelW = max(labelW, ansi.StringWidth(bx.Name))
	}
	plotW := max(r.width()-labelW-3, minPlotWidth)

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, bx := range f.Boxes {
		lo = math.Min(lo, bx.Stats.Min)
		hi = math.Max(hi, bx.Stats.Max)
	}
	ax := axis{lo: lo, hi: hi, width: plotW}

	var b strings.Builder
	for _, bx := range f.Boxes {
		row := ax.row(bx)
		b.WriteString(padRight(bx.Name, labelW))
		b.WriteString(" │")
		b.WriteString(r.paint(lipgloss.NewStyle().Foreground(lipgloss.Color(bx.Color)), row))
		b.WriteString("\n")
	}
	b.WriteString(strings.Repeat(" ", labelW))
	b.WriteString(" └")
	b.WriteString(strings.Repeat("─", plotW))
	b.WriteString("\n")
	b.WriteString(strings.Repeat(" ", labelW+2))
	b.WriteString(r.paint(axisStyle, ax.ticks()))
	b.WriteString("\n")
	return b.String()
}

// Legend lists each color once.
func (r Terminal) Legend(f *Figure) string {
	parts := make([]string, 0, len(f.Legend))
	for _, it := range f.Legend {
		sq := r.paint(lipgloss.NewStyle().Foreground(lipgloss.Color(it.Color)), "■")
		parts = append(parts, fmt.Sprintf("%s %s", sq, it.Label))
	}
	out := strings.Join(parts, "  ")
	if f.LegendTitle != "" {
		out = f.LegendTitle + ": " + out
	}
	return out
}

// Profile plots the values in depth order.
func (r Terminal) Profile(f *Figure) string {
	h := r.ProfileHeight
	if h <= 0 {
		h = defaultHeight
	}
	return asciigraph.Plot(f.Profile,
		asciigraph.Height(h),
		asciigraph.Width(max(r.width()-12, minPlotWidth)),
		asciigraph.Caption(fmt.Sprintf("%s in depth order", f.YAxisTitle)),
	)
}

// Table renders the summary rows.
func (r Terminal) Table(f *Figure) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(f.Table.Header...).
		Rows(f.Table.Rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow && r.Color {
				return headerStyle
			}
			return cellStyle
		})
	return t.String()
}

type axis struct {
	lo, hi float64
	width  int
}

func (a axis) pos(v float64) int {
	if math.IsNaN(v) || a.hi <= a.lo {
		return a.width / 2
	}
	p := int(math.Round((v - a.lo) / (a.hi - a.lo) * float64(a.width-1)))
	return min(max(p, 0), a.width-1)
}

func (a axis) row(bx Box) string {
	cells := []rune(strings.Repeat(" ", a.width))
	s := bx.Stats
	wl, wh := a.pos(s.WhiskerLow), a.pos(s.WhiskerHigh)
	for i := wl; i <= wh; i++ {
		cells[i] = glyphWhisker
	}
	q1, q3 := a.pos(s.Q1), a.pos(s.Q3)
	for i := q1; i <= q3; i++ {
		cells[i] = glyphBox
	}
	if wl < q1 {
		cells[wl] = glyphLowEnd
	}
	if wh > q3 {
		cells[wh] = glyphHighEnd
	}
	if s.Min < s.WhiskerLow {
		cells[a.pos(s.Min)] = glyphOutlier
	}
	if s.Max > s.WhiskerHigh {
		cells[a.pos(s.Max)] = glyphOutlier
	}
	if bx.ShowMean {
		cells[a.pos(s.Mean)] = glyphMean
	}
	cells[a.pos(s.Median)] = glyphMedian
	return string(cells)
}

func (a axis) ticks() string {
	lo, mid, hi := f2(a.lo), f2((a.lo+a.hi)/2), f2(a.hi)
	line := []rune(strings.Repeat(" ", a.width))
	place := func(at int, s string) {
		rs := []rune(s)
		at = min(max(at, 0), max(a.width-len(rs), 0))
		for i, c := range rs {
			if at+i < len(line) {
				line[at+i] = c
			}
		}
	}
	place(0, lo)
	place(a.width/2-len(mid)/2, mid)
	place(a.width-len(hi), hi)
	return strings.TrimRight(string(line), " ")
}

func padRight(s string, w int) string {
	if n := ansi.StringWidth(s); n < w {
		return s + strings.Repeat(" ", w-n)
	}
	return s
}
