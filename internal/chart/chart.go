// Package chart turns summarised groups into render-agnostic figures: a box
// per group on a shared value axis and a summary table listing the groups in
// the same order. Builders only format values; they never compute statistics.
package chart

import (
	"fmt"

	"github.com/KaramelBytes/runstats/internal/segment"
	"github.com/KaramelBytes/runstats/internal/stats"
)

// Box is one distribution on the chart.
type Box struct {
	Name        string
	LegendGroup string
	Color       string
	Stats       stats.Summary
	ShowMean    bool
}

// RefLine is a horizontal marker across the plot, e.g. the dataset mean.
type RefLine struct {
	Label string
	Value float64
	Dash  string // "dash" | "dot"
	Color string
}

// Table is the summary shown beneath the plot.
type Table struct {
	Header []string
	Rows   [][]string
}

// LegendItem maps a color to a label.
type LegendItem struct {
	Label string
	Color string
}

// Figure is a complete chart ready for a renderer.
type Figure struct {
	Title       string
	XAxisTitle  string
	YAxisTitle  string
	LegendTitle string
	Boxes       []Box
	Lines       []RefLine
	Table       Table
	Legend      []LegendItem
	// Profile holds the channel values in depth order for a line plot.
	Profile []float64
}

func f2(v float64) string { return fmt.Sprintf("%.2f", v) }
func f1(v float64) string { return fmt.Sprintf("%.1f", v) }

// WholeDataset charts a single group covering every reading.
func WholeDataset(g segment.Group, channel string, pal Palette) *Figure {
	color := pal.Color(0)
	s := g.Stats
	return &Figure{
		Title:      fmt.Sprintf("Distribution of %s", channel),
		YAxisTitle: channel,
		Boxes:      []Box{{Name: channel, Color: color, Stats: s, ShowMean: true}},
		Lines: []RefLine{
			{Label: fmt.Sprintf("Mean: %s", f2(s.Mean)), Value: s.Mean, Dash: "dash", Color: "blue"},
			{Label: fmt.Sprintf("Median: %s", f2(s.Median)), Value: s.Median, Dash: "dot", Color: "red"},
		},
		Table: Table{
			Header: []string{"Statistic", "Value"},
			Rows: [][]string{
				{"Count", fmt.Sprint(s.Count)},
				{"Mean", f2(s.Mean)},
				{"Median", f2(s.Median)},
				{"Min", f2(s.Min)},
				{"Max", f2(s.Max)},
				{"P10", f2(s.P10)},
				{"P90", f2(s.P90)},
				{"Std Dev", f2(s.StdDev)},
			},
		},
		Profile: g.Values,
	}
}

// PerRun charts one box per bit run.
func PerRun(groups []segment.Group, channel string, pal Palette) *Figure {
	f := &Figure{
		Title:      fmt.Sprintf("%s Distribution by Bit Run", channel),
		XAxisTitle: "Bit Model",
		YAxisTitle: channel,
		Table:      Table{Header: []string{"Bit Model", "Count", "Mean", "Median", "Min", "Max", "Std Dev"}},
	}
	colors := pal.ByBitModel(groups)
	for _, g := range groups {
		s := g.Stats
		f.Boxes = append(f.Boxes, Box{Name: g.BitModel, LegendGroup: g.BitModel, Color: colors[g.BitModel], Stats: s, ShowMean: true})
		f.Table.Rows = append(f.Table.Rows, []string{
			g.BitModel, fmt.Sprint(s.Count), f2(s.Mean), f2(s.Median), f2(s.Min), f2(s.Max), f2(s.StdDev),
		})
	}
	f.Legend = legend(groups, colors)
	return f
}

// PerRunAndFormation charts one box per run/formation segment. Boxes are
// colored by bit model so all segments of a run share one legend entry.
func PerRunAndFormation(groups []segment.Group, channel string, pal Palette) *Figure {
	f := &Figure{
		Title:       fmt.Sprintf("%s Distribution by Bit Run and Formation", channel),
		XAxisTitle:  "Run - Formation Combination",
		YAxisTitle:  channel,
		LegendTitle: "Bit Model",
		Table:       Table{Header: []string{"Bit Model", "Formation", "From (m)", "To (m)", "Count", "Mean", "Median", "P90"}},
	}
	colors := pal.ByBitModel(groups)
	for _, g := range groups {
		s := g.Stats
		f.Boxes = append(f.Boxes, Box{
			Name:        fmt.Sprintf("%s - %s", g.BitModel, g.Formation),
			LegendGroup: g.BitModel,
			Color:       colors[g.BitModel],
			Stats:       s,
			ShowMean:    true,
		})
		f.Table.Rows = append(f.Table.Rows, []string{
			g.BitModel, g.Formation, f1(g.Start), f1(g.End), fmt.Sprint(s.Count), f2(s.Mean), f2(s.Median), f2(s.P90),
		})
	}
	f.Legend = legend(groups, colors)
	return f
}

func legend(groups []segment.Group, colors map[string]string) []LegendItem {
	var out []LegendItem
	seen := map[string]bool{}
	for _, g := range groups {
		if seen[g.BitModel] {
			continue
		}
		seen[g.BitModel] = true
		out = append(out, LegendItem{Label: g.BitModel, Color: colors[g.BitModel]})
	}
	return out
}
