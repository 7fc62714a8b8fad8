// Package segment reconciles bit-run intervals with formation tops and
// aggregates sensor readings over the resulting depth segments.
package segment

import (
	"fmt"
	"sort"

	"github.com/KaramelBytes/runstats/internal/stats"
	"github.com/KaramelBytes/runstats/internal/well"
)

// Segment is the depth intersection of one run with one formation's implied
// extent. Formation is nil for run-only segments.
type Segment struct {
	RunIndex  int
	Run       well.Run
	Formation *well.FormationTop
	Start     float64
	End       float64
}

// Contains reports whether a reading at depth belongs to the segment.
// Run-only segments include both ends; formation segments exclude End so
// that neighbouring formations never share a reading.
func (s Segment) Contains(depth float64) bool {
	if s.Formation == nil {
		return depth >= s.Start && depth <= s.End
	}
	return depth >= s.Start && depth < s.End
}

// FormationName returns the formation name, or "" for run-only segments.
func (s Segment) FormationName() string {
	if s.Formation == nil {
		return ""
	}
	return s.Formation.Name
}

// Label names the segment for charts and tables.
func (s Segment) Label() string {
	if s.Formation == nil {
		return s.Run.BitModel
	}
	return fmt.Sprintf("%s - %s", s.Run.BitModel, s.Formation.Name)
}

// ByRun returns one inclusive segment per run, in the order given.
func ByRun(runs []well.Run) []Segment {
	out := make([]Segment, 0, len(runs))
	for i, r := range runs {
		out = append(out, Segment{RunIndex: i, Run: r, Start: r.DepthIn, End: r.DepthOut})
	}
	return out
}

// ByFormation intersects every run with every formation's implied range
// [top, next top). The last formation extends to the end of the run.
//
// Output order is the caller's run order, then ascending formation depth.
// Neither input slice is modified.
func ByFormation(runs []well.Run, tops []well.FormationTop) []Segment {
	sorted := SortTops(tops)
	var out []Segment
	for ri, run := range runs {
		for i := range sorted {
			top := &sorted[i]
			// tops are sorted: nothing past this one can reach into the run
			if top.Depth >= run.DepthOut {
				break
			}
			start := max(top.Depth, run.DepthIn)
			end := run.DepthOut
			if i+1 < len(sorted) {
				end = min(sorted[i+1].Depth, run.DepthOut)
			}
			if start >= end {
				continue
			}
			out = append(out, Segment{RunIndex: ri, Run: run, Formation: top, Start: start, End: end})
		}
	}
	return out
}

// SortTops returns a copy of tops sorted by depth. Ties keep input order.
func SortTops(tops []well.FormationTop) []well.FormationTop {
	sorted := make([]well.FormationTop, len(tops))
	copy(sorted, tops)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Depth < sorted[j].Depth })
	return sorted
}

// Group is a segment together with its present readings and statistics.
type Group struct {
	Label     string        `json:"label"`
	BitModel  string        `json:"bit_model,omitempty"`
	Formation string        `json:"formation,omitempty"`
	Start     float64       `json:"from"`
	End       float64       `json:"to"`
	RunIndex  int           `json:"-"`
	Values    []float64     `json:"-"`
	Stats     stats.Summary `json:"stats"`
}

// Aggregate filters the series into each segment and summarises it.
// Segments without any present reading are dropped.
func Aggregate(series well.Series, segs []Segment) ([]Group, error) {
	out := make([]Group, 0, len(segs))
	for _, sg := range segs {
		vals := series.Where(sg.Contains)
		if len(vals) == 0 {
			continue
		}
		st, err := stats.Compute(vals)
		if err != nil {
			return nil, fmt.Errorf("segment %s: %w", sg.Label(), err)
		}
		out = append(out, Group{
			Label:     sg.Label(),
			BitModel:  sg.Run.BitModel,
			Formation: sg.FormationName(),
			Start:     sg.Start,
			End:       sg.End,
			RunIndex:  sg.RunIndex,
			Values:    vals,
			Stats:     st,
		})
	}
	return out, nil
}

// Whole summarises every present reading of the series as a single group.
// ok is false when the series has no present readings.
func Whole(series well.Series) (g Group, ok bool, err error) {
	vals := series.Present()
	if len(vals) == 0 {
		return Group{}, false, nil
	}
	st, err := stats.Compute(vals)
	if err != nil {
		return Group{}, false, err
	}
	g = Group{Label: series.Channel, RunIndex: -1, Values: vals, Stats: st}
	if n := len(series.Depth); n > 0 {
		g.Start, g.End = series.Depth[0], series.Depth[n-1]
	}
	return g, true, nil
}
