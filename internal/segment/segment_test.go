package segment

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/runstats/internal/well"
)

// uniformSeries returns one reading per metre in [from, to) with value == depth.
func uniformSeries(from, to int) well.Series {
	s := well.Series{Channel: "OBH"}
	for d := from; d < to; d++ {
		s.Depth = append(s.Depth, float64(d))
		s.Value = append(s.Value, float64(d))
	}
	return s
}

func TestByFormationEndToEnd(t *testing.T) {
	runs := []well.Run{{BitModel: "A", DepthIn: 100, DepthOut: 200}}
	tops := []well.FormationTop{{Name: "Shale", Depth: 90}, {Name: "Sand", Depth: 150}}

	segs := ByFormation(runs, tops)
	require.Len(t, segs, 2)
	assert.Equal(t, "A - Shale", segs[0].Label())
	assert.Equal(t, 100.0, segs[0].Start)
	assert.Equal(t, 150.0, segs[0].End)
	assert.Equal(t, "A - Sand", segs[1].Label())
	assert.Equal(t, 150.0, segs[1].Start)
	assert.Equal(t, 200.0, segs[1].End)

	groups, err := Aggregate(uniformSeries(100, 200), segs)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, 50, groups[0].Stats.Count)
	assert.Equal(t, 50, groups[1].Stats.Count)
	assert.Equal(t, "Shale", groups[0].Formation)
	assert.Equal(t, 149.0, groups[0].Stats.Max)
	assert.Equal(t, 150.0, groups[1].Stats.Min)
}

func TestByFormationSortsTopsWithoutMutatingInput(t *testing.T) {
	runs := []well.Run{{BitModel: "A", DepthIn: 0, DepthOut: 300}}
	tops := []well.FormationTop{{Name: "C", Depth: 200}, {Name: "A", Depth: 0}, {Name: "B", Depth: 100}}

	segs := ByFormation(runs, tops)
	require.Len(t, segs, 3)
	assert.Equal(t, []string{"A", "B", "C"}, []string{segs[0].FormationName(), segs[1].FormationName(), segs[2].FormationName()})
	assert.Equal(t, "C", tops[0].Name, "caller slice must not be reordered")
}

func TestByFormationStableTies(t *testing.T) {
	tops := []well.FormationTop{{Name: "first", Depth: 50}, {Name: "second", Depth: 50}, {Name: "zero", Depth: 0}}
	sorted := SortTops(tops)
	assert.Equal(t, []string{"zero", "first", "second"}, []string{sorted[0].Name, sorted[1].Name, sorted[2].Name})

	// "first" has an empty range [50,50) and is skipped without aborting the run
	segs := ByFormation([]well.Run{{BitModel: "X", DepthIn: 10, DepthOut: 90}}, tops)
	require.Len(t, segs, 2)
	assert.Equal(t, "zero", segs[0].FormationName())
	assert.Equal(t, "second", segs[1].FormationName())
	assert.Equal(t, 50.0, segs[1].Start)
}

func TestByFormationPreservesRunOrder(t *testing.T) {
	runs := []well.Run{
		{BitModel: "deep", DepthIn: 500, DepthOut: 800},
		{BitModel: "shallow", DepthIn: 0, DepthOut: 500},
	}
	tops := []well.FormationTop{{Name: "F1", Depth: 0}, {Name: "F2", Depth: 400}, {Name: "F3", Depth: 700}}

	segs := ByFormation(runs, tops)
	var labels []string
	for _, s := range segs {
		labels = append(labels, s.Label())
	}
	assert.Equal(t, []string{"deep - F2", "deep - F3", "shallow - F1", "shallow - F2"}, labels)
	assert.Equal(t, 0, segs[0].RunIndex)
	assert.Equal(t, 1, segs[2].RunIndex)
}

func TestByFormationFormationBelowRun(t *testing.T) {
	runs := []well.Run{{BitModel: "A", DepthIn: 0, DepthOut: 100}}
	tops := []well.FormationTop{{Name: "Deep", Depth: 100}}
	assert.Empty(t, ByFormation(runs, tops))
}

func TestSegmentInvariants(t *testing.T) {
	runs := []well.Run{
		{BitModel: "A", DepthIn: 120, DepthOut: 480},
		{BitModel: "B", DepthIn: 480, DepthOut: 1010},
		{BitModel: "C", DepthIn: 1500, DepthOut: 1600},
	}
	tops := []well.FormationTop{
		{Name: "Till", Depth: 0}, {Name: "Shale", Depth: 300}, {Name: "Sand", Depth: 450},
		{Name: "Lime", Depth: 900}, {Name: "Granite", Depth: 1550},
	}
	segs := ByFormation(runs, tops)
	require.NotEmpty(t, segs)

	for i, s := range segs {
		assert.LessOrEqual(t, s.Run.DepthIn, s.Start, "segment %d", i)
		assert.Less(t, s.Start, s.End, "segment %d", i)
		assert.LessOrEqual(t, s.End, s.Run.DepthOut, "segment %d", i)
		if i > 0 && segs[i-1].RunIndex == s.RunIndex {
			assert.Equal(t, segs[i-1].End, s.Start, "consecutive segments %d/%d must touch", i-1, i)
		}
	}
}

func TestByFormationIdempotent(t *testing.T) {
	runs := []well.Run{{BitModel: "A", DepthIn: 0, DepthOut: 100}, {BitModel: "B", DepthIn: 100, DepthOut: 250}}
	tops := []well.FormationTop{{Name: "Y", Depth: 120}, {Name: "X", Depth: 10}, {Name: "W", Depth: 120}}
	first := ByFormation(runs, tops)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, ByFormation(runs, tops))
	}
}

func TestBoundaryAsymmetry(t *testing.T) {
	s := well.Series{Channel: "OBH", Depth: []float64{100, 150, 200}, Value: []float64{1, 2, 3}}
	run := well.Run{BitModel: "A", DepthIn: 100, DepthOut: 200}

	byRun, err := Aggregate(s, ByRun([]well.Run{run}))
	require.NoError(t, err)
	require.Len(t, byRun, 1)
	assert.Equal(t, 3, byRun[0].Stats.Count, "run-only filtering includes depth_out")

	byForm, err := Aggregate(s, ByFormation([]well.Run{run}, []well.FormationTop{{Name: "F", Depth: 0}}))
	require.NoError(t, err)
	require.Len(t, byForm, 1)
	assert.Equal(t, 2, byForm[0].Stats.Count, "formation segments exclude their end")
	assert.Equal(t, 2.0, byForm[0].Stats.Max)
}

func TestAggregateSkipsEmptyGroups(t *testing.T) {
	s := well.Series{
		Channel: "OBH",
		Depth:   []float64{10, 20, 30, 40},
		Value:   []float64{1, 2, math.NaN(), math.NaN()},
	}
	runs := []well.Run{
		{BitModel: "has-data", DepthIn: 0, DepthOut: 25},
		{BitModel: "only-nan", DepthIn: 25, DepthOut: 45},
		{BitModel: "no-samples", DepthIn: 1000, DepthOut: 2000},
	}
	groups, err := Aggregate(s, ByRun(runs))
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "has-data", groups[0].Label)
	assert.Equal(t, 2, groups[0].Stats.Count)
}

func TestWhole(t *testing.T) {
	s := well.Series{Channel: "OBH", Depth: []float64{1, 2, 3}, Value: []float64{4, math.NaN(), 6}}
	g, ok, err := Whole(s)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "OBH", g.Label)
	assert.Equal(t, 2, g.Stats.Count)
	assert.Equal(t, 5.0, g.Stats.Mean)

	_, ok, err = Whole(well.Series{Channel: "OBH"})
	require.NoError(t, err)
	assert.False(t, ok)
}
