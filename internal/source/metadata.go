package source

import (
	"fmt"

	"github.com/KaramelBytes/runstats/internal/well"
)

// Column names expected in the metadata tables.
const (
	ColBitModel  = "bit model"
	ColDepthIn   = "depth in"
	ColDepthOut  = "depth out"
	ColFormation = "Formation"
	ColDepth     = "Depth"
)

// ColumnError reports a metadata table missing a required column.
type ColumnError struct {
	Table  string
	Column string
	Have   []string
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf("table %s: missing column %q (have %q)", e.Table, e.Column, e.Have)
}

func columns(t *Table, names ...string) ([]int, error) {
	idx := make([]int, len(names))
	for i, n := range names {
		idx[i] = t.Index(n)
		if idx[i] < 0 {
			return nil, &ColumnError{Table: t.Name, Column: n, Have: t.Header}
		}
	}
	return idx, nil
}

// ReadRuns loads bit runs in file order. Depths that do not parse become NaN.
func ReadRuns(src TableSource) ([]well.Run, error) {
	t, err := src.Table()
	if err != nil {
		return nil, err
	}
	idx, err := columns(t, ColBitModel, ColDepthIn, ColDepthOut)
	if err != nil {
		return nil, err
	}
	runs := make([]well.Run, 0, len(t.Rows))
	for i := range t.Rows {
		runs = append(runs, well.Run{
			BitModel: t.Cell(i, idx[0]),
			DepthIn:  ParseNumber(t.Cell(i, idx[1])),
			DepthOut: ParseNumber(t.Cell(i, idx[2])),
		})
	}
	return runs, nil
}

// ReadFormations loads formation tops in file order.
func ReadFormations(src TableSource) ([]well.FormationTop, error) {
	t, err := src.Table()
	if err != nil {
		return nil, err
	}
	idx, err := columns(t, ColFormation, ColDepth)
	if err != nil {
		return nil, err
	}
	tops := make([]well.FormationTop, 0, len(t.Rows))
	for i := range t.Rows {
		tops = append(tops, well.FormationTop{
			Name:  t.Cell(i, idx[0]),
			Depth: ParseNumber(t.Cell(i, idx[1])),
		})
	}
	return tops, nil
}
