// Package well holds the depth-indexed domain types shared by the loaders,
// the segmentation engine and the chart builders.
package well

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
)

// ErrUnknownChannel is returned when a requested curve is not present in a log.
var ErrUnknownChannel = errors.New("unknown channel")

// Curve describes a single named measurement in a log.
type Curve struct {
	Mnemonic    string
	Unit        string
	Description string
}

// Log is a parsed well log: one float column per curve, all of equal length.
// Missing readings are stored as NaN.
type Log struct {
	Name string
	// Index is the mnemonic of the first curve, the log's depth or time index.
	Index  string
	Curves []Curve
	Data   map[string][]float64
}

// NewLog creates an empty log with the given curves.
func NewLog(name string, curves []Curve) *Log {
	l := &Log{Name: name, Curves: curves, Data: make(map[string][]float64, len(curves))}
	if len(curves) > 0 {
		l.Index = curves[0].Mnemonic
	}
	for _, c := range curves {
		l.Data[c.Mnemonic] = nil
	}
	return l
}

// Len returns the number of rows in the log.
func (l *Log) Len() int {
	if l == nil || len(l.Curves) == 0 {
		return 0
	}
	return len(l.Data[l.Curves[0].Mnemonic])
}

// Names returns curve mnemonics in file order.
func (l *Log) Names() []string {
	out := make([]string, len(l.Curves))
	for i, c := range l.Curves {
		out[i] = c.Mnemonic
	}
	return out
}

// Column looks up a curve by mnemonic, case-insensitively.
func (l *Log) Column(name string) ([]float64, bool) {
	if col, ok := l.Data[name]; ok {
		return col, true
	}
	for _, c := range l.Curves {
		if strings.EqualFold(c.Mnemonic, strings.TrimSpace(name)) {
			return l.Data[c.Mnemonic], true
		}
	}
	return nil, false
}

// Series pairs the depth curve with a channel. Rows are returned ordered by
// depth; rows with a missing depth are dropped.
func (l *Log) Series(depthCurve, channel string) (Series, error) {
	depth, ok := l.Column(depthCurve)
	if !ok {
		return Series{}, fmt.Errorf("depth curve %q: %w (available: %s)", depthCurve, ErrUnknownChannel, strings.Join(l.Names(), ", "))
	}
	vals, ok := l.Column(channel)
	if !ok {
		return Series{}, fmt.Errorf("channel %q: %w (available: %s)", channel, ErrUnknownChannel, strings.Join(l.Names(), ", "))
	}
	s := Series{Channel: channel, Depth: make([]float64, 0, len(depth)), Value: make([]float64, 0, len(depth))}
	for i := range depth {
		if math.IsNaN(depth[i]) {
			continue
		}
		s.Depth = append(s.Depth, depth[i])
		s.Value = append(s.Value, vals[i])
	}
	if !sort.Float64sAreSorted(s.Depth) {
		sort.Stable(byDepth(s))
	}
	return s, nil
}

// Time converts a TIME curve holding epoch seconds into timestamps.
// Missing readings map to the zero time.
func (l *Log) Time() ([]time.Time, bool) {
	col, ok := l.Column("TIME")
	if !ok {
		return nil, false
	}
	out := make([]time.Time, len(col))
	for i, v := range col {
		if math.IsNaN(v) {
			continue
		}
		sec, frac := math.Modf(v)
		out[i] = time.Unix(int64(sec), int64(frac*1e9)).UTC()
	}
	return out, true
}

// Series is a depth-ordered sequence of readings for one channel.
// A NaN value marks an absent reading.
type Series struct {
	Channel string
	Depth   []float64
	Value   []float64
}

// Len returns the number of rows, present or not.
func (s Series) Len() int { return len(s.Depth) }

// Present returns all non-absent values in depth order.
func (s Series) Present() []float64 {
	return s.Where(func(float64) bool { return true })
}

// Where returns the present values whose depth satisfies keep.
func (s Series) Where(keep func(depth float64) bool) []float64 {
	var out []float64
	for i, d := range s.Depth {
		if math.IsNaN(s.Value[i]) || !keep(d) {
			continue
		}
		out = append(out, s.Value[i])
	}
	return out
}

type byDepth Series

func (b byDepth) Len() int           { return len(b.Depth) }
func (b byDepth) Less(i, j int) bool { return b.Depth[i] < b.Depth[j] }
func (b byDepth) Swap(i, j int) {
	b.Depth[i], b.Depth[j] = b.Depth[j], b.Depth[i]
	b.Value[i], b.Value[j] = b.Value[j], b.Value[i]
}

// Run is one bit run: a drilling interval using a single bit.
type Run struct {
	BitModel string  `json:"bit_model"`
	DepthIn  float64 `json:"depth_in"`
	DepthOut float64 `json:"depth_out"`
}

// FormationTop marks the depth at which a named formation begins.
type FormationTop struct {
	Name  string  `json:"formation"`
	Depth float64 `json:"depth"`
}
