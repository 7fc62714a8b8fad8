// Package pipeline wires the loaders, the segmentation engine and the chart
// builders for one invocation.
package pipeline

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/KaramelBytes/runstats/internal/chart"
	"github.com/KaramelBytes/runstats/internal/segment"
	"github.com/KaramelBytes/runstats/internal/source"
	"github.com/KaramelBytes/runstats/internal/well"
)

// Config selects what to chart.
type Config struct {
	Mode       well.Mode
	Channel    string
	DepthCurve string
	Palette    []string
}

// Sources are the loaders for one well. Runs and Formations may be nil when
// the mode does not need them.
type Sources struct {
	Log        source.LogSource
	Runs       source.TableSource
	Formations source.TableSource
}

// Run loads only the inputs the mode needs, groups the readings and builds
// the figure.
func Run(cfg Config, src Sources, logger *zap.Logger) (*chart.Figure, error) {
	groups, err := Segments(cfg, src, logger)
	if err != nil {
		return nil, err
	}
	pal := chart.Palette(cfg.Palette)
	switch cfg.Mode {
	case well.WholeDataset:
		if len(groups) == 0 {
			return &chart.Figure{Title: fmt.Sprintf("Distribution of %s", cfg.Channel), YAxisTitle: cfg.Channel}, nil
		}
		return chart.WholeDataset(groups[0], cfg.Channel, pal), nil
	case well.PerRun:
		return chart.PerRun(groups, cfg.Channel, pal), nil
	case well.PerRunAndFormation:
		return chart.PerRunAndFormation(groups, cfg.Channel, pal), nil
	default:
		return nil, fmt.Errorf("mode %d: %w", cfg.Mode, well.ErrUnknownMode)
	}
}

// Segments returns the non-empty groups for the configured mode in output
// order. In whole-dataset mode there is at most one group.
func Segments(cfg Config, src Sources, logger *zap.Logger) ([]segment.Group, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if src.Log == nil {
		return nil, fmt.Errorf("sensor log: %w", source.ErrNotFound)
	}
	log, err := src.Log.Log()
	if err != nil {
		return nil, fmt.Errorf("load sensor log: %w", err)
	}
	logger.Debug("sensor log loaded",
		zap.String("name", log.Name),
		zap.Int("rows", log.Len()),
		zap.Strings("curves", log.Names()))

	depthCurve := cfg.DepthCurve
	if _, ok := log.Column(depthCurve); !ok && cfg.Mode == well.WholeDataset && log.Index != "" {
		logger.Debug("depth curve missing, ordering by index curve",
			zap.String("depth_curve", depthCurve),
			zap.String("index", log.Index))
		depthCurve = log.Index
	}
	series, err := log.Series(depthCurve, cfg.Channel)
	if err != nil {
		return nil, err
	}

	if cfg.Mode == well.WholeDataset {
		g, ok, err := segment.Whole(series)
		if err != nil {
			return nil, err
		}
		if !ok {
			logger.Debug("no readings, nothing to chart", zap.String("channel", cfg.Channel))
			return nil, nil
		}
		return []segment.Group{g}, nil
	}
	if !cfg.Mode.NeedsRuns() {
		return nil, fmt.Errorf("mode %d: %w", cfg.Mode, well.ErrUnknownMode)
	}

	runs, err := loadRuns(src.Runs)
	if err != nil {
		return nil, err
	}
	logger.Debug("bit runs loaded", zap.Int("runs", len(runs)))

	var segs []segment.Segment
	if cfg.Mode.NeedsFormations() {
		tops, err := loadFormations(src.Formations)
		if err != nil {
			return nil, err
		}
		logger.Debug("formation tops loaded", zap.Int("tops", len(tops)))
		segs = segment.ByFormation(runs, tops)
	} else {
		segs = segment.ByRun(runs)
	}

	groups, err := segment.Aggregate(series, segs)
	if err != nil {
		return nil, err
	}
	logger.Debug("segments aggregated",
		zap.Stringer("mode", cfg.Mode),
		zap.Int("segments", len(segs)),
		zap.Int("groups", len(groups)),
		zap.Int("skipped", len(segs)-len(groups)))
	return groups, nil
}

func loadRuns(src source.TableSource) ([]well.Run, error) {
	if src == nil {
		return nil, fmt.Errorf("bit runs: %w", source.ErrNotFound)
	}
	runs, err := source.ReadRuns(src)
	if err != nil {
		return nil, fmt.Errorf("load bit runs: %w", err)
	}
	return runs, nil
}

func loadFormations(src source.TableSource) ([]well.FormationTop, error) {
	if src == nil {
		return nil, fmt.Errorf("formation tops: %w", source.ErrNotFound)
	}
	tops, err := source.ReadFormations(src)
	if err != nil {
		return nil, fmt.Errorf("load formation tops: %w", err)
	}
	return tops, nil
}
