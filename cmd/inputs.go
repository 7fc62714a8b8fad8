package cmd

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	cfgpkg "github.com/KaramelBytes/runstats/internal/config"
	"github.com/KaramelBytes/runstats/internal/pipeline"
	"github.com/KaramelBytes/runstats/internal/source"
	"github.com/KaramelBytes/runstats/internal/utils"
	"github.com/KaramelBytes/runstats/internal/well"
)

// modeFlag is a well.Mode that stays empty until set, so the help text does
// not advertise a default that config overrides.
type modeFlag struct {
	mode well.Mode
	set  bool
}

func (m *modeFlag) String() string {
	if !m.set {
		return ""
	}
	return m.mode.String()
}

func (m *modeFlag) Set(s string) error {
	if strings.TrimSpace(s) == "" {
		*m = modeFlag{}
		return nil
	}
	if err := m.mode.Set(s); err != nil {
		return err
	}
	m.set = true
	return nil
}

func (m *modeFlag) Type() string { return m.mode.Type() }

// inputFlags are shared by the commands that read well data.
type inputFlags struct {
	mode    modeFlag
	channel string
	dataDir string
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().Var(&f.mode, "mode", "grouping: whole|run|run-formation (default from config)")
	cmd.Flags().StringVar(&f.channel, "channel", "", "sensor channel (LAS mnemonic) to chart (default from config)")
	cmd.Flags().StringVar(&f.dataDir, "data-dir", "", "directory holding the sensor, bit run and formation folders")
}

// resolve merges flags over configuration into a pipeline run.
func (f *inputFlags) resolve(cmd *cobra.Command, c *cfgpkg.Global) (pipeline.Config, pipeline.Sources, error) {
	pc := pipeline.Config{
		Channel:    c.Channel,
		DepthCurve: c.DepthCurve,
		Palette:    c.Palette,
	}
	mode, err := well.ParseMode(c.Mode)
	if err != nil {
		return pc, pipeline.Sources{}, err
	}
	pc.Mode = mode
	if f.mode.set {
		pc.Mode = f.mode.mode
	}
	if strings.TrimSpace(f.channel) != "" {
		pc.Channel = strings.TrimSpace(f.channel)
	}

	local := *c
	if f.dataDir != "" {
		local.DataDir = f.dataDir
	} else {
		local.DataDir = discoverDataDir(c)
	}
	src := pipeline.Sources{
		Log: source.Dir{Path: local.Resolve(c.SensorDir), Ext: c.SensorExt},
	}
	if pc.Mode.NeedsRuns() {
		src.Runs = source.Dir{Path: local.Resolve(c.RunsDir), Ext: c.RunsExt}
	}
	if pc.Mode.NeedsFormations() {
		src.Formations = source.Dir{Path: local.Resolve(c.FormationsDir), Ext: c.FormationsExt}
	}
	logger.Debug("inputs resolved",
		zap.Stringer("mode", pc.Mode),
		zap.String("channel", pc.Channel),
		zap.String("data_dir", local.DataDir))
	return pc, src, nil
}

// discoverDataDir keeps the configured data dir unless it is the working
// directory without a sensor folder, in which case a parent holding one is used.
func discoverDataDir(c *cfgpkg.Global) string {
	if c.DataDir != "." && c.DataDir != "" {
		return c.DataDir
	}
	if filepath.IsAbs(c.SensorDir) {
		return c.DataDir
	}
	if fi, err := os.Stat(c.Resolve(c.SensorDir)); err == nil && fi.IsDir() {
		return c.DataDir
	}
	root, err := utils.FindDataRoot("", c.SensorDir)
	if err != nil {
		return c.DataDir
	}
	logger.Debug("data root discovered", zap.String("dir", root))
	return root
}

// terminalSize reports whether stdout is a terminal and, if so, its width.
func terminalSize() (width int, isTTY bool) {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0, false
	}
	w, _, err := term.GetSize(fd)
	if err != nil {
		return 0, true
	}
	return w, true
}
