package cmd

import (
	"fmt"
	"math"
	"time"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/runstats/internal/chart"
	"github.com/KaramelBytes/runstats/internal/source"
	"github.com/KaramelBytes/runstats/internal/well"
)

var chDataDir string

var channelsCmd = &cobra.Command{
	Use:   "channels",
	Short: "List the curves of the sensor log",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := ensureConfig()
		if err != nil {
			return err
		}
		local := *c
		if chDataDir != "" {
			local.DataDir = chDataDir
		} else {
			local.DataDir = discoverDataDir(c)
		}
		dir := source.Dir{Path: local.Resolve(c.SensorDir), Ext: c.SensorExt}
		path, err := dir.Find()
		if err != nil {
			return err
		}
		log, err := source.LASFile(path).Log()
		if err != nil {
			return err
		}

		t := chart.Table{Header: []string{"Mnemonic", "Unit", "Readings", "Description"}}
		for _, cv := range log.Curves {
			present := 0
			for _, v := range log.Data[cv.Mnemonic] {
				if !math.IsNaN(v) {
					present++
				}
			}
			t.Rows = append(t.Rows, []string{cv.Mnemonic, cv.Unit, fmt.Sprintf("%d/%d", present, log.Len()), cv.Description})
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s (%d rows)\n", path, log.Len())
		if from, to, ok := timeSpan(log); ok {
			fmt.Fprintf(out, "Time: %s to %s\n", from.Format(time.RFC3339), to.Format(time.RFC3339))
		}
		fmt.Fprintln(out, chart.Terminal{}.Table(&chart.Figure{Table: t}))
		return nil
	},
}

// timeSpan returns the earliest and latest stamps of the TIME curve.
func timeSpan(l *well.Log) (from, to time.Time, ok bool) {
	stamps, has := l.Time()
	if !has {
		return from, to, false
	}
	for _, ts := range stamps {
		if ts.IsZero() {
			continue
		}
		if !ok || ts.Before(from) {
			from = ts
		}
		if !ok || ts.After(to) {
			to = ts
		}
		ok = true
	}
	return from, to, ok
}

func init() {
	rootCmd.AddCommand(channelsCmd)
	channelsCmd.Flags().StringVar(&chDataDir, "data-dir", "", "directory holding the sensor folder")
}
