package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/runstats/internal/chart"
	"github.com/KaramelBytes/runstats/internal/pipeline"
	"github.com/KaramelBytes/runstats/internal/segment"
	"github.com/KaramelBytes/runstats/internal/utils"
)

var (
	segInputs inputFlags
	segFormat string
)

var segmentsCmd = &cobra.Command{
	Use:   "segments",
	Short: "List the non-empty groups and their statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := ensureConfig()
		if err != nil {
			return err
		}
		pc, src, err := segInputs.resolve(cmd, c)
		if err != nil {
			return err
		}
		groups, err := pipeline.Segments(pc, src, logger)
		if err != nil {
			return err
		}
		switch strings.ToLower(segFormat) {
		case "json":
			if groups == nil {
				groups = []segment.Group{}
			}
			b, err := utils.PrettyJSON(groups)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(b))
		case "table", "":
			if len(groups) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No segments with readings")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), chart.Terminal{}.Table(&chart.Figure{Table: segmentTable(groups)}))
		default:
			return fmt.Errorf("unsupported --format: %s (use table or json)", segFormat)
		}
		return nil
	},
}

func segmentTable(groups []segment.Group) chart.Table {
	t := chart.Table{Header: []string{"Segment", "From", "To", "Count", "Mean", "Median", "Min", "Max", "Std Dev", "P10", "P90"}}
	for _, g := range groups {
		s := g.Stats
		t.Rows = append(t.Rows, []string{
			g.Label,
			fmt.Sprintf("%.1f", g.Start), fmt.Sprintf("%.1f", g.End),
			fmt.Sprint(s.Count),
			fmt.Sprintf("%.2f", s.Mean), fmt.Sprintf("%.2f", s.Median),
			fmt.Sprintf("%.2f", s.Min), fmt.Sprintf("%.2f", s.Max),
			fmt.Sprintf("%.2f", s.StdDev),
			fmt.Sprintf("%.2f", s.P10), fmt.Sprintf("%.2f", s.P90),
		})
	}
	return t
}

func init() {
	rootCmd.AddCommand(segmentsCmd)
	segInputs.register(segmentsCmd)
	segmentsCmd.Flags().StringVar(&segFormat, "format", "table", "output format: table|json")
}
