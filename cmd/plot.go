package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/runstats/internal/chart"
	"github.com/KaramelBytes/runstats/internal/pipeline"
	"github.com/KaramelBytes/runstats/internal/utils"
)

var (
	plotInputs  inputFlags
	plotOutput  string
	plotWidth   int
	plotHeight  int
	plotNoColor bool
)

var plotCmd = &cobra.Command{
	Use:   "plot",
	Short: "Chart a sensor channel as box plots with a summary table",
	Long: `Chart the distribution of one sensor channel.

Modes:
  whole          one box over every reading
  run            one box per bit run (depth in..depth out, inclusive)
  run-formation  one box per run and formation interval`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := ensureConfig()
		if err != nil {
			return err
		}
		pc, src, err := plotInputs.resolve(cmd, c)
		if err != nil {
			return err
		}
		fig, err := pipeline.Run(pc, src, logger)
		if err != nil {
			return err
		}

		width := c.ChartWidth
		if plotWidth > 0 {
			width = plotWidth
		}
		height := c.ChartHeight
		if plotHeight > 0 {
			height = plotHeight
		}
		tw, tty := terminalSize()
		if width <= 0 {
			width = tw
		}

		if plotOutput != "" {
			md := chart.Markdown{Width: width}.Render(fig)
			if err := utils.SafeWriteFile(plotOutput, []byte(md)); err != nil {
				return fmt.Errorf("write report: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote report to %s\n", plotOutput)
			return nil
		}
		r := chart.Terminal{Width: width, Color: tty && !plotNoColor, ProfileHeight: height}
		fmt.Fprint(cmd.OutOrStdout(), r.Render(fig))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(plotCmd)
	plotInputs.register(plotCmd)
	plotCmd.Flags().StringVarP(&plotOutput, "output", "o", "", "write a Markdown report to this file instead of printing")
	plotCmd.Flags().IntVar(&plotWidth, "width", 0, "chart width in columns (default: terminal width)")
	plotCmd.Flags().IntVar(&plotHeight, "height", 0, "depth profile height in rows")
	plotCmd.Flags().BoolVar(&plotNoColor, "no-color", false, "disable colored output")
}
