package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/runstats/internal/config"
	"github.com/KaramelBytes/runstats/internal/well"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set Runstats configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if cfg == nil {
			fmt.Fprintln(out, "No config loaded")
			return nil
		}
		fmt.Fprintf(out, "data_dir: %s\n", cfg.DataDir)
		fmt.Fprintf(out, "sensor_dir: %s\n", cfg.SensorDir)
		fmt.Fprintf(out, "sensor_ext: %s\n", cfg.SensorExt)
		fmt.Fprintf(out, "runs_dir: %s\n", cfg.RunsDir)
		fmt.Fprintf(out, "runs_ext: %s\n", cfg.RunsExt)
		fmt.Fprintf(out, "formations_dir: %s\n", cfg.FormationsDir)
		fmt.Fprintf(out, "formations_ext: %s\n", cfg.FormationsExt)
		fmt.Fprintf(out, "channel: %s\n", cfg.Channel)
		fmt.Fprintf(out, "depth_curve: %s\n", cfg.DepthCurve)
		fmt.Fprintf(out, "mode: %s\n", cfg.Mode)
		fmt.Fprintf(out, "palette: %s\n", strings.Join(cfg.Palette, ","))
		if cfg.ChartWidth > 0 {
			fmt.Fprintf(out, "chart_width: %d\n", cfg.ChartWidth)
		} else {
			fmt.Fprintln(out, "chart_width: auto")
		}
		fmt.Fprintf(out, "chart_height: %d\n", cfg.ChartHeight)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		c, err := ensureConfig()
		if err != nil {
			return err
		}
		if err := setKey(c, key, val); err != nil {
			return err
		}
		if err := cfgpkg.Save(c, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func setKey(c *cfgpkg.Global, key, val string) error {
	switch key {
	case "data_dir":
		c.DataDir = val
	case "sensor_dir":
		c.SensorDir = val
	case "sensor_ext":
		c.SensorExt = normalizeExt(val)
	case "runs_dir":
		c.RunsDir = val
	case "runs_ext":
		c.RunsExt = normalizeExt(val)
	case "formations_dir":
		c.FormationsDir = val
	case "formations_ext":
		c.FormationsExt = normalizeExt(val)
	case "channel":
		c.Channel = strings.TrimSpace(val)
	case "depth_curve":
		c.DepthCurve = strings.TrimSpace(val)
	case "mode":
		m, err := well.ParseMode(val)
		if err != nil {
			return err
		}
		c.Mode = m.String()
	case "palette":
		var colors []string
		for _, p := range strings.Split(val, ",") {
			if p = strings.TrimSpace(p); p != "" {
				colors = append(colors, p)
			}
		}
		if len(colors) == 0 {
			return fmt.Errorf("invalid palette: %q (use comma-separated colors)", val)
		}
		c.Palette = colors
	case "chart_width":
		i, err := strconv.Atoi(val)
		if err != nil || i < 0 {
			return fmt.Errorf("invalid int for chart_width: %v", val)
		}
		c.ChartWidth = i
	case "chart_height":
		i, err := strconv.Atoi(val)
		if err != nil || i <= 0 {
			return fmt.Errorf("invalid int for chart_height: %v", val)
		}
		c.ChartHeight = i
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	return nil
}

func normalizeExt(s string) string {
	s = strings.TrimSpace(s)
	if s != "" && !strings.HasPrefix(s, ".") {
		s = "." + s
	}
	return s
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
