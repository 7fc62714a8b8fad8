package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/runstats/internal/utils"
)

// Global configuration structure.
type Global struct {
	// Input locations. Relative directories resolve against DataDir.
	DataDir       string `mapstructure:"data_dir" yaml:"data_dir"`
	SensorDir     string `mapstructure:"sensor_dir" yaml:"sensor_dir"`
	SensorExt     string `mapstructure:"sensor_ext" yaml:"sensor_ext"`
	RunsDir       string `mapstructure:"runs_dir" yaml:"runs_dir"`
	RunsExt       string `mapstructure:"runs_ext" yaml:"runs_ext"`
	FormationsDir string `mapstructure:"formations_dir" yaml:"formations_dir"`
	FormationsExt string `mapstructure:"formations_ext" yaml:"formations_ext"`

	// Analysis
	Channel    string `mapstructure:"channel" yaml:"channel"`
	DepthCurve string `mapstructure:"depth_curve" yaml:"depth_curve"`
	Mode       string `mapstructure:"mode" yaml:"mode"`

	// Rendering
	Palette     []string `mapstructure:"palette" yaml:"palette"`
	ChartWidth  int      `mapstructure:"chart_width" yaml:"chart_width"`
	ChartHeight int      `mapstructure:"chart_height" yaml:"chart_height"`
}

const (
	appDir   = ".runstats"
	fileName = "config"
)

func defaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, appDir), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.runstats/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		dir, err := defaultDir()
		if err != nil {
			return err
		}
		if err := utils.EnsureDir(dir); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, fileName+".yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env (RUNSTATS_*, including a ./.env file) > config file > defaults.
// Command-line flags are applied on top by the caller.
func Load(cfgFile string) (*Global, error) {
	if _, err := os.Stat(".env"); err == nil {
		_ = godotenv.Load(".env")
	}

	v := viper.New()
	v.SetEnvPrefix("RUNSTATS")
	v.AutomaticEnv()

	v.SetDefault("data_dir", ".")
	v.SetDefault("sensor_dir", "downhole_data")
	v.SetDefault("sensor_ext", ".las")
	v.SetDefault("runs_dir", "bit_run_data")
	v.SetDefault("runs_ext", ".csv")
	v.SetDefault("formations_dir", "formation_data")
	v.SetDefault("formations_ext", ".csv")
	v.SetDefault("channel", "OBH")
	v.SetDefault("depth_curve", "DEPT")
	v.SetDefault("mode", "run-formation")
	v.SetDefault("palette", []string{"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd"})
	v.SetDefault("chart_width", 0)
	v.SetDefault("chart_height", 10)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := defaultDir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName(fileName)
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}

// Resolve joins a configured directory onto DataDir unless it is absolute.
func (c *Global) Resolve(dir string) string {
	if filepath.IsAbs(dir) || c.DataDir == "" {
		return dir
	}
	return filepath.Join(c.DataDir, dir)
}
