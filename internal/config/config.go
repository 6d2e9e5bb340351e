package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/vitalwatch/vitalwatch/internal/vitals"
)

// Config is the top-level vitalwatch configuration.
type Config struct {
	Thresholds Thresholds `mapstructure:"thresholds"`
	Output     Output     `mapstructure:"output"`
}

// Thresholds defines the tunable constants for metric analysis.
type Thresholds struct {
	InteractionMs      float64 `mapstructure:"interaction_ms"`
	GoodMs             float64 `mapstructure:"good_ms"`
	LongTaskMs         float64 `mapstructure:"long_task_ms"`
	ThirdPartyScriptMs float64 `mapstructure:"third_party_script_ms"`
	SessionGapMs       float64 `mapstructure:"session_gap_ms"`
	SessionMaxMs       float64 `mapstructure:"session_max_ms"`
	FontShiftPx        float64 `mapstructure:"font_shift_px"`
	TopScripts         int     `mapstructure:"top_scripts"`
}

// Output defines output preferences.
type Output struct {
	Color bool `mapstructure:"color"`
	Width int  `mapstructure:"width"`
}

// Vitals converts the configured thresholds into the analyzer's form.
func (t Thresholds) Vitals() vitals.Thresholds {
	return vitals.Thresholds{
		InteractionMs:      t.InteractionMs,
		GoodMs:             t.GoodMs,
		LongTaskMs:         t.LongTaskMs,
		ThirdPartyScriptMs: t.ThirdPartyScriptMs,
		SessionGapMs:       t.SessionGapMs,
		SessionMaxMs:       t.SessionMaxMs,
		FontShiftPx:        t.FontShiftPx,
		TopScripts:         t.TopScripts,
	}
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Load reads configuration from the given path (or the default location)
// and returns a Config with all defaults applied.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	// Set defaults.
	v.SetDefault("thresholds.interaction_ms", DefaultThresholds.InteractionMs)
	v.SetDefault("thresholds.good_ms", DefaultThresholds.GoodMs)
	v.SetDefault("thresholds.long_task_ms", DefaultThresholds.LongTaskMs)
	v.SetDefault("thresholds.third_party_script_ms", DefaultThresholds.ThirdPartyScriptMs)
	v.SetDefault("thresholds.session_gap_ms", DefaultThresholds.SessionGapMs)
	v.SetDefault("thresholds.session_max_ms", DefaultThresholds.SessionMaxMs)
	v.SetDefault("thresholds.font_shift_px", DefaultThresholds.FontShiftPx)
	v.SetDefault("thresholds.top_scripts", DefaultThresholds.TopScripts)
	v.SetDefault("output.color", DefaultOutput.Color)
	v.SetDefault("output.width", DefaultOutput.Width)

	if cfgFile != "" {
		v.SetConfigFile(expandPath(cfgFile))
	} else {
		v.SetConfigFile(filepath.Join(expandPath(DefaultConfigDir), DefaultConfigFile))
	}

	// Read config file if it exists; missing file is not an error.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if !os.IsNotExist(err) {
				return nil, err
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// DBPath returns the full path to the SQLite database.
func DBPath() string {
	return filepath.Join(expandPath(DefaultConfigDir), DefaultDBName)
}

// ConfigDir returns the expanded configuration directory.
func ConfigDir() string {
	return expandPath(DefaultConfigDir)
}
