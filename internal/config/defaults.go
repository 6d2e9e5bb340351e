// Package config provides configuration loading and defaults for vitalwatch.
package config

// DefaultConfigDir is the default location for vitalwatch configuration.
const DefaultConfigDir = "~/.config/vitalwatch"

// DefaultDBName is the filename for the SQLite database.
const DefaultDBName = "vitalwatch.db"

// DefaultConfigFile is the filename for the YAML config.
const DefaultConfigFile = "config.yaml"

// DefaultThresholds holds the default analysis thresholds.
//
// FontShiftPx is a heuristic constant: text elements displaced less
// than this vertically are treated as font-swap reflow. It is not a
// derived physical threshold.
var DefaultThresholds = Thresholds{
	InteractionMs:      200,
	GoodMs:             200,
	LongTaskMs:         50,
	ThirdPartyScriptMs: 50,
	SessionGapMs:       1000,
	SessionMaxMs:       5000,
	FontShiftPx:        20,
	TopScripts:         5,
}

// DefaultOutput holds the default output preferences.
var DefaultOutput = Output{
	Color: true,
	Width: 80,
}
