package config

import "github.com/spf13/pflag"

const (
	flagConfig      = "config"
	flagLogLevel    = "log-level"
	flagLogFile     = "log-file"
	flagDebug       = "debug"
	flagExtraCoords = "extra-coords"
	flagDebounce    = "debounce"
	flagNoNormalize = "no-normalize"
)

// BindFlags registers the config overrides on flags.
func BindFlags(flags *pflag.FlagSet) {
	flags.String(flagConfig, "", "Path to config file")
	flags.String(flagLogLevel, "", "Log level (debug, info, warn, error)")
	flags.String(flagLogFile, "", "Also write logs to this file")
	flags.Bool(flagDebug, false, "Enable debug logging")
	flags.Bool(flagExtraCoords, false, "Keep extra vertex coordinates such as w")
	flags.Duration(flagDebounce, 0, "Delay before reloading a changed file")
	flags.Bool(flagNoNormalize, false, "Keep original coordinates instead of fitting the unit cube")
}

// ConfigPath returns the explicit config path if provided via --config.
func ConfigPath(flags *pflag.FlagSet) string {
	if flags == nil || flags.Lookup(flagConfig) == nil {
		return ""
	}
	path, _ := flags.GetString(flagConfig)
	return path
}

// applyFlags applies flags the user actually set.
func applyFlags(cfg *Config, flags *pflag.FlagSet) {
	if flags == nil {
		return
	}

	if flags.Changed(flagLogLevel) {
		cfg.Logging.Level, _ = flags.GetString(flagLogLevel)
	}
	if debug, _ := flags.GetBool(flagDebug); debug {
		cfg.Logging.Level = "debug"
	}
	if flags.Changed(flagLogFile) {
		cfg.Logging.LogFile, _ = flags.GetString(flagLogFile)
	}
	if flags.Changed(flagExtraCoords) {
		cfg.Parser.ExtraCoords, _ = flags.GetBool(flagExtraCoords)
	}
	if flags.Changed(flagDebounce) {
		cfg.Watch.Debounce, _ = flags.GetDuration(flagDebounce)
	}
	if noNormalize, _ := flags.GetBool(flagNoNormalize); noNormalize {
		cfg.View.Normalize = false
	}
}
