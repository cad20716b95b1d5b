package config

// This file defines the command-line flags and binds them, together with
// SLICERENAME_* environment variables, into a Configuration through viper.
// Precedence: positional directory > flag > environment > default.

import (
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. SLICERENAME_DRY_RUN.
const EnvPrefix = "SLICERENAME"

// Flag names, also used as viper keys.
const (
	KeyDir       = "dir"
	KeyDryRun    = "dry-run"
	KeyExt       = "ext"
	KeyVerbose   = "verbose"
	KeyWatch     = "watch"
	KeyDebounce  = "debounce"
	KeyLogLevel  = "log-level"
	KeyLogFormat = "log-format"
	KeyLogFile   = "log-file"
)

// DefineFlags registers all slicerename flags on fs with their default values.
func DefineFlags(fs *pflag.FlagSet) {
	d := DefaultConfiguration()

	fs.StringP(KeyDir, "d", d.Directory, "directory to scan (not recursive)")
	fs.BoolP(KeyDryRun, "n", d.DryRun, "print the renames without performing them")
	fs.String(KeyExt, strings.Join(trimDots(d.Extensions), ","), "comma separated image extensions to consider")
	fs.BoolP(KeyVerbose, "v", d.Verbose, "also report files that are already canonical")
	fs.Bool(KeyWatch, d.Watch, "keep running and rename new files as they appear")
	fs.Duration(KeyDebounce, d.Debounce, "quiet period before a watch-triggered pass")
	fs.String(KeyLogLevel, d.LogLevel, "diagnostic log level: debug, info, warn, error")
	fs.String(KeyLogFormat, d.LogFormat, "diagnostic log format: text or json")
	fs.String(KeyLogFile, d.LogFile, "also write diagnostic logs to this rotating file")
}

// Load builds a Configuration from fs (already parsed), the environment and
// the positional args. At most one positional argument, the directory, is accepted.
func Load(fs *pflag.FlagSet, args []string) (*Configuration, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(fs); err != nil {
		return nil, &ConfigError{Type: InvalidFlag, Field: "flags", Message: err.Error()}
	}

	return fromViper(v, fs, args)
}

func fromViper(v *viper.Viper, fs *pflag.FlagSet, args []string) (*Configuration, error) {
	cfg := DefaultConfiguration()

	cfg.Directory = v.GetString(KeyDir)
	if len(args) > 1 {
		return nil, &ConfigError{Type: InvalidFlag, Field: "args", Message: "at most one directory may be given"}
	}
	if len(args) == 1 {
		if fs.Changed(KeyDir) && args[0] != v.GetString(KeyDir) {
			return nil, &ConfigError{Type: InvalidFlag, Field: KeyDir, Message: "directory given both as argument and --dir"}
		}
		cfg.Directory = args[0]
	}

	dir, err := ExpandPath(cfg.Directory)
	if err != nil {
		return nil, &ConfigError{Type: InvalidFlag, Field: KeyDir, Message: err.Error()}
	}
	cfg.Directory = dir

	cfg.DryRun = v.GetBool(KeyDryRun)
	cfg.Extensions = ParseExtensions(v.GetString(KeyExt))
	cfg.Verbose = v.GetBool(KeyVerbose)
	cfg.Watch = v.GetBool(KeyWatch)
	cfg.Debounce = v.GetDuration(KeyDebounce)
	cfg.LogLevel = strings.ToLower(v.GetString(KeyLogLevel))
	cfg.LogFormat = strings.ToLower(v.GetString(KeyLogFormat))
	if logFile := v.GetString(KeyLogFile); logFile != "" {
		if cfg.LogFile, err = ExpandPath(logFile); err != nil {
			return nil, &ConfigError{Type: InvalidFlag, Field: KeyLogFile, Message: err.Error()}
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func trimDots(exts []string) []string {
	out := make([]string, len(exts))
	for i, e := range exts {
		out[i] = strings.TrimPrefix(e, ".")
	}
	return out
}
