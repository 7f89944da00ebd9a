package config

import (
	"errors"
	"flag"
	"fmt"
)

var (
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagLogLevel   = flag.String("log-level", "", "Log level: debug, info, warn, error")
	flagLogFile    = flag.String("log-file", "", "Also write logs to this file (rotated)")
	flagBackend    = flag.String("backend", "", "Window backend: sdl or glfw")
	flagDumpConfig = flag.String("dump-config", "", "Write the resolved config as YAML to this path")
)

// ErrUsage is returned by ParseArgs when the positional arguments are wrong.
var ErrUsage = errors.New("usage: watersim [flags] <config-file>")

// ParseArgs parses command-line flags and returns the config file path,
// the single positional argument. Call this early in main().
func ParseArgs() (string, error) {
	flag.Parse()
	return configPath(flag.Args())
}

func configPath(args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("%w (got %d arguments)", ErrUsage, len(args))
	}
	return args[0], nil
}

// DumpPath returns the --dump-config path, empty if not requested.
func DumpPath() string {
	return *flagDumpConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagLogLevel != "" {
		cfg.Logging.Level = *flagLogLevel
	}
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
	if *flagBackend != "" {
		cfg.Backend = *flagBackend
	}
}
