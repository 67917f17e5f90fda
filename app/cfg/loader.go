package cfg

import (
	"cmp"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Recording configuration
	ConfigPath string `long:"config" env:"CONFIG_PATH" default:"~/feed_config.yaml" description:"Path to YAML config file listing feed URLs"`
	OutputPath string `long:"output" env:"OUTPUT_PATH" default:"~/feed_data.json" description:"Path to output file (.json or .csv)"`
	FetchDelay int    `long:"fetch-delay" env:"FETCH_DELAY" default:"1" description:"Pacing delay between feed requests in seconds (minimum 1)"`
	Timeout    int    `long:"timeout" env:"TIMEOUT" default:"30" description:"HTTP request timeout in seconds"`

	// Daemon configuration
	Serve    bool   `long:"serve" env:"SERVE" description:"Keep running: record on an interval and serve the collection over HTTP"`
	Interval int    `long:"interval" env:"INTERVAL" default:"3600" description:"Recording interval in seconds (serve mode)"`
	Port     string `long:"port" env:"PORT" default:"8080" description:"HTTP server port (serve mode)"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"Feed Ledger/1.0" description:"User agent string for HTTP requests"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	configPath, err := ExpandPath(raw.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("invalid config path: %w", err)
	}

	outputPath, err := ExpandPath(raw.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("invalid output path: %w", err)
	}

	cfg := &Cfg{
		ConfigPath: configPath,
		OutputPath: outputPath,
		FetchDelay: max(raw.FetchDelay, 1),
		Timeout:    raw.Timeout,
		Serve:      raw.Serve,
		Interval:   raw.Interval,
		Port:       raw.Port,
		UserAgent:  raw.UserAgent,
		Debug:      raw.Debug,
		Version:    GetVersion(),
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

// ExpandPath resolves a leading "~" against the current user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to resolve home directory: %w", err)
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
	}
	return path, nil
}
