package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Storage configuration
	DBPath  string `long:"db-path" env:"DB_PATH" default:"./newsatlas.db" description:"SQLite database file path"`
	DataDir string `long:"data-dir" env:"DATA_DIR" default:"./data" description:"Directory for pipeline checkpoint files"`

	// Application configuration
	Port         string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	ConfigFile   string `long:"config" env:"CONFIG_FILE" default:"./pipeline.yml" description:"Pipeline configuration file (queries, keyword groups)"`
	ScheduleAt   string `long:"schedule-at" env:"SCHEDULE_AT" default:"03:00" description:"Daily pipeline run time (HH:MM)"`
	RunOnStartup bool   `long:"run-on-startup" env:"RUN_ON_STARTUP" description:"Run the pipeline once immediately on startup"`
	WorkerCount  int    `long:"worker-count" env:"WORKER_COUNT" default:"3" description:"Number of background workers for task processing"`
	FetchTimeout int    `long:"fetch-timeout" env:"FETCH_TIMEOUT" default:"15" description:"Per-article fetch timeout in seconds"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"NewsAtlas/1.0" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, America/New_York)"`
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

	cfg := &Cfg{
		DBPath:       raw.DBPath,
		DataDir:      raw.DataDir,
		Port:         raw.Port,
		ConfigFile:   raw.ConfigFile,
		ScheduleAt:   raw.ScheduleAt,
		RunOnStartup: raw.RunOnStartup,
		WorkerCount:  raw.WorkerCount,
		FetchTimeout: raw.FetchTimeout,
		UserAgent:    raw.UserAgent,
		Timezone:     raw.Timezone,
		Debug:        raw.Debug,
		Version:      GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
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

// SetForTesting replaces the global configuration. Tests only.
func SetForTesting(c *Cfg) {
	globalCfg = c
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		loc, err := time.LoadLocation(timezone)
		if err != nil {
			return err
		}
		time.Local = loc
	}
	return nil
}
