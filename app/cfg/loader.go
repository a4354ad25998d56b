package cfg

import (
	"cmp"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Storage configuration
	DataDir   string `long:"data-dir" env:"PAYPAL_DIGEST_DATA_DIR" default:"data" description:"Directory for digests and run state"`
	StateFile string `long:"state-file" env:"PAYPAL_DIGEST_STATE_FILE" description:"Path to the seen-items state file (default: <data-dir>/state.json)"`
	DigestDir string `long:"digest-dir" env:"PAYPAL_DIGEST_DIGEST_DIR" description:"Directory for rendered digests (default: <data-dir>/digests)"`

	// Subject configuration
	SubjectFile string `long:"subject-file" env:"PAYPAL_DIGEST_SUBJECT_FILE" default:"subject.yml" description:"Subject configuration file"`
	NewsAPIKey  string `long:"newsapi-key" env:"NEWSAPI_KEY" description:"NewsAPI access key (optional)"`

	// Run configuration
	Output   string `long:"output" short:"o" description:"Write an extra copy of the rendered digest to this path"`
	Timeout  int    `long:"timeout" env:"PAYPAL_DIGEST_TIMEOUT" default:"10" description:"HTTP timeout in seconds"`
	Schedule string `long:"schedule" env:"PAYPAL_DIGEST_SCHEDULE" description:"Cron expression for recurring runs (e.g., '0 7 * * *')"`

	// Application metadata
	UserAgent   string `long:"user-agent" env:"PAYPAL_DIGEST_USER_AGENT" description:"User agent string for HTTP requests (default: paypal-digest/<version>)"`
	Debug       bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
	ShowVersion bool   `long:"version" description:"Print version and exit"`
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

	if raw.ShowVersion {
		fmt.Println(GetVersion())
		return nil, nil
	}

	cfg := &Cfg{
		DataDir:     raw.DataDir,
		StateFile:   raw.StateFile,
		DigestDir:   raw.DigestDir,
		SubjectFile: raw.SubjectFile,
		NewsAPIKey:  raw.NewsAPIKey,
		Output:      raw.Output,
		Timeout:     raw.Timeout,
		Schedule:    raw.Schedule,
		UserAgent:   raw.UserAgent,
		Debug:       raw.Debug,
		Version:     GetVersion(),
	}

	applyDerived(cfg)

	if err := ensureDirs(cfg); err != nil {
		return nil, fmt.Errorf("failed to prepare data directories: %w", err)
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

func applyDerived(cfg *Cfg) {
	cfg.StateFile = cmp.Or(cfg.StateFile, filepath.Join(cfg.DataDir, "state.json"))
	cfg.DigestDir = cmp.Or(cfg.DigestDir, filepath.Join(cfg.DataDir, "digests"))
	cfg.UserAgent = cmp.Or(cfg.UserAgent, "paypal-digest/"+cfg.Version)
}

func ensureDirs(cfg *Cfg) error {
	for _, dir := range []string{cfg.DataDir, cfg.DigestDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}
