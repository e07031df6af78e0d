package cfg

import (
	"cmp"
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"
	"gopkg.in/yaml.v3"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	FeedURL         string `long:"feed-url" env:"FEED_URL" default:"https://experiencebu.brocku.ca/events.rss" description:"Events RSS feed URL"`
	FeedFile        string `long:"feed-file" env:"FEED_FILE" description:"Optional YAML feed settings file"`
	RefreshInterval int    `long:"refresh-interval" env:"REFRESH_INTERVAL" default:"300" description:"Feed cache TTL in seconds"`
	FetchTimeout    int    `long:"fetch-timeout" env:"FETCH_TIMEOUT" default:"30" description:"Feed fetch timeout in seconds"`
	UserAgent       string `long:"user-agent" env:"USER_AGENT" default:"campus-events-assistant/1.0" description:"User agent string for HTTP requests"`
	Timezone        string `long:"timezone" env:"EVENTS_TZ" default:"America/Toronto" description:"Reference timezone for event times"`
	Port            string `long:"port" env:"PORT" description:"HTTP server port (empty disables the HTTP surface)"`
	Debug           bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

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
		FeedURL:         raw.FeedURL,
		RefreshInterval: raw.RefreshInterval,
		FetchTimeout:    raw.FetchTimeout,
		UserAgent:       raw.UserAgent,
		Timezone:        raw.Timezone,
		Port:            raw.Port,
		Debug:           raw.Debug,
		Version:         GetVersion(),
	}

	if raw.FeedFile != "" {
		feedFile, err := LoadFeedFile(raw.FeedFile)
		if err != nil {
			return nil, err
		}
		cfg.apply(feedFile)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFeedFile parses a YAML feed settings file.
func LoadFeedFile(path string) (*FeedFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read feed file: %w", err)
	}

	var feedFile FeedFile
	if err := yaml.Unmarshal(data, &feedFile); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	return &feedFile, nil
}

func (c *Cfg) apply(f *FeedFile) {
	c.FeedURL = cmp.Or(f.URL, c.FeedURL)
	c.UserAgent = cmp.Or(f.Settings.UserAgent, c.UserAgent)
	c.Timezone = cmp.Or(f.Settings.Timezone, c.Timezone)
	if f.Settings.RefreshInterval > 0 {
		c.RefreshInterval = f.Settings.RefreshInterval
	}
	if f.Settings.Timeout > 0 {
		c.FetchTimeout = f.Settings.Timeout
	}
}

func (c *Cfg) validate() error {
	if c.FeedURL == "" {
		return fmt.Errorf("feed URL is required")
	}

	nonNegativeFields := map[string]int{
		"refresh interval": c.RefreshInterval,
		"fetch timeout":    c.FetchTimeout,
	}

	for fieldName, fieldValue := range nonNegativeFields {
		if fieldValue < 0 {
			return fmt.Errorf("%s must be non-negative", fieldName)
		}
	}

	return nil
}
