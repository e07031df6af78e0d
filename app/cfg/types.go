package cfg

type Cfg struct {
	// Feed configuration
	FeedURL         string
	RefreshInterval int // seconds
	FetchTimeout    int // seconds
	UserAgent       string
	Timezone        string

	// HTTP surface; empty disables the listener (MCP runs on stdio)
	Port string

	Debug   bool
	Version string
}

// FeedFile is the optional YAML feed-settings file. Values present in the
// file override flag/environment configuration.
type FeedFile struct {
	URL      string       `yaml:"url"`
	Settings FeedSettings `yaml:"settings"`
}

type FeedSettings struct {
	RefreshInterval int    `yaml:"refresh_interval"` // seconds
	Timeout         int    `yaml:"timeout"`          // seconds
	UserAgent       string `yaml:"user_agent"`
	Timezone        string `yaml:"timezone"`
}
