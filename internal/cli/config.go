package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"

	"github.com/matzehuels/topicnet/pkg/cache"
	"github.com/matzehuels/topicnet/pkg/errors"
	"github.com/matzehuels/topicnet/pkg/ingest"
	"github.com/matzehuels/topicnet/pkg/pipeline"
)

// Config is the on-disk configuration, read from config.toml.
//
//	delimiter = ";"
//
//	[columns]
//	from_id = "institution_id"
//
//	[layout]
//	width = 1200
//	height = 900
//	iterations = 800
//
//	[size]
//	min = 3
//	max = 20
//
//	[cache]
//	backend = "redis"
//	[cache.redis]
//	addr = "localhost:6379"
//
//	[server]
//	addr = ":9090"
//	metrics = true
type Config struct {
	Delimiter string         `toml:"delimiter"`
	Columns   ingest.Columns `toml:"columns"`
	Layout    LayoutConfig   `toml:"layout"`
	Size      SizeConfig     `toml:"size"`
	Cache     cache.Config   `toml:"cache"`
	Server    ServerConfig   `toml:"server"`
}

// LayoutConfig holds the [layout] section.
type LayoutConfig struct {
	Width      float64 `toml:"width"`
	Height     float64 `toml:"height"`
	Iterations int     `toml:"iterations"`
}

// SizeConfig holds the [size] section.
type SizeConfig struct {
	Min float64 `toml:"min"`
	Max float64 `toml:"max"`
}

// ServerConfig holds the [server] section.
type ServerConfig struct {
	Addr    string `toml:"addr"`
	Metrics *bool  `toml:"metrics"`
}

// loadConfig reads the config file at path. An empty path means the default
// location, which may be absent; an explicit path must exist. Unknown keys
// are rejected so typos do not go unnoticed.
func loadConfig(path string) (Config, error) {
	var cfg Config
	explicit := path != ""
	if !explicit {
		def, err := configPath()
		if err != nil {
			return cfg, nil
		}
		path = def
	}

	if _, err := os.Stat(path); err != nil {
		if !explicit && os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// configPath returns the default config file using the XDG standard
// (~/.config/topicnet/config.toml).
func configPath() (string, error) {
	if home := os.Getenv("XDG_CONFIG_HOME"); home != "" {
		return filepath.Join(home, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// apply copies configured values into opts. A value is skipped when the
// matching flag was set on the command line, so flags always win.
func (c Config) apply(opts *pipeline.Options, flags *pflag.FlagSet) {
	unset := func(name string) bool {
		f := flags.Lookup(name)
		return f == nil || !f.Changed
	}

	if c.Delimiter != "" && unset("delimiter") {
		opts.Delimiter = c.Delimiter
	}
	opts.Columns = mergeColumns(opts.Columns, c.Columns)

	if c.Layout.Width > 0 && unset("width") {
		opts.Width = c.Layout.Width
	}
	if c.Layout.Height > 0 && unset("height") {
		opts.Height = c.Layout.Height
	}
	if c.Layout.Iterations > 0 && unset("iterations") {
		opts.Iterations = c.Layout.Iterations
	}
	if c.Size.Min > 0 && unset("min-size") {
		opts.MinSize = c.Size.Min
	}
	if c.Size.Max > 0 && unset("max-size") {
		opts.MaxSize = c.Size.Max
	}
}

// mergeColumns fills the empty fields of flags from cfg.
func mergeColumns(flags, cfg ingest.Columns) ingest.Columns {
	pick := func(a, b string) string {
		if a != "" {
			return a
		}
		return b
	}
	return ingest.Columns{
		FromID:        pick(flags.FromID, cfg.FromID),
		FromTopic:     pick(flags.FromTopic, cfg.FromTopic),
		FromTopicName: pick(flags.FromTopicName, cfg.FromTopicName),
		FromLabel:     pick(flags.FromLabel, cfg.FromLabel),
		ToID:          pick(flags.ToID, cfg.ToID),
		ToTopic:       pick(flags.ToTopic, cfg.ToTopic),
		ToTopicName:   pick(flags.ToTopicName, cfg.ToTopicName),
		ToLabel:       pick(flags.ToLabel, cfg.ToLabel),
	}
}

// serverAddr returns the listen address from config, or fallback.
func (c Config) serverAddr(fallback string) string {
	if c.Server.Addr != "" {
		return c.Server.Addr
	}
	return fallback
}

// metricsEnabled reports whether /metrics should be served. It defaults to on.
func (c Config) metricsEnabled() bool {
	return c.Server.Metrics == nil || *c.Server.Metrics
}
