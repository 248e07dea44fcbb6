package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"

	"github.com/matzehuels/rtree/pkg/pipeline"
)

// Config is the optional TOML configuration file:
//
//	[report]
//	max_children = 20
//	wrap = "bottom"
//	radius = 4
//	labels = true
//
//	[cache]
//	dir = "/var/cache/rtree"
//	redis_url = "redis://localhost:6379/0"
//	ttl = "24h"
//
//	[serve]
//	addr = ":8080"
type Config struct {
	Report ReportConfig `toml:"report"`
	Cache  CacheConfig  `toml:"cache"`
	Serve  ServeConfig  `toml:"serve"`
}

// ReportConfig holds report defaults.
type ReportConfig struct {
	MaxChildren int    `toml:"max_children"`
	Wrap        string `toml:"wrap"`
	Radius      int    `toml:"radius"`
	Labels      bool   `toml:"labels"`
}

// CacheConfig selects and tunes the cache backend.
type CacheConfig struct {
	Dir      string   `toml:"dir"`
	RedisURL string   `toml:"redis_url"`
	TTL      duration `toml:"ttl"`
}

// ServeConfig holds HTTP server settings.
type ServeConfig struct {
	Addr string `toml:"addr"`
}

// duration decodes TOML strings such as "90s" or "24h".
type duration struct{ time.Duration }

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

const (
	defaultRadius    = 4
	defaultServeAddr = ":8080"
)

func defaultConfig() Config {
	return Config{
		Report: ReportConfig{Wrap: pipeline.DefaultWrap, Radius: defaultRadius},
		Serve:  ServeConfig{Addr: defaultServeAddr},
	}
}

// loadConfig reads the config file at path. An empty path means the default
// location, which may be absent; an explicit path must exist.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(dir, "config.toml")
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: %w", err)
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("config %s: unknown key %q", path, undecoded[0].String())
	}
	if err := pipeline.ValidateWrap(cfg.Report.Wrap); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// reportFlags are the report options shared by report, dot and browse.
type reportFlags struct {
	maxChildren int
	wrap        string
	selectID    string
	radius      int
	labels      bool
	format      string
}

func (f *reportFlags) register(fs *pflag.FlagSet) {
	fs.IntVarP(&f.maxChildren, "max-children", "n", 0, "children shown per node, 0 for all")
	fs.StringVar(&f.wrap, "wrap", pipeline.DefaultWrap, "elided end of wide nodes: bottom, top")
	fs.StringVarP(&f.selectID, "select", "s", "", "center the report on this node id")
	fs.IntVarP(&f.radius, "radius", "r", defaultRadius, "window size around --select")
	fs.BoolVar(&f.labels, "labels", false, "print node labels instead of ids")
	fs.StringVarP(&f.format, "format", "f", "", "input format: json, yaml, paths (default from extension)")
}

// apply fills flags the user did not set from the config file.
func (f *reportFlags) apply(fs *pflag.FlagSet, cfg ReportConfig) {
	if !fs.Changed("max-children") {
		f.maxChildren = cfg.MaxChildren
	}
	if !fs.Changed("wrap") && cfg.Wrap != "" {
		f.wrap = cfg.Wrap
	}
	if !fs.Changed("radius") {
		f.radius = cfg.Radius
	}
	if !fs.Changed("labels") {
		f.labels = cfg.Labels
	}
}

// options converts the flags to pipeline options.
func (f *reportFlags) options() pipeline.Options {
	return pipeline.Options{
		Format:      f.format,
		MaxChildren: f.maxChildren,
		Wrap:        f.wrap,
		Select:      f.selectID,
		Radius:      f.radius,
		Labels:      f.labels,
	}
}
