package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"
	"github.com/urfave/cli/v3"

	"github.com/syssam/augment"
	"github.com/syssam/augment/compiler/gen"
)

// Config holds the settings read from augment.yaml and AUGMENT_ environment
// variables. Command line flags take precedence over both.
type Config struct {
	Out       string   `mapstructure:"out"`
	Format    string   `mapstructure:"format"`
	GoOut     string   `mapstructure:"go_out"`
	GoPackage string   `mapstructure:"go_package"`
	Jobs      int      `mapstructure:"jobs"`
	Header    string   `mapstructure:"header"`
	Indent    string   `mapstructure:"indent"`
	Features  []string `mapstructure:"features"`
	Disable   []string `mapstructure:"disable"`
	LogLevel  string   `mapstructure:"log_level"`
}

// Output formats.
const (
	FormatSDL  = "sdl"
	FormatJSON = "json"
)

// LoadConfig reads the configuration. An explicit path must exist; otherwise
// augment.yaml is searched in the working directory and
// $HOME/.config/augment, and a missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("format", FormatSDL)
	v.SetDefault("jobs", runtime.GOMAXPROCS(0))
	v.SetDefault("log_level", "warn")
	v.SetDefault("header", "")
	v.SetDefault("indent", gen.DefaultIndent)
	v.SetDefault("out", "")
	v.SetDefault("go_out", "")
	v.SetDefault("go_package", "")
	v.SetDefault("features", []string{})
	v.SetDefault("disable", []string{})

	v.SetEnvPrefix("AUGMENT")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("augment")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "augment"))
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// merge overrides the configuration with the flags set on cmd.
func (c *Config) merge(cmd *cli.Command) {
	for _, f := range []struct {
		name string
		dst  *string
	}{
		{"out", &c.Out},
		{"format", &c.Format},
		{"go-out", &c.GoOut},
		{"go-package", &c.GoPackage},
		{"header", &c.Header},
		{"indent", &c.Indent},
	} {
		if cmd.IsSet(f.name) {
			*f.dst = cmd.String(f.name)
		}
	}
	if cmd.IsSet("jobs") {
		c.Jobs = cmd.Int("jobs")
	}
	if cmd.IsSet("feature") {
		c.Features = cmd.StringSlice("feature")
	}
	if cmd.IsSet("disable") {
		c.Disable = cmd.StringSlice("disable")
	}
}

// validate checks the merged configuration.
func (c *Config) validate() error {
	switch c.Format {
	case FormatSDL, FormatJSON:
	default:
		return fmt.Errorf("unknown format %q (want %s or %s)", c.Format, FormatSDL, FormatJSON)
	}
	if c.Jobs < 1 {
		c.Jobs = 1
	}
	return nil
}

// genOptions returns the generator options of the configuration.
func (c *Config) genOptions() augment.Option {
	opts := []gen.Option{
		gen.WithFeatureNames(c.Features...),
		gen.WithoutFeatures(c.Disable...),
	}
	if c.Header != "" {
		opts = append(opts, gen.WithHeader(c.Header))
	}
	if c.Indent != "" {
		opts = append(opts, gen.WithIndent(c.Indent))
	}
	return augment.WithGenOptions(opts...)
}

// featureFlags returns the flags selecting generator features.
func featureFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:  "feature",
			Usage: "enable an optional feature (" + featureNames() + ")",
		},
		&cli.StringSliceFlag{
			Name:  "disable",
			Usage: "disable a default feature",
		},
		&cli.StringFlag{
			Name:  "header",
			Usage: "comment printed at the top of the schema",
		},
		&cli.StringFlag{
			Name:  "indent",
			Usage: "indentation of the printed schema",
		},
	}
}

func featureNames() string {
	names := make([]string, len(gen.AllFeatures))
	for i, f := range gen.AllFeatures {
		names[i] = f.Name
	}
	return strings.Join(names, ", ")
}
