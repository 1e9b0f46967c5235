package driver

import (
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// Config keys shared by flags, environment variables and the config file.
const (
	KeyStage    = "stage"
	KeyOutDir   = "out-dir"
	KeyLogLevel = "log-level"
	KeyFormat   = "format"
	KeyColor    = "color"
)

// Tree formats for the analyzed and optimized stages.
const (
	FormatTree = "tree"
	FormatRaw  = "raw"
)

// Config is the resolved compiler configuration.
type Config struct {
	Stage    Stage
	OutDir   string
	LogLevel zapcore.Level
	Format   string
	Color    string // auto, always or never
}

// NewConfig returns a new instance of Config with defaults.
func NewConfig() Config {
	return Config{
		Stage:    StageJS,
		OutDir:   "generated",
		LogLevel: zapcore.WarnLevel,
		Format:   FormatTree,
		Color:    "auto",
	}
}

// SetDefaults registers the defaults of NewConfig with v.
func SetDefaults(v *viper.Viper) {
	c := NewConfig()
	v.SetDefault(KeyStage, string(c.Stage))
	v.SetDefault(KeyOutDir, c.OutDir)
	v.SetDefault(KeyLogLevel, c.LogLevel.String())
	v.SetDefault(KeyFormat, c.Format)
	v.SetDefault(KeyColor, c.Color)
}

// LoadConfig resolves a Config from v, validating every value.
func LoadConfig(v *viper.Viper) (Config, error) {
	c := NewConfig()

	stage, err := ParseStage(v.GetString(KeyStage))
	if err != nil {
		return c, err
	}
	c.Stage = stage

	if dir := v.GetString(KeyOutDir); dir != "" {
		c.OutDir = dir
	}

	if err := c.LogLevel.Set(v.GetString(KeyLogLevel)); err != nil {
		return c, errors.Wrap(err, "unknown log level; supported levels are debug, info, warn, error")
	}

	switch f := v.GetString(KeyFormat); f {
	case FormatTree, FormatRaw:
		c.Format = f
	default:
		return c, &UsageError{Msg: "Unknown format \"" + f + "\"; expected tree or raw"}
	}

	switch col := v.GetString(KeyColor); col {
	case "auto", "always", "never":
		c.Color = col
	default:
		return c, &UsageError{Msg: "Unknown color mode \"" + col + "\"; expected auto, always or never"}
	}
	return c, nil
}
