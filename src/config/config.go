// Package config resolves the run configuration of the renderer.
//
// Values are merged with the precedence flags > LOADCHARTS_* environment
// variables > YAML file > defaults.
package config

import (
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/iafilius/loadtestcharts/src/dataset"
	"github.com/iafilius/loadtestcharts/src/logging"
	"github.com/iafilius/loadtestcharts/src/theme"
)

const (
	EnvPrefix = "LOADCHARTS"

	DefaultOutput   = "docs/v1-charts.png"
	DefaultVariant  = "v1"
	DefaultDPI      = 150
	DefaultLogLevel = "info"

	MinDPI = 30
	MaxDPI = 600
)

// Config is the effective run configuration.
type Config struct {
	Output   string            `mapstructure:"output" yaml:"output"`
	Variant  string            `mapstructure:"variant" yaml:"variant"`
	DPI      int               `mapstructure:"dpi" yaml:"dpi"`
	LogLevel string            `mapstructure:"log_level" yaml:"log_level"`
	Theme    map[string]string `mapstructure:"theme" yaml:"theme,omitempty"`
}

// ErrInvalidConfig is matched by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// flag name → viper key
var flagKeys = map[string]string{
	"output":    "output",
	"variant":   "variant",
	"dpi":       "dpi",
	"log-level": "log_level",
}

// New returns a viper instance with defaults and environment lookup set up.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("output", DefaultOutput)
	v.SetDefault("variant", DefaultVariant)
	v.SetDefault("dpi", DefaultDPI)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	return v
}

// RegisterFlags adds the configuration flags to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.StringP("output", "o", DefaultOutput, "output PNG path")
	fs.String("variant", DefaultVariant, "report variant ("+strings.Join(dataset.VariantNames(), ", ")+")")
	fs.Int("dpi", DefaultDPI, "output resolution in dots per inch")
	fs.String("log-level", DefaultLogLevel, "log level (debug, info, warn, error)")
}

// BindFlags makes explicitly set flags override every other source.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return errors.Wrapf(err, "bind flag --%s", name)
		}
	}
	return nil
}

// Load reads the optional YAML file into v and returns the validated configuration.
func Load(v *viper.Viper, file string) (Config, error) {
	if file != "" {
		v.SetConfigFile(file)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, errors.Wrapf(ErrInvalidConfig, "read %s: %v", file, err)
		}
		logging.Debugf("loaded config file %s", v.ConfigFileUsed())
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, errors.Wrapf(ErrInvalidConfig, "unmarshal: %v", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate reports every invalid field.
func (c Config) Validate() error {
	var result *multierror.Error
	if strings.TrimSpace(c.Output) == "" {
		result = multierror.Append(result, errors.Wrap(ErrInvalidConfig, "output path is empty"))
	}
	if _, err := dataset.LookupVariant(c.Variant); err != nil {
		result = multierror.Append(result, errors.Wrap(ErrInvalidConfig, err.Error()))
	}
	if c.DPI < MinDPI || c.DPI > MaxDPI {
		result = multierror.Append(result, errors.Wrapf(ErrInvalidConfig, "dpi %d outside [%d, %d]", c.DPI, MinDPI, MaxDPI))
	}
	if _, ok := logging.ParseLevel(c.LogLevel); !ok {
		result = multierror.Append(result, errors.Wrapf(ErrInvalidConfig, "unknown log level %q", c.LogLevel))
	}
	if _, err := c.ResolveTheme(); err != nil {
		result = multierror.Append(result, errors.Wrap(ErrInvalidConfig, err.Error()))
	}
	return result.ErrorOrNil()
}

// ResolveTheme returns the default theme with the configured overrides applied.
func (c Config) ResolveTheme() (*theme.Theme, error) {
	if len(c.Theme) == 0 {
		return theme.Default(), nil
	}
	return theme.Default().WithOverrides(c.Theme)
}

// YAML renders the configuration as a YAML document.
func (c Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}
