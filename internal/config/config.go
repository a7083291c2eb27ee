package config

import (
	"os"
	"strings"

	"codeberg.org/mutker/colorlog/internal/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultLogLevel  = string(LogLevelWarning)
	DefaultOutputDir = "."
	DefaultEnvPrefix = "COLORLOG"

	configName = "colorlog"
	configType = "toml"
	configDir  = "/etc"
)

type Config struct {
	Debug     bool   `mapstructure:"debug"`
	Verbose   bool   `mapstructure:"verbose"`
	LogLevel  string `mapstructure:"log_level"`
	OutputDir string `mapstructure:"output_dir"`
}

func (c *Config) GetLogLevel() string { return c.LogLevel }
func (c *Config) GetOutputDir() string { return c.OutputDir }
func (c *Config) IsDebug() bool { return c.Debug }
func (c *Config) IsVerbose() bool { return c.Verbose }

// Load merges defaults, the optional TOML file, COLORLOG_* environment
// variables and command line flags, in increasing order of precedence.
func Load(opts ...Option) (*Config, error) {
	errFactory := errors.New()

	o := options{
		envPrefix: DefaultEnvPrefix,
		args:      os.Args[1:],
	}
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return nil, errFactory.Wrap(errors.ErrInvalidArgument, err)
		}
	}

	v := viper.New()
	v.SetDefault("debug", false)
	v.SetDefault("verbose", false)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("output_dir", DefaultOutputDir)

	v.SetEnvPrefix(o.envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	fs := pflag.NewFlagSet(configName, pflag.ContinueOnError)
	fs.Bool("debug", false, "Enable debugging mode")
	fs.Bool("verbose", false, "Enable verbose logging")
	fs.String("log-level", DefaultLogLevel, "Log level (debug, info, warning, error)")
	fs.String("output-dir", DefaultOutputDir, "Directory to write the CSV file to")
	fs.String("config", "", "Path to configuration file")

	if err := fs.Parse(o.args); err != nil {
		return nil, errFactory.Wrap(errors.ErrBindFlags, err)
	}

	for key, name := range map[string]string{
		"debug":      "debug",
		"verbose":    "verbose",
		"log_level":  "log-level",
		"output_dir": "output-dir",
	} {
		if err := v.BindPFlag(key, fs.Lookup(name)); err != nil {
			return nil, errFactory.Wrap(errors.ErrBindFlags, err)
		}
	}

	if err := readConfigFile(v, fs, o); err != nil {
		return nil, err
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, errFactory.Wrap(errors.ErrInvalidConfig, err)
	}

	if err := config.resolve(); err != nil {
		return nil, err
	}

	return config, nil
}

func readConfigFile(v *viper.Viper, fs *pflag.FlagSet, o options) error {
	errFactory := errors.New()

	path := o.configPath
	if f := fs.Lookup("config"); f != nil && f.Changed {
		path = f.Value.String()
	}
	if path == "" {
		path = os.Getenv(o.envPrefix + "_CONFIG")
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType(configType)
		if err := v.ReadInConfig(); err != nil {
			return errFactory.Wrap(errors.ErrReadConfig, err)
		}
		return nil
	}

	v.SetConfigName(configName)
	v.SetConfigType(configType)
	v.AddConfigPath(configDir)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return errFactory.Wrap(errors.ErrReadConfig, err)
		}
	}

	return nil
}

// resolve applies the debug/verbose shortcuts on top of log_level and
// validates the result.
func (c *Config) resolve() error {
	errFactory := errors.New()

	if c.Debug {
		c.LogLevel = string(LogLevelDebug)
	} else if c.Verbose && c.LogLevel == DefaultLogLevel {
		c.LogLevel = string(LogLevelInfo)
	}

	c.LogLevel = strings.ToLower(c.LogLevel)
	if !LogLevel(c.LogLevel).IsValid() {
		return errFactory.WithData(errors.ErrInvalidLogLevel, c.LogLevel)
	}

	if c.OutputDir == "" {
		return errFactory.WithMessage(errors.ErrInvalidConfig, "output_dir must not be empty")
	}

	return nil
}
