package config

import (
	"strings"
	"unicode/utf8"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/uyouii/groupstats/common"
	"github.com/uyouii/groupstats/normal"
)

const (
	EnvPrefix = "GROUPSTATS"

	DefaultDelimiter  = ","
	DefaultConfidence = 0.95
	DefaultQuantile   = "gonum"
	DefaultLogLevel   = "info"
)

type Config struct {
	Input       string
	Key         string
	Output      string
	Delimiter   string
	Confidence  float64
	Quantile    string
	Parallelism int
	LogLevel    string
	Verbose     bool
}

// BindFlags registers every option on fs and binds it into v, so values
// resolve as flag, then GROUPSTATS_* environment, then config file, then default.
func BindFlags(fs *pflag.FlagSet, v *viper.Viper) error {
	fs.StringP("input", "i", "", "input file (delimited text or .xlsx)")
	fs.StringP("key", "k", "", "key field")
	fs.StringP("output", "o", "", "output file; results are not written when empty")
	fs.StringP("delimiter", "d", DefaultDelimiter, "field delimiter")
	fs.Float64P("confidence", "c", DefaultConfidence, "confidence level in (0,1)")
	fs.String("quantile", DefaultQuantile, "normal quantile implementation: gonum|acklam")
	fs.Int("parallelism", 1, "number of groups finalized concurrently")
	fs.String("log-level", DefaultLogLevel, "log level: debug|info|warn|error")
	fs.BoolP("verbose", "v", false, "log records and statistics of every group")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v.BindPFlags(fs)
}

// Load reads the optional config file and returns the validated configuration.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, common.ConfigurationError("read config %s: %w", configFile, err)
		}
	}

	cfg := &Config{
		Input:       v.GetString("input"),
		Key:         v.GetString("key"),
		Output:      v.GetString("output"),
		Delimiter:   v.GetString("delimiter"),
		Confidence:  v.GetFloat64("confidence"),
		Quantile:    v.GetString("quantile"),
		Parallelism: v.GetInt("parallelism"),
		LogLevel:    v.GetString("log-level"),
		Verbose:     v.GetBool("verbose"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Input == "" {
		return common.ConfigurationError("input file is required")
	}
	if c.Key == "" {
		return common.ConfigurationError("key field is required")
	}
	if err := normal.ValidConfidence(c.Confidence); err != nil {
		return err
	}
	if utf8.RuneCountInString(c.Delimiter) != 1 {
		return common.ConfigurationError("delimiter must be a single character, got %q", c.Delimiter)
	}
	switch r := c.DelimiterRune(); r {
	case '"', '\r', '\n', utf8.RuneError:
		return common.ConfigurationError("invalid delimiter %q", r)
	}
	if _, err := normal.ByName(c.Quantile); err != nil {
		return err
	}
	if c.Parallelism < 1 {
		return common.ConfigurationError("parallelism must be at least 1, got %d", c.Parallelism)
	}
	return nil
}

func (c *Config) DelimiterRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Delimiter)
	return r
}
