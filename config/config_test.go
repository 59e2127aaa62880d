package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uyouii/groupstats/common"
)

func load(t *testing.T, configFile string, args ...string) (*Config, error) {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	v := viper.New()
	require.NoError(t, BindFlags(fs, v))
	require.NoError(t, fs.Parse(args))
	return Load(v, configFile)
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(t, "", "-i", "in.csv", "-k", "id")
	require.NoError(t, err)
	assert.Equal(t, &Config{
		Input:       "in.csv",
		Key:         "id",
		Delimiter:   ",",
		Confidence:  0.95,
		Quantile:    "gonum",
		Parallelism: 1,
		LogLevel:    "info",
	}, cfg)
	assert.Equal(t, ',', cfg.DelimiterRune())
}

func TestLoadFlags(t *testing.T) {
	cfg, err := load(t, "", "--input", "in.csv", "--key", "id", "--output", "out.csv",
		"-d", ";", "-c", "0.99", "--quantile", "acklam", "--parallelism", "4", "-v")
	require.NoError(t, err)
	assert.Equal(t, "out.csv", cfg.Output)
	assert.Equal(t, ';', cfg.DelimiterRune())
	assert.Equal(t, 0.99, cfg.Confidence)
	assert.Equal(t, "acklam", cfg.Quantile)
	assert.Equal(t, 4, cfg.Parallelism)
	assert.True(t, cfg.Verbose)
}

func TestLoadEnvAndFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "groupstats.yaml")
	require.NoError(t, os.WriteFile(path, []byte("input: file.csv\nkey: name\nconfidence: 0.9\n"), 0o644))
	t.Setenv("GROUPSTATS_LOG_LEVEL", "debug")

	cfg, err := load(t, path, "-k", "id")
	require.NoError(t, err)
	assert.Equal(t, "file.csv", cfg.Input)
	assert.Equal(t, "id", cfg.Key, "flag wins over file")
	assert.Equal(t, 0.9, cfg.Confidence)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadMissingConfigFile(t *testing.T) {
	_, err := load(t, filepath.Join(t.TempDir(), "none.yaml"), "-i", "in.csv", "-k", "id")
	require.ErrorIs(t, err, common.ErrConfiguration)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{Input: "in.csv", Key: "id", Delimiter: ",", Confidence: 0.95, Quantile: "gonum", Parallelism: 1}
	}
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"no input", func(c *Config) { c.Input = "" }},
		{"no key", func(c *Config) { c.Key = "" }},
		{"confidence zero", func(c *Config) { c.Confidence = 0 }},
		{"confidence one", func(c *Config) { c.Confidence = 1 }},
		{"long delimiter", func(c *Config) { c.Delimiter = ";;" }},
		{"empty delimiter", func(c *Config) { c.Delimiter = "" }},
		{"quote delimiter", func(c *Config) { c.Delimiter = `"` }},
		{"unknown quantile", func(c *Config) { c.Quantile = "probit" }},
		{"no parallelism", func(c *Config) { c.Parallelism = 0 }},
	}
	require.NoError(t, valid().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.modify(cfg)
			assert.ErrorIs(t, cfg.Validate(), common.ErrConfiguration)
		})
	}
}
