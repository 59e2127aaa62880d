package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/uyouii/groupstats/config"
	"github.com/uyouii/groupstats/group"
	"github.com/uyouii/groupstats/normal"
	"github.com/uyouii/groupstats/table"
	"github.com/uyouii/groupstats/utils"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfgFile string
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "groupstats",
		Short: "Per-group mean and confidence interval of every numeric column",
		Long: `Group the rows of a delimited table (or .xlsx workbook) by a key column and
compute, for every other column, the mean and the half-width of its normal
confidence interval.

Example: groupstats -i runs.csv -k id -o summary.csv -c 0.99`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v, cfgFile)
			if err != nil {
				return err
			}
			level := cfg.LogLevel
			if cfg.Verbose {
				level = "debug"
			}
			if err := utils.SetLogger(level); err != nil {
				return fmt.Errorf("log level %q: %w", level, err)
			}
			defer zap.L().Sync()
			return run(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&cfgFile, "config", "", "config file (yaml, json or toml)")
	if err := config.BindFlags(cmd.Flags(), v); err != nil {
		panic(err)
	}
	return cmd
}

func run(ctx context.Context, cfg *config.Config) error {
	logger := utils.GetLogger(ctx)

	quantiler, err := normal.ByName(cfg.Quantile)
	if err != nil {
		return err
	}

	t, err := table.Read(ctx, cfg.Input, cfg.DelimiterRune())
	if err != nil {
		logger.Error("ReadTable failed", zap.String("input", cfg.Input), zap.Error(err))
		return err
	}

	rows, grouper, err := group.Calculate(ctx, t, cfg.Key, cfg.Confidence,
		group.WithQuantiler(quantiler), group.WithParallelism(cfg.Parallelism))
	if err != nil {
		return err
	}
	if cfg.Verbose {
		group.LogStatistics(ctx, grouper)
	}

	if cfg.Output == "" {
		logger.Info("no output file given, results not written", zap.Int("rows", len(rows)))
		return nil
	}
	return table.Write(ctx, cfg.Output, cfg.Key, rows, cfg.DelimiterRune())
}
