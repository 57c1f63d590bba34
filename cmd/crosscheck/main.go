// crosscheck detects near-duplicate code among submitted programs by
// comparing tokenized source files and reporting similarity scores,
// matched regions and clusters of mutually similar submissions.
package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/veridex/crosscheck/internal/language"
	"github.com/veridex/crosscheck/internal/options"
	"github.com/veridex/crosscheck/internal/pipeline"
	"github.com/veridex/crosscheck/internal/report"
)

var version = "dev"

var (
	newDirs          []string
	oldDirs          []string
	baseCodeDir      string
	lang             string
	minTokens        int
	maxComparisons   int
	clusterThreshold float64
	excludeFile      string
	workers          int
	jsonOut          string
	detailed         bool
	logLevel         string
)

var rootCmd = &cobra.Command{
	Use:          "crosscheck",
	Short:        "Detect near-duplicate code across submissions",
	Long:         "Compares tokenized submissions pairwise with greedy string tiling,\nscores their similarity, and clusters mutually similar submissions.",
	Version:      version,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	flags := rootCmd.Flags()
	flags.StringSliceVar(&newDirs, "new", nil, "Root directory of new submissions (repeatable)")
	flags.StringSliceVar(&oldDirs, "old", nil, "Root directory of prior submissions (repeatable)")
	flags.StringVar(&baseCodeDir, "base-code", "", "Directory of shared template code excluded from matching")
	flags.StringVarP(&lang, "language", "l", "text", fmt.Sprintf("Token frontend (%s)", strings.Join(language.Names(), ", ")))
	flags.IntVarP(&minTokens, "min-tokens", "t", 9, "Minimum common token run reported as a match")
	flags.IntVarP(&maxComparisons, "max-comparisons", "n", 0, "Cap on reported comparisons (0 = unbounded)")
	flags.Float64Var(&clusterThreshold, "cluster-threshold", 0.85, "Minimum average similarity for cluster edges [0,1]")
	flags.StringVar(&excludeFile, "exclude-file", "", "gitignore-syntax file of paths to skip")
	flags.IntVar(&workers, "workers", 0, "Matching workers (0 = number of CPUs)")
	flags.StringVar(&jsonOut, "json-out", "", "Write the overview report to this JSON file")
	flags.BoolVar(&detailed, "detailed", false, "Render the per-match markdown digest")
	flags.StringVar(&logLevel, "log-level", "warn", "Log level: trace, debug, info, warn, error")

	viper.SetEnvPrefix("CROSSCHECK")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	_ = viper.BindPFlags(flags)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	log, err := setupLogger()
	if err != nil {
		return err
	}
	loadConfigFile(log)

	opts := options.Options{
		NewDirectories:             viper.GetStringSlice("new"),
		OldDirectories:             viper.GetStringSlice("old"),
		BaseCodeDirectory:          viper.GetString("base-code"),
		Language:                   viper.GetString("language"),
		MinimumTokenMatch:          viper.GetInt("min-tokens"),
		MaximumNumberOfComparisons: viper.GetInt("max-comparisons"),
		ClusteringThreshold:        viper.GetFloat64("cluster-threshold"),
		ExcludeFile:                viper.GetString("exclude-file"),
		Workers:                    viper.GetInt("workers"),
	}

	res, err := pipeline.Run(cmd.Context(), opts, log)
	if err != nil {
		var cfgErr *options.ConfigError
		if errors.As(err, &cfgErr) {
			return fmt.Errorf("configuration: %w", err)
		}
		return err
	}

	console := &report.Console{Out: cmd.OutOrStdout(), Theme: report.DefaultTheme}
	console.PrintComparisons(res)
	console.PrintClusters(res)
	console.PrintFailures(res)
	console.PrintSummary(res)

	if viper.GetBool("detailed") {
		rendered, err := report.Render(report.BuildMarkdown(res))
		if err != nil {
			// Fall back to the raw markdown when the terminal renderer
			// cannot initialize.
			rendered = report.BuildMarkdown(res)
		}
		fmt.Fprint(cmd.OutOrStdout(), rendered)
	}

	if path := viper.GetString("json-out"); path != "" {
		if err := report.WriteOverview(res, path); err != nil {
			return err
		}
		log.Info().Str("path", path).Msg("overview written")
	}
	return nil
}

// loadConfigFile reads an optional crosscheck.yaml from the working
// directory. Viper precedence stays flag > env > file > default.
func loadConfigFile(log zerolog.Logger) {
	viper.SetConfigName("crosscheck")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	if err := viper.ReadInConfig(); err == nil {
		log.Debug().Str("file", viper.ConfigFileUsed()).Msg("config file loaded")
	}
}

func setupLogger() (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(viper.GetString("log-level"))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q", viper.GetString("log-level"))
	}
	writer := zerolog.ConsoleWriter{Out: os.Stderr}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger(), nil
}
