// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the acm-search CLI.
//
// The root command searches the ACM Digital Library for one paper title and
// writes the top result to results.json:
//
//	acm-search --paper_title="Attention Is All You Need" [--chromedriver_path=/path/to/chrome]
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/acm-search/internal/acm"
	"github.com/pdiddy/acm-search/internal/logging"
	"github.com/pdiddy/acm-search/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is built in PersistentPreRunE from --log-level.
var logger = zap.NewNop()

// rootCmd is the base command for the acm-search CLI.
var rootCmd = &cobra.Command{
	Use:   "acm-search",
	Short: "Search the ACM Digital Library for a paper title",
	Long: `acm-search drives a headless Chrome/Chromium through the ACM Digital Library
search form, parses the results page, and writes the top result to
results.json in the current directory.

Do not query too frequently; the site blocks clients that do.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := logging.New(types.LogConfig{Level: viper.GetString("log_level")})
		if err != nil {
			return fmt.Errorf("building logger: %w", err)
		}
		logger = l
		return nil
	},
	RunE: runTop1,
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./acm-search.yaml or ~/.config/acm-search/config.yaml)")
	pf.String("chromedriver_path", "", "path to the Chrome/Chromium executable (default: search PATH)")
	pf.Duration("timeout", types.DefaultTimeout, "how long to wait for the results page to render")
	pf.Bool("headless", true, "run the browser without a window")
	pf.String("log-level", "warn", "log level: debug, info, warn, error")

	rootCmd.Flags().String("paper_title", "", "title of the paper to search for")
	rootCmd.Flags().String("output", types.DefaultOutputFile, "file to write the result to")
	_ = rootCmd.MarkFlagRequired("paper_title")

	_ = viper.BindPFlag("driver_path", pf.Lookup("chromedriver_path"))
	_ = viper.BindPFlag("timeout", pf.Lookup("timeout"))
	_ = viper.BindPFlag("headless", pf.Lookup("headless"))
	_ = viper.BindPFlag("log_level", pf.Lookup("log-level"))

	defaults := types.DefaultSearchConfig()
	viper.SetDefault("base_url", defaults.BaseURL)
	viper.SetDefault("navigation_timeout", defaults.NavigationTimeout)
	viper.SetDefault("consent_timeout", defaults.ConsentTimeout)
	viper.SetDefault("max_results", defaults.MaxResults)
	viper.SetDefault("user_agent", "")
	viper.SetDefault("no_sandbox", false)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("acm-search")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "acm-search"))
		}
	}

	viper.SetEnvPrefix("ACM_SEARCH")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// searchConfig assembles the searcher settings from flags, environment,
// config file and defaults, in that order of precedence.
func searchConfig() types.SearchConfig {
	return types.SearchConfig{
		DriverPath:        viper.GetString("driver_path"),
		BaseURL:           viper.GetString("base_url"),
		Timeout:           viper.GetDuration("timeout"),
		NavigationTimeout: viper.GetDuration("navigation_timeout"),
		ConsentTimeout:    viper.GetDuration("consent_timeout"),
		Headless:          viper.GetBool("headless"),
		NoSandbox:         viper.GetBool("no_sandbox"),
		UserAgent:         viper.GetString("user_agent"),
		MaxResults:        viper.GetInt("max_results"),
	}.WithDefaults()
}

// runTop1 searches for the top result and saves it. The browser is closed
// before returning on every path.
func runTop1(cmd *cobra.Command, args []string) error {
	title, _ := cmd.Flags().GetString("paper_title")
	outPath, _ := cmd.Flags().GetString("output")

	s, err := acm.New(searchConfig(), acm.WithLogger(logger))
	if err != nil {
		return err
	}
	defer s.Close()

	rec, err := s.SearchTop1(cmd.Context(), title)
	if err != nil {
		return err
	}
	if rec == nil {
		logger.Info("no results", zap.String("title", title))
	}

	path, err := s.SaveResults(outPath)
	if err != nil {
		return err
	}
	logger.Info("results saved", zap.String("path", path))
	fmt.Fprintln(cmd.OutOrStdout(), "Done")
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	_ = logger.Sync()
	if err != nil {
		os.Exit(exitCode(err))
	}
}
