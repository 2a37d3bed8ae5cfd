// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/benyehuda-harvest/internal/fetch"
	"github.com/pdiddy/benyehuda-harvest/internal/runlog"
	"github.com/pdiddy/benyehuda-harvest/internal/scrape"
	"github.com/pdiddy/benyehuda-harvest/pkg/types"
)

const (
	defaultTimeout   = 60 * time.Second
	defaultDelay     = 500 * time.Millisecond
	defaultOutputDir = "benyehuda_data"
	defaultUserAgent = "benyehuda-harvest/0.1"
)

var worksCmd = &cobra.Command{
	Use:   "works",
	Short: "Download works into the output directory",
	Long: `Works walks the collection's numeric identifiers in order, fetching each
work's metadata and full text and saving both as one JSON record. Failed
identifiers are logged and skipped; the run ends when the requested number
of works has been saved or the identifier search bound is exhausted.`,
	RunE: runWorks,
}

func init() {
	worksCmd.Flags().Int("count", 0, "number of works to fetch")
	worksCmd.Flags().Int("start-id", 0, "first work identifier to try (default 1)")
	worksCmd.Flags().Int("max-id", 0, "identifier search bound (default 20x count past start)")
	worksCmd.Flags().Duration("delay", 0, "pause after every attempt (default 500ms)")
	worksCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 60s)")
	worksCmd.Flags().String("output-dir", "", "base directory for scraped data")

	rootCmd.AddCommand(worksCmd)
}

func runWorks(cmd *cobra.Command, args []string) error {
	count, _ := cmd.Flags().GetInt("count")
	if count < 0 {
		return fmt.Errorf("count must be non-negative")
	}

	cfg := types.ScrapeConfig{
		HTTPConfig:  httpConfig(cmd),
		TargetCount: count,
		StartID:     intSetting(cmd, "start-id", "scrape.start_id", 1),
		MaxID:       intSetting(cmd, "max-id", "scrape.max_id", 0),
		Delay:       durationSetting(cmd, "delay", "scrape.delay", defaultDelay),
		OutputDir:   outputDir(cmd),
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	log, err := runlog.Open(cfg.OutputDir, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer log.Close()

	client := fetch.NewClient(&http.Client{Timeout: cfg.Timeout}, cfg.HTTPConfig)

	started := time.Now()
	result, err := scrape.ScrapeWorks(cmd.Context(), client, cfg, log)
	if err != nil {
		return err
	}

	if err := writeRunSummary(cfg.OutputDir, "works", count, result, time.Since(started)); err != nil {
		log.Warningf("could not write run summary: %v", err)
	}
	if result.Short(count) {
		fmt.Fprintf(cmd.OutOrStdout(), "Collection exhausted at identifier bound: saved %d of %d requested works.\n",
			result.Succeeded, count)
	}
	return nil
}

// httpConfig assembles the shared HTTP settings for a fetch command.
func httpConfig(cmd *cobra.Command) types.HTTPConfig {
	return types.HTTPConfig{
		Timeout:   durationSetting(cmd, "timeout", "http.timeout", defaultTimeout),
		UserAgent: defaultUserAgent,
		APIKey:    apiKey(),
	}
}

// outputDir resolves the output directory: flag, then config file, then
// the built-in default.
func outputDir(cmd *cobra.Command) string {
	if v, _ := cmd.Flags().GetString("output-dir"); v != "" {
		return v
	}
	if v := viper.GetString("output_dir"); v != "" {
		return v
	}
	return defaultOutputDir
}

// intSetting resolves an int from flag, config key, then fallback.
func intSetting(cmd *cobra.Command, flag, key string, fallback int) int {
	if v, _ := cmd.Flags().GetInt(flag); v != 0 {
		return v
	}
	if v := viper.GetInt(key); v != 0 {
		return v
	}
	return fallback
}

// durationSetting resolves a duration from flag, config key, then fallback.
func durationSetting(cmd *cobra.Command, flag, key string, fallback time.Duration) time.Duration {
	if v, _ := cmd.Flags().GetDuration(flag); v != 0 {
		return v
	}
	if v := viper.GetDuration(key); v != 0 {
		return v
	}
	return fallback
}

// runSummary is the YAML document written after every scrape run.
type runSummary struct {
	Stage      string    `yaml:"stage"`
	Target     int       `yaml:"target,omitempty"`
	Attempted  int       `yaml:"attempted"`
	Succeeded  int       `yaml:"succeeded"`
	Failed     int       `yaml:"failed"`
	StartedAt  time.Time `yaml:"started_at"`
	DurationMS int64     `yaml:"duration_ms"`
}

func writeRunSummary(dir, stage string, target int, result types.RunResult, elapsed time.Duration) error {
	s := runSummary{
		Stage:      stage,
		Target:     target,
		Attempted:  result.Attempted,
		Succeeded:  result.Succeeded,
		Failed:     result.Failed,
		StartedAt:  time.Now().Add(-elapsed).UTC(),
		DurationMS: elapsed.Milliseconds(),
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshaling run summary: %w", err)
	}
	return os.WriteFile(filepath.Join(dir, "run-summary.yaml"), data, 0o644)
}
