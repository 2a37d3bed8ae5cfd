// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/benyehuda-harvest/internal/fetch"
	"github.com/pdiddy/benyehuda-harvest/internal/runlog"
	"github.com/pdiddy/benyehuda-harvest/internal/scrape"
	"github.com/pdiddy/benyehuda-harvest/pkg/types"
)

var authorsCmd = &cobra.Command{
	Use:   "authors",
	Short: "Download the authors referenced by scraped works",
	Long: `Authors collects the author identifiers referenced by the work records
already in the output directory, fetches each authority record, and saves it
as authors/author_<id>.json. Run it after works.`,
	RunE: runAuthors,
}

func init() {
	authorsCmd.Flags().Duration("delay", 0, "pause after every fetch (default 500ms)")
	authorsCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 60s)")
	authorsCmd.Flags().String("output-dir", "", "base directory for scraped data")

	rootCmd.AddCommand(authorsCmd)
}

func runAuthors(cmd *cobra.Command, args []string) error {
	cfg := types.AuthorConfig{
		HTTPConfig: httpConfig(cmd),
		Delay:      durationSetting(cmd, "delay", "scrape.delay", defaultDelay),
		OutputDir:  outputDir(cmd),
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
	result, err := scrape.ScrapeAuthors(cmd.Context(), client, cfg, log)
	if err != nil {
		return err
	}

	if err := writeRunSummary(cfg.OutputDir, "authors", 0, result, time.Since(started)); err != nil {
		log.Warningf("could not write run summary: %v", err)
	}
	return nil
}
