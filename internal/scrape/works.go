// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scrape walks the Ben Yehuda collection and persists one JSON
// record per work. A record is written only when the details fetch and the
// content fetch both succeed in the same attempt; any failure is logged and
// the loop moves to the next identifier.
package scrape

import (
	"context"
	"time"

	"github.com/pdiddy/benyehuda-harvest/internal/fetch"
	"github.com/pdiddy/benyehuda-harvest/internal/runlog"
	"github.com/pdiddy/benyehuda-harvest/internal/store"
	"github.com/pdiddy/benyehuda-harvest/pkg/types"
)

// ScrapeWorks fetches works sequentially, starting at cfg.StartID, until
// cfg.TargetCount records are written or the identifier cursor passes
// cfg.SearchBound(). Every attempt, success or failure, produces one log
// entry and is followed by cfg.Delay. Per-attempt failures never abort the
// run; the only returned errors are setup problems and context
// cancellation.
func ScrapeWorks(ctx context.Context, client *fetch.Client, cfg types.ScrapeConfig, log *runlog.Logger) (types.RunResult, error) {
	var result types.RunResult
	if cfg.TargetCount <= 0 {
		return result, nil
	}

	if err := store.EnsureLayout(cfg.OutputDir); err != nil {
		return result, err
	}

	start := cfg.StartID
	if start <= 0 {
		start = 1
	}
	bound := cfg.SearchBound()

	log.Infof("starting scrape: target %d works, identifiers %d..%d", cfg.TargetCount, start, bound)

	for id := start; id <= bound && result.Succeeded < cfg.TargetCount; id++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		result.Attempted++
		if err := attemptWork(ctx, client, cfg.OutputDir, id, result.Succeeded+1); err != nil {
			result.Failed++
			log.Errorf("work %d: %v", id, err)
		} else {
			result.Succeeded++
			log.Infof("work %d: saved as work_%d.json", id, result.Succeeded)
		}

		if cfg.Delay > 0 {
			time.Sleep(cfg.Delay)
		}
	}

	log.Infof("finished scrape: %d attempted, %d succeeded, %d failed",
		result.Attempted, result.Succeeded, result.Failed)
	return result, nil
}

// attemptWork runs the two-phase fetch for one identifier and, when both
// phases succeed, writes the record as success number n. A details failure
// short-circuits the content fetch. Partial data is never persisted.
func attemptWork(ctx context.Context, client *fetch.Client, root string, id, n int) error {
	details, err := client.WorkDetails(ctx, id)
	if err != nil {
		return err
	}

	content, err := client.WorkContent(ctx, id)
	if err != nil {
		return err
	}

	rec := types.Record{Details: details, Content: content}
	return store.WriteRecord(store.WorkPath(root, n), rec)
}
