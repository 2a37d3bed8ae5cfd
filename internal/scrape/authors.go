// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scrape

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/pdiddy/benyehuda-harvest/internal/fetch"
	"github.com/pdiddy/benyehuda-harvest/internal/runlog"
	"github.com/pdiddy/benyehuda-harvest/internal/store"
	"github.com/pdiddy/benyehuda-harvest/pkg/types"
)

// CollectAuthorIDs scans the work records under worksDir and returns the
// distinct author identifiers referenced by details.metadata.author_ids,
// sorted ascending. Unreadable or malformed records are skipped.
func CollectAuthorIDs(worksDir string) ([]int, error) {
	entries, err := os.ReadDir(worksDir)
	if err != nil {
		return nil, fmt.Errorf("reading works directory %s: %w", worksDir, err)
	}

	seen := make(map[int]bool)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, "work_") || !strings.HasSuffix(name, ".json") {
			continue
		}

		var rec types.Record
		if err := store.ReadRecord(filepath.Join(worksDir, name), &rec); err != nil {
			continue
		}
		for _, id := range authorIDs(rec.Details) {
			seen[id] = true
		}
	}

	ids := make([]int, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids, nil
}

// authorIDs digs metadata.author_ids out of a details mapping. JSON numbers
// decode as float64, so values are truncated to int.
func authorIDs(details types.WorkDetails) []int {
	meta, ok := details["metadata"].(map[string]any)
	if !ok {
		return nil
	}
	raw, ok := meta["author_ids"].([]any)
	if !ok {
		return nil
	}

	var ids []int
	for _, v := range raw {
		if f, ok := v.(float64); ok {
			ids = append(ids, int(f))
		}
	}
	return ids
}

// ScrapeAuthors fetches every author referenced by the scraped works and
// writes authors/author_<id>.json per record. Author files keep the remote
// identifier in their name so works can join back to them. Failures are
// logged and skipped, same continuation policy as the work loop.
func ScrapeAuthors(ctx context.Context, client *fetch.Client, cfg types.AuthorConfig, log *runlog.Logger) (types.RunResult, error) {
	var result types.RunResult

	if err := store.EnsureLayout(cfg.OutputDir); err != nil {
		return result, err
	}

	ids, err := CollectAuthorIDs(filepath.Join(cfg.OutputDir, store.WorksDir))
	if err != nil {
		return result, err
	}
	log.Infof("found %d authors to scrape", len(ids))

	for _, id := range ids {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		result.Attempted++
		if err := attemptAuthor(ctx, client, cfg.OutputDir, id); err != nil {
			result.Failed++
			log.Errorf("author %d: %v", id, err)
		} else {
			result.Succeeded++
			log.Infof("author %d: saved", id)
		}

		if cfg.Delay > 0 {
			time.Sleep(cfg.Delay)
		}
	}

	log.Infof("finished authors: %d attempted, %d succeeded, %d failed",
		result.Attempted, result.Succeeded, result.Failed)
	return result, nil
}

func attemptAuthor(ctx context.Context, client *fetch.Client, root string, id int) error {
	author, err := client.Author(ctx, id)
	if err != nil {
		return err
	}
	return store.WriteRecord(store.AuthorPath(root, id), author)
}
