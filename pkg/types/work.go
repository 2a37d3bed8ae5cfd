// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// WorkDetails is the metadata mapping the Ben Yehuda API returns for one
// work (title, authors, language, dates). It is passed through unmodified;
// this system reads at most metadata.author_ids out of it.
type WorkDetails map[string]any

// Record is the persisted unit for one work: the details mapping and the
// textual content, fetched in the same attempt. A Record is written exactly
// once, to works/work_<n>.json where n is the success index, and only when
// both halves were retrieved.
type Record struct {
	Details WorkDetails `json:"details"`
	Content string      `json:"content"`
}

// RunResult holds the counters for one scrape invocation.
type RunResult struct {
	Attempted int
	Succeeded int
	Failed    int
}

// Total returns the number of identifiers attempted.
func (r RunResult) Total() int {
	return r.Attempted
}

// Short reports whether the run ended before reaching its target, i.e. the
// identifier search bound was exhausted first.
func (r RunResult) Short(target int) bool {
	return r.Succeeded < target
}
