// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"io"
)

// Summary aggregates collection-level statistics from the catalog.
type Summary struct {
	Works         int     `json:"works" yaml:"works"`
	Authors       int     `json:"authors" yaml:"authors"`
	TextMin       int     `json:"text_min" yaml:"text_min"`
	TextMax       int     `json:"text_max" yaml:"text_max"`
	TextMean      float64 `json:"text_mean" yaml:"text_mean"`
	TotalWords    int     `json:"total_words" yaml:"total_words"`
	TotalChars    int     `json:"total_chars" yaml:"total_chars"`
	EarliestBirth int     `json:"earliest_birth" yaml:"earliest_birth"`
	LatestDeath   int     `json:"latest_death" yaml:"latest_death"`
}

// Stats computes text-length and author-lifespan aggregates over the
// indexed collection. Year aggregates ignore authors with no recorded
// years.
func (s *Store) Stats(ctx context.Context) (Summary, error) {
	var sum Summary

	var textMin, textMax, totalWords, totalChars sql.NullInt64
	var textMean sql.NullFloat64
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), MIN(text_length), MAX(text_length), AVG(text_length),
			SUM(word_count), SUM(text_length)
		FROM works`,
	).Scan(&sum.Works, &textMin, &textMax, &textMean, &totalWords, &totalChars)
	if err != nil {
		return sum, fmt.Errorf("aggregating works: %w", err)
	}
	sum.TextMin = int(textMin.Int64)
	sum.TextMax = int(textMax.Int64)
	sum.TextMean = textMean.Float64
	sum.TotalWords = int(totalWords.Int64)
	sum.TotalChars = int(totalChars.Int64)

	var birth, death sql.NullInt64
	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*),
			MIN(CASE WHEN birth_year > 0 THEN birth_year END),
			MAX(CASE WHEN death_year > 0 THEN death_year END)
		FROM authors`,
	).Scan(&sum.Authors, &birth, &death)
	if err != nil {
		return sum, fmt.Errorf("aggregating authors: %w", err)
	}
	sum.EarliestBirth = int(birth.Int64)
	sum.LatestDeath = int(death.Int64)

	return sum, nil
}

// Print writes a human-readable rendering of the summary.
func (sum Summary) Print(w io.Writer) {
	fmt.Fprintf(w, "Works indexed:    %d\n", sum.Works)
	fmt.Fprintf(w, "Authors indexed:  %d\n", sum.Authors)
	if sum.Works > 0 {
		fmt.Fprintf(w, "Text length:      min=%d max=%d mean=%.1f\n", sum.TextMin, sum.TextMax, sum.TextMean)
		fmt.Fprintf(w, "Total words:      %d\n", sum.TotalWords)
		fmt.Fprintf(w, "Total characters: %d\n", sum.TotalChars)
	}
	if sum.Authors > 0 && sum.EarliestBirth > 0 {
		fmt.Fprintf(w, "Author years:     %d-%d\n", sum.EarliestBirth, sum.LatestDeath)
	}
}
