// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "benyehuda-harvest/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`

	// APIKey is the Ben Yehuda Project API key sent with every request.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
}

// ScrapeConfig holds settings for the work-scraping stage.
type ScrapeConfig struct {
	HTTPConfig `yaml:",inline"`

	// TargetCount is the number of works to fetch. Zero fetches nothing.
	TargetCount int `json:"target_count" yaml:"target_count"`

	// StartID is the first work identifier tried (default 1).
	StartID int `json:"start_id" yaml:"start_id"`

	// MaxID bounds the identifier search so the run terminates even when
	// the remote collection holds fewer works than requested. Zero means
	// StartID + 20*TargetCount - 1.
	MaxID int `json:"max_id" yaml:"max_id"`

	// Delay is the pause applied after every attempt (default 500ms).
	Delay time.Duration `json:"delay" yaml:"delay"`

	// OutputDir is the base directory for scraped data (contains works/,
	// authors/, index/ and scraper.log).
	OutputDir string `json:"output_dir" yaml:"output_dir"`
}

// SearchBound returns the effective upper identifier bound for a run.
func (c ScrapeConfig) SearchBound() int {
	if c.MaxID > 0 {
		return c.MaxID
	}
	start := c.StartID
	if start <= 0 {
		start = 1
	}
	return start + 20*c.TargetCount - 1
}

// AuthorConfig holds settings for the author-scraping stage.
type AuthorConfig struct {
	HTTPConfig `yaml:",inline"`

	// Delay is the pause applied after every author fetch (default 500ms).
	Delay time.Duration `json:"delay" yaml:"delay"`

	// OutputDir is the base directory for scraped data. Author IDs are
	// collected from OutputDir/works and records land in OutputDir/authors.
	OutputDir string `json:"output_dir" yaml:"output_dir"`
}

// CatalogConfig holds settings for the catalog stage.
type CatalogConfig struct {
	// OutputDir is the base directory for scraped data (contains works/,
	// authors/ and the index/ directory holding catalog.db).
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// MaxResults is the default maximum number of search results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}
