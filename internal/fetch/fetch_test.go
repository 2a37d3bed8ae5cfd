// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/benyehuda-harvest/pkg/types"
)

const sampleDetailsJSON = `{
  "id": 42,
  "metadata": {
    "title": "Ha-Tikvah",
    "author_string": "Naftali Herz Imber",
    "orig_lang": "he",
    "author_ids": [7]
  }
}`

const sampleContent = "Kol od balevav penimah..."

// newTestClient returns a Client pointed at a server that serves work 42
// and author 7 and reports 404 for everything else.
func newTestClient(t *testing.T) (*Client, *httptest.Server) {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/texts/42":
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, sampleDetailsJSON)
		case "/texts/42/content":
			w.Header().Set("Content-Type", "text/plain")
			fmt.Fprint(w, sampleContent)
		case "/texts/500":
			http.Error(w, "boom", http.StatusInternalServerError)
		case "/authorities/7":
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"id": 7, "metadata": {"name": "Imber", "person": {"birth_year": "1856", "death_year": "1909"}}}`)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(ts.Close)

	client := NewClient(ts.Client(), types.HTTPConfig{UserAgent: "test-agent", APIKey: "k123"})
	client.BaseURL = ts.URL
	return client, ts
}

func TestWorkDetails(t *testing.T) {
	client, _ := newTestClient(t)

	details, err := client.WorkDetails(context.Background(), 42)
	require.NoError(t, err)

	meta, ok := details["metadata"].(map[string]any)
	require.True(t, ok, "details should carry the metadata mapping")
	assert.Equal(t, "Ha-Tikvah", meta["title"])
	assert.Equal(t, float64(42), details["id"])
}

func TestWorkDetailsMissing(t *testing.T) {
	client, _ := newTestClient(t)

	_, err := client.WorkDetails(context.Background(), 999)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingWork)
}

func TestWorkDetailsServerError(t *testing.T) {
	client, _ := newTestClient(t)

	_, err := client.WorkDetails(context.Background(), 500)
	require.Error(t, err)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusInternalServerError, statusErr.Code)
	assert.NotErrorIs(t, err, ErrMissingWork)
}

func TestWorkContent(t *testing.T) {
	client, _ := newTestClient(t)

	content, err := client.WorkContent(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, sampleContent, content)
}

func TestWorkContentMissing(t *testing.T) {
	client, _ := newTestClient(t)

	_, err := client.WorkContent(context.Background(), 999)
	assert.ErrorIs(t, err, ErrMissingWork)
}

func TestAuthor(t *testing.T) {
	client, _ := newTestClient(t)

	author, err := client.Author(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, float64(7), author["id"])
}

func TestRequestCarriesKeyAndUserAgent(t *testing.T) {
	var gotKey, gotAgent string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("key")
		gotAgent = r.Header.Get("User-Agent")
		fmt.Fprint(w, `{}`)
	}))
	defer ts.Close()

	client := NewClient(ts.Client(), types.HTTPConfig{UserAgent: "test-agent", APIKey: "k123"})
	client.BaseURL = ts.URL

	_, err := client.WorkDetails(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "k123", gotKey)
	assert.Equal(t, "test-agent", gotAgent)
}

func TestRequestWithoutKey(t *testing.T) {
	var hasKey bool
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hasKey = r.URL.Query().Has("key")
		fmt.Fprint(w, `{}`)
	}))
	defer ts.Close()

	client := NewClient(ts.Client(), types.HTTPConfig{UserAgent: "test-agent"})
	client.BaseURL = ts.URL

	_, err := client.WorkDetails(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, hasKey, "key parameter should be omitted when no API key is configured")
}
