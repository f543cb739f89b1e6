package services

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"notemark/config"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func testMetadataConfig() config.MetadataConfig {
	return config.MetadataConfig{
		Timeout:   time.Second,
		UserAgent: "notemark-test",
		MaxBytes:  1 << 20,
	}
}

func TestFetchExtractsTitleAndDescription(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		fmt.Fprint(w, `<html><head>
			<title>  Go Documentation </title>
			<meta name="description" content="Docs for the Go language">
			<meta property="og:description" content="ignored">
		</head><body></body></html>`)
	}))
	defer srv.Close()

	fetcher := NewMetadataFetcher(testMetadataConfig(), zap.NewNop())
	meta := fetcher.Fetch(context.Background(), srv.URL)

	assert.Equal(t, Metadata{Title: "Go Documentation", Description: "Docs for the Go language", Success: true}, meta)
	assert.Equal(t, "notemark-test", gotUA)
}

func TestFetchFallsBackToOpenGraph(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><head>
			<meta property="og:title" content="OG Title">
			<meta property="og:description" content="OG Description">
		</head></html>`)
	}))
	defer srv.Close()

	meta := NewMetadataFetcher(testMetadataConfig(), zap.NewNop()).Fetch(context.Background(), srv.URL)

	assert.True(t, meta.Success)
	assert.Equal(t, "OG Title", meta.Title)
	assert.Equal(t, "OG Description", meta.Description)
}

func TestFetchTruncatesLongValues(t *testing.T) {
	title := strings.Repeat("é", 250)
	description := strings.Repeat("d", 600)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<html><head><title>%s</title><meta name="description" content="%s"></head></html>`, title, description)
	}))
	defer srv.Close()

	meta := NewMetadataFetcher(testMetadataConfig(), zap.NewNop()).Fetch(context.Background(), srv.URL)

	assert.Equal(t, 200, len([]rune(meta.Title)))
	assert.Equal(t, 500, len([]rune(meta.Description)))
}

func TestFetchDegradesOnFailure(t *testing.T) {
	t.Run("non-2xx", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "gone", http.StatusNotFound)
		}))
		defer srv.Close()

		meta := NewMetadataFetcher(testMetadataConfig(), zap.NewNop()).Fetch(context.Background(), srv.URL)
		assert.Equal(t, Metadata{}, meta)
	})

	t.Run("timeout", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-time.After(2 * time.Second):
			case <-r.Context().Done():
			}
		}))
		defer srv.Close()

		cfg := testMetadataConfig()
		cfg.Timeout = 50 * time.Millisecond

		start := time.Now()
		meta := NewMetadataFetcher(cfg, zap.NewNop()).Fetch(context.Background(), srv.URL)
		assert.Equal(t, Metadata{}, meta)
		assert.Less(t, time.Since(start), time.Second)
	})

	t.Run("unreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		meta := NewMetadataFetcher(testMetadataConfig(), zap.NewNop()).Fetch(context.Background(), url)
		assert.Equal(t, Metadata{}, meta)
	})

	t.Run("invalid url", func(t *testing.T) {
		meta := NewMetadataFetcher(testMetadataConfig(), zap.NewNop()).Fetch(context.Background(), "://nope")
		assert.Equal(t, Metadata{}, meta)
	})
}

func TestFetchBreakerOpensAfterRepeatedFailures(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	fetcher := NewMetadataFetcher(testMetadataConfig(), zap.NewNop())
	for i := 0; i < 5; i++ {
		fetcher.Fetch(context.Background(), url)
	}

	assert.Equal(t, "open", fetcher.breaker.State().String())
	assert.Equal(t, Metadata{}, fetcher.Fetch(context.Background(), url))
}

func TestNonSuccessStatusDoesNotTripBreaker(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	fetcher := NewMetadataFetcher(testMetadataConfig(), zap.NewNop())
	for i := 0; i < 10; i++ {
		fetcher.Fetch(context.Background(), srv.URL)
	}

	assert.Equal(t, "closed", fetcher.breaker.State().String())
}
