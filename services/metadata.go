package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"notemark/config"
	"notemark/utils"

	"github.com/PuerkitoBio/goquery"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

const (
	maxMetadataTitle       = 200
	maxMetadataDescription = 500
)

// Metadata is what could be scraped from a page. Success is false on any failure, in
// which case Title and Description are empty.
type Metadata struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Success     bool   `json:"success"`
}

// errUpstreamStatus marks a page that answered with a non-2xx status. The host is up,
// so it does not count against the breaker.
type errUpstreamStatus struct{ code int }

func (e errUpstreamStatus) Error() string {
	return fmt.Sprintf("unexpected status %d", e.code)
}

type MetadataFetcher struct {
	client    *http.Client
	breaker   *gobreaker.CircuitBreaker
	userAgent string
	timeout   time.Duration
	maxBytes  int64
	logger    *zap.Logger
}

func NewMetadataFetcher(cfg config.MetadataConfig, logger *zap.Logger) *MetadataFetcher {
	return NewMetadataFetcherWithClient(cfg, &http.Client{}, logger)
}

func NewMetadataFetcherWithClient(cfg config.MetadataConfig, client *http.Client, logger *zap.Logger) *MetadataFetcher {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "metadata-fetcher",
		MaxRequests: 5,
		Interval:    30 * time.Second,
		Timeout:     60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 5 {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.8
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
		IsSuccessful: func(err error) bool {
			var status errUpstreamStatus
			return err == nil || errors.As(err, &status)
		},
	})

	return &MetadataFetcher{
		client:    client,
		breaker:   breaker,
		userAgent: cfg.UserAgent,
		timeout:   cfg.Timeout,
		maxBytes:  cfg.MaxBytes,
		logger:    logger,
	}
}

// Fetch downloads rawURL and extracts its title and description. It never returns an
// error: every failure degrades to an empty, unsuccessful Metadata.
func (f *MetadataFetcher) Fetch(ctx context.Context, rawURL string) Metadata {
	result, err := f.breaker.Execute(func() (interface{}, error) {
		return f.fetch(ctx, rawURL)
	})
	if err != nil {
		outcome := "failure"
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			outcome = "breaker_open"
		}
		utils.TrackMetadataFetch(outcome)
		f.logger.Debug("Metadata fetch failed", zap.String("url", rawURL), zap.Error(err))
		return Metadata{}
	}

	utils.TrackMetadataFetch("success")
	return result.(Metadata)
}

func (f *MetadataFetcher) fetch(ctx context.Context, rawURL string) (Metadata, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return Metadata{}, err
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return Metadata{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Metadata{}, errUpstreamStatus{code: resp.StatusCode}
	}

	var body io.Reader = resp.Body
	if f.maxBytes > 0 {
		body = io.LimitReader(resp.Body, f.maxBytes)
	}

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return Metadata{}, err
	}

	return ExtractMetadata(doc), nil
}

// ExtractMetadata reads the title (falling back to og:title) and description (falling
// back to og:description) from a parsed page.
func ExtractMetadata(doc *goquery.Document) Metadata {
	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = metaContent(doc, `meta[property="og:title"]`)
	}

	description := metaContent(doc, `meta[name="description"]`)
	if description == "" {
		description = metaContent(doc, `meta[property="og:description"]`)
	}

	return Metadata{
		Title:       truncateRunes(title, maxMetadataTitle),
		Description: truncateRunes(description, maxMetadataDescription),
		Success:     true,
	}
}

func metaContent(doc *goquery.Document, selector string) string {
	content, _ := doc.Find(selector).First().Attr("content")
	return strings.TrimSpace(content)
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return strings.TrimSpace(string(runes[:limit]))
}
