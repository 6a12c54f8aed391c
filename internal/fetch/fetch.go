// Package fetch downloads a page and extracts its readable text and
// navigable links for server-side content loading.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"

	"github.com/minjae-dev/webreader/models"
)

type Fetcher struct {
	HTTPClient *http.Client
	UserAgent  string
	MaxChars   int
	MaxLinks   int
}

func NewFetcher(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Fetcher{
		HTTPClient: &http.Client{Timeout: timeout},
		UserAgent:  "webreader/1.0",
		MaxChars:   20000,
		MaxLinks:   100,
	}
}

// Fetch downloads the page and returns its readable body text plus the
// anchors found in the document, with relative hrefs resolved against the
// page URL.
func (f *Fetcher) Fetch(ctx context.Context, link string) (models.ContentSession, error) {
	if strings.TrimSpace(link) == "" {
		return models.ContentSession{}, errors.New("invalid url")
	}
	pageURL, err := url.Parse(link)
	if err != nil {
		return models.ContentSession{}, fmt.Errorf("invalid url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "GET", link, nil)
	if err != nil {
		return models.ContentSession{}, err
	}
	req.Header.Set("User-Agent", f.UserAgent)

	resp, err := f.HTTPClient.Do(req)
	if err != nil {
		return models.ContentSession{}, fmt.Errorf("fetch %s: %w", link, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.ContentSession{}, fmt.Errorf("fetch %s: status %s", link, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return models.ContentSession{}, err
	}
	html := string(body)

	article, err := readability.FromReader(strings.NewReader(html), pageURL)
	if err != nil {
		return models.ContentSession{}, fmt.Errorf("extract %s: %w", link, err)
	}

	text := strings.TrimSpace(article.TextContent)
	if f.MaxChars > 0 && len(text) > f.MaxChars {
		text = text[:f.MaxChars]
	}

	links, err := f.extractLinks(html, pageURL)
	if err != nil {
		return models.ContentSession{}, err
	}

	return models.ContentSession{Text: text, Links: links}, nil
}

func (f *Fetcher) extractLinks(html string, pageURL *url.URL) ([]models.Link, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse links: %w", err)
	}

	var links []models.Link
	seen := map[string]bool{}
	doc.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		label := strings.Join(strings.Fields(sel.Text()), " ")
		href, _ := sel.Attr("href")
		if label == "" || href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(href, "javascript:") {
			return true
		}
		target, err := pageURL.Parse(href)
		if err != nil {
			return true
		}
		resolved := target.String()
		if seen[resolved] {
			return true
		}
		seen[resolved] = true
		links = append(links, models.Link{ID: len(links) + 1, Text: label, URL: resolved})
		return f.MaxLinks <= 0 || len(links) < f.MaxLinks
	})
	return links, nil
}
