package naver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/minjae-dev/webreader/models"
	"github.com/minjae-dev/webreader/utils"
)

const searchEndpoint = "https://openapi.naver.com/v1/search/news.json"

// Search calls the Naver news search API (Naver Developers).
type Search struct {
	ClientID     string
	ClientSecret string
	Endpoint     string
}

type response struct {
	Items []struct {
		Title string `json:"title"`
		Link  string `json:"link"`
	} `json:"items"`
}

func (s Search) Search(ctx context.Context, keyword string, count int) ([]models.Article, error) {
	endpoint := s.Endpoint
	if endpoint == "" {
		endpoint = searchEndpoint
	}

	params := url.Values{}
	params.Add("query", keyword)
	params.Add("display", fmt.Sprintf("%d", count))
	params.Add("sort", "sim")

	req, err := http.NewRequestWithContext(ctx, "GET", fmt.Sprintf("%s?%s", endpoint, params.Encode()), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Naver-Client-Id", s.ClientID)
	req.Header.Set("X-Naver-Client-Secret", s.ClientSecret)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch news: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("naver news api error: %s", resp.Status)
	}

	var result response
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	var articles []models.Article
	for _, item := range result.Items {
		articles = append(articles, models.Article{
			Title: utils.StripBold(item.Title),
			URL:   item.Link,
		})
	}
	return articles, nil
}
