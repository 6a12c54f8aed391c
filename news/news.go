package news

import (
	"context"

	"github.com/minjae-dev/webreader/config"
	"github.com/minjae-dev/webreader/models"
	"github.com/minjae-dev/webreader/news/generated"
	"github.com/minjae-dev/webreader/news/naver"
	"github.com/minjae-dev/webreader/provider"
)

// Searcher fetches an ordered list of articles for a keyword. An empty list
// is a valid, non-error outcome.
type Searcher interface {
	Search(ctx context.Context, keyword string, count int) ([]models.Article, error)
}

type Backend string

const (
	NaverBackend     Backend = "naver"
	GeneratedBackend Backend = "generated"
)

// NewSearcher picks the news backend: the Naver Open API when credentials are
// configured, otherwise model-generated articles.
func NewSearcher(cfg config.NaverConfig, llm provider.Provider) Searcher {
	if cfg.HasNewsCredentials() {
		return naver.Search{ClientID: cfg.NewsClientID, ClientSecret: cfg.NewsClientSecret}
	}
	return generated.Search{LLM: llm}
}
