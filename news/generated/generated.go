package generated

import (
	"context"

	"github.com/minjae-dev/webreader/models"
	"github.com/minjae-dev/webreader/provider"
)

// Search produces model-generated article suggestions. Fallback backend for
// deployments without Naver API credentials.
type Search struct {
	LLM provider.Provider
}

func (s Search) Search(ctx context.Context, keyword string, count int) ([]models.Article, error) {
	return s.LLM.GenerateArticles(ctx, keyword, count)
}
