package assistant

import (
	"context"
	"fmt"

	"strings"

	"github.com/minjae-dev/webreader/models"
	"github.com/minjae-dev/webreader/session"
)

// ordinals maps spoken ordinal phrases onto article indexes. Ordered so a
// phrase mentioning several ordinals resolves to the first entry that
// matches.
var ordinals = []struct {
	phrase string
	index  int
}{
	{"첫번째", 0}, {"첫 번째", 0}, {"first", 0},
	{"두번째", 1}, {"두 번째", 1}, {"second", 1},
	{"세번째", 2}, {"세 번째", 2}, {"third", 2},
	{"네번째", 3}, {"네 번째", 3}, {"fourth", 3},
}

// Selector returns one article from a stored news session by ordinal phrase.
type Selector struct {
	Sessions session.Store
}

// Select looks up the news session and picks the article named by an ordinal
// phrase in the query. Unrecognized or out-of-range ordinals fall back to the
// first article; a missing or empty session is ErrSessionNotFound.
func (s *Selector) Select(ctx context.Context, newsSessionID, query string) (models.Article, error) {
	articles, err := s.Sessions.GetNews(ctx, newsSessionID)
	if err != nil {
		return models.Article{}, fmt.Errorf("news session %s: %w", newsSessionID, err)
	}
	if len(articles) == 0 {
		return models.Article{}, models.ErrSessionNotFound
	}

	lowered := strings.ToLower(query)
	for _, ord := range ordinals {
		if strings.Contains(lowered, ord.phrase) && ord.index < len(articles) {
			return articles[ord.index], nil
		}
	}

	return articles[0], nil
}
