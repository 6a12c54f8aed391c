package assistant

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/minjae-dev/webreader/models"
	"github.com/minjae-dev/webreader/news"
	"github.com/minjae-dev/webreader/provider"
	"github.com/minjae-dev/webreader/session"
	"github.com/minjae-dev/webreader/utils"
)

const (
	answerYes = "네"
	answerNo  = "아니요"
)

const newsResultCount = 4

// Resolver handles the yes/no reply to a pending "want me to look it up?"
// confirmation.
type Resolver struct {
	Sessions session.Store
	LLM      provider.Provider
	News     news.Searcher
	DictURL  string
}

// Resolve consumes a yes/no answer against the pending-query and content
// sessions. Expected outcomes (missing pending query, unparseable answer,
// empty search) come back as tagged results; only collaborator faults and
// classification parse failures are returned as errors.
//
// The pending query is deleted on "no" but left in place on "yes" until its
// TTL expires, so a reply after a failed lookup can resolve it again.
func (r *Resolver) Resolve(ctx context.Context, answer, pendingSessionID, contentSessionID string) (models.Result, error) {
	switch strings.TrimSpace(answer) {
	case answerNo:
		if err := r.Sessions.DeletePending(ctx, pendingSessionID); err != nil {
			return models.Result{}, fmt.Errorf("delete pending query: %w", err)
		}
		return models.Result{
			Type:     models.ResultInfo,
			Response: "네, 알겠습니다. 다른 질문을 해주세요.",
		}, nil

	case answerYes:
		return r.resolveYes(ctx, pendingSessionID, contentSessionID)

	default:
		return models.Result{
			Type:     models.ResultError,
			Response: "네/아니요로만 대답해주세요.",
		}, nil
	}
}

func (r *Resolver) resolveYes(ctx context.Context, pendingSessionID, contentSessionID string) (models.Result, error) {
	pending, err := r.Sessions.GetPending(ctx, pendingSessionID)
	if err != nil {
		if errors.Is(err, models.ErrSessionNotFound) {
			return models.Result{
				Type:     models.ResultError,
				Response: "이전 질문을 찾을 수 없습니다. 다시 질문해주세요.",
			}, nil
		}
		return models.Result{}, fmt.Errorf("get pending query: %w", err)
	}

	// missing content session degrades to an empty classification context
	contextText := ""
	content, err := r.Sessions.GetContent(ctx, contentSessionID)
	switch {
	case err == nil:
		contextText = content.Text
	case errors.Is(err, models.ErrSessionNotFound):
		log.Printf("[ASSIST] content session %s expired, classifying without context", contentSessionID)
	default:
		return models.Result{}, fmt.Errorf("get content session: %w", err)
	}

	classification, err := r.LLM.ClassifyQuery(ctx, pending.Query, contextText)
	if err != nil {
		return models.Result{}, err
	}

	keyword := classification.Keyword
	if keyword == "" {
		keyword = pending.Query
	}

	switch classification.Category {
	case models.CategoryTerm:
		clean := utils.FirstToken(keyword)
		return models.Result{
			Type:     models.ResultNavigation,
			Response: fmt.Sprintf("'%s'에 대한 어학사전 링크를 보여드립니다.", clean),
			URL:      r.DictURL + utils.UrlQuery(clean),
		}, nil

	case models.CategoryArticle:
		articles, err := r.News.Search(ctx, keyword, newsResultCount)
		if err != nil {
			return models.Result{}, fmt.Errorf("news search: %w", err)
		}

		if len(articles) == 0 {
			return models.Result{
				Type:     models.ResultArticles,
				Response: fmt.Sprintf("'%s' 관련 뉴스를 보여드리려 했으나 찾지 못했습니다.", keyword),
				Articles: []models.Article{},
			}, nil
		}

		newsSessionID, err := r.Sessions.SaveNews(ctx, articles)
		if err != nil {
			return models.Result{}, fmt.Errorf("save news session: %w", err)
		}
		return models.Result{
			Type:          models.ResultArticles,
			Response:      fmt.Sprintf("'%s' 관련 뉴스를 보여드립니다.", keyword),
			Articles:      articles,
			NewsSessionID: newsSessionID,
		}, nil

	default:
		return models.Result{
			Type:     models.ResultError,
			Response: "질문을 분류하지 못했습니다. 다시 시도해주세요.",
		}, nil
	}
}
